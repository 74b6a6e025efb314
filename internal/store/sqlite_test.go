package store

import (
	"path/filepath"
	"testing"
)

func TestSQLiteMedium_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", SQLiteFileName)

	m, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}

	if err := m.Save("k", "1"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.Save("k", "2"); err != nil {
		t.Fatalf("Save() upsert error = %v", err)
	}
	_ = m.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(got) != 1 || got["k"] != "2" {
		t.Errorf("LoadAll() = %v, want map[k:2]", got)
	}
}

func TestSQLiteMedium_BehindStore(t *testing.T) {
	m, err := OpenSQLite(filepath.Join(t.TempDir(), SQLiteFileName))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	s := New(m)
	defer func() { _ = s.Close() }()

	SetInt(s, KeyTasksCompletedToday, 4)
	if got := GetInt(s, KeyTasksCompletedToday, 0); got != 4 {
		t.Errorf("GetInt() = %d, want 4", got)
	}
}

func TestOpenMedium(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
		want    string
		wantErr bool
	}{
		{BackendMemory, "memory", false},
		{BackendFile, "file", false},
		{"", "file", false},
		{BackendSQLite, "sqlite", false},
		{"redis", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			m, err := OpenMedium(tt.backend, dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenMedium() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer func() { _ = m.Close() }()
			if m.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", m.Name(), tt.want)
			}
		})
	}
}
