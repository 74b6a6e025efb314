package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Iron-Ham/cogniload/internal/errors"
)

func TestFileMedium_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	m, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	got, err := m.LoadAll()
	if err != nil || len(got) != 0 {
		t.Fatalf("LoadAll() on fresh dir = %v, %v", got, err)
	}

	if err := m.Save("a", "1"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.Save("b", "2"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reopened, _ := OpenFile(dir)
	got, err = reopened.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if got["a"] != "1" || got["b"] != "2" {
		t.Errorf("LoadAll() = %v", got)
	}

	if _, err := os.Stat(filepath.Join(dir, FileName+".tmp")); !os.IsNotExist(err) {
		t.Error("temp file should not remain after save")
	}
}

func TestFileMedium_TwoWritersKeepBothKeys(t *testing.T) {
	dir := t.TempDir()
	a, _ := OpenFile(dir)
	b, _ := OpenFile(dir)

	_ = a.Save("from_a", "1")
	_ = b.Save("from_b", "2")

	got, _ := a.LoadAll()
	if got["from_a"] != "1" || got["from_b"] != "2" {
		t.Errorf("LoadAll() = %v, want both keys", got)
	}
}

func TestFileMedium_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{oops"), 0644); err != nil {
		t.Fatal(err)
	}
	m, _ := OpenFile(dir)

	if _, err := m.LoadAll(); !errors.Is(err, errors.ErrDecode) {
		t.Errorf("LoadAll() error = %v, want ErrDecode", err)
	}

	// The store degrades to defaults and a write repairs the file.
	s := New(m)
	if len(s.Keys()) != 0 {
		t.Errorf("Keys() = %v, want empty", s.Keys())
	}
	s.Set("k", "v")
	got, err := m.LoadAll()
	if err != nil || got["k"] != "v" {
		t.Errorf("LoadAll() after repair = %v, %v", got, err)
	}
}

func TestFileMedium_CorruptFileIsKeptAside(t *testing.T) {
	dir := t.TempDir()
	corrupt := []byte(`{"cogniload_tasks": "[{\"id\":\"t1\"}]", "background_lo`)
	if err := os.WriteFile(filepath.Join(dir, FileName), corrupt, 0644); err != nil {
		t.Fatal(err)
	}
	m, _ := OpenFile(dir)

	if err := m.Save(KeyLastVisit, "1"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := m.LoadAll()
	if err != nil || len(got) != 1 || got[KeyLastVisit] != "1" {
		t.Errorf("LoadAll() = %v, %v; want only %s", got, err, KeyLastVisit)
	}

	moved, err := filepath.Glob(filepath.Join(dir, FileName+".corrupt-*"))
	if err != nil || len(moved) != 1 {
		t.Fatalf("corrupt copies = %v, %v; want exactly one", moved, err)
	}
	kept, err := os.ReadFile(moved[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(kept) != string(corrupt) {
		t.Errorf("corrupt copy = %q, want original contents", kept)
	}

	// A healthy file is never moved aside.
	if err := m.Save(KeyLastVisit, "2"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if moved, _ := filepath.Glob(filepath.Join(dir, FileName+".corrupt-*")); len(moved) != 1 {
		t.Errorf("corrupt copies after healthy save = %d, want 1", len(moved))
	}
}

func TestFileMedium_Closed(t *testing.T) {
	m, _ := OpenFile(t.TempDir())
	_ = m.Close()

	if err := m.Save("k", "v"); !errors.Is(err, errors.ErrStoreClosed) {
		t.Errorf("Save() after Close = %v, want ErrStoreClosed", err)
	}
	if _, err := m.LoadAll(); !errors.Is(err, errors.ErrStoreClosed) {
		t.Errorf("LoadAll() after Close = %v, want ErrStoreClosed", err)
	}
}

func TestStore_WatchPicksUpExternalWrites(t *testing.T) {
	dir := t.TempDir()
	m, _ := OpenFile(dir)
	s := New(m)

	changed := make(chan string, 4)
	s.Subscribe("ext", func(_, v string) { changed <- v })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// Give the watcher time to register before the external write.
	time.Sleep(100 * time.Millisecond)

	other, _ := OpenFile(dir)
	if err := other.Save("ext", "hello"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	select {
	case v := <-changed:
		if v != "hello" {
			t.Errorf("notified value = %q, want hello", v)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for external change")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
}

func TestStore_WatchUnsupportedMedium(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Watch(context.Background()); err != nil {
		t.Errorf("Watch() on memory medium = %v, want nil", err)
	}
}
