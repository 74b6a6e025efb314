package daykey

import (
	"testing"
	"time"
)

func TestKey_UsesInstantLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	instant := time.Date(2026, 2, 1, 20, 0, 0, 0, time.UTC)

	if got := Key(instant); got != "2026-02-01" {
		t.Errorf("Key(UTC) = %q, want %q", got, "2026-02-01")
	}
	if got := Key(instant.In(tokyo)); got != "2026-02-02" {
		t.Errorf("Key(JST) = %q, want %q", got, "2026-02-02")
	}
}

func TestSame(t *testing.T) {
	loc := time.FixedZone("X", -5*3600)
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{"same day", time.Date(2026, 3, 1, 0, 0, 0, 0, loc), time.Date(2026, 3, 1, 23, 59, 59, 0, loc), true},
		{"across midnight", time.Date(2026, 3, 1, 23, 0, 0, 0, loc), time.Date(2026, 3, 2, 1, 0, 0, 0, loc), false},
		{"a year apart", time.Date(2025, 3, 1, 12, 0, 0, 0, loc), time.Date(2026, 3, 1, 12, 0, 0, 0, loc), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Same(tt.a, tt.b); got != tt.want {
				t.Errorf("Same() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStart(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	got := Start(time.Date(2026, 5, 9, 17, 45, 12, 99, loc))
	want := time.Date(2026, 5, 9, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("Start() = %v, want %v", got, want)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		key  string
		n    int
		want string
	}{
		{"2026-02-05", -1, "2026-02-04"},
		{"2026-02-05", -2, "2026-02-03"},
		{"2026-03-01", -1, "2026-02-28"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2026-01-01", -2, "2025-12-30"},
		{"2026-12-31", 1, "2027-01-01"},
	}
	for _, tt := range tests {
		got, err := AddDays(tt.key, tt.n)
		if err != nil {
			t.Fatalf("AddDays(%q, %d) error: %v", tt.key, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.key, tt.n, got, tt.want)
		}
	}
}

func TestAddDays_InvalidKey(t *testing.T) {
	if _, err := AddDays("not-a-day", 1); err == nil {
		t.Error("expected error for invalid key")
	}
}

func TestParse(t *testing.T) {
	loc := time.FixedZone("X", 2*3600)
	got, err := Parse("2026-02-03", loc)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !got.Equal(time.Date(2026, 2, 3, 0, 0, 0, 0, loc)) {
		t.Errorf("Parse() = %v", got)
	}
	if _, err := Parse("2026-02-30", loc); err == nil {
		t.Error("expected error for impossible date")
	}
}

func TestRange(t *testing.T) {
	got := Range(time.Date(2026, 2, 27, 15, 0, 0, 0, time.UTC), 4)
	want := []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}
	if len(got) != len(want) {
		t.Fatalf("Range() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Range()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if Range(time.Now(), 0) != nil {
		t.Error("Range(0) should be nil")
	}
}
