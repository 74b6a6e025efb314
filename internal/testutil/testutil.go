// Package testutil provides testing utilities for cogniload tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Iron-Ham/cogniload/internal/store"
)

// Clock is a settable time source for code that takes a func() time.Time.
// It is safe for concurrent use.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock frozen at t.
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// LocalDate returns local time on the given day and hour.
func LocalDate(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.Local)
}

// SetupDataDir creates an isolated data and config home for the test and
// points XDG_DATA_HOME and XDG_CONFIG_HOME at it. It returns the cogniload
// data directory.
func SetupDataDir(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))

	dir := filepath.Join(root, "data", "cogniload")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create data dir: %v", err)
	}
	return dir
}

// WriteStoreFile seeds the file backend in dir with values.
func WriteStoreFile(t *testing.T, dir string, values map[string]string) {
	t.Helper()

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal store: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, store.FileName), data, 0644); err != nil {
		t.Fatalf("failed to write store file: %v", err)
	}
}

// ReadStoreFile returns the keys persisted by the file backend in dir.
func ReadStoreFile(t *testing.T, dir string) map[string]string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, store.FileName))
	if os.IsNotExist(err) {
		return map[string]string{}
	}
	if err != nil {
		t.Fatalf("failed to read store file: %v", err)
	}
	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		t.Fatalf("failed to unmarshal store file: %v", err)
	}
	return values
}
