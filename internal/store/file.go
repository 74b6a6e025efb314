package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/cogniload/internal/errors"
	"github.com/Iron-Ham/cogniload/internal/logging"
)

// FileName is the name of the store file inside the data directory.
const FileName = "store.json"

// watchDebounce coalesces the burst of events a single atomic save produces.
const watchDebounce = 50 * time.Millisecond

// FileMedium persists every key in a single JSON object on disk.
//
// Each Save is a read-modify-write of the whole file under an flock, with
// the new content written to a temporary file and renamed into place, so
// concurrent processes never observe a torn file and never lose each
// other's keys.
type FileMedium struct {
	dir    string
	path   string
	logger *logging.Logger

	mu     sync.Mutex
	closed bool
}

// OpenFile returns a FileMedium rooted at dir, creating the directory if
// needed.
func OpenFile(dir string) (*FileMedium, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileMedium{
		dir:    dir,
		path:   filepath.Join(dir, FileName),
		logger: logging.NopLogger(),
	}, nil
}

// SetLogger sets the logger used for file repairs.
func (f *FileMedium) SetLogger(l *logging.Logger) {
	if l != nil {
		f.logger = l
	}
}

func (f *FileMedium) Name() string { return "file" }

// Path returns the location of the store file.
func (f *FileMedium) Path() string { return f.path }

// LoadAll reads the store file. A missing file is an empty store.
func (f *FileMedium) LoadAll() (map[string]string, error) {
	if err := f.checkOpen(); err != nil {
		return nil, err
	}

	fl := newFileLock(f.dir)
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	return f.read()
}

// Save writes one key, preserving every other key already on disk.
func (f *FileMedium) Save(key, value string) error {
	if err := f.checkOpen(); err != nil {
		return err
	}

	fl := newFileLock(f.dir)
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	values, err := f.read()
	if err != nil {
		// An unreadable file is moved aside and replaced rather than
		// blocking every write.
		f.quarantine(err)
		values = make(map[string]string)
	}
	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// quarantine renames an undecodable store file to
// store.json.corrupt-<unix-nanos> so its contents survive the next save.
func (f *FileMedium) quarantine(cause error) {
	if !errors.Is(cause, errors.ErrDecode) {
		return
	}
	dest := fmt.Sprintf("%s.corrupt-%d", f.path, time.Now().UnixNano())
	if err := os.Rename(f.path, dest); err != nil {
		f.logger.Warn("could not move unreadable store file aside",
			"path", f.path, "error", err.Error())
		return
	}
	f.logger.Warn("unreadable store file moved aside",
		"path", f.path, "moved_to", dest, "error", cause.Error())
}

func (f *FileMedium) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Join(errors.ErrDecode, err)
	}
	return values, nil
}

func (f *FileMedium) checkOpen() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.ErrStoreClosed
	}
	return nil
}

// Close marks the medium closed. Later calls fail with ErrStoreClosed.
func (f *FileMedium) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Watch calls onChange whenever the store file is written by anyone,
// including this process. It blocks until ctx is done.
func (f *FileMedium) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// The directory is watched because the rename replaces the file's inode.
	if err := watcher.Add(f.dir); err != nil {
		return fmt.Errorf("watch store dir: %w", err)
	}

	debounce := time.NewTimer(0)
	<-debounce.C
	pending := false

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != FileName {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			debounce.Reset(watchDebounce)

		case <-debounce.C:
			if pending {
				pending = false
				onChange()
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
