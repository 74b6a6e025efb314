package store

import (
	"context"
	"fmt"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendMemory}
}

// OpenMedium returns the medium for backend rooted at dir.
func OpenMedium(backend, dir string) (Medium, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		return OpenFile(dir)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, SQLiteFileName))
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// Watcher is implemented by media that can report external writes.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// Watch reloads the store whenever its medium reports an external write.
// Media that cannot be watched return immediately with a nil error.
func (s *Store) Watch(ctx context.Context) error {
	w, ok := s.medium.(Watcher)
	if !ok {
		return nil
	}
	return w.Watch(ctx, func() {
		if err := s.Reload(); err != nil {
			s.logger.Warn("reload after external change failed", "error", err.Error())
		}
	})
}
