// Package backup exports the durable store keys to a portable bundle and
// restores them. Bundles are written as indented JSON by default or as YAML.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/cogniload/internal/errors"
	"github.com/Iron-Ham/cogniload/internal/store"
)

// Version is written into every exported bundle.
const Version = "1.0.0"

// Format selects the bundle encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.NewValidationError("unsupported backup format").WithField("format").WithValue(s)
	}
}

// Bundle is a snapshot of the durable keys. Values are carried as the raw
// stored strings; a nil field means the key was absent.
type Bundle struct {
	Version             string  `json:"version" yaml:"version"`
	ExportDate          string  `json:"exportDate" yaml:"exportDate"`
	Tasks               *string `json:"tasks" yaml:"tasks"`
	BackgroundLoad      *string `json:"backgroundLoad" yaml:"backgroundLoad"`
	LastVisit           *string `json:"lastVisit" yaml:"lastVisit"`
	LastTotalLoad       *string `json:"lastTotalLoad" yaml:"lastTotalLoad"`
	CurrentTotalLoad    *string `json:"currentTotalLoad" yaml:"currentTotalLoad"`
	TasksCompletedToday *string `json:"tasksCompletedToday" yaml:"tasksCompletedToday"`
	LastCompletionDate  *string `json:"lastCompletionDate" yaml:"lastCompletionDate"`
}

// fields pairs each bundle field with its store key.
func (b *Bundle) fields() []struct {
	key string
	val **string
} {
	return []struct {
		key string
		val **string
	}{
		{store.KeyTasks, &b.Tasks},
		{store.KeyBackgroundLoad, &b.BackgroundLoad},
		{store.KeyLastVisit, &b.LastVisit},
		{store.KeyLastTotalLoad, &b.LastTotalLoad},
		{store.KeyCurrentTotalLoad, &b.CurrentTotalLoad},
		{store.KeyTasksCompletedToday, &b.TasksCompletedToday},
		{store.KeyLastCompletionDate, &b.LastCompletionDate},
	}
}

// Export collects the durable keys from kv.
func Export(kv store.KV, now time.Time) Bundle {
	b := Bundle{
		Version:    Version,
		ExportDate: now.UTC().Format(time.RFC3339Nano),
	}
	for _, f := range b.fields() {
		if v, ok := kv.Get(f.key); ok {
			*f.val = &v
		}
	}
	return b
}

// Import writes every non-empty field of b into kv and returns the number of
// keys written. Absent fields leave the existing value in place.
func Import(kv store.KV, b Bundle) (int, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	n := 0
	for _, f := range b.fields() {
		if *f.val == nil || **f.val == "" {
			continue
		}
		kv.Set(f.key, **f.val)
		n++
	}
	return n, nil
}

// Validate checks the bundle header.
func (b Bundle) Validate() error {
	if b.Version == "" {
		return errors.NewValidationError("invalid backup file format").WithField("version")
	}
	if b.ExportDate == "" {
		return errors.NewValidationError("invalid backup file format").WithField("exportDate")
	}
	return nil
}

// Encode writes b to w.
func Encode(w io.Writer, b Bundle, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// Decode reads a bundle from r and validates its header.
func Decode(r io.Reader, format Format) (Bundle, error) {
	var b Bundle
	data, err := io.ReadAll(r)
	if err != nil {
		return b, fmt.Errorf("read backup: %w", err)
	}

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &b)
	default:
		err = json.Unmarshal(data, &b)
	}
	if err != nil {
		return Bundle{}, errors.NewValidationError("invalid backup file format").WithCause(err)
	}
	if err := b.Validate(); err != nil {
		return Bundle{}, err
	}
	return b, nil
}
