package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteFileName is the database file inside the data directory.
const SQLiteFileName = "store.db"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteMedium persists keys as rows of a single kv table.
type SQLiteMedium struct {
	db *sql.DB
}

// OpenSQLite opens (and migrates) the database at path. An empty path
// resolves to store.db inside the working directory.
func OpenSQLite(path string) (*SQLiteMedium, error) {
	if path == "" {
		path = SQLiteFileName
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serialises writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	m := &SQLiteMedium{db: db}
	if err := m.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

func (m *SQLiteMedium) migrate() error {
	if _, err := m.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (m *SQLiteMedium) Name() string { return "sqlite" }

func (m *SQLiteMedium) LoadAll() (map[string]string, error) {
	rows, err := m.db.Query(`SELECT key, value FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("query kv: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan kv: %w", err)
		}
		values[k] = v
	}
	return values, rows.Err()
}

func (m *SQLiteMedium) Save(key, value string) error {
	_, err := m.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (m *SQLiteMedium) Close() error {
	return m.db.Close()
}
