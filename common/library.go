// common/library.go

package common

import (
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

// LibraryEntry is one indexed ride file.
type LibraryEntry struct {
	ID         string
	Dir        string
	FileName   string
	ImportedAt time.Time
}

// Path returns the full path of the ride file.
func (e LibraryEntry) Path() string {
	return filepath.Join(e.Dir, e.FileName)
}

// Library is the SQLite index of ride files known to the application.
// When a key is configured the database is encrypted with SQLCipher.
type Library struct {
	db          *sql.DB
	dbPath      string
	key         string
	isConnected bool
	finalized   bool
	mutex       sync.Mutex
	logger      *Logger
}

// NewLibrary creates a library for the database at dbPath. It does not connect yet.
func NewLibrary(dbPath, key string, logger *Logger) (*Library, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("library path is not configured")
	}
	if err := EnsureDirectoryExists(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("failed to prepare library directory: %w", err)
	}
	return &Library{
		dbPath: dbPath,
		key:    key,
		logger: logger,
	}, nil
}

// Connect opens the database and creates the schema when missing
func (l *Library) Connect() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.isConnected {
		return nil
	}
	if l.finalized {
		return fmt.Errorf("library %s is already closed", l.dbPath)
	}

	connStr := "file:" + l.dbPath
	if l.key != "" {
		connStr += "?_pragma_key=" + url.QueryEscape(l.key) + "&_pragma_cipher_page_size=4096"
	}
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return fmt.Errorf("failed to open library %s: %w", l.dbPath, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to library %s: %w", l.dbPath, err)
	}

	for _, stmt := range []string{
		"PRAGMA journal_mode=DELETE",
		"PRAGMA synchronous=FULL",
		`CREATE TABLE IF NOT EXISTS rides (
			id          TEXT PRIMARY KEY,
			dir         TEXT NOT NULL,
			file_name   TEXT NOT NULL,
			imported_at TEXT NOT NULL,
			UNIQUE (dir, file_name)
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("failed to prepare library %s: %w", l.dbPath, err)
		}
	}

	l.db = db
	l.isConnected = true
	if l.logger != nil {
		l.logger.Info("Connected to library: %s", l.dbPath)
	}
	return nil
}

func (l *Library) ensureConnected() error {
	l.mutex.Lock()
	connected := l.isConnected
	l.mutex.Unlock()
	if connected {
		return nil
	}
	return l.Connect()
}

// AddRide indexes a ride file. Adding a path that is already indexed returns the existing id.
func (l *Library) AddRide(id, path string) (string, error) {
	if err := l.ensureConnected(); err != nil {
		return "", err
	}
	dir, fileName := filepath.Dir(path), filepath.Base(path)

	l.mutex.Lock()
	defer l.mutex.Unlock()

	var existing string
	err := l.db.QueryRow(`SELECT id FROM rides WHERE dir = ? AND file_name = ?`, dir, fileName).Scan(&existing)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to look up ride %s: %w", path, err)
	}

	_, err = l.db.Exec(`INSERT INTO rides (id, dir, file_name, imported_at) VALUES (?, ?, ?, ?)`,
		id, dir, fileName, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to add ride %s: %w", path, err)
	}
	return id, nil
}

// RenameRide points an indexed ride at its new file name
func (l *Library) RenameRide(id, dir, fileName string) error {
	if err := l.ensureConnected(); err != nil {
		return err
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	res, err := l.db.Exec(`UPDATE rides SET dir = ?, file_name = ? WHERE id = ?`, dir, fileName, id)
	if err != nil {
		return fmt.Errorf("failed to rename ride %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("ride %s is not in the library", id)
	}
	return nil
}

// RemoveRide drops a ride from the index; the file itself is left alone
func (l *Library) RemoveRide(id string) error {
	if err := l.ensureConnected(); err != nil {
		return err
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if _, err := l.db.Exec(`DELETE FROM rides WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to remove ride %s: %w", id, err)
	}
	return nil
}

// ListRides returns all indexed rides in import order
func (l *Library) ListRides() ([]LibraryEntry, error) {
	if err := l.ensureConnected(); err != nil {
		return nil, err
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	rows, err := l.db.Query(`SELECT id, dir, file_name, imported_at FROM rides ORDER BY imported_at, file_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	defer rows.Close()

	var entries []LibraryEntry
	for rows.Next() {
		var e LibraryEntry
		var importedAt string
		if err := rows.Scan(&e.ID, &e.Dir, &e.FileName, &importedAt); err != nil {
			return nil, fmt.Errorf("failed to read ride row: %w", err)
		}
		e.ImportedAt, _ = time.Parse(time.RFC3339, importedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	return entries, nil
}

// Path returns the database file path
func (l *Library) Path() string {
	return l.dbPath
}

// Finalize closes the connection. The library cannot be used afterwards.
func (l *Library) Finalize() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.finalized {
		return nil
	}
	l.finalized = true
	if !l.isConnected {
		return nil
	}
	l.isConnected = false
	if err := l.db.Close(); err != nil {
		return fmt.Errorf("failed to close library %s: %w", l.dbPath, err)
	}
	if l.logger != nil {
		l.logger.Info("Library closed: %s", l.dbPath)
	}
	return nil
}
