package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlite connection holding the comparison history.
type DB struct {
	*sql.DB
	prepared map[string]*sql.Stmt
	mutex    sync.RWMutex
}

// NewDB opens (creating if needed) the history database under dataDir.
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "crossref_history.db")
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	database := &DB{
		DB:       db,
		prepared: make(map[string]*sql.Stmt),
	}

	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := database.initPreparedStatements(); err != nil {
		return nil, fmt.Errorf("failed to initialize prepared statements: %w", err)
	}

	slog.Info("History database initialized", "path", dbPath)
	return database, nil
}

// migrate creates the necessary tables
func (db *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS comparisons (
			id TEXT PRIMARY KEY,
			competitor_id INTEGER NOT NULL,
			competitor_name TEXT NOT NULL,
			candidate_id INTEGER,
			candidate_name TEXT,
			percentage REAL NOT NULL,
			category TEXT NOT NULL,
			breakdown TEXT, -- JSON per-feature scores
			kind TEXT NOT NULL, -- 'compare' or 'best_match'
			created_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_comparisons_competitor ON comparisons(competitor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_comparisons_created ON comparisons(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_comparisons_percentage ON comparisons(percentage DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}
	return nil
}

// initPreparedStatements initializes frequently used prepared statements
func (db *DB) initPreparedStatements() error {
	statements := map[string]string{
		"insert_comparison": `INSERT INTO comparisons (
			id, competitor_id, competitor_name, candidate_id, candidate_name,
			percentage, category, breakdown, kind, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,

		"recent_comparisons": `SELECT id, competitor_id, competitor_name, candidate_id,
			candidate_name, percentage, category, breakdown, kind, created_at
			FROM comparisons ORDER BY created_at DESC LIMIT ?`,

		"comparisons_for_competitor": `SELECT id, competitor_id, competitor_name, candidate_id,
			candidate_name, percentage, category, breakdown, kind, created_at
			FROM comparisons WHERE competitor_id = ? ORDER BY created_at DESC LIMIT ?`,
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, query := range statements {
		stmt, err := db.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement %s: %w", name, err)
		}
		db.prepared[name] = stmt
	}
	return nil
}

func (db *DB) stmt(name string) (*sql.Stmt, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	stmt, exists := db.prepared[name]
	if !exists {
		return nil, fmt.Errorf("prepared statement %s not found", name)
	}
	return stmt, nil
}

// Close closes the database connection and prepared statements
func (db *DB) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, stmt := range db.prepared {
		if err := stmt.Close(); err != nil {
			slog.Warn("Failed to close prepared statement", "name", name, "error", err)
		}
	}
	db.prepared = make(map[string]*sql.Stmt)
	return db.DB.Close()
}
