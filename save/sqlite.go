package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS saves (
	slot     TEXT PRIMARY KEY,
	board    BLOB NOT NULL,
	players  BLOB NOT NULL,
	meta     BLOB NOT NULL,
	saved_at INTEGER NOT NULL
)`

// SQLiteStore keeps each slot as one row, so a save set is written in one
// statement.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file and makes sure the table
// is there.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Put(ctx context.Context, slot string, docs Documents) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO saves (slot, board, players, meta, saved_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
	board = excluded.board,
	players = excluded.players,
	meta = excluded.meta,
	saved_at = excluded.saved_at`,
		slot, docs.Board, docs.Players, docs.Meta, time.Now().UTC().UnixMilli())
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, slot string) (Documents, error) {
	var docs Documents
	row := s.db.QueryRowContext(ctx, `SELECT board, players, meta FROM saves WHERE slot = ?`, slot)
	err := row.Scan(&docs.Board, &docs.Players, &docs.Meta)
	if errors.Is(err, sql.ErrNoRows) {
		return Documents{}, fmt.Errorf("%w: %s", ErrNotFound, slot)
	}
	if err != nil {
		return Documents{}, err
	}
	return docs, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot FROM saves ORDER BY slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}
