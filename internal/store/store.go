// Package store persists discovery sessions and their checkpoints in SQLite.
// It backs crash/interruption recovery: the newest checkpoint is the resume
// source when a workshop restarts.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/lzkit/lzkit/internal/session"
	"github.com/lzkit/lzkit/internal/snapshot"
)

// ErrNoSession is returned when a lookup finds no stored session.
var ErrNoSession = errors.New("no stored session")

// Store is a SQLite-backed session store.
type Store struct {
	db *sql.DB
}

// Open creates or opens the store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// WAL mode for better concurrency between checkpoint writes and reads.
	if _, err := db.Exec("PRAGMA journal_mode = WAL; PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveCheckpoint upserts the session row and appends a checkpoint carrying
// the full snapshot document.
func (s *Store) SaveCheckpoint(ctx context.Context, state session.State, doc *snapshot.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	docs, err := json.Marshal(state.DocumentsAnalyzed)
	if err != nil {
		return fmt.Errorf("marshaling document list: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, created_at, updated_at, completion, documents_analyzed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			updated_at = excluded.updated_at,
			completion = excluded.completion,
			documents_analyzed = excluded.documents_analyzed`,
		state.SessionID, state.CreatedAt.UTC(), now, state.Completion, string(docs))
	if err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO checkpoints (session_id, taken_at, answers, snapshot)
		VALUES (?, ?, ?, ?)`,
		state.SessionID, now, len(state.Answers), string(data))
	if err != nil {
		return fmt.Errorf("inserting checkpoint: %w", err)
	}

	return tx.Commit()
}

// LoadLatest returns the session state from the most recent checkpoint of
// the most recently updated session. Implements session.SnapshotSource.
func (s *Store) LoadLatest(ctx context.Context) (*session.Restored, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT c.snapshot
		FROM checkpoints c
		JOIN sessions se ON se.id = c.session_id
		ORDER BY se.updated_at DESC, c.id DESC
		LIMIT 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading latest checkpoint: %w", err)
	}

	var doc snapshot.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false, fmt.Errorf("parsing stored snapshot: %w", err)
	}
	return doc.Restore(), true, nil
}

// LoadSession returns the latest checkpoint for a specific session id.
func (s *Store) LoadSession(ctx context.Context, sessionID string) (*session.Restored, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT snapshot FROM checkpoints
		WHERE session_id = ?
		ORDER BY id DESC
		LIMIT 1`, sessionID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNoSession, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}

	var doc snapshot.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parsing stored snapshot: %w", err)
	}
	return doc.Restore(), nil
}

// SessionInfo summarizes one stored session.
type SessionInfo struct {
	ID          string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Completion  float64
	Checkpoints int
}

// Sessions lists stored sessions, most recently updated first.
func (s *Store) Sessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT se.id, se.created_at, se.updated_at, se.completion,
		       (SELECT COUNT(*) FROM checkpoints c WHERE c.session_id = se.id)
		FROM sessions se
		ORDER BY se.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.CreatedAt, &info.UpdatedAt, &info.Completion, &info.Checkpoints); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// PruneCheckpoints keeps the newest n checkpoints per session and deletes
// the rest. Returns the number deleted.
func (s *Store) PruneCheckpoints(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be at least 1")
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM checkpoints
		WHERE id NOT IN (
			SELECT id FROM checkpoints c2
			WHERE c2.session_id = checkpoints.session_id
			ORDER BY c2.id DESC
			LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning checkpoints: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
