// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history archives finished workflow sessions in a SQLite database
// so earlier content can be listed and recovered after the state file has
// been overwritten or cleared.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/content-workflow/pkg/types"
)

// ErrNotFound is returned by Get when no session has the given ID.
var ErrNotFound = errors.New("session not found")

const defaultLimit = 20

// Store manages the session archive database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Entry summarizes one archived session.
type Entry struct {
	ID         string    `json:"id" yaml:"id"`
	Topic      string    `json:"topic" yaml:"topic"`
	ArchivedAt time.Time `json:"archived_at" yaml:"archived_at"`
	HasFinal   bool      `json:"has_final" yaml:"has_final"`
	Creatives  int       `json:"creatives" yaml:"creatives"`
}

// Session is an archived session with its full workflow record.
type Session struct {
	Entry
	Record types.WorkflowRecord `json:"record" yaml:"record"`
}

// ListOptions filters List results.
type ListOptions struct {
	// Topic matches sessions whose topic contains the text, case-insensitively.
	Topic string

	// Limit caps the number of entries. Zero uses 20.
	Limit int
}

// NewStore opens or creates the archive database at path, creating parent
// directories as needed.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			archived_at TEXT NOT NULL,
			has_final INTEGER NOT NULL,
			creatives INTEGER NOT NULL,
			state TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_archived_at ON sessions(archived_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Archive stores rec under sessionID. Archiving the same ID again replaces
// the earlier copy.
func (s *Store) Archive(ctx context.Context, sessionID, topic string, rec types.WorkflowRecord) error {
	if sessionID == "" {
		return errors.New("archiving session: empty session ID")
	}
	if topic == "" && rec.ResearchData != nil {
		topic = rec.ResearchData.Topic
	}

	state, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling session %s: %w", sessionID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, topic, archived_at, has_final, creatives, state)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			topic=excluded.topic, archived_at=excluded.archived_at,
			has_final=excluded.has_final, creatives=excluded.creatives, state=excluded.state`,
		sessionID, topic, s.now().UTC().Format(time.RFC3339Nano),
		rec.FinalContent != nil, len(rec.CreativeSuggestions), string(state),
	)
	if err != nil {
		return fmt.Errorf("archiving session %s: %w", sessionID, err)
	}
	return nil
}

// List returns archived sessions, most recent first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, topic, archived_at, has_final, creatives FROM sessions`)
	if opts.Topic != "" {
		qb.WriteString(` WHERE topic LIKE ?`)
		args = append(args, "%"+opts.Topic+"%")
	}
	qb.WriteString(` ORDER BY archived_at DESC, id DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			at string
		)
		if err := rows.Scan(&e.ID, &e.Topic, &at, &e.HasFinal, &e.Creatives); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		e.ArchivedAt, _ = time.Parse(time.RFC3339Nano, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the archived session with the given ID.
func (s *Store) Get(ctx context.Context, sessionID string) (Session, error) {
	var (
		sess  Session
		at    string
		state string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, topic, archived_at, has_final, creatives, state FROM sessions WHERE id = ?`, sessionID,
	).Scan(&sess.ID, &sess.Topic, &at, &sess.HasFinal, &sess.Creatives, &state)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session %s: %w", sessionID, err)
	}

	sess.ArchivedAt, _ = time.Parse(time.RFC3339Nano, at)
	if err := json.Unmarshal([]byte(state), &sess.Record); err != nil {
		return Session{}, fmt.Errorf("parsing session %s: %w", sessionID, err)
	}
	if sess.Record.CreativeSuggestions == nil {
		sess.Record.CreativeSuggestions = []types.CreativeRecord{}
	}
	return sess, nil
}
