// Package journal records drop attempts in a SQLite database.
//
// The journal is an audit trail of what a user tried to do; list contents are
// never restored from it. By default it lives in memory for the lifetime of
// the process. A file path keeps the trail across runs, grouped by session.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"dragcart/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// MemoryPath selects an in-memory journal.
const MemoryPath = ":memory:"

type Entry struct {
	Seq       int64  `json:"seq"`
	SessionID string `json:"sessionId"`
	model.Transfer
}

type Stats struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

type Session struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"startedAt"`
	Attempts  int       `json:"attempts"`
}

type Journal struct {
	db        *sql.DB
	path      string
	sessionID string
	startedAt time.Time

	mu      sync.Mutex
	started bool
}

// Open opens (creating if needed) the journal at path with a new session id.
// The session row is written on the first Record, so a journal opened only
// for reading leaves the file untouched. An empty path or MemoryPath yields
// an in-memory journal.
func Open(ctx context.Context, path string) (*Journal, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = MemoryPath
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("journal dir: %w", err)
		}
	}

	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// One connection: an in-memory database is per-connection, and journal
	// writes arrive from background commands.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
	}
	if path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL;")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("journal pragma: %w", err)
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}

	return &Journal{db: db, path: path, sessionID: uuid.NewString(), startedAt: time.Now()}, nil
}

func (j *Journal) startSession(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.started {
		return nil
	}
	if _, err := j.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions(session_id, started_at_unixms) VALUES(?, ?)`,
		j.sessionID, j.startedAt.UnixMilli(),
	); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	j.started = true
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			started_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS transfers (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(session_id),
			item TEXT NOT NULL,
			from_collection TEXT NOT NULL,
			to_collection TEXT NOT NULL,
			accepted INTEGER NOT NULL,
			reason TEXT NOT NULL,
			at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_transfers_session ON transfers(session_id, seq);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) SessionID() string { return j.sessionID }
func (j *Journal) Path() string      { return j.path }

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends one drop attempt to the current session.
func (j *Journal) Record(ctx context.Context, tr model.Transfer) error {
	if j == nil {
		return errors.New("journal not open")
	}
	if err := j.startSession(ctx); err != nil {
		return err
	}
	at := tr.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO transfers(session_id, item, from_collection, to_collection, accepted, reason, at_unixms)
		 VALUES(?, ?, ?, ?, ?, ?, ?)`,
		j.sessionID, string(tr.Item), string(tr.From), string(tr.To), boolInt(tr.Accepted), string(tr.Reason), at.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record transfer: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. With allSessions false
// only the current session is considered.
func (j *Journal) Recent(ctx context.Context, limit int, allSessions bool) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `SELECT seq, session_id, item, from_collection, to_collection, accepted, reason, at_unixms
	      FROM transfers`
	args := []any{}
	if !allSessions {
		q += ` WHERE session_id = ?`
		args = append(args, j.sessionID)
	}
	q += ` ORDER BY seq DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			e            Entry
			item, from   string
			to, reason   string
			accepted, at int64
		)
		if err := rows.Scan(&e.Seq, &e.SessionID, &item, &from, &to, &accepted, &reason, &at); err != nil {
			return nil, err
		}
		e.Item = model.Item(item)
		e.From = model.CollectionID(from)
		e.To = model.CollectionID(to)
		e.Accepted = accepted != 0
		e.Reason = model.TransferReason(reason)
		e.At = time.UnixMilli(at).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// Stats counts accepted and rejected drops in the current session.
func (j *Journal) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := j.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(accepted), 0), COALESCE(SUM(1 - accepted), 0)
		 FROM transfers WHERE session_id = ?`, j.sessionID,
	).Scan(&st.Accepted, &st.Rejected)
	if err != nil {
		return Stats{}, fmt.Errorf("journal stats: %w", err)
	}
	return st, nil
}

// TotalStats counts accepted and rejected drops across all sessions.
func (j *Journal) TotalStats(ctx context.Context) (Stats, error) {
	var st Stats
	err := j.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(accepted), 0), COALESCE(SUM(1 - accepted), 0) FROM transfers`,
	).Scan(&st.Accepted, &st.Rejected)
	if err != nil {
		return Stats{}, fmt.Errorf("journal stats: %w", err)
	}
	return st, nil
}

// Sessions lists every session that recorded at least one attempt, newest
// first.
func (j *Journal) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT s.session_id, s.started_at_unixms, COUNT(t.seq)
		FROM sessions s LEFT JOIN transfers t ON t.session_id = s.session_id
		GROUP BY s.session_id, s.started_at_unixms
		ORDER BY s.started_at_unixms DESC, s.session_id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := []Session{}
	for rows.Next() {
		var (
			s  Session
			at int64
		)
		if err := rows.Scan(&s.ID, &at, &s.Attempts); err != nil {
			return nil, err
		}
		s.StartedAt = time.UnixMilli(at).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
