// Package recorder stores standard actions in SQLite so navigation sessions
// can be inspected and replayed later.
package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BrandonKowalski/navstack/pkg/navstack/action"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const (
	createTableStmt = `
CREATE TABLE IF NOT EXISTS actions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session TEXT NOT NULL,
    recorded_at TEXT NOT NULL,
    type TEXT NOT NULL,
    payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_actions_session ON actions(session, id);`
	insertStmt   = `INSERT INTO actions(session, recorded_at, type, payload) VALUES(?, ?, ?, ?)`
	loadStmt     = `SELECT type, payload FROM actions WHERE session = ? ORDER BY id`
	sessionsStmt = `
SELECT session, COUNT(*), MIN(recorded_at), MAX(recorded_at)
FROM actions GROUP BY session ORDER BY MIN(id)`
)

// Session summarizes one recorded session.
type Session struct {
	ID      string
	Actions int
	Started time.Time
	Ended   time.Time
}

// Recorder persists standard actions into a SQLite database.
type Recorder struct {
	db     *sql.DB
	insert *sql.Stmt
	now    func() time.Time
}

// New opens (and if needed creates) the SQLite file at path.
func New(path string) (*Recorder, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("recording path cannot be empty")
	}
	if dir := filepath.Dir(p); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create recording directory")
		}
	}
	db, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, errors.Wrap(err, "open recording database")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, createTableStmt); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ensure actions table")
	}
	stmt, err := db.PrepareContext(ctx, insertStmt)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "prepare insert statement")
	}
	return &Recorder{db: db, insert: stmt, now: time.Now}, nil
}

// NewSession returns a fresh session identifier.
func (r *Recorder) NewSession() string {
	return uuid.NewString()
}

// Record appends sa to the session.
func (r *Recorder) Record(ctx context.Context, session string, sa action.StandardAction) error {
	if session == "" {
		return errors.New("session cannot be empty")
	}
	payload, err := json.Marshal(sa)
	if err != nil {
		return errors.Wrapf(err, "encode %s action", sa.Type)
	}
	recordedAt := r.now().UTC().Format(time.RFC3339Nano)
	if _, err := r.insert.ExecContext(ctx, session, recordedAt, sa.Type, string(payload)); err != nil {
		return errors.Wrap(err, "insert action")
	}
	return nil
}

// Load returns the session's actions in recording order.
func (r *Recorder) Load(ctx context.Context, session string) ([]action.StandardAction, error) {
	rows, err := r.db.QueryContext(ctx, loadStmt, session)
	if err != nil {
		return nil, errors.Wrap(err, "query actions")
	}
	defer rows.Close()

	var out []action.StandardAction
	for rows.Next() {
		var typ, payload string
		if err := rows.Scan(&typ, &payload); err != nil {
			return nil, errors.Wrap(err, "scan action")
		}
		var sa action.StandardAction
		if err := json.Unmarshal([]byte(payload), &sa); err != nil {
			return nil, errors.Wrapf(err, "decode stored %s action", typ)
		}
		out = append(out, sa)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate actions")
	}
	return out, nil
}

// Sessions lists recorded sessions, oldest first.
func (r *Recorder) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx, sessionsStmt)
	if err != nil {
		return nil, errors.Wrap(err, "query sessions")
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var started, ended string
		if err := rows.Scan(&s.ID, &s.Actions, &started, &ended); err != nil {
			return nil, errors.Wrap(err, "scan session")
		}
		s.Started, _ = time.Parse(time.RFC3339Nano, started)
		s.Ended, _ = time.Parse(time.RFC3339Nano, ended)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close releases database resources.
func (r *Recorder) Close() error {
	var errs []error
	if r.insert != nil {
		errs = append(errs, r.insert.Close())
	}
	if r.db != nil {
		errs = append(errs, r.db.Close())
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
