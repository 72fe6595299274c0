// internal/history/store.go
//
// Session history backed by SQLite.
// Records which machines a player switched on and how many keys they pressed.
// Rotor positions are never stored: a session cannot be resumed from history,
// only listed.
//
// Keystroke totals on the users row only move together with a session row the
// user owns, so /stats/me always agrees with /machines/mine.

package history

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrNoOwner is returned when neither a user nor a guest cookie is given.
	ErrNoOwner = errors.New("history: session has no owner")
	// ErrUnknownSession is returned when the owner has no session with that ID.
	ErrUnknownSession = errors.New("history: no such session for owner")
)

// Owner identifies who a session belongs to: a signed-in user or an
// anonymous cookie holder.
type Owner struct {
	UserID string
	AnonID string
}

func (o Owner) clause() (string, any, error) {
	switch {
	case o.UserID != "":
		return `user_id=?`, o.UserID, nil
	case o.AnonID != "":
		return `anonymous_id=?`, o.AnonID, nil
	}
	return "", nil, ErrNoOwner
}

// Entry is one row of a player's session list.
type Entry struct {
	ID         string `json:"id"`
	StartedAt  string `json:"startedAt"`
	EndedAt    string `json:"endedAt,omitempty"`
	Keystrokes int    `json:"keystrokes"`
}

// Store reads and writes the sessions table.
type Store struct{ db *sql.DB }

// NewStore wraps an opened, migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Start records a new session and bumps the owner's machine counter.
func (s *Store) Start(ctx context.Context, o Owner, id string, now time.Time) error {
	if o.UserID == "" && o.AnonID == "" {
		return ErrNoOwner
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var userID, anonID any
	if o.UserID != "" {
		userID = o.UserID
	} else {
		anonID = o.AnonID
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, anonymous_id, started_at) VALUES (?,?,?,?)`,
		id, userID, anonID, now.UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}
	if o.UserID != "" {
		if _, err := tx.ExecContext(ctx, `UPDATE users SET machines = machines + 1 WHERE id=?`, o.UserID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AddKeystrokes adds n pressed keys to the session and to the owner's total.
// If o does not own session id nothing is written and ErrUnknownSession is
// returned.
func (s *Store) AddKeystrokes(ctx context.Context, o Owner, id string, n int) error {
	where, arg, err := o.clause()
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET keystrokes = keystrokes + ? WHERE id=? AND `+where, n, id, arg,
	)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err != nil {
		return err
	} else if rows != 1 {
		return ErrUnknownSession
	}
	if o.UserID != "" {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET keystrokes = keystrokes + ? WHERE id=?`, n, o.UserID,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// End marks the session as switched off.
func (s *Store) End(ctx context.Context, o Owner, id string, now time.Time) error {
	where, arg, err := o.clause()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at=? WHERE id=? AND ended_at IS NULL AND `+where,
		now.UTC().Format(time.RFC3339), id, arg,
	)
	return err
}

// Claim transfers anonymous sessions to a user account after sign-in.
func (s *Store) Claim(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var machines, keystrokes int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(SUM(keystrokes), 0) FROM sessions WHERE anonymous_id=?`, anonID,
	).Scan(&machines, &keystrokes); err != nil {
		return err
	}
	if machines == 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE sessions SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET machines = machines + ?, keystrokes = keystrokes + ? WHERE id=?`,
		machines, keystrokes, userID,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns the user's most recent sessions, newest first.
// Default limit is 50 if not specified.
func (s *Store) List(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, started_at, COALESCE(ended_at, ''), keystrokes
        FROM sessions
        WHERE user_id=?
        ORDER BY started_at DESC, rowid DESC
        LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.StartedAt, &e.EndedAt, &e.Keystrokes); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
