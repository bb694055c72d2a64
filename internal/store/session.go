package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/meetscribe/meetscribe/internal/domain"
)

// CreateSession inserts a session if its id is absent.
// Uses ON CONFLICT(id) DO NOTHING so a duplicate insert is not an error;
// the returned inserted flag reports whether this call created the row.
//
// A session is always created LIVE. EndedAt and Reason are never written
// here; only EndSession sets them.
func (s *Store) CreateSession(ctx context.Context, sess domain.Session) (inserted bool, err error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, meeting_id, status, started_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sess.ID,
		sess.MeetingID,
		string(domain.SessionLive),
		formatTime(sess.StartedAt),
	)
	if err != nil {
		return false, fmt.Errorf("create session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create session: rows affected: %w", err)
	}
	return affected > 0, nil
}

// GetSession retrieves a session by id.
// Returns ErrNotFound if no session with that id exists.
func (s *Store) GetSession(ctx context.Context, id string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, meeting_id, status, started_at, ended_at, reason
		FROM sessions
		WHERE id = ?
	`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// EndSession transitions a session from LIVE to ENDED, recording the end
// time and reason. The WHERE status = 'LIVE' guard is the compare-and-swap
// that serializes racing end commands: exactly one caller observes
// ended=true, every other caller observes ended=false and must re-read the
// session to report the conflict.
//
// Returns ErrNotFound if no session with that id exists at all.
func (s *Store) EndSession(ctx context.Context, id string, endedAt time.Time, reason string) (ended bool, err error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET status = ?, ended_at = ?, reason = ?
		WHERE id = ? AND status = ?
	`,
		string(domain.SessionEnded),
		formatTime(endedAt),
		reason,
		id,
		string(domain.SessionLive),
	)
	if err != nil {
		return false, fmt.Errorf("end session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("end session: rows affected: %w", err)
	}
	if affected > 0 {
		return true, nil
	}

	// Nothing transitioned: either the session is already ENDED or it
	// does not exist. Distinguish the two for the caller.
	var count int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE id = ?`, id,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("end session: check existence: %w", err)
	}
	if count == 0 {
		return false, ErrNotFound
	}
	return false, nil
}

// scanSession reads one session row.
func scanSession(row *sql.Row) (domain.Session, error) {
	var sess domain.Session
	var status, startedAt string
	var endedAt, reason sql.NullString

	if err := row.Scan(&sess.ID, &sess.MeetingID, &status, &startedAt, &endedAt, &reason); err != nil {
		return domain.Session{}, err
	}

	sess.Status = domain.SessionStatus(status)

	var err error
	if sess.StartedAt, err = parseTime(startedAt); err != nil {
		return domain.Session{}, err
	}
	if endedAt.Valid {
		t, err := parseTime(endedAt.String)
		if err != nil {
			return domain.Session{}, err
		}
		sess.EndedAt = &t
	}
	if reason.Valid {
		sess.Reason = reason.String
	}
	return sess, nil
}
