package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meetscribe/meetscribe/internal/domain"
)

// ErrNotFound is returned by single-row reads when no row matches.
var ErrNotFound = errors.New("not found")

// UpsertMeeting creates the meeting if its id is new, otherwise overwrites
// the metadata fields in place. Meetings carry no lifecycle state, so a
// repeated start command is a plain metadata refresh.
func (s *Store) UpsertMeeting(ctx context.Context, m domain.Meeting) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meetings (id, title, room_name, organizer_id, organizer_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			room_name = excluded.room_name,
			organizer_id = excluded.organizer_id,
			organizer_name = excluded.organizer_name,
			created_at = excluded.created_at
	`,
		m.ID,
		m.Title,
		m.RoomName,
		m.Organizer.ID,
		m.Organizer.Name,
		formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert meeting: %w", err)
	}
	return nil
}

// GetMeeting retrieves a meeting by id.
// Returns ErrNotFound if no meeting with that id exists.
func (s *Store) GetMeeting(ctx context.Context, id string) (domain.Meeting, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, room_name, organizer_id, organizer_name, created_at
		FROM meetings
		WHERE id = ?
	`, id)

	var m domain.Meeting
	var createdAt string
	err := row.Scan(&m.ID, &m.Title, &m.RoomName, &m.Organizer.ID, &m.Organizer.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Meeting{}, ErrNotFound
	}
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("get meeting: %w", err)
	}

	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Meeting{}, fmt.Errorf("get meeting: %w", err)
	}
	return m, nil
}

// MeetingExists reports whether a meeting with the given id exists.
func (s *Store) MeetingExists(ctx context.Context, id string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM meetings WHERE id = ?`, id,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check meeting: %w", err)
	}
	return count > 0, nil
}
