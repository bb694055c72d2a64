package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/meetscribe/meetscribe/internal/domain"
)

// CreateTranscript inserts a transcript chunk if absent.
// Uses ON CONFLICT DO NOTHING so a duplicate insert is not an error; the
// returned inserted flag reports whether this call created the row.
//
// Two unique constraints can suppress the insert:
//  1. transcripts(id) - the same chunk delivered twice
//  2. transcripts(meeting_id, session_id, sequence_number) - a different
//     chunk already holds this sequence slot
//
// The store does not distinguish the two; the coordinator re-reads by id
// to decide between idempotent replay and a genuine sequence conflict.
func (s *Store) CreateTranscript(ctx context.Context, t domain.Transcript) (inserted bool, err error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO transcripts
		(id, meeting_id, session_id, sequence_number, speaker_id, speaker_name,
		 content, language, start_offset_ns, end_offset_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		t.ID,
		t.MeetingID,
		t.SessionID,
		t.SequenceNumber,
		t.Speaker.ID,
		t.Speaker.Name,
		t.Content,
		t.Language,
		t.StartOffset.Nanoseconds(),
		t.EndOffset.Nanoseconds(),
	)
	if err != nil {
		return false, fmt.Errorf("create transcript: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create transcript: rows affected: %w", err)
	}
	return affected > 0, nil
}

// GetTranscript retrieves a transcript chunk by id.
// Returns ErrNotFound if no transcript with that id exists.
func (s *Store) GetTranscript(ctx context.Context, id string) (domain.Transcript, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, meeting_id, session_id, sequence_number, speaker_id, speaker_name,
		       content, language, start_offset_ns, end_offset_ns
		FROM transcripts
		WHERE id = ?
	`, id)

	t, err := scanTranscript(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Transcript{}, ErrNotFound
	}
	if err != nil {
		return domain.Transcript{}, fmt.Errorf("get transcript: %w", err)
	}
	return t, nil
}

// ListTranscripts returns all transcript chunks for a (meeting, session)
// pair ordered by ascending sequence number, with the transcript id as a
// deterministic tie-break.
//
// Returns an empty slice (not nil) when no chunks exist yet.
func (s *Store) ListTranscripts(ctx context.Context, meetingID, sessionID string) ([]domain.Transcript, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, meeting_id, session_id, sequence_number, speaker_id, speaker_name,
		       content, language, start_offset_ns, end_offset_ns
		FROM transcripts
		WHERE meeting_id = ? AND session_id = ?
		ORDER BY sequence_number ASC, id COLLATE BINARY ASC
	`, meetingID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	var transcripts []domain.Transcript
	for rows.Next() {
		t, err := scanTranscript(rows)
		if err != nil {
			return nil, fmt.Errorf("list transcripts: %w", err)
		}
		transcripts = append(transcripts, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcripts: %w", err)
	}

	if transcripts == nil {
		transcripts = []domain.Transcript{}
	}
	return transcripts, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTranscript(row rowScanner) (domain.Transcript, error) {
	var t domain.Transcript
	var startNS, endNS int64

	err := row.Scan(
		&t.ID,
		&t.MeetingID,
		&t.SessionID,
		&t.SequenceNumber,
		&t.Speaker.ID,
		&t.Speaker.Name,
		&t.Content,
		&t.Language,
		&startNS,
		&endNS,
	)
	if err != nil {
		return domain.Transcript{}, err
	}

	t.StartOffset = time.Duration(startNS)
	t.EndOffset = time.Duration(endNS)
	return t, nil
}
