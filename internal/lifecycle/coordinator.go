package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/meetscribe/meetscribe/internal/domain"
	"github.com/meetscribe/meetscribe/internal/logging"
	"github.com/meetscribe/meetscribe/internal/store"
)

// Coordinator owns the write path to meetings, sessions, and transcripts.
// It is the only component allowed to mutate them.
//
// Safe for concurrent use: correctness under duplicate and racing delivery
// comes from the store's per-key atomic primitives, not from locks here.
type Coordinator struct {
	store *store.Store
	log   logging.Logger
}

// New creates a Coordinator backed by the given store.
// A nil logger is replaced with a no-op logger.
func New(st *store.Store, log logging.Logger) *Coordinator {
	if log == nil {
		log = logging.Nop()
	}
	return &Coordinator{store: st, log: log}
}

// StartMeeting establishes that a meeting is live under the given session.
//
// Replaying a start for a LIVE session refreshes the meeting metadata and
// succeeds without creating a second session. A start naming an ENDED
// session id fails with SESSION_ENDED: session identity is never reused.
func (c *Coordinator) StartMeeting(ctx context.Context, cmd StartMeetingCommand) error {
	sess, err := c.store.GetSession(ctx, cmd.SessionID)
	switch {
	case err == nil:
		if sess.Ended() {
			return NewSessionEnded(cmd.SessionID, "cannot start a session that has already ended")
		}
		// Duplicate/replay of the same start. Refresh metadata only.
		if err := c.store.UpsertMeeting(ctx, meetingFromStart(cmd)); err != nil {
			return fmt.Errorf("refresh meeting metadata: %w", err)
		}
		c.log.Debug("start replayed for live session",
			logging.String("meeting_id", cmd.MeetingID),
			logging.String("session_id", cmd.SessionID),
		)
		return nil

	case errors.Is(err, store.ErrNotFound):
		// New session. Upsert the meeting first so the session's foreign
		// key has a target, then create the session LIVE.
		if err := c.store.UpsertMeeting(ctx, meetingFromStart(cmd)); err != nil {
			return fmt.Errorf("upsert meeting: %w", err)
		}

		inserted, err := c.store.CreateSession(ctx, domain.Session{
			ID:        cmd.SessionID,
			MeetingID: cmd.MeetingID,
			Status:    domain.SessionLive,
			StartedAt: cmd.StartedAt,
		})
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		if !inserted {
			// A concurrent duplicate start won the insert race. Re-read to
			// decide whether this replay is harmless or names a session
			// that ended in the meantime.
			existing, err := c.store.GetSession(ctx, cmd.SessionID)
			if err != nil {
				return fmt.Errorf("re-read session after insert race: %w", err)
			}
			if existing.Ended() {
				return NewSessionEnded(cmd.SessionID, "cannot start a session that has already ended")
			}
		}
		c.log.Info("session started",
			logging.String("meeting_id", cmd.MeetingID),
			logging.String("session_id", cmd.SessionID),
		)
		return nil

	default:
		return fmt.Errorf("look up session: %w", err)
	}
}

// AddTranscript records one transcript chunk for a session.
//
// Redelivery of a known transcript id is a no-op success; contents are not
// compared or overwritten. Chunks for an ENDED session are accepted (late
// delivery). A sequence slot held by a different transcript id is a
// SEQUENCE_CONFLICT.
func (c *Coordinator) AddTranscript(ctx context.Context, cmd AddTranscriptCommand) error {
	sess, err := c.resolveSession(ctx, cmd.MeetingID, cmd.SessionID)
	if err != nil {
		return err
	}

	if sess.Ended() {
		// Accepted anyway: transcript delivery may lag session termination.
		c.log.Warn("late transcript delivery for ended session",
			logging.String("meeting_id", cmd.MeetingID),
			logging.String("session_id", cmd.SessionID),
			logging.String("transcript_id", cmd.TranscriptID),
			logging.Int("sequence_number", cmd.SequenceNumber),
		)
	}

	if _, err := c.store.GetTranscript(ctx, cmd.TranscriptID); err == nil {
		c.log.Debug("transcript replayed",
			logging.String("transcript_id", cmd.TranscriptID),
			logging.String("session_id", cmd.SessionID),
		)
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("look up transcript: %w", err)
	}

	inserted, err := c.store.CreateTranscript(ctx, domain.Transcript{
		ID:             cmd.TranscriptID,
		MeetingID:      cmd.MeetingID,
		SessionID:      cmd.SessionID,
		SequenceNumber: cmd.SequenceNumber,
		Speaker:        domain.Speaker{ID: cmd.SpeakerID, Name: cmd.SpeakerName},
		Content:        cmd.Content,
		Language:       cmd.Language,
		StartOffset:    cmd.StartOffset,
		EndOffset:      cmd.EndOffset,
	})
	if err != nil {
		return fmt.Errorf("create transcript: %w", err)
	}
	if inserted {
		c.log.Debug("transcript recorded",
			logging.String("transcript_id", cmd.TranscriptID),
			logging.String("session_id", cmd.SessionID),
			logging.Int("sequence_number", cmd.SequenceNumber),
		)
		return nil
	}

	// The insert was suppressed by a unique constraint. If this transcript
	// id now exists, a concurrent duplicate raced ahead of the check above
	// and the chunk is already recorded - idempotent success. If the id is
	// absent, the sequence slot belongs to a different transcript.
	if _, err := c.store.GetTranscript(ctx, cmd.TranscriptID); err == nil {
		c.log.Debug("transcript replayed (concurrent duplicate)",
			logging.String("transcript_id", cmd.TranscriptID),
			logging.String("session_id", cmd.SessionID),
		)
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("re-read transcript after insert conflict: %w", err)
	}

	return NewSequenceConflict(cmd.MeetingID, cmd.SessionID, cmd.SequenceNumber)
}

// EndMeeting terminates a live session exactly once.
//
// Ending is not idempotent: a second end notification may carry a different
// reason or time, so it fails with SESSION_ENDED instead of being discarded.
func (c *Coordinator) EndMeeting(ctx context.Context, cmd EndMeetingCommand) error {
	sess, err := c.resolveSession(ctx, cmd.MeetingID, cmd.SessionID)
	if err != nil {
		return err
	}
	if sess.Ended() {
		return NewSessionEnded(cmd.SessionID, "session already ended")
	}

	ended, err := c.store.EndSession(ctx, cmd.SessionID, cmd.EndedAt, cmd.Reason)
	if errors.Is(err, store.ErrNotFound) {
		return NewSessionNotFound(cmd.MeetingID, cmd.SessionID)
	}
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if !ended {
		// Lost the compare-and-swap to a concurrent end.
		return NewSessionEnded(cmd.SessionID, "session already ended")
	}

	c.log.Info("session ended",
		logging.String("meeting_id", cmd.MeetingID),
		logging.String("session_id", cmd.SessionID),
		logging.String("reason", cmd.Reason),
	)
	return nil
}

// ListTranscripts returns all transcripts for a (meeting, session) pair
// ordered by ascending sequence number. Returns an empty slice, not an
// error, when none exist yet.
func (c *Coordinator) ListTranscripts(ctx context.Context, meetingID, sessionID string) ([]domain.Transcript, error) {
	if _, err := c.resolveSession(ctx, meetingID, sessionID); err != nil {
		return nil, err
	}
	return c.store.ListTranscripts(ctx, meetingID, sessionID)
}

// resolveSession validates meeting existence, session existence, and session
// ownership. An ownership mismatch is reported as session-not-found: from
// the caller's view the requested (meeting, session) pair does not exist.
func (c *Coordinator) resolveSession(ctx context.Context, meetingID, sessionID string) (domain.Session, error) {
	exists, err := c.store.MeetingExists(ctx, meetingID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("look up meeting: %w", err)
	}
	if !exists {
		return domain.Session{}, NewMeetingNotFound(meetingID)
	}

	sess, err := c.store.GetSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, NewSessionNotFound(meetingID, sessionID)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("look up session: %w", err)
	}
	if sess.MeetingID != meetingID {
		return domain.Session{}, NewSessionNotFound(meetingID, sessionID)
	}
	return sess, nil
}

func meetingFromStart(cmd StartMeetingCommand) domain.Meeting {
	return domain.Meeting{
		ID:        cmd.MeetingID,
		Title:     cmd.Title,
		RoomName:  cmd.RoomName,
		Organizer: domain.Organizer{ID: cmd.OrganizerID, Name: cmd.OrganizerName},
		CreatedAt: cmd.CreatedAt,
	}
}
