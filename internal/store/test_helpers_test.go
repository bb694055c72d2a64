package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/meetscribe/meetscribe/internal/domain"
)

// createTestStore creates a store backed by a temp-dir database.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testInstant is a fixed reference time for fixtures.
var testInstant = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

// createTestMeeting creates a meeting fixture with the given id.
func createTestMeeting(id string) domain.Meeting {
	return domain.Meeting{
		ID:        id,
		Title:     "Quarterly Planning",
		RoomName:  "boardroom-1",
		Organizer: domain.Organizer{ID: "org-1", Name: "Dana"},
		CreatedAt: testInstant,
	}
}

// createTestSession creates a session fixture owned by meetingID.
func createTestSession(id, meetingID string) domain.Session {
	return domain.Session{
		ID:        id,
		MeetingID: meetingID,
		Status:    domain.SessionLive,
		StartedAt: testInstant.Add(5 * time.Minute),
	}
}

// createTestTranscript creates a transcript fixture with the given
// identity and sequence number.
func createTestTranscript(id, meetingID, sessionID string, seq int) domain.Transcript {
	return domain.Transcript{
		ID:             id,
		MeetingID:      meetingID,
		SessionID:      sessionID,
		SequenceNumber: seq,
		Speaker:        domain.Speaker{ID: "spk-1", Name: "Ada"},
		Content:        "hello there",
		Language:       "en",
		StartOffset:    2 * time.Second,
		EndOffset:      4 * time.Second,
	}
}
