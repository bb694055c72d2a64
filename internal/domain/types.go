package domain

import "time"

// SessionStatus is the lifecycle state of a recording session.
type SessionStatus string

const (
	// SessionLive means the session is recording; transcripts are expected.
	SessionLive SessionStatus = "LIVE"

	// SessionEnded is terminal. Late transcript chunks are still accepted
	// for ended sessions, but the session itself never transitions again.
	SessionEnded SessionStatus = "ENDED"
)

// Organizer identifies the person who organized a meeting.
type Organizer struct {
	ID   string
	Name string
}

// Meeting is a recorded event with fixed identity and mutable metadata.
//
// Meetings have no lifecycle state of their own: a repeated start command
// for a known meeting id refreshes the metadata in place. Meetings are
// never deleted by this service.
type Meeting struct {
	ID        string
	Title     string
	RoomName  string
	Organizer Organizer
	CreatedAt time.Time
}

// Session is one live/ended recording instance attached to a meeting.
// The session id doubles as the idempotency key for "start" delivery.
type Session struct {
	ID        string
	MeetingID string
	Status    SessionStatus
	StartedAt time.Time

	// EndedAt and Reason are set exactly once, when the session ends.
	// EndedAt is nil while the session is LIVE. Reason may be empty.
	EndedAt *time.Time
	Reason  string
}

// Ended reports whether the session has reached its terminal state.
func (s *Session) Ended() bool {
	return s.Status == SessionEnded
}

// Speaker identifies who spoke a transcript chunk.
type Speaker struct {
	ID   string
	Name string
}

// Transcript is one ordered unit of transcribed speech within a session.
// The transcript id is the idempotency key for chunk delivery.
//
// SequenceNumber is caller-assigned and intended to be strictly increasing
// per session, but gaps and out-of-order arrival are tolerated: ordering is
// applied at read time, never enforced at write time.
type Transcript struct {
	ID             string
	MeetingID      string
	SessionID      string
	SequenceNumber int
	Speaker        Speaker
	Content        string
	Language       string

	// Offsets are durations relative to the start of the recording,
	// not absolute instants.
	StartOffset time.Duration
	EndOffset   time.Duration
}
