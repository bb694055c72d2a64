package lifecycle

import "time"

// StartMeetingCommand establishes that a meeting is live under a session.
// All identity fields are opaque unique tokens assigned by the caller.
type StartMeetingCommand struct {
	MeetingID     string
	SessionID     string
	Title         string
	RoomName      string
	OrganizerID   string
	OrganizerName string
	CreatedAt     time.Time
	StartedAt     time.Time
}

// AddTranscriptCommand records one ordered chunk of transcript for a session.
// Offsets are durations relative to recording start.
type AddTranscriptCommand struct {
	MeetingID      string
	SessionID      string
	TranscriptID   string
	SequenceNumber int
	SpeakerID      string
	SpeakerName    string
	Content        string
	StartOffset    time.Duration
	EndOffset      time.Duration
	Language       string
}

// EndMeetingCommand terminates a live session exactly once.
type EndMeetingCommand struct {
	MeetingID string
	SessionID string
	EndedAt   time.Time
	Reason    string
}
