package command

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/meetscribe/meetscribe/internal/lifecycle"
)

// Event types carried in the webhook envelope's "event" field.
const (
	EventMeetingStarted    = "meeting.started"
	EventMeetingTranscript = "meeting.transcript"
	EventMeetingEnded      = "meeting.ended"
)

// Command is a validated webhook notification, ready to apply against the
// lifecycle coordinator.
type Command interface {
	// Apply executes the command against the coordinator.
	Apply(ctx context.Context, c *lifecycle.Coordinator) error
}

// StartMeeting wraps a validated start command.
type StartMeeting struct {
	lifecycle.StartMeetingCommand
}

// Apply implements Command.
func (s StartMeeting) Apply(ctx context.Context, c *lifecycle.Coordinator) error {
	return c.StartMeeting(ctx, s.StartMeetingCommand)
}

// AddTranscript wraps a validated transcript command.
type AddTranscript struct {
	lifecycle.AddTranscriptCommand
}

// Apply implements Command.
func (a AddTranscript) Apply(ctx context.Context, c *lifecycle.Coordinator) error {
	return c.AddTranscript(ctx, a.AddTranscriptCommand)
}

// EndMeeting wraps a validated end command.
type EndMeeting struct {
	lifecycle.EndMeetingCommand
}

// Apply implements Command.
func (e EndMeeting) Apply(ctx context.Context, c *lifecycle.Coordinator) error {
	return c.EndMeeting(ctx, e.EndMeetingCommand)
}

// envelope extracts the event discriminator before full decoding.
type envelope struct {
	Event string `json:"event"`
}

// Wire DTOs. Field names match the upstream webhook contract.

type organizerDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type startedPayload struct {
	Event   string `json:"event"`
	Meeting struct {
		ID          string       `json:"id"`
		SessionID   string       `json:"sessionId"`
		Title       string       `json:"title"`
		RoomName    string       `json:"roomName"`
		Status      string       `json:"status"`
		CreatedAt   string       `json:"createdAt"`
		StartedAt   string       `json:"startedAt"`
		OrganizedBy organizerDTO `json:"organizedBy"`
	} `json:"meeting"`
}

type transcriptPayload struct {
	Event   string `json:"event"`
	Meeting struct {
		ID        string `json:"id"`
		SessionID string `json:"sessionId"`
	} `json:"meeting"`
	Data struct {
		TranscriptID   string       `json:"transcriptId"`
		SequenceNumber int          `json:"sequenceNumber"`
		Speaker        organizerDTO `json:"speaker"`
		Content        string       `json:"content"`
		StartOffset    float64      `json:"startOffset"`
		EndOffset      float64      `json:"endOffset"`
		Language       string       `json:"language"`
	} `json:"data"`
}

type endedPayload struct {
	Event   string `json:"event"`
	Reason  string `json:"reason"`
	Meeting struct {
		ID        string `json:"id"`
		SessionID string `json:"sessionId"`
		EndedAt   string `json:"endedAt"`
	} `json:"meeting"`
}

// Decode turns a raw webhook payload into a typed, validated Command.
// All failures are lifecycle validation errors: the payload either names an
// unknown event type, fails its CUE schema, or carries fields that do not
// parse as the types the schema cannot express (UUIDs, instants, BCP 47
// language tags).
func Decode(raw []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, lifecycle.NewValidationError(fmt.Sprintf("malformed payload: %v", err))
	}
	if env.Event == "" {
		return nil, lifecycle.NewValidationError("missing required field: event")
	}

	s, err := loadSchemas()
	if err != nil {
		return nil, err
	}

	switch env.Event {
	case EventMeetingStarted:
		if err := s.validatePayload(s.started, raw); err != nil {
			return nil, err
		}
		return decodeStarted(raw)
	case EventMeetingTranscript:
		if err := s.validatePayload(s.transcript, raw); err != nil {
			return nil, err
		}
		return decodeTranscript(raw)
	case EventMeetingEnded:
		if err := s.validatePayload(s.ended, raw); err != nil {
			return nil, err
		}
		return decodeEnded(raw)
	default:
		return nil, lifecycle.NewValidationError(fmt.Sprintf("unknown event type: %s", env.Event))
	}
}

func decodeStarted(raw []byte) (Command, error) {
	var p startedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, lifecycle.NewValidationError(fmt.Sprintf("decode %s: %v", EventMeetingStarted, err))
	}

	meetingID, err := parseID("meeting.id", p.Meeting.ID)
	if err != nil {
		return nil, err
	}
	sessionID, err := parseID("meeting.sessionId", p.Meeting.SessionID)
	if err != nil {
		return nil, err
	}
	organizerID, err := parseID("meeting.organizedBy.id", p.Meeting.OrganizedBy.ID)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseInstant("meeting.createdAt", p.Meeting.CreatedAt)
	if err != nil {
		return nil, err
	}
	startedAt, err := parseInstant("meeting.startedAt", p.Meeting.StartedAt)
	if err != nil {
		return nil, err
	}

	return StartMeeting{lifecycle.StartMeetingCommand{
		MeetingID:     meetingID,
		SessionID:     sessionID,
		Title:         p.Meeting.Title,
		RoomName:      p.Meeting.RoomName,
		OrganizerID:   organizerID,
		OrganizerName: p.Meeting.OrganizedBy.Name,
		CreatedAt:     createdAt,
		StartedAt:     startedAt,
	}}, nil
}

func decodeTranscript(raw []byte) (Command, error) {
	var p transcriptPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, lifecycle.NewValidationError(fmt.Sprintf("decode %s: %v", EventMeetingTranscript, err))
	}

	meetingID, err := parseID("meeting.id", p.Meeting.ID)
	if err != nil {
		return nil, err
	}
	sessionID, err := parseID("meeting.sessionId", p.Meeting.SessionID)
	if err != nil {
		return nil, err
	}
	transcriptID, err := parseID("data.transcriptId", p.Data.TranscriptID)
	if err != nil {
		return nil, err
	}
	speakerID, err := parseID("data.speaker.id", p.Data.Speaker.ID)
	if err != nil {
		return nil, err
	}
	lang, err := parseLanguage(p.Data.Language)
	if err != nil {
		return nil, err
	}
	if p.Data.EndOffset < p.Data.StartOffset {
		return nil, lifecycle.NewValidationError("data.endOffset precedes data.startOffset")
	}

	return AddTranscript{lifecycle.AddTranscriptCommand{
		MeetingID:      meetingID,
		SessionID:      sessionID,
		TranscriptID:   transcriptID,
		SequenceNumber: p.Data.SequenceNumber,
		SpeakerID:      speakerID,
		SpeakerName:    p.Data.Speaker.Name,
		Content:        p.Data.Content,
		StartOffset:    secondsToDuration(p.Data.StartOffset),
		EndOffset:      secondsToDuration(p.Data.EndOffset),
		Language:       lang,
	}}, nil
}

func decodeEnded(raw []byte) (Command, error) {
	var p endedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, lifecycle.NewValidationError(fmt.Sprintf("decode %s: %v", EventMeetingEnded, err))
	}

	meetingID, err := parseID("meeting.id", p.Meeting.ID)
	if err != nil {
		return nil, err
	}
	sessionID, err := parseID("meeting.sessionId", p.Meeting.SessionID)
	if err != nil {
		return nil, err
	}
	endedAt, err := parseInstant("meeting.endedAt", p.Meeting.EndedAt)
	if err != nil {
		return nil, err
	}

	return EndMeeting{lifecycle.EndMeetingCommand{
		MeetingID: meetingID,
		SessionID: sessionID,
		EndedAt:   endedAt,
		Reason:    p.Reason,
	}}, nil
}

// parseID validates an identity token as a UUID and returns its canonical
// hyphenated form.
func parseID(field, value string) (string, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return "", lifecycle.NewValidationError(fmt.Sprintf("%s is not a valid UUID: %q", field, value))
	}
	return id.String(), nil
}

// parseInstant validates an RFC 3339 timestamp.
func parseInstant(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, lifecycle.NewValidationError(fmt.Sprintf("%s is not a valid RFC 3339 instant: %q", field, value))
	}
	return t, nil
}

// parseLanguage validates a BCP 47 language tag and returns its canonical
// form. An empty tag is allowed: not every transcription backend reports
// language.
func parseLanguage(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", lifecycle.NewValidationError(fmt.Sprintf("data.language is not a valid BCP 47 tag: %q", value))
	}
	return tag.String(), nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
