package lifecycle

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes coordinator errors so the transport layer can map
// them to distinct response codes.
type ErrorCode string

const (
	// ErrCodeMeetingNotFound indicates the referenced meeting does not exist.
	ErrCodeMeetingNotFound ErrorCode = "MEETING_NOT_FOUND"

	// ErrCodeSessionNotFound indicates the referenced session does not exist,
	// or belongs to a different meeting than the one supplied. The two cases
	// are deliberately indistinguishable: from the caller's view the requested
	// (meeting, session) pair does not exist.
	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"

	// ErrCodeSessionEnded indicates an attempt to start a new session over an
	// ended session id, or to end an already-ended session.
	ErrCodeSessionEnded ErrorCode = "SESSION_ENDED"

	// ErrCodeSequenceConflict indicates a transcript insert lost its sequence
	// slot to a different transcript id.
	ErrCodeSequenceConflict ErrorCode = "SEQUENCE_CONFLICT"

	// ErrCodeValidation indicates a malformed or incomplete command. Raised
	// by the command source before a command reaches the coordinator.
	ErrCodeValidation ErrorCode = "VALIDATION"
)

// Error is a coordinator error with a stable code and identity context.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// MeetingID and SessionID identify the affected entities where known.
	MeetingID string
	SessionID string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.MeetingID != "" && e.SessionID != "" {
		return fmt.Sprintf("%s: %s (meeting=%s, session=%s)", e.Code, e.Message, e.MeetingID, e.SessionID)
	}
	if e.SessionID != "" {
		return fmt.Sprintf("%s: %s (session=%s)", e.Code, e.Message, e.SessionID)
	}
	if e.MeetingID != "" {
		return fmt.Sprintf("%s: %s (meeting=%s)", e.Code, e.Message, e.MeetingID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from an error, or "" if the error is not a
// lifecycle Error. Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}

// IsNotFound returns true for meeting-not-found and session-not-found errors.
func IsNotFound(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeMeetingNotFound || code == ErrCodeSessionNotFound
}

// IsConflict returns true for session-ended and sequence-conflict errors.
func IsConflict(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeSessionEnded || code == ErrCodeSequenceConflict
}

// IsValidation returns true for validation errors.
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

// NewMeetingNotFound creates an Error for an unknown meeting id.
func NewMeetingNotFound(meetingID string) *Error {
	return &Error{
		Code:      ErrCodeMeetingNotFound,
		Message:   "meeting not found",
		MeetingID: meetingID,
	}
}

// NewSessionNotFound creates an Error for an unknown (meeting, session) pair.
func NewSessionNotFound(meetingID, sessionID string) *Error {
	return &Error{
		Code:      ErrCodeSessionNotFound,
		Message:   "session not found",
		MeetingID: meetingID,
		SessionID: sessionID,
	}
}

// NewSessionEnded creates an Error for an operation against an ended session.
func NewSessionEnded(sessionID, message string) *Error {
	return &Error{
		Code:      ErrCodeSessionEnded,
		Message:   message,
		SessionID: sessionID,
	}
}

// NewSequenceConflict creates an Error for a transcript whose sequence slot
// is held by a different transcript id.
func NewSequenceConflict(meetingID, sessionID string, sequenceNumber int) *Error {
	return &Error{
		Code:      ErrCodeSequenceConflict,
		Message:   fmt.Sprintf("sequence number %d already recorded by a different transcript", sequenceNumber),
		MeetingID: meetingID,
		SessionID: sessionID,
	}
}

// NewValidationError creates an Error for a malformed command.
func NewValidationError(message string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: message,
	}
}
