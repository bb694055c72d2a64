// Package domain defines the persistent entities of the meeting record:
// meetings, recording sessions, and transcript chunks.
//
// The model is a two-level aggregate: a Meeting owns Sessions, a Session
// owns Transcripts. All identity fields are caller-assigned opaque tokens
// (UUIDs on the wire); this package never generates identifiers.
//
// Invariants carried by the model:
//   - Session.MeetingID is immutable once the session exists.
//   - Session status only moves LIVE -> ENDED, never back, and a session
//     id is never reused after it has ended.
//   - A Transcript is immutable after creation. The triple
//     (MeetingID, SessionID, SequenceNumber) is unique per store.
//
// Enforcement of these invariants lives in internal/lifecycle and in the
// store's unique constraints; the types here are plain data.
package domain
