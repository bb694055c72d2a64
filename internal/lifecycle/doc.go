// Package lifecycle implements the idempotent meeting lifecycle coordinator.
//
// The coordinator consumes already-validated commands (StartMeeting,
// AddTranscript, EndMeeting) produced from webhook notifications that may
// arrive duplicated, concurrently, and out of order, and decides for each
// one whether it is a new fact, a harmless replay, a late-arriving but
// valid fact, or a conflict.
//
// Session state machine:
//
//	(absent) --StartMeeting--> LIVE --EndMeeting--> ENDED (terminal)
//
// StartMeeting on LIVE is a self-loop (idempotent metadata refresh).
// StartMeeting on ENDED is rejected: a session id is never reused.
// EndMeeting on ENDED is rejected: a second end may carry a different
// time/reason, and silently discarding that is unsafe.
// AddTranscript is valid on LIVE and ENDED (late delivery), never on absent.
//
// Concurrency: the coordinator holds no locks. Duplicate and racing
// deliveries are resolved by the store's unique constraints (create-if-absent
// on session id, transcript id, and the sequence-coordinate triple) and the
// conditional LIVE->ENDED update. Every operation is a bounded number of
// store round-trips and is safe to run in parallel with itself for the same
// identities.
package lifecycle
