// Package store provides SQLite-backed durable storage for meetings,
// sessions, and transcript chunks.
//
// The store is deliberately free of business logic: it exposes keyed
// reads, an upsert for meeting metadata, and two atomic primitives the
// lifecycle coordinator builds on:
//
//   - create-if-absent via INSERT ... ON CONFLICT DO NOTHING, reporting
//     whether a row was actually inserted (sessions and transcripts);
//   - conditional update via UPDATE ... WHERE status = 'LIVE', reporting
//     whether the row transitioned (session end compare-and-swap).
//
// Unique constraints back both primitives: sessions(id), transcripts(id),
// and transcripts(meeting_id, session_id, sequence_number). Racing writers
// are resolved by the database, never by in-process locks.
//
// Transcript listings are ordered by sequence_number ASC with the
// transcript id as a deterministic tie-break, so repeated reads of the
// same data always return the same order.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
