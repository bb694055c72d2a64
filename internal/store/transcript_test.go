package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSession creates a meeting and a live session for transcript tests.
func setupSession(t *testing.T, s *Store, meetingID, sessionID string) {
	t.Helper()
	setupMeeting(t, s, meetingID)
	_, err := s.CreateSession(context.Background(), createTestSession(sessionID, meetingID))
	require.NoError(t, err)
}

func TestCreateTranscript_InsertsAndReads(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	setupSession(t, s, "m-1", "s-1")

	tr := createTestTranscript("t-1", "m-1", "s-1", 1)
	inserted, err := s.CreateTranscript(ctx, tr)
	require.NoError(t, err)
	assert.True(t, inserted)

	got, err := s.GetTranscript(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, tr, got)
}

func TestCreateTranscript_DuplicateIDSuppressed(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	setupSession(t, s, "m-1", "s-1")

	tr := createTestTranscript("t-1", "m-1", "s-1", 1)
	inserted, err := s.CreateTranscript(ctx, tr)
	require.NoError(t, err)
	require.True(t, inserted)

	// Same id, different content and sequence: suppressed, first write kept.
	dup := createTestTranscript("t-1", "m-1", "s-1", 9)
	dup.Content = "different content"
	inserted, err = s.CreateTranscript(ctx, dup)
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := s.GetTranscript(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, "hello there", got.Content)
	assert.Equal(t, 1, got.SequenceNumber)
}

func TestCreateTranscript_DuplicateSequenceSuppressed(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	setupSession(t, s, "m-1", "s-1")

	inserted, err := s.CreateTranscript(ctx, createTestTranscript("t-1", "m-1", "s-1", 1))
	require.NoError(t, err)
	require.True(t, inserted)

	// Different id claiming the same (meeting, session, sequence) slot.
	inserted, err = s.CreateTranscript(ctx, createTestTranscript("t-2", "m-1", "s-1", 1))
	require.NoError(t, err)
	assert.False(t, inserted)

	// The losing id was never stored.
	_, err = s.GetTranscript(ctx, "t-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateTranscript_SameSequenceDifferentSession(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	setupSession(t, s, "m-1", "s-1")
	_, err := s.CreateSession(ctx, createTestSession("s-2", "m-1"))
	require.NoError(t, err)

	inserted, err := s.CreateTranscript(ctx, createTestTranscript("t-1", "m-1", "s-1", 1))
	require.NoError(t, err)
	require.True(t, inserted)

	// The sequence constraint is per (meeting, session), not global.
	inserted, err = s.CreateTranscript(ctx, createTestTranscript("t-2", "m-1", "s-2", 1))
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestListTranscripts_OrderedBySequence(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	setupSession(t, s, "m-1", "s-1")

	// Insert out of order.
	for _, seq := range []int{3, 1, 2} {
		tr := createTestTranscript("t-"+string(rune('0'+seq)), "m-1", "s-1", seq)
		_, err := s.CreateTranscript(ctx, tr)
		require.NoError(t, err)
	}

	got, err := s.ListTranscripts(ctx, "m-1", "s-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, tr := range got {
		assert.Equal(t, i+1, tr.SequenceNumber)
	}
}

func TestListTranscripts_EmptyIsNotNil(t *testing.T) {
	s := createTestStore(t)
	setupSession(t, s, "m-1", "s-1")

	got, err := s.ListTranscripts(context.Background(), "m-1", "s-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
