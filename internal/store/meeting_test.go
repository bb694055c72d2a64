package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetscribe/meetscribe/internal/domain"
)

func TestUpsertMeeting_CreatesAndReads(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	m := createTestMeeting("m-1")
	require.NoError(t, s.UpsertMeeting(ctx, m))

	got, err := s.GetMeeting(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestUpsertMeeting_OverwritesMetadata(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	m := createTestMeeting("m-1")
	require.NoError(t, s.UpsertMeeting(ctx, m))

	m.Title = "Renamed"
	m.RoomName = "boardroom-2"
	m.Organizer = domain.Organizer{ID: "org-2", Name: "Eli"}
	require.NoError(t, s.UpsertMeeting(ctx, m))

	got, err := s.GetMeeting(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "boardroom-2", got.RoomName)
	assert.Equal(t, "org-2", got.Organizer.ID)

	// Still exactly one meeting.
	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM meetings").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestGetMeeting_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetMeeting(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMeetingExists(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	exists, err := s.MeetingExists(ctx, "m-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.UpsertMeeting(ctx, createTestMeeting("m-1")))

	exists, err = s.MeetingExists(ctx, "m-1")
	require.NoError(t, err)
	assert.True(t, exists)
}
