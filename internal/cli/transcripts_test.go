package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/meetscribe/meetscribe/internal/domain"
)

const (
	goldenMeetingID = "5f0c43a2-8a3f-4f5e-9a1d-111111111111"
	goldenSessionID = "a7e9d7b0-1c2d-4e3f-8a9b-aaaaaaaaaaaa"
)

func goldenTranscripts() []domain.Transcript {
	return []domain.Transcript{
		{
			ID:             "t-1",
			MeetingID:      goldenMeetingID,
			SessionID:      goldenSessionID,
			SequenceNumber: 1,
			Speaker:        domain.Speaker{ID: "spk-1", Name: "Ada"},
			Content:        "chunk 1",
			Language:       "en",
			StartOffset:    5 * time.Second,
			EndOffset:      9 * time.Second,
		},
		{
			ID:             "t-2",
			MeetingID:      goldenMeetingID,
			SessionID:      goldenSessionID,
			SequenceNumber: 2,
			Speaker:        domain.Speaker{ID: "spk-2", Name: "Bob"},
			Content:        "chunk 2",
			Language:       "en",
			StartOffset:    10 * time.Second,
			EndOffset:      14 * time.Second,
		},
	}
}

func TestRenderTranscripts_Text(t *testing.T) {
	var buf bytes.Buffer
	err := RenderTranscripts(&buf, "text", goldenMeetingID, goldenSessionID, goldenTranscripts())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "transcripts_text", buf.Bytes())
}

func TestRenderTranscripts_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := RenderTranscripts(&buf, "json", goldenMeetingID, goldenSessionID, goldenTranscripts())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "transcripts_json", buf.Bytes())
}

func TestRenderTranscripts_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := RenderTranscripts(&buf, "text", goldenMeetingID, goldenSessionID, nil)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "transcripts_text_empty", buf.Bytes())
}

func TestRootCommand_RejectsInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "xml", "transcripts", "--db", "x.db", "a", "b"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid format")
}
