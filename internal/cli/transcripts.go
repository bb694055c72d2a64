package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meetscribe/meetscribe/internal/domain"
	"github.com/meetscribe/meetscribe/internal/lifecycle"
	"github.com/meetscribe/meetscribe/internal/logging"
	"github.com/meetscribe/meetscribe/internal/store"
)

// TranscriptsOptions holds flags for the transcripts command.
type TranscriptsOptions struct {
	*RootOptions
	Database string
}

// NewTranscriptsCommand creates the transcripts command.
func NewTranscriptsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranscriptsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "transcripts <meeting-id> <session-id>",
		Short: "List recorded transcripts for a session",
		Long: `List all transcript chunks recorded for a (meeting, session) pair,
ordered by ascending sequence number.

Example:
  meetscribe transcripts --db ./meetscribe.db 7f6c... 9a2e...
  meetscribe transcripts --db ./meetscribe.db 7f6c... 9a2e... --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscripts(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runTranscripts(cmd *cobra.Command, opts *TranscriptsOptions, meetingID, sessionID string) error {
	if _, err := os.Stat(opts.Database); err != nil {
		return WrapExitError(ExitCommandError, "database not found", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	coordinator := lifecycle.New(st, logging.Nop())
	transcripts, err := coordinator.ListTranscripts(cmd.Context(), meetingID, sessionID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list transcripts", err)
	}

	return RenderTranscripts(cmd.OutOrStdout(), opts.Format, meetingID, sessionID, transcripts)
}

// transcriptRow is the JSON rendering of one chunk.
type transcriptRow struct {
	ID             string  `json:"id"`
	SequenceNumber int     `json:"sequenceNumber"`
	SpeakerName    string  `json:"speakerName"`
	Content        string  `json:"content"`
	Language       string  `json:"language,omitempty"`
	StartOffset    float64 `json:"startOffset"`
	EndOffset      float64 `json:"endOffset"`
}

// RenderTranscripts writes the listing in the requested format.
// Exported for tests; output is deterministic for a given input.
func RenderTranscripts(w io.Writer, format, meetingID, sessionID string, transcripts []domain.Transcript) error {
	if format == "json" {
		rows := make([]transcriptRow, len(transcripts))
		for i, t := range transcripts {
			rows[i] = transcriptRow{
				ID:             t.ID,
				SequenceNumber: t.SequenceNumber,
				SpeakerName:    t.Speaker.Name,
				Content:        t.Content,
				Language:       t.Language,
				StartOffset:    t.StartOffset.Seconds(),
				EndOffset:      t.EndOffset.Seconds(),
			}
		}
		out := map[string]any{
			"meetingId":   meetingID,
			"sessionId":   sessionID,
			"transcripts": rows,
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "Transcripts for meeting %s, session %s (%d chunks)\n\n", meetingID, sessionID, len(transcripts))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tSPEAKER\tOFFSET\tCONTENT")
	for _, t := range transcripts {
		fmt.Fprintf(tw, "%d\t%s\t%.1fs-%.1fs\t%s\n",
			t.SequenceNumber, t.Speaker.Name, t.StartOffset.Seconds(), t.EndOffset.Seconds(), t.Content)
	}
	return tw.Flush()
}
