// Package webhook is the HTTP transport: it receives lifecycle
// notifications, hands them to the command source, and maps coordinator
// errors onto response codes. No business decisions are made here.
package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/meetscribe/meetscribe/internal/command"
	"github.com/meetscribe/meetscribe/internal/domain"
	"github.com/meetscribe/meetscribe/internal/lifecycle"
	"github.com/meetscribe/meetscribe/internal/logging"
)

// maxPayloadBytes caps webhook bodies. Transcript chunks are short;
// anything near this limit is malformed or hostile.
const maxPayloadBytes = 1 << 20

// Handler serves the webhook ingest endpoint and the transcript read API.
type Handler struct {
	coordinator *lifecycle.Coordinator
	log         logging.Logger
}

// NewHandler creates a Handler around the given coordinator.
// A nil logger is replaced with a no-op logger.
func NewHandler(c *lifecycle.Coordinator, log logging.Logger) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	return &Handler{coordinator: c, log: log}
}

// Routes returns the ServeMux with all endpoints mounted.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/webhooks", h.handleWebhook)
	mux.HandleFunc("GET /api/webhooks/health", h.handleHealth)
	mux.HandleFunc("GET /api/meetings/{meetingID}/sessions/{sessionID}/transcripts", h.handleListTranscripts)
	return mux
}

// errorResponse is the error envelope. Shape matches the upstream contract:
// a stable machine-readable code plus a human-readable message.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.writeError(w, requestID, lifecycle.NewValidationError("failed to read request body"))
		return
	}

	cmd, err := command.Decode(body)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	if err := cmd.Apply(r.Context(), h.coordinator); err != nil {
		h.writeError(w, requestID, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func (h *Handler) handleListTranscripts(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	meetingID := r.PathValue("meetingID")
	sessionID := r.PathValue("sessionID")

	transcripts, err := h.coordinator.ListTranscripts(r.Context(), meetingID, sessionID)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	views := make([]transcriptView, len(transcripts))
	for i, t := range transcripts {
		views[i] = newTranscriptView(t)
	}
	writeJSON(w, http.StatusOK, map[string]any{"transcripts": views})
}

// writeError maps a coordinator or validation error to an HTTP status.
// Unclassified errors (store failures and the like) become 500s and are the
// caller's cue to retry the whole command.
func (h *Handler) writeError(w http.ResponseWriter, requestID string, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL"

	switch {
	case lifecycle.IsValidation(err):
		status = http.StatusBadRequest
		code = string(lifecycle.ErrCodeValidation)
	case lifecycle.IsNotFound(err):
		status = http.StatusNotFound
		code = string(lifecycle.CodeOf(err))
	case lifecycle.IsConflict(err):
		status = http.StatusConflict
		code = string(lifecycle.CodeOf(err))
	}

	if status == http.StatusInternalServerError {
		h.log.Error("webhook processing failed",
			logging.String("request_id", requestID),
			logging.Err(err),
		)
	} else {
		h.log.Debug("webhook rejected",
			logging.String("request_id", requestID),
			logging.String("code", code),
			logging.Err(err),
		)
	}

	writeJSON(w, status, errorResponse{Error: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// transcriptView is the wire representation of a transcript chunk.
// Offsets are rendered as seconds, matching the ingest contract.
type transcriptView struct {
	ID             string  `json:"id"`
	MeetingID      string  `json:"meetingId"`
	SessionID      string  `json:"sessionId"`
	SequenceNumber int     `json:"sequenceNumber"`
	SpeakerID      string  `json:"speakerId"`
	SpeakerName    string  `json:"speakerName"`
	Content        string  `json:"content"`
	Language       string  `json:"language,omitempty"`
	StartOffset    float64 `json:"startOffset"`
	EndOffset      float64 `json:"endOffset"`
}

func newTranscriptView(t domain.Transcript) transcriptView {
	return transcriptView{
		ID:             t.ID,
		MeetingID:      t.MeetingID,
		SessionID:      t.SessionID,
		SequenceNumber: t.SequenceNumber,
		SpeakerID:      t.Speaker.ID,
		SpeakerName:    t.Speaker.Name,
		Content:        t.Content,
		Language:       t.Language,
		StartOffset:    t.StartOffset.Seconds(),
		EndOffset:      t.EndOffset.Seconds(),
	}
}

// NewServer wraps the handler in an http.Server with the timeouts a
// webhook ingest endpoint wants: short header reads, bounded idle.
func NewServer(addr string, h *Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
