package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/slidegen-api/internal/api/shared"
	"github.com/phrazzld/slidegen-api/internal/session"
)

// SessionReader is the session surface the session handlers depend on.
type SessionReader interface {
	Describe(ctx context.Context, presentationID string) (*session.SessionInfo, error)
	Delete(ctx context.Context, presentationID string) (bool, error)
}

// SessionHandler handles session inspection and deletion requests.
type SessionHandler struct {
	sessions SessionReader
	logger   *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions SessionReader, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}
	return &SessionHandler{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "session_handler")),
	}
}

// GetSessionInfo handles GET /session/{presentation_id} requests.
// Returns 404 when the session is absent or has expired.
func (h *SessionHandler) GetSessionInfo(w http.ResponseWriter, r *http.Request) {
	presentationID := chi.URLParam(r, "presentation_id")
	if presentationID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing presentation ID")
		return
	}

	info, err := h.sessions.Describe(r.Context(), presentationID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionInfoResponse{
		PresentationID:      info.PresentationID,
		SlidesInContext:     info.SlidesInContext,
		ContextSizeBytes:    info.ContextSizeBytes,
		LastUpdated:         info.LastUpdated,
		TTLRemainingSeconds: info.TTLRemainingSeconds,
	})
}

// DeleteSession handles DELETE /session/{presentation_id} requests.
// Deleting an absent session is not an error: the response reports whether
// anything existed.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	presentationID := chi.URLParam(r, "presentation_id")
	if presentationID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing presentation ID")
		return
	}

	existed, err := h.sessions.Delete(r.Context(), presentationID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to delete session", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionDeleteResponse{
		PresentationID: presentationID,
		Deleted:        existed,
	})
}
