package notifications

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// HeaderUserID carries the caller's user identity, injected by the edge
// after authentication.
const HeaderUserID = "X-User-Id"

type Handler struct {
	repo   *Repository
	logger *slog.Logger
}

func NewHandler(repo *Repository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(HeaderUserID)
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	notifications, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list notifications", "error", err, "user_id", userID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, notifications)
}

type markReadResponse struct {
	UpdatedCount int64  `json:"updated_count"`
	Message      string `json:"message"`
}

func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(HeaderUserID)
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	count, err := h.repo.MarkAllRead(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to mark notifications read", "error", err, "user_id", userID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("notifications marked read", "user_id", userID, "count", count)
	h.writeJSON(w, http.StatusOK, markReadResponse{
		UpdatedCount: count,
		Message:      fmt.Sprintf("%d notifications marked as read", count),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
