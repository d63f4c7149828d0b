package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"safecircle/internal/geo"
	"safecircle/internal/platform/middleware"
	dErrors "safecircle/pkg/domain-errors"
)

// Ingestor accepts a location observation for breach evaluation.
type Ingestor interface {
	Submit(ctx context.Context, userID string, location geo.Coordinate, observedAt time.Time) error
}

type LocationHandler struct {
	ingestor Ingestor
	logger   *slog.Logger
}

func NewLocationHandler(ingestor Ingestor, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{ingestor: ingestor, logger: logger}
}

func (h *LocationHandler) Register(r chi.Router) {
	r.Post("/locations", h.handleSubmit)
}

type locationRequest struct {
	UserID     string         `json:"user_id"`
	Location   geo.Coordinate `json:"location"`
	ObservedAt time.Time      `json:"observed_at"`
}

func (h *LocationHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.UserID == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "user_id is required"))
		return
	}
	if req.ObservedAt.IsZero() {
		req.ObservedAt = time.Now().UTC()
	}

	if err := h.ingestor.Submit(ctx, req.UserID, req.Location, req.ObservedAt); err != nil {
		h.logger.WarnContext(ctx, "location update rejected",
			"request_id", middleware.GetRequestID(ctx),
			"user_id", req.UserID,
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
