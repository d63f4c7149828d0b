package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"safecircle/internal/geofence"
	"safecircle/internal/platform/middleware"
	dErrors "safecircle/pkg/domain-errors"
)

// GeofenceService defines the geofence operations the transport exposes.
type GeofenceService interface {
	Create(ctx context.Context, owner geofence.Owner, spec geofence.Spec) (geofence.Geofence, error)
	Update(ctx context.Context, owner geofence.Owner, id string, spec geofence.PartialSpec) (geofence.Geofence, error)
	Delete(ctx context.Context, owner geofence.Owner, id string) error
	List(ctx context.Context, owner geofence.Owner) ([]geofence.Geofence, error)
}

// GeofenceHandler is the thin HTTP layer over the geofence service. The
// owner rides on the request; authentication happens upstream of this
// subsystem.
type GeofenceHandler struct {
	service GeofenceService
	logger  *slog.Logger
}

func NewGeofenceHandler(service GeofenceService, logger *slog.Logger) *GeofenceHandler {
	return &GeofenceHandler{service: service, logger: logger}
}

// Register mounts the geofence routes on the router.
func (h *GeofenceHandler) Register(r chi.Router) {
	r.Route("/geofences", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Patch("/{geofenceID}", h.handleUpdate)
		r.Delete("/{geofenceID}", h.handleDelete)
	})
}

func ownerFromRequest(r *http.Request) (geofence.Owner, error) {
	ownerType := geofence.OwnerType(r.URL.Query().Get("owner_type"))
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" || (ownerType != geofence.OwnerUser && ownerType != geofence.OwnerFamily) {
		return geofence.Owner{}, dErrors.New(dErrors.CodeBadRequest,
			"owner_type must be user or family and owner_id must be set")
	}
	return geofence.Owner{Type: ownerType, ID: ownerID}, nil
}

func (h *GeofenceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, err := ownerFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var spec geofence.Spec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	created, err := h.service.Create(ctx, owner, spec)
	if err != nil {
		h.logger.WarnContext(ctx, "geofence create rejected",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *GeofenceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	list, err := h.service.List(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []geofence.Geofence{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *GeofenceHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, err := ownerFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var spec geofence.PartialSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	updated, err := h.service.Update(ctx, owner, chi.URLParam(r, "geofenceID"), spec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *GeofenceHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), owner, chi.URLParam(r, "geofenceID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
