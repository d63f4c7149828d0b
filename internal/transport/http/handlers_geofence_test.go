package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"safecircle/internal/geo"
	"safecircle/internal/geofence"
	"safecircle/internal/transport/http/mocks"
	dErrors "safecircle/pkg/domain-errors"
)

//go:generate mockgen -source=handlers_geofence.go -destination=mocks/mocks.go -package=mocks GeofenceService

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func geofenceRouter(service GeofenceService) http.Handler {
	r := chi.NewRouter()
	NewGeofenceHandler(service, discardLogger()).Register(r)
	return r
}

func TestGeofenceHandler_Create_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := geofence.Owner{Type: geofence.OwnerUser, ID: "user123"}
	spec := geofence.Spec{
		Name:                 "Home",
		Type:                 geofence.TypeHome,
		Center:               geo.Coordinate{Lat: 40.0, Lng: -74.0},
		RadiusMeters:         150,
		BreachPolicy:         geofence.PolicyBoth,
		NotificationsEnabled: true,
	}

	service := mocks.NewMockGeofenceService(ctrl)
	service.EXPECT().
		Create(gomock.Any(), owner, spec).
		Return(geofence.Geofence{ID: "gf-1", Name: "Home"}, nil).
		Times(1)

	body, err := json.Marshal(spec)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/geofences?owner_type=user&owner_id=user123", bytes.NewReader(body))
	w := httptest.NewRecorder()
	geofenceRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created geofence.Geofence
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "gf-1", created.ID)
}

func TestGeofenceHandler_Create_MissingOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockGeofenceService(ctrl)

	req := httptest.NewRequest("POST", "/geofences", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	geofenceRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeofenceHandler_Create_InvalidBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockGeofenceService(ctrl)

	req := httptest.NewRequest("POST", "/geofences?owner_type=user&owner_id=user123", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()
	geofenceRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeofenceHandler_Create_ValidationErrorMapsToStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockGeofenceService(ctrl)
	service.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(geofence.Geofence{}, dErrors.New(dErrors.CodeInvalidRadius, "radius must be between 50 and 50000 meters")).
		Times(1)

	req := httptest.NewRequest("POST", "/geofences?owner_type=user&owner_id=user123", strings.NewReader(`{"radius_meters":10}`))
	w := httptest.NewRecorder()
	geofenceRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, string(dErrors.CodeInvalidRadius), payload["error"])
}

func TestGeofenceHandler_List_EmptyIsJSONArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := geofence.Owner{Type: geofence.OwnerFamily, ID: "fam1"}
	service := mocks.NewMockGeofenceService(ctrl)
	service.EXPECT().
		List(gomock.Any(), owner).
		Return(nil, nil).
		Times(1)

	req := httptest.NewRequest("GET", "/geofences?owner_type=family&owner_id=fam1", nil)
	w := httptest.NewRecorder()
	geofenceRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGeofenceHandler_Update_PassesURLParam(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := geofence.Owner{Type: geofence.OwnerUser, ID: "user123"}
	name := "School run"

	service := mocks.NewMockGeofenceService(ctrl)
	service.EXPECT().
		Update(gomock.Any(), owner, "gf-7", geofence.PartialSpec{Name: &name}).
		Return(geofence.Geofence{ID: "gf-7", Name: name}, nil).
		Times(1)

	req := httptest.NewRequest("PATCH", "/geofences/gf-7?owner_type=user&owner_id=user123",
		strings.NewReader(`{"name":"School run"}`))
	w := httptest.NewRecorder()
	geofenceRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGeofenceHandler_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockGeofenceService(ctrl)
	service.EXPECT().
		Update(gomock.Any(), gomock.Any(), "missing", gomock.Any()).
		Return(geofence.Geofence{}, dErrors.New(dErrors.CodeNotFound, "geofence not found")).
		Times(1)

	req := httptest.NewRequest("PATCH", "/geofences/missing?owner_type=user&owner_id=user123",
		strings.NewReader(`{"name":"x"}`))
	w := httptest.NewRecorder()
	geofenceRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGeofenceHandler_Delete_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := geofence.Owner{Type: geofence.OwnerUser, ID: "user123"}
	service := mocks.NewMockGeofenceService(ctrl)
	service.EXPECT().
		Delete(gomock.Any(), owner, "gf-3").
		Return(nil).
		Times(1)

	req := httptest.NewRequest("DELETE", "/geofences/gf-3?owner_type=user&owner_id=user123", nil)
	w := httptest.NewRecorder()
	geofenceRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
