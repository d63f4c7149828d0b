package httptransport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"safecircle/internal/geo"
	"safecircle/internal/transport/http/mocks"
	dErrors "safecircle/pkg/domain-errors"
)

//go:generate mockgen -source=handlers_location.go -destination=mocks/mocks.go -package=mocks Ingestor

func locationRouter(ingestor Ingestor) http.Handler {
	r := chi.NewRouter()
	NewLocationHandler(ingestor, discardLogger()).Register(r)
	return r
}

func TestLocationHandler_Submit_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	observedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ingestor := mocks.NewMockIngestor(ctrl)
	ingestor.EXPECT().
		Submit(gomock.Any(), "user123", geo.Coordinate{Lat: 40.0, Lng: -74.0}, observedAt).
		Return(nil).
		Times(1)

	body := `{"user_id":"user123","location":{"latitude":40.0,"longitude":-74.0},"observed_at":"2025-06-01T12:00:00Z"}`
	req := httptest.NewRequest("POST", "/locations", strings.NewReader(body))
	w := httptest.NewRecorder()
	locationRouter(ingestor).ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestLocationHandler_Submit_MissingUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ingestor := mocks.NewMockIngestor(ctrl)

	body := `{"location":{"latitude":40.0,"longitude":-74.0}}`
	req := httptest.NewRequest("POST", "/locations", strings.NewReader(body))
	w := httptest.NewRecorder()
	locationRouter(ingestor).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocationHandler_Submit_DefaultsObservedAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var got time.Time
	ingestor := mocks.NewMockIngestor(ctrl)
	ingestor.EXPECT().
		Submit(gomock.Any(), "user123", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, _ string, _ geo.Coordinate, observedAt time.Time) error {
			got = observedAt
			return nil
		}).
		Times(1)

	body := `{"user_id":"user123","location":{"latitude":40.0,"longitude":-74.0}}`
	req := httptest.NewRequest("POST", "/locations", strings.NewReader(body))
	w := httptest.NewRecorder()
	locationRouter(ingestor).ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.WithinDuration(t, time.Now().UTC(), got, 5*time.Second)
}

func TestLocationHandler_Submit_InvalidCoordinateRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ingestor := mocks.NewMockIngestor(ctrl)
	ingestor.EXPECT().
		Submit(gomock.Any(), "user123", geo.Coordinate{Lat: 99.0, Lng: 0}, gomock.Any()).
		Return(dErrors.New(dErrors.CodeInvalidLocation, "latitude out of range")).
		Times(1)

	body := `{"user_id":"user123","location":{"latitude":99.0,"longitude":0}}`
	req := httptest.NewRequest("POST", "/locations", strings.NewReader(body))
	w := httptest.NewRecorder()
	locationRouter(ingestor).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
