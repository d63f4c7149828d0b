package breach_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"safecircle/internal/breach"
	breachmocks "safecircle/internal/breach/mocks"
	"safecircle/internal/directory"
	dirmocks "safecircle/internal/directory/mocks"
	"safecircle/internal/geo"
	"safecircle/internal/geofence"
	dErrors "safecircle/pkg/domain-errors"
)

type pipelineFixture struct {
	pipeline  *breach.Pipeline
	geofences *breachmocks.MockGeofenceSource
	directory *dirmocks.MockDirectory
	sink      *breachmocks.MockNotificationSink
	journal   *breachmocks.MockJournal
	cancel    context.CancelFunc
}

func newPipelineFixture(t *testing.T, opts ...breach.PipelineOption) *pipelineFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &pipelineFixture{
		geofences: breachmocks.NewMockGeofenceSource(ctrl),
		directory: dirmocks.NewMockDirectory(ctrl),
		sink:      breachmocks.NewMockNotificationSink(ctrl),
		journal:   breachmocks.NewMockJournal(ctrl),
	}
	detector := breach.NewDetector(f.geofences, breach.NewInMemoryStateCache(), discardLogger(), nil)
	notifier := breach.NewNotifier(f.directory, f.sink, discardLogger(), nil)
	f.pipeline = breach.NewPipeline(detector, notifier, f.journal, discardLogger(), opts...)

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	done := make(chan struct{})
	go func() {
		_ = f.pipeline.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("pipeline did not stop")
		}
	})
	return f
}

func TestSubmitSurfacesValidationErrors(t *testing.T) {
	f := newPipelineFixture(t)

	err := f.pipeline.Submit(context.Background(), "user-1", geo.Coordinate{Lat: 0, Lng: 200}, time.Now())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidLocation))
}

func TestSubmitEvaluatesAndDispatches(t *testing.T) {
	f := newPipelineFixture(t)
	fence := geofence.Geofence{
		ID:                   "gf-1",
		Owner:                geofence.Owner{Type: geofence.OwnerFamily, ID: "fam-1"},
		Name:                 "home",
		Type:                 geofence.TypeHome,
		Center:               geo.Coordinate{Lat: 0, Lng: 0},
		RadiusMeters:         100,
		BreachPolicy:         geofence.PolicyBoth,
		NotificationsEnabled: true,
	}
	f.geofences.EXPECT().ListApplicable(gomock.Any(), "user-1").
		Return([]geofence.Geofence{fence}, nil).Times(2)

	// Seed inside: no dispatch.
	require.NoError(t, f.pipeline.Submit(context.Background(), "user-1", geo.Coordinate{Lat: 0, Lng: 0}, time.Now()))

	// Exit: one dispatch to the family, journaled with the resolved scope.
	mom := directory.UserRef{ID: "user-2", Name: "Mom"}
	f.directory.EXPECT().MembersOf(gomock.Any(), "fam-1").
		Return([]directory.UserRef{{ID: "user-1"}, mom}, nil)
	f.directory.EXPECT().FindByID(gomock.Any(), "user-1").
		Return(directory.UserRef{ID: "user-1", Name: "Kid"}, nil)
	f.sink.EXPECT().Send(gomock.Any(), mom, "Kid left home", gomock.Any()).Return(nil)

	var journaled breach.Event
	f.journal.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event breach.Event) error {
			journaled = event
			return nil
		})

	require.NoError(t, f.pipeline.Submit(context.Background(), "user-1", geo.Coordinate{Lat: 0.00135, Lng: 0}, time.Now()))
	assert.Equal(t, breach.DirectionExit, journaled.Direction)
	assert.Equal(t, breach.ScopeFamily, journaled.RecipientScope)
}

// A sequence of updates for one user must be evaluated in submission order
// even when the pipeline runs many lanes: the edge signal depends on it.
func TestPerUserOrderingAcrossManyUpdates(t *testing.T) {
	f := newPipelineFixture(t, breach.WithLanes(8))
	fence := geofence.Geofence{
		ID:                   "gf-1",
		Owner:                geofence.Owner{Type: geofence.OwnerUser, ID: "user-1"},
		Name:                 "home",
		Center:               geo.Coordinate{Lat: 0, Lng: 0},
		RadiusMeters:         100,
		BreachPolicy:         geofence.PolicyBoth,
		NotificationsEnabled: true,
	}
	f.geofences.EXPECT().ListApplicable(gomock.Any(), "user-1").
		Return([]geofence.Geofence{fence}, nil).AnyTimes()
	f.directory.EXPECT().FamiliesOf(gomock.Any(), "user-1").Return(nil, nil).AnyTimes()
	f.directory.EXPECT().FindByID(gomock.Any(), "user-1").
		Return(directory.UserRef{ID: "user-1", Name: "Kid"}, nil).AnyTimes()
	f.journal.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	inside := geo.Coordinate{Lat: 0, Lng: 0}
	outside := geo.Coordinate{Lat: 0.00135, Lng: 0}

	// Alternate in/out 20 times; every flip after the seed is a transition,
	// and a dropped or reordered update would desynchronize the count.
	require.NoError(t, f.pipeline.Submit(context.Background(), "user-1", inside, time.Now()))
	for i := 0; i < 20; i++ {
		point := outside
		if i%2 == 1 {
			point = inside
		}
		require.NoError(t, f.pipeline.Submit(context.Background(), "user-1", point, time.Now()))
	}
	// 20 transitions dispatched, each a no-recipient success (no family, no
	// contacts), so the sink is never called and nothing fails.
}

func TestCrossUserConcurrency(t *testing.T) {
	f := newPipelineFixture(t, breach.WithLanes(4))
	f.geofences.EXPECT().ListApplicable(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", i)
			for j := 0; j < 25; j++ {
				assert.NoError(t, f.pipeline.Submit(context.Background(), user, geo.Coordinate{Lat: 1, Lng: 1}, time.Now()))
			}
		}()
	}
	wg.Wait()
}
