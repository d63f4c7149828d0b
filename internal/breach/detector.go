package breach

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"safecircle/internal/breach/metrics"
	"safecircle/internal/geo"
	dErrors "safecircle/pkg/domain-errors"
)

// Detector is the single ingestion point for location updates. Evaluate is
// pure computation plus cache mutation: it performs no network or disk I/O of
// its own and runs to completion once started.
//
// Callers must serialize evaluations per user (see Pipeline); the cache is
// last-write-wins and an out-of-order update would corrupt the enter/exit
// edge.
type Detector struct {
	geofences GeofenceSource
	cache     StateCache
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewDetector(geofences GeofenceSource, cache StateCache, logger *slog.Logger, m *metrics.Metrics) *Detector {
	return &Detector{
		geofences: geofences,
		cache:     cache,
		logger:    logger,
		metrics:   m,
	}
}

// Evaluate checks one location update against every geofence applicable to
// the user and returns the breach events the update caused. An empty result
// is the normal outcome, not an error: no geofences, no transition, or
// transitions the per-geofence policy does not cover.
//
// The first evaluation for a (user, geofence) pair only seeds the cached
// state and never fires; there is no transition to report on first sight.
func (d *Detector) Evaluate(ctx context.Context, userID string, location geo.Coordinate, observedAt time.Time) ([]Event, error) {
	start := time.Now()
	defer func() { d.metrics.RecordEvaluation(time.Since(start)) }()

	if !location.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidLocation,
			"location must have latitude in [-90, 90] and longitude in [-180, 180]")
	}

	fences, err := d.geofences.ListApplicable(ctx, userID)
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, fence := range fences {
		insideNow := fence.Contains(location)
		status := Status{
			IsInside:        insideNow,
			LastLocation:    location,
			LastEvaluatedAt: observedAt,
		}

		previous, seen, err := d.cache.Get(ctx, userID, fence.ID)
		if err != nil {
			return events, dErrors.Wrap(dErrors.CodeInternal, "read breach status", err)
		}

		if seen && previous.IsInside == insideNow {
			// No transition; refresh freshness only.
			if err := d.cache.Set(ctx, userID, fence.ID, status); err != nil {
				return events, dErrors.Wrap(dErrors.CodeInternal, "refresh breach status", err)
			}
			continue
		}

		// Seed or transition: the cache is updated either way, so a policy
		// change takes effect on the next real transition, never retroactively.
		if err := d.cache.Set(ctx, userID, fence.ID, status); err != nil {
			return events, dErrors.Wrap(dErrors.CodeInternal, "write breach status", err)
		}
		if !seen {
			continue
		}

		direction := DirectionExit
		if insideNow {
			direction = DirectionEnter
		}
		d.metrics.RecordTransition(string(direction))

		fires := (direction == DirectionEnter && fence.BreachPolicy.FiresOnEnter()) ||
			(direction == DirectionExit && fence.BreachPolicy.FiresOnExit())
		if !fires || !fence.NotificationsEnabled {
			d.metrics.RecordSuppressed()
			d.logger.DebugContext(ctx, "breach transition suppressed",
				"user_id", userID,
				"geofence_id", fence.ID,
				"direction", direction,
				"policy", fence.BreachPolicy,
				"notifications_enabled", fence.NotificationsEnabled,
			)
			continue
		}

		events = append(events, Event{
			ID:            uuid.NewString(),
			UserID:        userID,
			GeofenceID:    fence.ID,
			GeofenceOwner: fence.Owner,
			GeofenceName:  fence.Name,
			GeofenceType:  fence.Type,
			Direction:     direction,
			Location:      location,
			OccurredAt:    observedAt,
		})
	}
	return events, nil
}
