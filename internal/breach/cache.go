package breach

import "context"

// StateCache holds the last-known inside/outside status per (user, geofence)
// pair. Set is last-write-wins; the pipeline's per-user ordering guarantee is
// what makes that safe. Evict removes every user's entry for a geofence and
// is called when the geofence is deleted.
//
// Implementations must support concurrent access with no cross-key
// interference.
type StateCache interface {
	Get(ctx context.Context, userID, geofenceID string) (Status, bool, error)
	Set(ctx context.Context, userID, geofenceID string, status Status) error
	Evict(ctx context.Context, geofenceID string) error
}
