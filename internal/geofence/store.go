package geofence

import (
	"context"

	"safecircle/pkg/platform/sentinel"
)

// ErrNotFound keeps store-level 404s consistent across the in-memory and
// Postgres implementations. The service translates it into a domain error.
var ErrNotFound = sentinel.ErrNotFound

// Store is the persistence contract for geofence records. Implementations
// receive fully validated records; the service owns validation and id
// assignment.
type Store interface {
	Insert(ctx context.Context, g Geofence) error
	Get(ctx context.Context, owner Owner, id string) (Geofence, error)
	Update(ctx context.Context, g Geofence) error
	Delete(ctx context.Context, owner Owner, id string) error
	// ListByOwner returns the owner's geofences in creation order.
	ListByOwner(ctx context.Context, owner Owner) ([]Geofence, error)
	// ListForFamilies returns geofences owned by any of the given families,
	// in creation order.
	ListForFamilies(ctx context.Context, familyIDs []string) ([]Geofence, error)
}
