package breach

import (
	"context"

	"safecircle/internal/directory"
	"safecircle/internal/geofence"
)

// GeofenceSource supplies the regions applicable to a user: their own plus
// those of every family they belong to. geofence.Service satisfies it.
type GeofenceSource interface {
	ListApplicable(ctx context.Context, userID string) ([]geofence.Geofence, error)
}

// NotificationSink is the external delivery collaborator (push, SMS, email).
// Send failures are per-recipient facts for the notifier to collect; the sink
// owns its own timeout and retry policy.
type NotificationSink interface {
	Send(ctx context.Context, recipient directory.UserRef, message string, event Event) error
}

// Journal receives a best-effort copy of every dispatched breach event for
// downstream consumers. It is fail-open: journal errors are logged and never
// affect detection or dispatch.
type Journal interface {
	Publish(ctx context.Context, event Event) error
}
