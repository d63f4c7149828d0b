package breach

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"safecircle/internal/breach/metrics"
	"safecircle/internal/directory"
	"safecircle/internal/geofence"
	dErrors "safecircle/pkg/domain-errors"
)

// defaultFanoutLimit bounds concurrent sink calls per dispatch. Families are
// small; the limit exists so one dispatch cannot monopolize sink connections
// when several breaches fire at once.
const defaultFanoutLimit = 8

// Notifier resolves the recipient set for a firing breach and dispatches it
// through the external sink. Recipient resolution prefers the user's family;
// users without one fall back to whoever matches their registered
// emergency-contact numbers.
type Notifier struct {
	directory   directory.Directory
	sink        NotificationSink
	logger      *slog.Logger
	metrics     *metrics.Metrics
	fanoutLimit int
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithFanoutLimit caps the number of concurrent deliveries per dispatch.
func WithFanoutLimit(limit int) NotifierOption {
	return func(n *Notifier) {
		if limit > 0 {
			n.fanoutLimit = limit
		}
	}
}

func NewNotifier(dir directory.Directory, sink NotificationSink, logger *slog.Logger, m *metrics.Metrics, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		directory:   dir,
		sink:        sink,
		logger:      logger,
		metrics:     m,
		fanoutLimit: defaultFanoutLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Dispatch fans one breach event out to its recipients. Per-recipient
// delivery failures are collected in the result, never returned as an error;
// an error from Dispatch means recipient resolution itself failed. Zero
// recipients is a successful no-op: having no family and no emergency
// contacts is a valid configuration, not a fault.
func (n *Notifier) Dispatch(ctx context.Context, event Event) (DispatchResult, error) {
	scope, recipients, err := n.resolveRecipients(ctx, event)
	if err != nil {
		return DispatchResult{}, dErrors.Wrap(dErrors.CodeInternal, "resolve recipients", err)
	}

	result := DispatchResult{EventID: event.ID, Scope: scope}
	event.RecipientScope = scope
	if len(recipients) == 0 {
		return result, nil
	}

	message := n.composeMessage(ctx, event)

	// Deliveries run concurrently but failures stay per-recipient: a task
	// never returns an error, so one dead push token cannot cancel the rest
	// of the fan-out.
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.fanoutLimit)
	for _, recipient := range recipients {
		g.Go(func() error {
			err := n.sink.Send(gctx, recipient, message, event)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, DeliveryFailure{
					Recipient: recipient,
					Reason:    err.Error(),
				})
			} else {
				result.Delivered = append(result.Delivered, recipient)
			}
			return nil
		})
	}
	_ = g.Wait()

	n.metrics.RecordDispatch(len(result.Delivered), len(result.Failures))
	for _, failure := range result.Failures {
		n.logger.WarnContext(ctx, "breach notification delivery failed",
			"event_id", event.ID,
			"recipient_id", failure.Recipient.ID,
			"reason", failure.Reason,
		)
	}
	return result, nil
}

// resolveRecipients picks the recipient set. A family-owned geofence notifies
// that family; otherwise the breaching user's first family is used; otherwise
// the users matching their emergency-contact numbers.
func (n *Notifier) resolveRecipients(ctx context.Context, event Event) (RecipientScope, []directory.UserRef, error) {
	familyID, err := n.familyFor(ctx, event)
	if err != nil {
		return "", nil, err
	}

	if familyID != "" {
		members, err := n.directory.MembersOf(ctx, familyID)
		if err != nil {
			return "", nil, fmt.Errorf("members of family %s: %w", familyID, err)
		}
		recipients := make([]directory.UserRef, 0, len(members))
		for _, member := range members {
			if member.ID != event.UserID {
				recipients = append(recipients, member)
			}
		}
		return ScopeFamily, recipients, nil
	}

	user, err := n.directory.FindByID(ctx, event.UserID)
	if err != nil {
		return "", nil, fmt.Errorf("find user %s: %w", event.UserID, err)
	}
	if len(user.EmergencyNumbers) == 0 {
		return ScopeEmergencyContacts, nil, nil
	}
	contacts, err := n.directory.FindByPhoneNumbers(ctx, user.EmergencyNumbers)
	if err != nil {
		return "", nil, fmt.Errorf("find emergency contacts: %w", err)
	}
	return ScopeEmergencyContacts, contacts, nil
}

func (n *Notifier) familyFor(ctx context.Context, event Event) (string, error) {
	if event.GeofenceOwner.Type == geofence.OwnerFamily {
		return event.GeofenceOwner.ID, nil
	}
	families, err := n.directory.FamiliesOf(ctx, event.UserID)
	if err != nil {
		return "", fmt.Errorf("families of %s: %w", event.UserID, err)
	}
	if len(families) == 0 {
		return "", nil
	}
	return families[0].ID, nil
}

// composeMessage builds the human-readable notification text. The location
// rides on the event as structured payload, never interpolated into the text.
func (n *Notifier) composeMessage(ctx context.Context, event Event) string {
	name := event.UserID
	if user, err := n.directory.FindByID(ctx, event.UserID); err == nil && user.Name != "" {
		name = user.Name
	}
	verb := "entered"
	if event.Direction == DirectionExit {
		verb = "left"
	}
	return fmt.Sprintf("%s %s %s", name, verb, event.GeofenceName)
}
