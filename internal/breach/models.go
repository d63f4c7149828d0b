// Package breach turns the level signal "is this user inside this region?"
// into edge-triggered enter/exit events and fans them out to the right
// recipients. It owns the only mutable shared state in the subsystem, the
// per-(user, geofence) inside/outside cache.
package breach

import (
	"time"

	"safecircle/internal/directory"
	"safecircle/internal/geo"
	"safecircle/internal/geofence"
)

// Direction tags which way a boundary was crossed.
type Direction string

const (
	DirectionEnter Direction = "enter"
	DirectionExit  Direction = "exit"
)

// RecipientScope records which recipient set a breach was dispatched to.
type RecipientScope string

const (
	ScopeFamily            RecipientScope = "family"
	ScopeEmergencyContacts RecipientScope = "emergency_contacts"
)

// Status is the cached last-known inside/outside state for one
// (user, geofence) pair. It exists so a transition can be told apart from a
// steady state; no component outside this package reads or writes it.
type Status struct {
	IsInside        bool           `json:"is_inside"`
	LastLocation    geo.Coordinate `json:"last_location"`
	LastEvaluatedAt time.Time      `json:"last_evaluated_at"`
}

// Event is a detected boundary crossing. It is derived state: this subsystem
// emits it and hands it to the notifier and journal, but never persists it.
type Event struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	GeofenceID     string         `json:"geofence_id"`
	GeofenceOwner  geofence.Owner `json:"-"`
	GeofenceName   string         `json:"geofence_name"`
	GeofenceType   geofence.Type  `json:"geofence_type"`
	Direction      Direction      `json:"direction"`
	Location       geo.Coordinate `json:"location"`
	OccurredAt     time.Time      `json:"occurred_at"`
	RecipientScope RecipientScope `json:"recipient_scope,omitempty"`
}

// DeliveryFailure records one recipient the sink could not reach. Failures
// are collected, never thrown: an unreachable push token must not block the
// rest of the fan-out.
type DeliveryFailure struct {
	Recipient directory.UserRef `json:"recipient"`
	Reason    string            `json:"reason"`
}

// DispatchResult reports the outcome of one breach fan-out. Zero recipients
// with zero failures is a successful no-op, not an error.
type DispatchResult struct {
	EventID   string              `json:"event_id"`
	Scope     RecipientScope      `json:"scope"`
	Delivered []directory.UserRef `json:"delivered,omitempty"`
	Failures  []DeliveryFailure   `json:"failures,omitempty"`
}

// Delivered-or-attempted recipient count.
func (r DispatchResult) Recipients() int {
	return len(r.Delivered) + len(r.Failures)
}
