package geofence

import (
	"time"

	"safecircle/internal/geo"
)

// Radius bounds enforced at create and update time, in meters.
const (
	MinRadiusMeters = 50
	MaxRadiusMeters = 50000
)

// OwnerType discriminates whose region set a geofence belongs to.
type OwnerType string

const (
	OwnerUser   OwnerType = "user"
	OwnerFamily OwnerType = "family"
)

// Owner scopes every store operation. Geofence ids are only unique within an
// owner, so lookups always carry the full (type, id) pair.
type Owner struct {
	Type OwnerType
	ID   string
}

// Type labels a geofence for display. It has no behavioral effect.
type Type string

const (
	TypeHome   Type = "home"
	TypeWork   Type = "work"
	TypeSchool Type = "school"
	TypeCustom Type = "custom"
)

// BreachPolicy configures which crossing direction(s) fire a notification.
type BreachPolicy string

const (
	PolicyEnter BreachPolicy = "enter"
	PolicyExit  BreachPolicy = "exit"
	PolicyBoth  BreachPolicy = "both"
)

// FiresOnEnter reports whether the policy covers an enter transition.
func (p BreachPolicy) FiresOnEnter() bool {
	return p == PolicyEnter || p == PolicyBoth
}

// FiresOnExit reports whether the policy covers an exit transition.
func (p BreachPolicy) FiresOnExit() bool {
	return p == PolicyExit || p == PolicyBoth
}

// Geofence is a named circular region attached to a user or family. A value
// that fails validation is never persisted, so anything read back from a
// store satisfies the radius and coordinate invariants.
type Geofence struct {
	ID                   string         `json:"id"`
	Owner                Owner          `json:"-"`
	Name                 string         `json:"name"`
	Type                 Type           `json:"type"`
	Center               geo.Coordinate `json:"center"`
	RadiusMeters         int            `json:"radius_meters"`
	BreachPolicy         BreachPolicy   `json:"breach_policy"`
	NotificationsEnabled bool           `json:"notifications_enabled"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// Contains reports whether the point falls inside the region. The boundary is
// inclusive: a point at exactly RadiusMeters from the center counts as inside.
func (g Geofence) Contains(p geo.Coordinate) bool {
	return geo.DistanceMeters(p, g.Center) <= float64(g.RadiusMeters)
}

// Spec carries the caller-supplied fields for a create.
type Spec struct {
	Name                 string         `json:"name"`
	Type                 Type           `json:"type"`
	Center               geo.Coordinate `json:"center"`
	RadiusMeters         int            `json:"radius_meters"`
	BreachPolicy         BreachPolicy   `json:"breach_policy"`
	NotificationsEnabled bool           `json:"notifications_enabled"`
}

// PartialSpec carries an update; nil fields are left unchanged.
type PartialSpec struct {
	Name                 *string         `json:"name,omitempty"`
	Type                 *Type           `json:"type,omitempty"`
	Center               *geo.Coordinate `json:"center,omitempty"`
	RadiusMeters         *int            `json:"radius_meters,omitempty"`
	BreachPolicy         *BreachPolicy   `json:"breach_policy,omitempty"`
	NotificationsEnabled *bool           `json:"notifications_enabled,omitempty"`
}
