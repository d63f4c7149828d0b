package geofence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"safecircle/internal/geo"
)

func TestContainsBoundaryIsInclusive(t *testing.T) {
	// Distance between identical points is exactly zero, so a zero radius
	// pins the comparison to the equality case: inclusive containment must
	// report inside.
	fence := Geofence{Center: geo.Coordinate{Lat: 10, Lng: 20}, RadiusMeters: 0}
	assert.True(t, fence.Contains(geo.Coordinate{Lat: 10, Lng: 20}))
}

func TestContainsAroundTheBoundary(t *testing.T) {
	// ~0.00089932 degrees of latitude is 100 m on the reference sphere.
	fence := Geofence{Center: geo.Coordinate{Lat: 0, Lng: 0}, RadiusMeters: 100}

	assert.True(t, fence.Contains(geo.Coordinate{Lat: 0.00089, Lng: 0}), "98.9 m point is inside")
	assert.False(t, fence.Contains(geo.Coordinate{Lat: 0.00091, Lng: 0}), "101.2 m point is outside")
}

func TestBreachPolicyDirections(t *testing.T) {
	assert.True(t, PolicyEnter.FiresOnEnter())
	assert.False(t, PolicyEnter.FiresOnExit())
	assert.False(t, PolicyExit.FiresOnEnter())
	assert.True(t, PolicyExit.FiresOnExit())
	assert.True(t, PolicyBoth.FiresOnEnter())
	assert.True(t, PolicyBoth.FiresOnExit())
}
