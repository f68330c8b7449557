package surveygrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	calgary  = NewLatLongCoordinate(51.0447, -114.0719)
	edmonton = NewLatLongCoordinate(53.5461, -113.4938)
)

func TestGreatCircleDistance(t *testing.T) {
	// Calgary to Edmonton is about 280 km.
	d := calgary.GreatCircleDistanceTo(edmonton)
	assert.InDelta(t, 280_000, d, 5_000)

	assert.Zero(t, calgary.GreatCircleDistanceTo(calgary))

	// Symmetric.
	assert.InDelta(t, d, edmonton.GreatCircleDistanceTo(calgary), 1e-6)
}

func TestGreatCircleDistanceShort(t *testing.T) {
	// One section of latitude is roughly a mile.
	a := NewLatLongCoordinate(54, -113)
	b := NewLatLongCoordinate(54+float32(sectionHeight), -113)
	assert.InDelta(t, 1_609, a.GreatCircleDistanceTo(b), 30)
}

func TestVincentyDistance(t *testing.T) {
	d, err := calgary.VincentyDistanceTo(edmonton)
	require.NoError(t, err)

	// The ellipsoidal distance agrees with the spherical one to well
	// under a percent at this latitude.
	sphere := calgary.GreatCircleDistanceTo(edmonton)
	assert.InDelta(t, sphere, d, sphere*0.01)

	coincident, err := calgary.VincentyDistanceTo(calgary)
	require.NoError(t, err)
	assert.Zero(t, coincident)
}

func TestDistanceMonotonicAcrossSections(t *testing.T) {
	// Ranking by distance is what the inverse search relies on: a target
	// inside a section must rank that section's center first.
	conv := NewGridConverter()
	target, err := conv.ToLatLong(mustDls(t, 7, 11, 82, 4, 6))
	require.NoError(t, err)

	center := target.GreatCircleDistanceTo(target)
	neighbor, err := conv.ToLatLong(mustDls(t, 7, 10, 82, 4, 6))
	require.NoError(t, err)
	assert.Less(t, center, target.GreatCircleDistanceTo(neighbor))
}
