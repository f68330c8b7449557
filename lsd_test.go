package surveygrid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLsdFractionLayout(t *testing.T) {
	cases := []struct {
		lsd  uint8
		x, y float64
	}{
		{1, 0.125, 0.125},  // southeast corner cell
		{4, 0.875, 0.125},  // southwest corner cell
		{7, 0.375, 0.375},  // center-east of the second row
		{13, 0.875, 0.875}, // northwest corner cell
		{16, 0.125, 0.875}, // northeast corner cell
	}
	for _, tc := range cases {
		x, y, err := lsdFraction(tc.lsd)
		require.NoError(t, err)
		assert.Equal(t, tc.x, x, "lsd %d x", tc.lsd)
		assert.Equal(t, tc.y, y, "lsd %d y", tc.lsd)
	}
}

func TestLsdFractionBoustrophedon(t *testing.T) {
	// Consecutive subdivisions within a row are one quarter apart; the
	// numbering reverses direction every row.
	x3, _, _ := lsdFraction(3)
	x4, _, _ := lsdFraction(4)
	x5, y5, _ := lsdFraction(5)
	assert.Equal(t, 0.25, x4-x3)
	assert.Equal(t, x4, x5, "5 sits directly above 4")
	assert.Equal(t, 0.375, y5)
}

func TestLsdFractionOutOfRange(t *testing.T) {
	for _, lsd := range []uint8{0, 17, 255} {
		_, _, err := lsdFraction(lsd)
		assert.True(t, errors.Is(err, ErrValueOutOfRange), "lsd %d: got %v", lsd, err)
	}
}

func TestLsdNumberAtRoundTrip(t *testing.T) {
	for i, cell := range lsdCell {
		assert.Equal(t, uint8(i+1), lsdNumberAt(cell.col, cell.row))
	}
}

func TestInterpolatePositionCorners(t *testing.T) {
	sc := squareSection(53.0, -116.0)

	// The section edges are axis-aligned, so interpolation at the corner
	// fractions is exact linear blending of the corner values.
	at := func(x, y float64) LatLongCoordinate { return interpolatePosition(sc, x, y) }

	assert.Equal(t, sc.SouthEast, at(0, 0))
	assert.Equal(t, sc.SouthWest, at(1, 0))
	assert.Equal(t, sc.NorthWest, at(1, 1))
	assert.Equal(t, sc.NorthEast, at(0, 1))

	center := at(0.5, 0.5)
	assert.InDelta(t, 53.0+sectionHeight/2, float64(center.Latitude), 1e-5)
	assert.InDelta(t, -116.0-sectionWidthAt(53.0)/2, float64(center.Longitude), 1e-5)
}

func TestInterpolatePositionSkewed(t *testing.T) {
	// A sheared quadrilateral: the interpolated point must track the
	// blended edges, not the nominal rectangle.
	sc := SectionCorners{
		SouthEast: LatLongCoordinate{50, -110},
		SouthWest: LatLongCoordinate{50.001, -110.02},
		NorthWest: LatLongCoordinate{50.016, -110.021},
		NorthEast: LatLongCoordinate{50.015, -110.001},
	}
	got := interpolatePosition(sc, 0.5, 0.5)
	assert.InDelta(t, 50.008, float64(got.Latitude), 1e-5)
	assert.InDelta(t, -110.0105, float64(got.Longitude), 1e-5)
}
