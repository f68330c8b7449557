package surveygrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDls(t *testing.T, lsd, sec, twp, rng uint8, mer uint8) DlsSystem {
	t.Helper()
	d, err := NewDlsSystem(lsd, sec, twp, rng, WestOfMeridian, mer)
	require.NoError(t, err)
	return d
}

func TestSectionNumberAtLayout(t *testing.T) {
	// Southern row runs west from 1, second row runs back east from 12.
	assert.Equal(t, uint8(1), sectionNumberAt(0, 0))
	assert.Equal(t, uint8(6), sectionNumberAt(5, 0))
	assert.Equal(t, uint8(7), sectionNumberAt(5, 1))
	assert.Equal(t, uint8(12), sectionNumberAt(0, 1))
	assert.Equal(t, uint8(31), sectionNumberAt(5, 5))
	assert.Equal(t, uint8(36), sectionNumberAt(0, 5))
}

func TestSectionCellRoundTrip(t *testing.T) {
	for i, cell := range sectionCell {
		assert.Equal(t, uint8(i+1), sectionNumberAt(cell.col, cell.row))
	}
}

func TestGoNorthWithinSection(t *testing.T) {
	got, err := mustDls(t, 1, 15, 50, 10, 4).GoNorth()
	require.NoError(t, err)
	assert.Equal(t, mustDls(t, 8, 15, 50, 10, 4), got)
}

func TestGoNorthCrossesSection(t *testing.T) {
	// Subdivision 13 sits on the north edge; section 1's northern
	// neighbor is section 12.
	got, err := mustDls(t, 13, 1, 50, 10, 4).GoNorth()
	require.NoError(t, err)
	assert.Equal(t, mustDls(t, 4, 12, 50, 10, 4), got)
}

func TestGoNorthCrossesTownship(t *testing.T) {
	got, err := mustDls(t, 16, 36, 50, 10, 4).GoNorth()
	require.NoError(t, err)
	assert.Equal(t, mustDls(t, 1, 1, 51, 10, 4), got)
}

func TestGoSouthCrossesTownship(t *testing.T) {
	got, err := mustDls(t, 1, 1, 51, 10, 4).GoSouth()
	require.NoError(t, err)
	assert.Equal(t, mustDls(t, 16, 36, 50, 10, 4), got)
}

func TestGoWestCrossesRange(t *testing.T) {
	// Subdivision 4 of section 6 touches the township's west boundary.
	got, err := mustDls(t, 4, 6, 50, 10, 4).GoWest()
	require.NoError(t, err)
	assert.Equal(t, mustDls(t, 1, 1, 50, 11, 4), got)
}

func TestGoEastCrossesRange(t *testing.T) {
	got, err := mustDls(t, 1, 1, 50, 11, 4).GoEast()
	require.NoError(t, err)
	assert.Equal(t, mustDls(t, 4, 6, 50, 10, 4), got)
}

func TestGoEastAtMeridianFails(t *testing.T) {
	_, err := mustDls(t, 1, 1, 50, 1, 4).GoEast()
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestGoWestAtCoverageLimitFails(t *testing.T) {
	_, err := mustDls(t, 4, 6, 50, 34, 4).GoWest()
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestGoSouthAtBaselineFails(t *testing.T) {
	_, err := mustDls(t, 1, 1, 1, 10, 4).GoSouth()
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestNavigatorRejectsInvalidReference(t *testing.T) {
	d := DlsSystem{LegalSubdivision: 0, Section: 1, Township: 1, Range: 1, Direction: WestOfMeridian, Meridian: 1}
	_, err := d.GoNorth()
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestNavigatorRoundTrips(t *testing.T) {
	start := mustDls(t, 7, 15, 50, 10, 4)

	north, err := start.GoNorth()
	require.NoError(t, err)
	back, err := north.GoSouth()
	require.NoError(t, err)
	assert.Equal(t, start, back)

	west, err := start.GoWest()
	require.NoError(t, err)
	back, err = west.GoEast()
	require.NoError(t, err)
	assert.Equal(t, start, back)
}

func TestFourStepsPreserveSubdivision(t *testing.T) {
	// Four subdivision steps in one direction cross exactly one section
	// and land on the same subdivision number; the boustrophedon numbering
	// makes the two grids line up.
	d := mustDls(t, 7, 15, 50, 10, 4)
	for i := 0; i < 4; i++ {
		var err error
		d, err = d.GoNorth()
		require.NoError(t, err)
	}
	want, err := stepSection(mustDls(t, 7, 15, 50, 10, 4), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, want, d)
	assert.Equal(t, uint8(7), d.LegalSubdivision)
}
