package surveygrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNtsValidate(t *testing.T) {
	_, err := NewNtsSystem('B', 96, 'H', 94, 'A', 15)
	assert.NoError(t, err)

	cases := []struct {
		name string
		n    NtsSystem
	}{
		{"quarter", NtsSystem{'E', 96, 'H', 94, 'A', 15}},
		{"unit zero", NtsSystem{'B', 0, 'H', 94, 'A', 15}},
		{"unit high", NtsSystem{'B', 101, 'H', 94, 'A', 15}},
		{"block", NtsSystem{'B', 96, 'M', 94, 'A', 15}},
		{"series", NtsSystem{'B', 96, 'H', 97, 'A', 15}},
		{"area", NtsSystem{'B', 96, 'H', 94, 'Q', 15}},
		{"sheet", NtsSystem{'B', 96, 'H', 94, 'A', 17}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.n.Validate(), ErrValueOutOfRange)
		})
	}
}

func TestNtsString(t *testing.T) {
	n, err := NewNtsSystem('B', 96, 'H', 94, 'A', 15)
	require.NoError(t, err)
	assert.Equal(t, "B-096-H/094-A-15", n.String())
}

func TestParseNts(t *testing.T) {
	want, err := NewNtsSystem('B', 96, 'H', 94, 'A', 15)
	require.NoError(t, err)
	for _, s := range []string{
		"B-096-H/094-A-15",
		"b-96-h/94-a-15",
		"B-096-H 094-A-15",
	} {
		got, err := ParseNts(s)
		require.NoError(t, err, "input %q", s)
		assert.Equal(t, want, got, "input %q", s)
	}

	_, err = ParseNts("B-096-H/094-A")
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestNtsToLatLong(t *testing.T) {
	n, err := NewNtsSystem('B', 96, 'H', 94, 'A', 15)
	require.NoError(t, err)

	pos, err := n.ToLatLong()
	require.NoError(t, err)
	assert.InDelta(t, 56.9104167, float64(pos.Latitude), 1e-4)
	assert.InDelta(t, -120.571875, float64(pos.Longitude), 1e-4)
}

func TestNtsSheetCornersNest(t *testing.T) {
	// Sheet 1 of area A starts at the series southeast corner; unit 1,
	// quarter A of block A sits in its southeast corner.
	n, err := NewNtsSystem('A', 1, 'A', 94, 'A', 1)
	require.NoError(t, err)
	pos, err := n.ToLatLong()
	require.NoError(t, err)
	assert.InDelta(t, 56.0, float64(pos.Latitude), 0.01)
	assert.InDelta(t, -120.0, float64(pos.Longitude), 0.01)
}

func TestNtsFromLatLongRoundTrip(t *testing.T) {
	refs := []NtsSystem{
		{'B', 96, 'H', 94, 'A', 15},
		{'A', 1, 'A', 82, 'J', 1},
		{'D', 100, 'L', 93, 'P', 16},
		{'C', 55, 'F', 104, 'C', 7},
	}
	for _, ref := range refs {
		pos, err := ref.ToLatLong()
		require.NoError(t, err, "forward %s", ref)

		got, err := NtsFromLatLong(pos)
		require.NoError(t, err, "inverse %s", ref)
		assert.Equal(t, ref, got, "round trip %s", ref)
	}
}

func TestNtsFromLatLongOutOfRegion(t *testing.T) {
	_, err := NtsFromLatLong(NewLatLongCoordinate(20, -120))
	assert.ErrorIs(t, err, ErrOutOfRegion)
	_, err = NtsFromLatLong(NewLatLongCoordinate(56, -50))
	assert.ErrorIs(t, err, ErrOutOfRegion)
}
