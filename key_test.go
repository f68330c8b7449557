package surveygrid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTownshipKeyRoundTrip(t *testing.T) {
	for meridian := uint8(1); meridian <= maxMeridian; meridian++ {
		for rangeNum := uint8(1); rangeNum <= maxRange; rangeNum++ {
			for township := uint8(1); township <= maxTownship; township++ {
				key, err := encodeTownshipKey(meridian, rangeNum, township)
				require.NoError(t, err)
				m, r, tw := decodeTownshipKey(key)
				require.Equal(t, meridian, m)
				require.Equal(t, rangeNum, r)
				require.Equal(t, township, tw)
			}
		}
	}
}

func TestTownshipKeyDistinct(t *testing.T) {
	seen := make(map[uint16]bool)
	for meridian := uint8(1); meridian <= maxMeridian; meridian++ {
		for rangeNum := uint8(1); rangeNum <= maxRange; rangeNum++ {
			for township := uint8(1); township <= maxTownship; township++ {
				key, err := encodeTownshipKey(meridian, rangeNum, township)
				require.NoError(t, err)
				require.False(t, seen[key], "key collision at %d-%d-%d", meridian, rangeNum, township)
				seen[key] = true
			}
		}
	}
}

func TestTownshipKeyRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name                         string
		meridian, rangeNum, township uint8
	}{
		{"meridian zero", 0, 1, 1},
		{"meridian high", 9, 1, 1},
		{"range zero", 1, 0, 1},
		{"range high", 1, 35, 1},
		{"township zero", 1, 1, 0},
		{"township high", 1, 1, 128},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := encodeTownshipKey(tc.meridian, tc.rangeNum, tc.township)
			assert.True(t, errors.Is(err, ErrValueOutOfRange), "got %v", err)
		})
	}
}

func TestTownshipKeyKnownValue(t *testing.T) {
	// 82-4 W6: (6-1)<<13 | 4<<7 | 82.
	key, err := encodeTownshipKey(6, 4, 82)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xa252), key)
}
