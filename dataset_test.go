package surveygrid

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestTable returns a small in-memory dataset with one fully surveyed
// township.
func buildTestTable(t *testing.T) map[uint16]*TownshipRecord {
	t.Helper()
	key, err := encodeTownshipKey(2, 3, 40)
	require.NoError(t, err)

	rec := new(TownshipRecord)
	for s := uint8(1); s <= maxSection; s++ {
		cell := sectionCell[s-1]
		lat := 52.0 + float64(cell.row)*sectionHeight
		lng := -103.0 - float64(cell.col)*sectionWidthAt(52.0)
		rec[s-1] = squareSection(lat, lng)
	}
	return map[uint16]*TownshipRecord{key: rec}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	table := buildTestTable(t)

	var buf bytes.Buffer
	require.NoError(t, EncodeMarkerRecords(&buf, table))
	assert.Equal(t, markerRecordSize, buf.Len())

	got, err := decodeMarkerRecords(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	for key, rec := range table {
		require.NotNil(t, got[key])
		assert.Equal(t, *rec, *got[key])
	}
}

func TestDecodeTruncatedRecord(t *testing.T) {
	table := buildTestTable(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeMarkerRecords(&buf, table))

	cut := bytes.NewReader(buf.Bytes()[:markerRecordSize-10])
	_, err := decodeMarkerRecords(cut)
	assert.True(t, errors.Is(err, ErrDatasetIntegrity), "got %v", err)
}

func TestDecodeDuplicateKey(t *testing.T) {
	table := buildTestTable(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeMarkerRecords(&buf, table))
	doubled := append(buf.Bytes(), buf.Bytes()...)

	_, err := decodeMarkerRecords(bytes.NewReader(doubled))
	assert.True(t, errors.Is(err, ErrDatasetIntegrity), "got %v", err)
}

func TestDecodeRejectsDisorderedCorners(t *testing.T) {
	table := buildTestTable(t)
	for _, rec := range table {
		// Swap east and west corners of one section.
		rec[10].SouthEast, rec[10].SouthWest = rec[10].SouthWest, rec[10].SouthEast
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeMarkerRecords(&buf, table))

	_, err := decodeMarkerRecords(&buf)
	assert.True(t, errors.Is(err, ErrDatasetIntegrity), "got %v", err)
}

func TestDecodeEmptyStream(t *testing.T) {
	got, err := decodeMarkerRecords(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckSectionMarkersPartial(t *testing.T) {
	// Partially surveyed sections are not subject to the ordering check.
	sc := SectionCorners{SouthEast: LatLongCoordinate{52, -103}}
	assert.NoError(t, checkSectionMarkers(sc))
}

func TestEmbeddedDatasetLoads(t *testing.T) {
	table, err := loadEmbeddedMarkers()
	require.NoError(t, err)
	assert.Len(t, table, townshipRecordCount)

	for key, rec := range table {
		meridian, rangeNum, township := decodeTownshipKey(key)
		assert.GreaterOrEqual(t, meridian, uint8(1))
		assert.LessOrEqual(t, meridian, uint8(maxMeridian))
		assert.GreaterOrEqual(t, rangeNum, uint8(1))
		assert.LessOrEqual(t, rangeNum, uint8(maxRange))
		assert.GreaterOrEqual(t, township, uint8(1))
		assert.LessOrEqual(t, township, uint8(maxTownship))
		require.NotNil(t, rec)
	}
}
