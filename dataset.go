package surveygrid

import (
	"compress/bzip2"
	"embed"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"
)

// The marker dataset ships inside the binary. Records are fixed-size and
// little-endian: a two byte township key followed by 36 sections of four
// corners (SE, SW, NW, NE), each corner a float32 latitude and longitude.
// A (0, 0) corner means the monument was never surveyed. The blob is bzip2
// compressed; cmd/packmarkers rebuilds it from the source CSV.

//go:embed surveygrid-data/markers.bin.bz2
var embeddedMarkers embed.FS

const markerDataPath = "surveygrid-data/markers.bin.bz2"

const (
	sectionsPerTownship = 36
	cornersPerSection   = 4
	markerRecordSize    = 2 + sectionsPerTownship*cornersPerSection*2*4

	// Number of township records in the bundled blob. A short read of the
	// embedded data fails loading rather than silently shrinking coverage.
	townshipRecordCount = 591
)

// decodeMarkerRecords reads fixed-size township records from r until EOF.
// A stream ending mid-record, a duplicate key, or a section whose surveyed
// corners are not laid out plausibly all fail with ErrDatasetIntegrity.
func decodeMarkerRecords(r io.Reader) (map[uint16]*TownshipRecord, error) {
	table := make(map[uint16]*TownshipRecord, townshipRecordCount)
	buf := make([]byte, markerRecordSize)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			if err == io.EOF {
				return table, nil
			}
			return nil, fmt.Errorf("record %d truncated: %w", len(table), ErrDatasetIntegrity)
		}
		key := binary.LittleEndian.Uint16(buf)
		if _, dup := table[key]; dup {
			return nil, fmt.Errorf("duplicate township key %#04x: %w", key, ErrDatasetIntegrity)
		}

		rec := new(TownshipRecord)
		off := 2
		for s := 0; s < sectionsPerTownship; s++ {
			for c := CornerSouthEast; c <= CornerNorthEast; c++ {
				lat := math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
				lng := math.Float32frombits(binary.LittleEndian.Uint32(buf[off+4:]))
				off += 8
				rec[s].set(c, LatLongCoordinate{Latitude: lat, Longitude: lng})
			}
			if err := checkSectionMarkers(rec[s]); err != nil {
				m, rg, tw := decodeTownshipKey(key)
				return nil, fmt.Errorf("township %d-%d W%d section %d: %w", tw, rg, m, s+1, err)
			}
		}
		table[key] = rec
	}
}

// checkSectionMarkers rejects fully surveyed sections whose monuments are
// not ordered the way the grid lays them out: north corners above south
// corners, west corners west of east corners. Partially surveyed sections
// are accepted as-is.
func checkSectionMarkers(sc SectionCorners) error {
	if sc.KnownCount() < cornersPerSection {
		return nil
	}
	if sc.NorthEast.Latitude <= sc.SouthEast.Latitude ||
		sc.NorthWest.Latitude <= sc.SouthWest.Latitude {
		return fmt.Errorf("north corners not north of south corners: %w", ErrDatasetIntegrity)
	}
	if sc.SouthWest.Longitude >= sc.SouthEast.Longitude ||
		sc.NorthWest.Longitude >= sc.NorthEast.Longitude {
		return fmt.Errorf("west corners not west of east corners: %w", ErrDatasetIntegrity)
	}
	return nil
}

// EncodeMarkerRecords writes township records in the dataset record format,
// keys ascending so rebuilt blobs are reproducible. The output is raw;
// compress it with bzip2 before embedding or serving it to a FileProvider.
func EncodeMarkerRecords(w io.Writer, table map[uint16]*TownshipRecord) error {
	keys := make([]uint16, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	buf := make([]byte, markerRecordSize)
	for _, key := range keys {
		binary.LittleEndian.PutUint16(buf, key)
		off := 2
		rec := table[key]
		for s := 0; s < sectionsPerTownship; s++ {
			for c := CornerSouthEast; c <= CornerNorthEast; c++ {
				m := rec[s].At(c)
				binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(m.Latitude))
				binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(m.Longitude))
				off += 8
			}
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write record %#04x: %w", key, err)
		}
	}
	return nil
}

// TownshipKey exposes the composite key packing for tools that build or
// inspect marker datasets.
func TownshipKey(meridian, rangeNum, township uint8) (uint16, error) {
	return encodeTownshipKey(meridian, rangeNum, township)
}

// loadEmbeddedMarkers decompresses and decodes the bundled dataset.
func loadEmbeddedMarkers() (map[uint16]*TownshipRecord, error) {
	f, err := embeddedMarkers.Open(markerDataPath)
	if err != nil {
		return nil, fmt.Errorf("open embedded marker data: %w", err)
	}
	defer f.Close()

	table, err := decodeMarkerRecords(bzip2.NewReader(f))
	if err != nil {
		return nil, err
	}
	if len(table) != townshipRecordCount {
		return nil, fmt.Errorf("decoded %d township records, want %d: %w",
			len(table), townshipRecordCount, ErrDatasetIntegrity)
	}
	return table, nil
}
