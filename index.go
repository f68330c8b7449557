package surveygrid

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
)

// TownshipIndex is an R-tree over the bounding boxes of surveyed townships.
// It answers "which surveyed township is nearest this coordinate", which the
// inverse conversion uses to recover when a coordinate falls in a gap of
// the dataset. Queries are read-only and safe for concurrent use once the
// index is built.
type TownshipIndex struct {
	rtree *rtreego.Rtree
}

type townshipEntry struct {
	key            uint16
	minLat, minLng float64
	maxLat, maxLng float64
}

// Bounds implements rtreego.Spatial. Rectangles are (longitude, latitude)
// planes, matching the coordinate order used for query points. Extents are
// floored at a sub-centimeter epsilon: a township with a single surveyed
// monument has a degenerate bounding box, and NewRect rejects zero-length
// sides.
func (e townshipEntry) Bounds() rtreego.Rect {
	const minExtent = 1e-7
	rect, _ := rtreego.NewRect(
		rtreego.Point{e.minLng, e.minLat},
		[]float64{max(e.maxLng-e.minLng, minExtent), max(e.maxLat-e.minLat, minExtent)},
	)
	return rect
}

// NewTownshipIndex builds an index over every township the store's provider
// can enumerate. Providers that only answer point lookups cannot back an
// index and fail here.
func NewTownshipIndex(store *MarkerStore) (*TownshipIndex, error) {
	enum, ok := store.provider.(TownshipEnumerator)
	if !ok {
		return nil, fmt.Errorf("provider %T cannot enumerate townships", store.provider)
	}

	rtree := rtreego.NewTree(2, 25, 50)
	err := enum.EnumerateTownships(func(key uint16, rec *TownshipRecord) error {
		entry := townshipEntry{key: key, minLat: 91, minLng: 181, maxLat: -91, maxLng: -181}
		known := false
		for s := range rec {
			for c := CornerSouthEast; c <= CornerNorthEast; c++ {
				m := rec[s].At(c)
				if m.IsZero() {
					continue
				}
				known = true
				entry.minLat = min(entry.minLat, float64(m.Latitude))
				entry.maxLat = max(entry.maxLat, float64(m.Latitude))
				entry.minLng = min(entry.minLng, float64(m.Longitude))
				entry.maxLng = max(entry.maxLng, float64(m.Longitude))
			}
		}
		if known {
			rtree.Insert(entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("building township index: %w", err)
	}
	return &TownshipIndex{rtree: rtree}, nil
}

// Size returns the number of townships in the index.
func (ix *TownshipIndex) Size() int {
	return ix.rtree.Size()
}

// NearestTownship returns the surveyed township whose bounding box is
// nearest the coordinate. found is false only for an empty index.
func (ix *TownshipIndex) NearestTownship(c LatLongCoordinate) (meridian, rangeNum, township uint8, found bool) {
	nearest := ix.rtree.NearestNeighbor(rtreego.Point{float64(c.Longitude), float64(c.Latitude)})
	if nearest == nil {
		return 0, 0, 0, false
	}
	meridian, rangeNum, township = decodeTownshipKey(nearest.(townshipEntry).key)
	return meridian, rangeNum, township, true
}
