package surveygrid

import (
	"fmt"
	"math"
)

// meridianLongitudes holds the governing longitude of each numbered
// meridian. The first (prime) meridian was fixed just west of Winnipeg;
// the rest fall on even four-degree intervals.
var meridianLongitudes = [maxMeridian]float64{
	-97.45788889, -102, -106, -110, -114, -118, -122, -126,
}

// Coverage limits of the surveyed region.
const (
	westernLimit  = -130.0
	northernLimit = baseLatitude + maxTownship*townshipHeight
)

// estimateDls places a coordinate on the nominal grid: bucket the longitude
// into a meridian span, then divide the offsets from the meridian and the
// base latitude into ranges, townships, sections. The legal subdivision is
// pinned at 7, the cell nearest the section center, and left to the caller
// to refine. Coordinates outside the surveyed region fail with
// ErrOutOfRegion.
func estimateDls(c LatLongCoordinate) (DlsSystem, error) {
	lat, lng := float64(c.Latitude), float64(c.Longitude)
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return DlsSystem{}, fmt.Errorf("coordinate %v: %w", c, ErrValueOutOfRange)
	}
	if lat < baseLatitude || lat > northernLimit {
		return DlsSystem{}, fmt.Errorf("latitude %.5f outside %.5f..%.5f: %w",
			lat, baseLatitude, northernLimit, ErrOutOfRegion)
	}

	meridian := 0
	for i := 0; i < maxMeridian; i++ {
		west := westernLimit
		if i < maxMeridian-1 {
			west = meridianLongitudes[i+1]
		}
		if lng <= meridianLongitudes[i] && lng > west {
			meridian = i + 1
			break
		}
	}
	if meridian == 0 {
		return DlsSystem{}, fmt.Errorf("longitude %.5f outside meridian coverage: %w", lng, ErrOutOfRegion)
	}

	offLat := lat - baseLatitude
	township := clamp(int(offLat/townshipHeight)+1, 1, maxTownship)

	w := sectionWidthAt(lat)
	rangeWidth := 6 * w
	offLng := meridianLongitudes[meridian-1] - lng
	rangeNum := clamp(int(offLng/rangeWidth)+1, 1, maxRange)

	row := clamp(int((offLat-float64(township-1)*townshipHeight)/sectionHeight), 0, 5)
	col := clamp(int((offLng-float64(rangeNum-1)*rangeWidth)/w), 0, 5)

	return DlsSystem{
		LegalSubdivision: 7,
		Section:          sectionNumberAt(col, row),
		Township:         uint8(township),
		Range:            uint8(rangeNum),
		Direction:        WestOfMeridian,
		Meridian:         uint8(meridian),
	}, nil
}

// nominalSectionCorner places the southeast corner of a section on the
// nominal grid, the inverse of the arithmetic in estimateDls. Used when no
// surveyed marker anchors a section.
func nominalSectionCorner(d DlsSystem) (LatLongCoordinate, error) {
	if d.Direction != WestOfMeridian {
		return LatLongCoordinate{}, fmt.Errorf("%s: %w", d, ErrOutOfRegion)
	}
	cell := sectionCell[d.Section-1]
	lat := baseLatitude + float64(d.Township-1)*townshipHeight + float64(cell.row)*sectionHeight
	w := sectionWidthAt(lat)
	lng := meridianLongitudes[d.Meridian-1] - float64(d.Range-1)*6*w - float64(cell.col)*w
	return LatLongCoordinate{Latitude: float32(lat), Longitude: float32(lng)}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FromLatLong finds the grid reference whose center best matches the
// coordinate. The analytic estimate seeds a hill climb over neighboring
// sections (the legal subdivision stays at the central 7, the granularity
// the marker data can actually resolve); the walk stops at the first
// reference no neighbor improves on. If the step bound runs out first the
// best reference found is still returned alongside ErrNoConvergence.
func (gc *GridConverter) FromLatLong(c LatLongCoordinate) (DlsSystem, error) {
	best, err := estimateDls(c)
	if err != nil {
		return DlsSystem{}, err
	}

	// When the estimate falls in an unsurveyed township and a spatial
	// index is attached, restart the walk from the nearest township that
	// has markers.
	if gc.index != nil {
		if _, ok, lerr := gc.store.TownshipMarkers(best.Township, best.Range, best.Meridian); lerr == nil && !ok {
			if meridian, rangeNum, township, found := gc.index.NearestTownship(c); found {
				best.Meridian, best.Range, best.Township = meridian, rangeNum, township
			}
		}
	}

	bestDist := math.Inf(1)
	if pos, ferr := gc.ToLatLong(best); ferr == nil {
		bestDist = pos.GreatCircleDistanceTo(c)
	}

	// One section in each of the eight compass directions per round, best
	// candidate wins the round. Direction pairs are (north, west) steps.
	dirs := [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	for steps := 0; ; {
		improved := false
		for _, dir := range dirs {
			cand, serr := stepSection(best, dir[1], dir[0])
			if serr != nil {
				continue
			}
			pos, ferr := gc.ToLatLong(cand)
			if ferr != nil {
				continue
			}
			if d := pos.GreatCircleDistanceTo(c); d < bestDist {
				best, bestDist, improved = cand, d, true
			}
		}
		if !improved {
			return best, nil
		}
		steps++
		if steps >= gc.maxSteps {
			return best, fmt.Errorf("best %s after %d steps: %w", best, steps, ErrNoConvergence)
		}
	}
}
