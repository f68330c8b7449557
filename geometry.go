package surveygrid

import "fmt"

// Corner identifies one of the four survey monuments of a section. The
// ordinal order matches the dataset record layout.
type Corner uint8

const (
	CornerSouthEast Corner = iota
	CornerSouthWest
	CornerNorthWest
	CornerNorthEast
)

func (c Corner) String() string {
	switch c {
	case CornerSouthEast:
		return "SE"
	case CornerSouthWest:
		return "SW"
	case CornerNorthWest:
		return "NW"
	case CornerNorthEast:
		return "NE"
	}
	return fmt.Sprintf("Corner(%d)", uint8(c))
}

// SectionCorners holds the surveyed boundary monuments of one section.
// Corners never surveyed are the zero coordinate.
type SectionCorners struct {
	SouthEast LatLongCoordinate
	SouthWest LatLongCoordinate
	NorthWest LatLongCoordinate
	NorthEast LatLongCoordinate
}

// At returns the marker at the given corner.
func (sc SectionCorners) At(c Corner) LatLongCoordinate {
	switch c {
	case CornerSouthEast:
		return sc.SouthEast
	case CornerSouthWest:
		return sc.SouthWest
	case CornerNorthWest:
		return sc.NorthWest
	}
	return sc.NorthEast
}

func (sc *SectionCorners) set(c Corner, v LatLongCoordinate) {
	switch c {
	case CornerSouthEast:
		sc.SouthEast = v
	case CornerSouthWest:
		sc.SouthWest = v
	case CornerNorthWest:
		sc.NorthWest = v
	case CornerNorthEast:
		sc.NorthEast = v
	}
}

// KnownCount returns how many of the four corners carry surveyed markers.
func (sc SectionCorners) KnownCount() int {
	n := 0
	for c := CornerSouthEast; c <= CornerNorthEast; c++ {
		if !sc.At(c).IsZero() {
			n++
		}
	}
	return n
}

// TownshipRecord holds the marker sets for the 36 sections of one township,
// indexed by section number minus one.
type TownshipRecord [sectionsPerTownship]SectionCorners

// Section returns the corner markers for a section of the township.
func (t *TownshipRecord) Section(section uint8) (SectionCorners, error) {
	if section < 1 || section > maxSection {
		return SectionCorners{}, fmt.Errorf("section %d: %w", section, ErrValueOutOfRange)
	}
	return t[section-1], nil
}

// Township grid dimensions in decimal degrees. Townships are six miles on a
// side; the north-south extent is effectively constant while the east-west
// extent shrinks with latitude. Section width is interpolated linearly
// between reference widths at the south and north edges of the surveyed
// band, which tracks the cos(latitude) convergence to well within the
// spread of the surveyed monuments.
const (
	baseLatitude   = 49.0
	townshipHeight = 0.0873
	sectionHeight  = townshipHeight / 6

	sectionWidthSouth = 0.022178
	sectionWidthNorth = 0.029100
	widthRefLatSouth  = baseLatitude
	widthRefLatNorth  = baseLatitude + 126*townshipHeight
)

// sectionWidthAt returns the east-west extent of a section, in degrees of
// longitude, at the given latitude.
func sectionWidthAt(latitude float64) float64 {
	f := (latitude - widthRefLatSouth) / (widthRefLatNorth - widthRefLatSouth)
	return sectionWidthSouth + f*(sectionWidthNorth-sectionWidthSouth)
}

// offsetCorner displaces a marker by whole-section steps. dx counts sections
// westward, dy counts sections northward.
func offsetCorner(from LatLongCoordinate, dx, dy int) LatLongCoordinate {
	w := sectionWidthAt(float64(from.Latitude))
	return LatLongCoordinate{
		Latitude:  from.Latitude + float32(float64(dy)*sectionHeight),
		Longitude: from.Longitude - float32(float64(dx)*w),
	}
}

// parallelogramFourth derives the corner opposite to `missing` from the
// other three using the parallelogram identity: the two diagonals of a
// quadrilateral share a midpoint. All three source corners must be known.
func parallelogramFourth(sc SectionCorners, missing Corner) (LatLongCoordinate, error) {
	opposite := missing ^ 2 // diagonal
	adj1 := missing ^ 1     // same edge, other end
	adj2 := opposite ^ 1

	if sc.At(opposite).IsZero() || sc.At(adj1).IsZero() || sc.At(adj2).IsZero() {
		return LatLongCoordinate{}, fmt.Errorf("deriving %s corner needs the other three: %w",
			missing, ErrGeometryInconsistency)
	}
	return LatLongCoordinate{
		Latitude:  sc.At(adj1).Latitude + sc.At(adj2).Latitude - sc.At(opposite).Latitude,
		Longitude: sc.At(adj1).Longitude + sc.At(adj2).Longitude - sc.At(opposite).Longitude,
	}, nil
}

// ReconstructCorners fills in the missing corners of a partially surveyed
// section. With three known corners the fourth follows the parallelogram
// shape of the known three; with fewer, missing corners are placed one
// section step from a known corner. At least one corner must be known.
func ReconstructCorners(sc SectionCorners) (SectionCorners, error) {
	switch sc.KnownCount() {
	case 0:
		return SectionCorners{}, fmt.Errorf("no surveyed corners: %w", ErrGeometryInconsistency)
	case 4:
		return sc, nil
	case 3:
		for c := CornerSouthEast; c <= CornerNorthEast; c++ {
			if sc.At(c).IsZero() {
				v, err := parallelogramFourth(sc, c)
				if err != nil {
					return SectionCorners{}, err
				}
				sc.set(c, v)
				break
			}
		}
		return sc, nil
	}

	// One or two known corners: synthesize the rest from the nearest known
	// corner using nominal section dimensions. Corner grid positions,
	// counted westward and northward from the southeast corner:
	pos := [4][2]int{
		CornerSouthEast: {0, 0},
		CornerSouthWest: {1, 0},
		CornerNorthWest: {1, 1},
		CornerNorthEast: {0, 1},
	}
	for c := CornerSouthEast; c <= CornerNorthEast; c++ {
		if !sc.At(c).IsZero() {
			continue
		}
		// Prefer a known corner on a shared edge over the diagonal.
		best := CornerSouthEast
		bestDist := 99
		for k := CornerSouthEast; k <= CornerNorthEast; k++ {
			if sc.At(k).IsZero() {
				continue
			}
			d := abs(pos[c][0]-pos[k][0]) + abs(pos[c][1]-pos[k][1])
			if d < bestDist {
				best, bestDist = k, d
			}
		}
		sc.set(c, offsetCorner(sc.At(best), pos[c][0]-pos[best][0], pos[c][1]-pos[best][1]))
	}
	return sc, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
