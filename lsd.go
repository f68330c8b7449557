package surveygrid

import "fmt"

// Legal subdivisions split a section into a 4x4 grid numbered in the same
// boustrophedon pattern as sections within a township: 1 starts at the
// southeast, the bottom row runs west, the next row runs back east, and so
// on up to 16 at the northeast.
//
// lsdCell maps a subdivision number (minus one) to its cell position:
// column counted westward from the east boundary, row counted northward
// from the south boundary.
var lsdCell = [maxLegalSubdivision]struct{ col, row int }{
	{0, 0}, {1, 0}, {2, 0}, {3, 0}, // 1-4, west across the south row
	{3, 1}, {2, 1}, {1, 1}, {0, 1}, // 5-8, back east
	{0, 2}, {1, 2}, {2, 2}, {3, 2}, // 9-12
	{3, 3}, {2, 3}, {1, 3}, {0, 3}, // 13-16
}

// lsdFraction returns the position of a subdivision's center within its
// section as fractions of the section extent: x westward from the east
// boundary, y northward from the south boundary. Cell centers sit at odd
// eighths, so for example subdivision 7 is at (0.375, 0.375).
func lsdFraction(lsd uint8) (x, y float64, err error) {
	if lsd < 1 || lsd > maxLegalSubdivision {
		return 0, 0, fmt.Errorf("legal subdivision %d: %w", lsd, ErrValueOutOfRange)
	}
	cell := lsdCell[lsd-1]
	return (float64(cell.col) + 0.5) / 4, (float64(cell.row) + 0.5) / 4, nil
}

// interpolatePosition maps a fractional position inside a section onto the
// ground by bilinear interpolation of the four corner markers: the south
// and north edges are each interpolated at x, then blended at y. All four
// corners must be populated; reconstruct partial sections first.
func interpolatePosition(sc SectionCorners, x, y float64) LatLongCoordinate {
	southLat := float64(sc.SouthEast.Latitude) + x*(float64(sc.SouthWest.Latitude)-float64(sc.SouthEast.Latitude))
	southLng := float64(sc.SouthEast.Longitude) + x*(float64(sc.SouthWest.Longitude)-float64(sc.SouthEast.Longitude))
	northLat := float64(sc.NorthEast.Latitude) + x*(float64(sc.NorthWest.Latitude)-float64(sc.NorthEast.Latitude))
	northLng := float64(sc.NorthEast.Longitude) + x*(float64(sc.NorthWest.Longitude)-float64(sc.NorthEast.Longitude))
	return LatLongCoordinate{
		Latitude:  float32(southLat + y*(northLat-southLat)),
		Longitude: float32(southLng + y*(northLng-southLng)),
	}
}
