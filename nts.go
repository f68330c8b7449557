package surveygrid

import (
	"fmt"
	"strconv"
	"strings"
)

// NtsSystem is a National Topographic System grid reference as used for
// well locations in British Columbia, e.g. B-096-H/094-A-15. Unlike the
// township grid, the NTS grid is defined purely by latitude and longitude
// arithmetic, so conversion needs no marker data.
//
// The nesting, largest cell to smallest: a numbered series (4° of latitude
// by 8° of longitude), a lettered area A-P (1° by 2°), a numbered sheet
// 1-16 (15' by 30'), a lettered block A-L (5' by 7.5'), a numbered unit
// 1-100 (30" by 45") and a lettered quarter unit A-D. Lettered and sheet
// subdivisions number boustrophedon from the southeast corner; units run
// in plain rows from the southeast.
type NtsSystem struct {
	QuarterUnit byte
	Unit        uint8
	Block       byte
	Series      uint8
	Area        byte
	Sheet       uint8
}

// NTS cell extents in degrees.
const (
	ntsSeriesHeight = 4.0
	ntsSeriesWidth  = 8.0
	ntsAreaHeight   = 1.0
	ntsAreaWidth    = 2.0
	ntsSheetHeight  = ntsAreaHeight / 4
	ntsSheetWidth   = ntsAreaWidth / 4
	ntsBlockHeight  = ntsSheetHeight / 3
	ntsBlockWidth   = ntsSheetWidth / 4
	ntsUnitHeight   = ntsBlockHeight / 10
	ntsUnitWidth    = ntsBlockWidth / 10
)

// NewNtsSystem builds a validated NTS reference.
func NewNtsSystem(quarterUnit byte, unit uint8, block byte, series uint8, area byte, sheet uint8) (NtsSystem, error) {
	n := NtsSystem{
		QuarterUnit: quarterUnit,
		Unit:        unit,
		Block:       block,
		Series:      series,
		Area:        area,
		Sheet:       sheet,
	}
	if err := n.Validate(); err != nil {
		return NtsSystem{}, err
	}
	return n, nil
}

// Validate checks every field against its legal domain.
func (n NtsSystem) Validate() error {
	switch {
	case n.QuarterUnit < 'A' || n.QuarterUnit > 'D':
		return fmt.Errorf("quarter unit %q: %w", n.QuarterUnit, ErrValueOutOfRange)
	case n.Unit < 1 || n.Unit > 100:
		return fmt.Errorf("unit %d: %w", n.Unit, ErrValueOutOfRange)
	case n.Block < 'A' || n.Block > 'L':
		return fmt.Errorf("block %q: %w", n.Block, ErrValueOutOfRange)
	case n.Series%10 < 1 || n.Series%10 > 6 || n.Series/10 < 1 || n.Series/10 > 12:
		return fmt.Errorf("series %d: %w", n.Series, ErrValueOutOfRange)
	case n.Area < 'A' || n.Area > 'P':
		return fmt.Errorf("area %q: %w", n.Area, ErrValueOutOfRange)
	case n.Sheet < 1 || n.Sheet > 16:
		return fmt.Errorf("sheet %d: %w", n.Sheet, ErrValueOutOfRange)
	}
	return nil
}

// String renders the reference in the conventional well-location form,
// e.g. "B-096-H/094-A-15".
func (n NtsSystem) String() string {
	return fmt.Sprintf("%c-%03d-%c/%03d-%c-%02d",
		n.QuarterUnit, n.Unit, n.Block, n.Series, n.Area, n.Sheet)
}

// ParseNts reads an NTS reference in the form produced by String. Leading
// zeros are optional.
func ParseNts(s string) (NtsSystem, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	t = strings.NewReplacer("/", "-", " ", "-").Replace(t)
	parts := strings.Split(t, "-")
	if len(parts) != 6 {
		return NtsSystem{}, fmt.Errorf("nts reference %q: want qtr-unit-blk/series-area-sheet: %w", s, ErrValueOutOfRange)
	}
	if len(parts[0]) != 1 || len(parts[2]) != 1 || len(parts[4]) != 1 {
		return NtsSystem{}, fmt.Errorf("nts reference %q: %w", s, ErrValueOutOfRange)
	}
	unit, err1 := strconv.ParseUint(parts[1], 10, 8)
	series, err2 := strconv.ParseUint(parts[3], 10, 8)
	sheet, err3 := strconv.ParseUint(parts[5], 10, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return NtsSystem{}, fmt.Errorf("nts reference %q: %w", s, ErrValueOutOfRange)
	}
	return NewNtsSystem(parts[0][0], uint8(unit), parts[2][0], uint8(series), parts[4][0], uint8(sheet))
}

// serpentineCell maps a zero-based index in a boustrophedon grid of the
// given width to (col, row), columns counted westward from the east edge.
func serpentineCell(idx, width int) (col, row int) {
	row = idx / width
	col = idx % width
	if row%2 == 1 {
		col = width - 1 - col
	}
	return col, row
}

func serpentineIndex(col, row, width int) int {
	if row%2 == 1 {
		col = width - 1 - col
	}
	return row*width + col
}

// southEastCorner returns the latitude and east longitude of the
// reference's quarter unit.
func (n NtsSystem) southEastCorner() (lat, lng float64) {
	lat = 40 + ntsSeriesHeight*float64(n.Series%10)
	lng = -(48 + ntsSeriesWidth*float64(n.Series/10))

	col, row := serpentineCell(int(n.Area-'A'), 4)
	lat += ntsAreaHeight * float64(row)
	lng -= ntsAreaWidth * float64(col)

	col, row = serpentineCell(int(n.Sheet-1), 4)
	lat += ntsSheetHeight * float64(row)
	lng -= ntsSheetWidth * float64(col)

	col, row = serpentineCell(int(n.Block-'A'), 4)
	lat += ntsBlockHeight * float64(row)
	lng -= ntsBlockWidth * float64(col)

	// Units run in plain rows from the southeast, no direction reversal.
	lat += ntsUnitHeight * float64((n.Unit-1)/10)
	lng -= ntsUnitWidth * float64((n.Unit-1)%10)

	switch n.QuarterUnit {
	case 'B': // southwest
		lng -= ntsUnitWidth / 2
	case 'C': // northwest
		lat += ntsUnitHeight / 2
		lng -= ntsUnitWidth / 2
	case 'D': // northeast
		lat += ntsUnitHeight / 2
	}
	return lat, lng
}

// ToLatLong returns the center of the reference's quarter unit.
func (n NtsSystem) ToLatLong() (LatLongCoordinate, error) {
	if err := n.Validate(); err != nil {
		return LatLongCoordinate{}, err
	}
	lat, lng := n.southEastCorner()
	return LatLongCoordinate{
		Latitude:  float32(lat + ntsUnitHeight/4),
		Longitude: float32(lng - ntsUnitWidth/4),
	}, nil
}

// NtsFromLatLong returns the NTS reference containing a coordinate.
func NtsFromLatLong(c LatLongCoordinate) (NtsSystem, error) {
	lat, lng := float64(c.Latitude), float64(c.Longitude)
	if lat < 44 || lat >= 68 || lng >= -56 || lng < -144 {
		return NtsSystem{}, fmt.Errorf("coordinate %v outside nts coverage: %w", c, ErrOutOfRegion)
	}

	latIdx := int((lat - 40) / ntsSeriesHeight)
	lngIdx := int((-lng - 48) / ntsSeriesWidth)
	series := uint8(lngIdx*10 + latIdx)
	lat -= 40 + ntsSeriesHeight*float64(latIdx)
	lng += 48 + ntsSeriesWidth*float64(lngIdx)
	lng = -lng // westward offset within the series, now positive

	area := byte('A' + serpentineIndex(int(lng/ntsAreaWidth), int(lat/ntsAreaHeight), 4))
	lat -= ntsAreaHeight * float64(int(lat/ntsAreaHeight))
	lng -= ntsAreaWidth * float64(int(lng/ntsAreaWidth))

	sheet := uint8(1 + serpentineIndex(int(lng/ntsSheetWidth), int(lat/ntsSheetHeight), 4))
	lat -= ntsSheetHeight * float64(int(lat/ntsSheetHeight))
	lng -= ntsSheetWidth * float64(int(lng/ntsSheetWidth))

	block := byte('A' + serpentineIndex(int(lng/ntsBlockWidth), int(lat/ntsBlockHeight), 4))
	lat -= ntsBlockHeight * float64(int(lat/ntsBlockHeight))
	lng -= ntsBlockWidth * float64(int(lng/ntsBlockWidth))

	unit := uint8(1 + 10*int(lat/ntsUnitHeight) + int(lng/ntsUnitWidth))
	lat -= ntsUnitHeight * float64(int(lat/ntsUnitHeight))
	lng -= ntsUnitWidth * float64(int(lng/ntsUnitWidth))

	quarter := byte('A')
	west := lng >= ntsUnitWidth/2
	north := lat >= ntsUnitHeight/2
	switch {
	case west && north:
		quarter = 'C'
	case west:
		quarter = 'B'
	case north:
		quarter = 'D'
	}

	return NewNtsSystem(quarter, unit, block, series, area, sheet)
}
