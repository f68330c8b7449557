package surveygrid

import (
	"fmt"
	"strconv"
	"strings"
)

// FederalPermitSystem is a Canada Lands grid reference as used on federal
// oil and gas permits. A grid area spans 10 minutes of latitude by 15
// minutes of longitude and is named by the latitude and longitude of its
// southeast corner. Grid areas divide into 100 sections (ten rows of ten,
// counted from the southeast) and sections into 16 units lettered A-P
// boustrophedon from the southeast.
type FederalPermitSystem struct {
	Unit       byte
	Section    uint8
	LatDegrees uint8
	LatMinutes uint8
	LonDegrees uint8
	LonMinutes uint8
}

const (
	permitAreaHeight    = 10.0 / 60 // degrees
	permitAreaWidth     = 15.0 / 60
	permitSectionHeight = permitAreaHeight / 10
	permitSectionWidth  = permitAreaWidth / 10
	permitUnitHeight    = permitSectionHeight / 4
	permitUnitWidth     = permitSectionWidth / 4
)

// NewFederalPermitSystem builds a validated permit reference.
func NewFederalPermitSystem(unit byte, section uint8, latDeg, latMin, lonDeg, lonMin uint8) (FederalPermitSystem, error) {
	p := FederalPermitSystem{
		Unit:       unit,
		Section:    section,
		LatDegrees: latDeg,
		LatMinutes: latMin,
		LonDegrees: lonDeg,
		LonMinutes: lonMin,
	}
	if err := p.Validate(); err != nil {
		return FederalPermitSystem{}, err
	}
	return p, nil
}

// Validate checks every field against its legal domain. Grid area minutes
// must sit on the grid: latitude on 10-minute, longitude on 15-minute
// multiples.
func (p FederalPermitSystem) Validate() error {
	switch {
	case p.Unit < 'A' || p.Unit > 'P':
		return fmt.Errorf("unit %q: %w", p.Unit, ErrValueOutOfRange)
	case p.Section < 1 || p.Section > 100:
		return fmt.Errorf("section %d: %w", p.Section, ErrValueOutOfRange)
	case p.LatDegrees < 40 || p.LatDegrees > 85 || p.LatMinutes%10 != 0 || p.LatMinutes >= 60:
		return fmt.Errorf("grid area latitude %d°%d': %w", p.LatDegrees, p.LatMinutes, ErrValueOutOfRange)
	case p.LonDegrees < 42 || p.LonDegrees > 141 || p.LonMinutes%15 != 0 || p.LonMinutes >= 60:
		return fmt.Errorf("grid area longitude %d°%d': %w", p.LonDegrees, p.LonMinutes, ErrValueOutOfRange)
	}
	return nil
}

// String renders the reference in a fixed-width form: unit, section, grid
// area latitude, grid area longitude, e.g. "F016-6040-11445".
func (p FederalPermitSystem) String() string {
	return fmt.Sprintf("%c%03d-%02d%02d-%03d%02d",
		p.Unit, p.Section, p.LatDegrees, p.LatMinutes, p.LonDegrees, p.LonMinutes)
}

// ParseFederalPermit reads a permit reference in the form produced by
// String.
func ParseFederalPermit(s string) (FederalPermitSystem, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	parts := strings.Split(t, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 4 || len(parts[2]) != 5 {
		return FederalPermitSystem{}, fmt.Errorf("permit reference %q: want USSS-DDMM-DDDMM: %w", s, ErrValueOutOfRange)
	}
	section, err1 := strconv.ParseUint(parts[0][1:], 10, 8)
	latDeg, err2 := strconv.ParseUint(parts[1][:2], 10, 8)
	latMin, err3 := strconv.ParseUint(parts[1][2:], 10, 8)
	lonDeg, err4 := strconv.ParseUint(parts[2][:3], 10, 8)
	lonMin, err5 := strconv.ParseUint(parts[2][3:], 10, 8)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return FederalPermitSystem{}, fmt.Errorf("permit reference %q: %w", s, ErrValueOutOfRange)
	}
	return NewFederalPermitSystem(parts[0][0], uint8(section),
		uint8(latDeg), uint8(latMin), uint8(lonDeg), uint8(lonMin))
}

// ToLatLong returns the center of the reference's unit.
func (p FederalPermitSystem) ToLatLong() (LatLongCoordinate, error) {
	if err := p.Validate(); err != nil {
		return LatLongCoordinate{}, err
	}
	lat := float64(p.LatDegrees) + float64(p.LatMinutes)/60
	lng := -(float64(p.LonDegrees) + float64(p.LonMinutes)/60)

	lat += permitSectionHeight * float64((p.Section-1)/10)
	lng -= permitSectionWidth * float64((p.Section-1)%10)

	col, row := serpentineCell(int(p.Unit-'A'), 4)
	lat += permitUnitHeight * float64(row)
	lng -= permitUnitWidth * float64(col)

	return LatLongCoordinate{
		Latitude:  float32(lat + permitUnitHeight/2),
		Longitude: float32(lng - permitUnitWidth/2),
	}, nil
}

// PermitFromLatLong returns the permit reference containing a coordinate.
func PermitFromLatLong(c LatLongCoordinate) (FederalPermitSystem, error) {
	lat, lng := float64(c.Latitude), float64(-c.Longitude)
	if lat < 40 || lat >= 86 || lng < 42 || lng >= 142 {
		return FederalPermitSystem{}, fmt.Errorf("coordinate %v outside permit coverage: %w", c, ErrOutOfRegion)
	}

	latDeg := int(lat)
	latMin := (int((lat - float64(latDeg)) * 60) / 10) * 10
	lonDeg := int(lng)
	lonMin := (int((lng - float64(lonDeg)) * 60) / 15) * 15

	latOff := lat - float64(latDeg) - float64(latMin)/60
	lngOff := lng - float64(lonDeg) - float64(lonMin)/60

	secRow := clamp(int(latOff/permitSectionHeight), 0, 9)
	secCol := clamp(int(lngOff/permitSectionWidth), 0, 9)
	section := uint8(1 + secRow*10 + secCol)

	latOff -= permitSectionHeight * float64(secRow)
	lngOff -= permitSectionWidth * float64(secCol)
	unitRow := clamp(int(latOff/permitUnitHeight), 0, 3)
	unitCol := clamp(int(lngOff/permitUnitWidth), 0, 3)
	unit := byte('A' + serpentineIndex(unitCol, unitRow, 4))

	return NewFederalPermitSystem(unit, section, uint8(latDeg), uint8(latMin), uint8(lonDeg), uint8(lonMin))
}
