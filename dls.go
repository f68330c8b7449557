package surveygrid

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// MeridianDirection tells which side of its numbered meridian a range lies
// on. The bundled dataset covers the west side only; east references parse
// and validate but cannot be converted.
type MeridianDirection byte

const (
	WestOfMeridian MeridianDirection = 'W'
	EastOfMeridian MeridianDirection = 'E'
)

// DlsSystem is a Dominion Land Survey grid reference down to the legal
// subdivision, e.g. 04-11-082-04 W6.
type DlsSystem struct {
	LegalSubdivision uint8
	Section          uint8
	Township         uint8
	Range            uint8
	Direction        MeridianDirection
	Meridian         uint8
}

// NewDlsSystem builds a validated grid reference.
func NewDlsSystem(lsd, section, township, rangeNum uint8, dir MeridianDirection, meridian uint8) (DlsSystem, error) {
	d := DlsSystem{
		LegalSubdivision: lsd,
		Section:          section,
		Township:         township,
		Range:            rangeNum,
		Direction:        dir,
		Meridian:         meridian,
	}
	if err := d.Validate(); err != nil {
		return DlsSystem{}, err
	}
	return d, nil
}

// Validate checks every field against its legal domain.
func (d DlsSystem) Validate() error {
	switch {
	case d.LegalSubdivision < 1 || d.LegalSubdivision > maxLegalSubdivision:
		return fmt.Errorf("legal subdivision %d: %w", d.LegalSubdivision, ErrValueOutOfRange)
	case d.Section < 1 || d.Section > maxSection:
		return fmt.Errorf("section %d: %w", d.Section, ErrValueOutOfRange)
	case d.Township < 1 || d.Township > maxTownship:
		return fmt.Errorf("township %d: %w", d.Township, ErrValueOutOfRange)
	case d.Range < 1 || d.Range > maxRange:
		return fmt.Errorf("range %d: %w", d.Range, ErrValueOutOfRange)
	case d.Direction != WestOfMeridian && d.Direction != EastOfMeridian:
		return fmt.Errorf("meridian direction %q: %w", d.Direction, ErrValueOutOfRange)
	case d.Meridian < 1 || d.Meridian > maxMeridian:
		return fmt.Errorf("meridian %d: %w", d.Meridian, ErrValueOutOfRange)
	}
	return nil
}

// String renders the reference in the conventional dashed form,
// e.g. "04-11-082-04 W6".
func (d DlsSystem) String() string {
	return fmt.Sprintf("%02d-%02d-%03d-%02d %c%d",
		d.LegalSubdivision, d.Section, d.Township, d.Range, d.Direction, d.Meridian)
}

// ParseDls reads a grid reference in the dashed form produced by String.
// The separator between range and meridian may be a space, a dash, or
// nothing: "04-11-082-04W6" and "4-11-82-4 W6" both parse.
func ParseDls(s string) (DlsSystem, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	t = strings.NewReplacer(" ", "-", "/", "-").Replace(t)
	// Split the meridian block off the last field if it is fused on,
	// e.g. "04W6" -> "04", "W6".
	if i := strings.IndexAny(t, "WE"); i > 0 && t[i-1] != '-' {
		t = t[:i] + "-" + t[i:]
	}
	parts := strings.Split(t, "-")
	if len(parts) != 5 {
		return DlsSystem{}, fmt.Errorf("grid reference %q: want lsd-sec-twp-rge-mer: %w", s, ErrValueOutOfRange)
	}
	mer := parts[4]
	if len(mer) != 2 || (mer[0] != 'W' && mer[0] != 'E') {
		return DlsSystem{}, fmt.Errorf("meridian %q: %w", mer, ErrValueOutOfRange)
	}

	var fields [5]uint8
	for i, p := range append(parts[:4:4], mer[1:]) {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return DlsSystem{}, fmt.Errorf("grid reference %q field %d: %w", s, i+1, ErrValueOutOfRange)
		}
		fields[i] = uint8(v)
	}
	return NewDlsSystem(fields[0], fields[1], fields[2], fields[3], MeridianDirection(mer[0]), fields[4])
}

// GridConverter converts between grid references and geographic
// coordinates. A zero-argument NewGridConverter uses the bundled dataset;
// options swap the store, bound the inverse search, or attach a spatial
// index for snapping coordinates that fall between surveyed townships.
type GridConverter struct {
	store    *MarkerStore
	maxSteps int
	index    *TownshipIndex
}

// ConverterOption configures a GridConverter.
type ConverterOption func(*GridConverter)

// WithStore directs lookups at a custom marker store.
func WithStore(s *MarkerStore) ConverterOption {
	return func(gc *GridConverter) { gc.store = s }
}

// WithMaxSteps bounds the inverse search walk. Zero forbids any refinement
// beyond the analytic estimate.
func WithMaxSteps(n int) ConverterOption {
	return func(gc *GridConverter) { gc.maxSteps = n }
}

// WithTownshipIndex attaches a spatial index used to snap coordinates onto
// the nearest surveyed township when the analytic estimate lands outside
// coverage.
func WithTownshipIndex(ix *TownshipIndex) ConverterOption {
	return func(gc *GridConverter) { gc.index = ix }
}

const defaultMaxSteps = 200

// NewGridConverter builds a converter. Without options it uses the shared
// default store and a search bound generous enough for any in-region
// coordinate.
func NewGridConverter(opts ...ConverterOption) *GridConverter {
	gc := &GridConverter{store: DefaultStore(), maxSteps: defaultMaxSteps}
	for _, o := range opts {
		o(gc)
	}
	return gc
}

var (
	defaultConverter     *GridConverter
	defaultConverterOnce sync.Once
)

func getDefaultConverter() *GridConverter {
	defaultConverterOnce.Do(func() {
		defaultConverter = NewGridConverter()
	})
	return defaultConverter
}

// ToLatLong converts the reference through the shared default converter.
func (d DlsSystem) ToLatLong() (LatLongCoordinate, error) {
	return getDefaultConverter().ToLatLong(d)
}

// FromLatLong finds the grid reference containing a coordinate using the
// shared default converter.
func FromLatLong(c LatLongCoordinate) (DlsSystem, error) {
	return getDefaultConverter().FromLatLong(c)
}

// ToLatLong returns the ground position of the center of the reference's
// legal subdivision. Surveyed markers anchor the result; townships or
// sections missing from the dataset fall back to the nominal grid geometry.
func (gc *GridConverter) ToLatLong(d DlsSystem) (LatLongCoordinate, error) {
	if err := d.Validate(); err != nil {
		return LatLongCoordinate{}, err
	}
	if d.Direction != WestOfMeridian {
		return LatLongCoordinate{}, fmt.Errorf("%s: east-of-meridian ranges are outside dataset coverage: %w",
			d, ErrOutOfRegion)
	}

	corners, ok, err := gc.store.BoundaryMarkers(d.Section, d.Township, d.Range, d.Meridian)
	if err != nil {
		return LatLongCoordinate{}, fmt.Errorf("%s: %w", d, err)
	}
	if !ok || corners.KnownCount() == 0 {
		// No survey data for this section. Anchor a synthetic southeast
		// corner on the nominal grid and let reconstruction do the rest.
		se, err := nominalSectionCorner(d)
		if err != nil {
			return LatLongCoordinate{}, fmt.Errorf("%s: %w", d, err)
		}
		corners = SectionCorners{SouthEast: se}
	}

	full, err := ReconstructCorners(corners)
	if err != nil {
		return LatLongCoordinate{}, fmt.Errorf("%s: %w", d, err)
	}
	x, y, err := lsdFraction(d.LegalSubdivision)
	if err != nil {
		return LatLongCoordinate{}, fmt.Errorf("%s: %w", d, err)
	}
	return interpolatePosition(full, x, y), nil
}
