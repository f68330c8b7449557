package surveygrid

import (
	"fmt"
	"strings"
)

// GridLocation is a surface location expressed in one of the supported
// survey systems.
type GridLocation interface {
	// ToLatLong returns the geographic position of the location.
	ToLatLong() (LatLongCoordinate, error)
}

// Survey system codes used in unique well identifiers.
const (
	SurveySystemDls byte = '1'
	SurveySystemNts byte = '2'
)

// WellIdentifier is a parsed unique well identifier (UWI). The sixteen
// character identifier carries a survey system code, a location exception
// code, the surface location in that survey system, and an event sequence.
type WellIdentifier struct {
	SurveySystem      byte
	LocationException string
	EventSequence     string
	Location          GridLocation
}

// String renders the identifier in the display form with slashes,
// e.g. "100/04-11-082-04W6/00" or "200/B-096-H 094-A-15/00".
func (w *WellIdentifier) String() string {
	var loc string
	switch l := w.Location.(type) {
	case DlsSystem:
		loc = fmt.Sprintf("%02d-%02d-%03d-%02d%c%d",
			l.LegalSubdivision, l.Section, l.Township, l.Range, l.Direction, l.Meridian)
	case NtsSystem:
		loc = fmt.Sprintf("%c-%03d-%c %03d-%c-%02d",
			l.QuarterUnit, l.Unit, l.Block, l.Series, l.Area, l.Sheet)
	default:
		loc = fmt.Sprint(w.Location)
	}
	return fmt.Sprintf("%c%s/%s/%s", w.SurveySystem, w.LocationException, loc, w.EventSequence)
}

// ToLatLong returns the geographic position of the well's surface location.
func (w *WellIdentifier) ToLatLong() (LatLongCoordinate, error) {
	return w.Location.ToLatLong()
}

// ParseWellIdentifier reads a unique well identifier in either the display
// form ("100/04-11-082-04W6/00") or the packed sixteen character form
// ("100041108204W600"). DLS and NTS survey systems are supported.
func ParseWellIdentifier(s string) (*WellIdentifier, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	packed := strings.NewReplacer("/", "", "-", "", " ", "").Replace(t)
	if len(packed) != 16 {
		return nil, fmt.Errorf("well identifier %q: want 16 characters, have %d: %w",
			s, len(packed), ErrValueOutOfRange)
	}

	w := &WellIdentifier{
		SurveySystem:      packed[0],
		LocationException: packed[1:3],
		EventSequence:     packed[14:16],
	}
	switch w.SurveySystem {
	case SurveySystemDls:
		// Positions 3..13: LLSSTTTRRWM (lsd, section, township, range,
		// direction, meridian).
		lsd, err1 := atoi8(packed[3:5])
		sec, err2 := atoi8(packed[5:7])
		twp, err3 := atoi8(packed[7:10])
		rng, err4 := atoi8(packed[10:12])
		mer, err5 := atoi8(packed[13:14])
		if err := firstErr(err1, err2, err3, err4, err5); err != nil {
			return nil, fmt.Errorf("well identifier %q: %w", s, err)
		}
		loc, err := NewDlsSystem(lsd, sec, twp, rng, MeridianDirection(packed[12]), mer)
		if err != nil {
			return nil, fmt.Errorf("well identifier %q: %w", s, err)
		}
		w.Location = loc
	case SurveySystemNts:
		// Positions 3..14: QUUUBSSSAHH (quarter, unit, block, series,
		// area, sheet).
		unit, err1 := atoi8(packed[4:7])
		series, err2 := atoi8(packed[8:11])
		sheet, err3 := atoi8(packed[12:14])
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, fmt.Errorf("well identifier %q: %w", s, err)
		}
		loc, err := NewNtsSystem(packed[3], unit, packed[7], series, packed[11], sheet)
		if err != nil {
			return nil, fmt.Errorf("well identifier %q: %w", s, err)
		}
		w.Location = loc
	default:
		return nil, fmt.Errorf("well identifier %q: survey system %q: %w",
			s, w.SurveySystem, ErrValueOutOfRange)
	}
	return w, nil
}

func atoi8(s string) (uint8, error) {
	var v uint16
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("digit field %q: %w", s, ErrValueOutOfRange)
		}
		v = v*10 + uint16(c-'0')
		if v > 255 {
			return 0, fmt.Errorf("digit field %q: %w", s, ErrValueOutOfRange)
		}
	}
	return uint8(v), nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
