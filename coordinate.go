package surveygrid

import (
	"fmt"
	"math"

	"github.com/TomiHiltunen/geohash-golang"
)

// LatLongCoordinate is a geodetic position in decimal degrees, positive
// north and east. Marker positions are stored at single precision in the
// bundled dataset, so the fields are float32; a coordinate recovered from
// the dataset compares exactly against another read of the same record.
//
// The zero value doubles as the "no marker" sentinel used by the dataset
// encoding. (0°N 0°E is in the Gulf of Guinea, far outside the surveyed
// region, so no real marker collides with it.)
type LatLongCoordinate struct {
	Latitude  float32
	Longitude float32
}

// NewLatLongCoordinate builds a coordinate from decimal degree values.
func NewLatLongCoordinate(latitude, longitude float32) LatLongCoordinate {
	return LatLongCoordinate{Latitude: latitude, Longitude: longitude}
}

// IsZero reports whether the coordinate is the absent-marker sentinel.
func (c LatLongCoordinate) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// GeoHash returns the geohash cell containing the coordinate at the given
// character precision.
func (c LatLongCoordinate) GeoHash(precision int) string {
	return geohash.EncodeWithPrecision(float64(c.Latitude), float64(c.Longitude), precision)
}

// ToDms formats the coordinate as degrees, minutes and decimal seconds with
// hemisphere suffixes, e.g. 56°5'20.11"N 118°31'9.76"W.
func (c LatLongCoordinate) ToDms() string {
	latD, latM, latS := AngleFromDegrees(math.Abs(float64(c.Latitude))).Dms()
	lngD, lngM, lngS := AngleFromDegrees(math.Abs(float64(c.Longitude))).Dms()

	latH := "N"
	if c.Latitude < 0 {
		latH = "S"
	}
	lngH := "E"
	if c.Longitude < 0 {
		lngH = "W"
	}
	return fmt.Sprintf("%d°%d'%.2f\"%s %d°%d'%.2f\"%s", latD, latM, latS, latH, lngD, lngM, lngS, lngH)
}

func (c LatLongCoordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}
