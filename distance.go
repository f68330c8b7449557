package surveygrid

import (
	"errors"
	"math"

	"github.com/golang/geo/s2"
)

// WGS-84 ellipsoid.
const (
	semiMajorAxis = 6378137.0
	flattening    = 1 / 298.257223563
	semiMinorAxis = semiMajorAxis * (1 - flattening)

	// Mean radius used for the spherical distance.
	earthRadiusMeters = 6371008.8
)

// GreatCircleDistanceTo returns the spherical distance to o in meters.
// Good to about 0.5% against the ellipsoid, and cheap enough to rank
// candidates with in a search loop.
func (c LatLongCoordinate) GreatCircleDistanceTo(o LatLongCoordinate) float64 {
	a := s2.LatLngFromDegrees(float64(c.Latitude), float64(c.Longitude))
	b := s2.LatLngFromDegrees(float64(o.Latitude), float64(o.Longitude))
	return a.Distance(b).Radians() * earthRadiusMeters
}

// VincentyDistanceTo returns the geodesic distance to o in meters on the
// WGS-84 ellipsoid. The iteration can fail to converge for nearly antipodal
// points, in which case an error is returned and the spherical distance
// should be used instead.
func (c LatLongCoordinate) VincentyDistanceTo(o LatLongCoordinate) (float64, error) {
	lat1 := float64(c.Latitude) * math.Pi / 180
	lat2 := float64(o.Latitude) * math.Pi / 180
	dLng := (float64(o.Longitude) - float64(c.Longitude)) * math.Pi / 180

	u1 := math.Atan((1 - flattening) * math.Tan(lat1))
	u2 := math.Atan((1 - flattening) * math.Tan(lat2))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := dLng
	var sinSigma, cosSigma, sigma, cosSqAlpha, cos2SigmaM float64
	for i := 0; ; i++ {
		if i > 200 {
			return 0, errors.New("vincenty iteration did not converge")
		}
		sinLambda, cosLambda := math.Sincos(lambda)
		sinSigma = math.Sqrt(math.Pow(cosU2*sinLambda, 2) +
			math.Pow(cosU1*sinU2-sinU1*cosU2*cosLambda, 2))
		if sinSigma == 0 {
			return 0, nil // coincident points
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha == 0 {
			cos2SigmaM = 0 // equatorial line
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}
		cc := flattening / 16 * cosSqAlpha * (4 + flattening*(4-3*cosSqAlpha))
		prev := lambda
		lambda = dLng + (1-cc)*flattening*sinAlpha*
			(sigma+cc*sinSigma*(cos2SigmaM+cc*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda-prev) < 1e-12 {
			break
		}
	}

	uSq := cosSqAlpha * (semiMajorAxis*semiMajorAxis - semiMinorAxis*semiMinorAxis) /
		(semiMinorAxis * semiMinorAxis)
	aa := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bb := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := bb * sinSigma * (cos2SigmaM + bb/4*
		(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			bb/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return semiMinorAxis * aa * (sigma - deltaSigma), nil
}
