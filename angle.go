package surveygrid

import (
	"fmt"
	"math"
)

// Angle is a planar angle stored in radians.
type Angle float64

// AngleFromDegrees converts decimal degrees to an Angle.
func AngleFromDegrees(deg float64) Angle {
	return Angle(deg * math.Pi / 180)
}

// AngleFromDms builds an Angle from degrees, minutes and seconds. The sign
// of the degrees component carries the hemisphere; minutes and seconds are
// magnitudes.
func AngleFromDms(degrees, minutes int, seconds float64) Angle {
	mag := math.Abs(float64(degrees)) + float64(minutes)/60 + seconds/3600
	if degrees < 0 {
		mag = -mag
	}
	return AngleFromDegrees(mag)
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 { return float64(a) }

// Degrees returns the angle in decimal degrees.
func (a Angle) Degrees() float64 { return float64(a) * 180 / math.Pi }

// Dms splits the angle into whole degrees, whole minutes and fractional
// seconds. For negative angles the degrees component is negative and the
// minute and second components are magnitudes.
func (a Angle) Dms() (degrees, minutes int, seconds float64) {
	deg := a.Degrees()
	neg := deg < 0
	deg = math.Abs(deg)

	degrees = int(deg)
	rem := (deg - float64(degrees)) * 60
	minutes = int(rem)
	seconds = (rem - float64(minutes)) * 60

	// Rounding at display precision can carry 59.9999... seconds over.
	if seconds >= 60-1e-6 {
		seconds = 0
		minutes++
	}
	if minutes >= 60 {
		minutes = 0
		degrees++
	}
	if neg {
		degrees = -degrees
	}
	return degrees, minutes, seconds
}

func (a Angle) String() string {
	d, m, s := a.Dms()
	return fmt.Sprintf("%d°%02d'%06.3f\"", d, m, s)
}
