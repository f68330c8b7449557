package surveygrid

import "fmt"

// Grid reference field limits.
const (
	maxMeridian         = 8
	maxRange            = 34
	maxTownship         = 127
	maxSection          = 36
	maxLegalSubdivision = 16
)

// Township keys pack meridian, range and township into a uint16:
// bits 15-13 hold meridian-1, bits 12-7 hold range, bits 6-0 hold township.
// The packing gives every surveyed township a distinct key and keeps the
// dataset record header at two bytes.

// encodeTownshipKey packs a (meridian, range, township) triple into its
// composite key. Fields outside their legal domains are rejected.
func encodeTownshipKey(meridian, rangeNum, township uint8) (uint16, error) {
	if meridian < 1 || meridian > maxMeridian {
		return 0, fmt.Errorf("meridian %d: %w", meridian, ErrValueOutOfRange)
	}
	if rangeNum < 1 || rangeNum > maxRange {
		return 0, fmt.Errorf("range %d: %w", rangeNum, ErrValueOutOfRange)
	}
	if township < 1 || township > maxTownship {
		return 0, fmt.Errorf("township %d: %w", township, ErrValueOutOfRange)
	}
	return uint16(meridian-1)<<13 | uint16(rangeNum)<<7 | uint16(township), nil
}

// decodeTownshipKey unpacks a composite key. Any uint16 decodes without
// error; keys never produced by encodeTownshipKey simply name townships
// that no dataset record carries.
func decodeTownshipKey(key uint16) (meridian, rangeNum, township uint8) {
	meridian = uint8(key>>13) + 1
	rangeNum = uint8(key >> 7 & 0x3f)
	township = uint8(key & 0x7f)
	return meridian, rangeNum, township
}
