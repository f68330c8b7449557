package surveygrid

import "fmt"

// Sections number boustrophedon within a township: 1 at the southeast
// corner, 6 at the southwest, 7 directly north of 6, and so on to 36 at the
// northeast. Like legal subdivisions, cell positions count the column
// westward from the east boundary and the row northward from the south
// boundary.

func sectionNumberAt(col, row int) uint8 {
	if row%2 == 0 {
		return uint8(row*6 + col + 1)
	}
	return uint8(row*6 + 6 - col)
}

// sectionCell is the inverse of sectionNumberAt, indexed by section-1.
var sectionCell [maxSection]struct{ col, row int }

func init() {
	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			sectionCell[sectionNumberAt(col, row)-1] = struct{ col, row int }{col, row}
		}
	}
}

func lsdNumberAt(col, row int) uint8 {
	if row%2 == 0 {
		return uint8(row*4 + col + 1)
	}
	return uint8(row*4 + 4 - col)
}

// stepSection moves a reference by whole sections. dCol counts sections
// westward, dRow northward; crossing a township edge carries into the
// neighboring township or range. The legal subdivision is preserved, which
// the boustrophedon numbering makes position-preserving.
func stepSection(d DlsSystem, dCol, dRow int) (DlsSystem, error) {
	cell := sectionCell[d.Section-1]
	col, row := cell.col+dCol, cell.row+dRow
	township, rangeNum := int(d.Township), int(d.Range)
	for row < 0 {
		row += 6
		township--
	}
	for row > 5 {
		row -= 6
		township++
	}
	for col < 0 {
		col += 6
		rangeNum--
	}
	for col > 5 {
		col -= 6
		rangeNum++
	}
	if township < 1 || township > maxTownship || rangeNum < 1 || rangeNum > maxRange {
		return DlsSystem{}, fmt.Errorf("step from %s leaves the grid: %w", d, ErrValueOutOfRange)
	}
	d.Section = sectionNumberAt(col, row)
	d.Township = uint8(township)
	d.Range = uint8(rangeNum)
	return d, nil
}

// stepLsd moves a reference by one legal subdivision. dCol counts westward,
// dRow northward; crossing a section edge carries into the neighbor.
func stepLsd(d DlsSystem, dCol, dRow int) (DlsSystem, error) {
	cell := lsdCell[d.LegalSubdivision-1]
	col, row := cell.col+dCol, cell.row+dRow
	dSecCol, dSecRow := 0, 0
	for col < 0 {
		col += 4
		dSecCol--
	}
	for col > 3 {
		col -= 4
		dSecCol++
	}
	for row < 0 {
		row += 4
		dSecRow--
	}
	for row > 3 {
		row -= 4
		dSecRow++
	}
	if dSecCol != 0 || dSecRow != 0 {
		var err error
		if d, err = stepSection(d, dSecCol, dSecRow); err != nil {
			return DlsSystem{}, err
		}
	}
	d.LegalSubdivision = lsdNumberAt(col, row)
	return d, nil
}

// GoNorth returns the reference one legal subdivision to the north,
// carrying across section and township boundaries as needed.
func (d DlsSystem) GoNorth() (DlsSystem, error) {
	if err := d.Validate(); err != nil {
		return DlsSystem{}, err
	}
	return stepLsd(d, 0, 1)
}

// GoSouth returns the reference one legal subdivision to the south.
func (d DlsSystem) GoSouth() (DlsSystem, error) {
	if err := d.Validate(); err != nil {
		return DlsSystem{}, err
	}
	return stepLsd(d, 0, -1)
}

// GoWest returns the reference one legal subdivision to the west. Crossing
// the west edge of range 34 leaves the grid and fails.
func (d DlsSystem) GoWest() (DlsSystem, error) {
	if err := d.Validate(); err != nil {
		return DlsSystem{}, err
	}
	return stepLsd(d, 1, 0)
}

// GoEast returns the reference one legal subdivision to the east. Crossing
// the east edge of range 1 would cross the meridian and fails; the grid is
// not continuous there.
func (d DlsSystem) GoEast() (DlsSystem, error) {
	if err := d.Validate(); err != nil {
		return DlsSystem{}, err
	}
	return stepLsd(d, -1, 0)
}
