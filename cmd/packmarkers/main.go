// Command packmarkers rebuilds the binary marker dataset from a CSV of
// surveyed boundary monuments.
//
// Usage:
//
//	go run ./cmd/packmarkers -in markers.csv -out surveygrid-data/markers.bin
//
// The CSV carries one monument per row:
//
//	meridian,range,township,section,corner,latitude,longitude
//
// with corner one of SE, SW, NW, NE. After running, compress the output in
// place:
//
//	bzip2 -f surveygrid-data/markers.bin
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/RaysceneNS/surveygrid"
)

var cornerNames = map[string]surveygrid.Corner{
	"SE": surveygrid.CornerSouthEast,
	"SW": surveygrid.CornerSouthWest,
	"NW": surveygrid.CornerNorthWest,
	"NE": surveygrid.CornerNorthEast,
}

func main() {
	in := flag.String("in", "markers.csv", "input CSV of boundary monuments")
	out := flag.String("out", "surveygrid-data/markers.bin", "output dataset (uncompressed)")
	flag.Parse()

	if err := run(*in, *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Run 'bzip2 -f %s' to compress the dataset.\n", *out)
}

func run(inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer f.Close()

	table, rows, err := readMarkers(csv.NewReader(f))
	if err != nil {
		return err
	}

	o, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := surveygrid.EncodeMarkerRecords(o, table); err != nil {
		o.Close()
		return err
	}
	if err := o.Close(); err != nil {
		return err
	}
	fmt.Printf("Packed %d monuments into %d township records.\n", rows, len(table))
	return nil
}

func readMarkers(r *csv.Reader) (map[uint16]*surveygrid.TownshipRecord, int, error) {
	r.FieldsPerRecord = 7
	table := make(map[uint16]*surveygrid.TownshipRecord)
	rows := 0
	for line := 1; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			return table, rows, nil
		}
		if err != nil {
			return nil, 0, err
		}
		if line == 1 && row[0] == "meridian" {
			continue // header
		}

		var fields [4]uint8
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseUint(row[i], 10, 8)
			if err != nil {
				return nil, 0, fmt.Errorf("line %d: field %q: %v", line, row[i], err)
			}
			fields[i] = uint8(v)
		}
		corner, ok := cornerNames[row[4]]
		if !ok {
			return nil, 0, fmt.Errorf("line %d: corner %q", line, row[4])
		}
		lat, err1 := strconv.ParseFloat(row[5], 32)
		lng, err2 := strconv.ParseFloat(row[6], 32)
		if err1 != nil || err2 != nil {
			return nil, 0, fmt.Errorf("line %d: bad coordinate %q,%q", line, row[5], row[6])
		}

		key, err := surveygrid.TownshipKey(fields[0], fields[1], fields[2])
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %v", line, err)
		}
		if fields[3] < 1 || fields[3] > 36 {
			return nil, 0, fmt.Errorf("line %d: section %d", line, fields[3])
		}
		rec := table[key]
		if rec == nil {
			rec = new(surveygrid.TownshipRecord)
			table[key] = rec
		}
		setCorner(rec, fields[3], corner, float32(lat), float32(lng))
		rows++
	}
}

func setCorner(rec *surveygrid.TownshipRecord, section uint8, c surveygrid.Corner, lat, lng float32) {
	m := surveygrid.NewLatLongCoordinate(lat, lng)
	switch c {
	case surveygrid.CornerSouthEast:
		rec[section-1].SouthEast = m
	case surveygrid.CornerSouthWest:
		rec[section-1].SouthWest = m
	case surveygrid.CornerNorthWest:
		rec[section-1].NorthWest = m
	case surveygrid.CornerNorthEast:
		rec[section-1].NorthEast = m
	}
}
