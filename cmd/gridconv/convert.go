package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RaysceneNS/surveygrid"
)

var convertCmd = &cobra.Command{
	Use:   "convert <reference>...",
	Short: "Convert grid references to geographic coordinates",
	Long: `Converts one or more grid references to latitude and longitude.

DLS references ("04-11-082-04 W6"), NTS references ("B-096-H/094-A-15"),
federal permit references ("F016-6040-11445") and 16-character unique well
identifiers ("100/04-11-082-04W6/00") are all accepted; the format is
detected from the reference itself.

Examples:
  gridconv convert "04-11-082-04 W6"
  gridconv convert "B-096-H/094-A-15" "100041108204W600"
  gridconv convert --dms --geohash "07-06-005-04 W5"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.Bool("dms", false, "print degrees-minutes-seconds instead of decimal degrees")
	f.Int("geohash", 0, "also print a geohash of the given precision")
	rootCmd.AddCommand(convertCmd)
}

// parseLocation detects the reference format and parses it.
func parseLocation(s string) (surveygrid.GridLocation, error) {
	t := strings.TrimSpace(s)
	if w, err := surveygrid.ParseWellIdentifier(t); err == nil {
		return w, nil
	}
	if d, err := surveygrid.ParseDls(t); err == nil {
		return d, nil
	}
	if n, err := surveygrid.ParseNts(t); err == nil {
		return n, nil
	}
	if p, err := surveygrid.ParseFederalPermit(t); err == nil {
		return p, nil
	}
	return nil, eris.Errorf("unrecognized grid reference %q", s)
}

func runConvert(cmd *cobra.Command, args []string) error {
	dms, _ := cmd.Flags().GetBool("dms")
	geohashLen, _ := cmd.Flags().GetInt("geohash")

	conv, err := newConverter()
	if err != nil {
		return err
	}

	for _, arg := range args {
		loc, err := parseLocation(arg)
		if err != nil {
			return err
		}

		var pos surveygrid.LatLongCoordinate
		switch l := loc.(type) {
		case surveygrid.DlsSystem:
			// Route DLS through the configured converter so marker file
			// and search settings apply.
			pos, err = conv.ToLatLong(l)
		case *surveygrid.WellIdentifier:
			if d, ok := l.Location.(surveygrid.DlsSystem); ok {
				pos, err = conv.ToLatLong(d)
			} else {
				pos, err = l.ToLatLong()
			}
		default:
			pos, err = loc.ToLatLong()
		}
		if err != nil {
			return eris.Wrapf(err, "convert %q", arg)
		}
		zap.L().Debug("converted", zap.String("reference", arg), zap.String("position", pos.String()))

		out := pos.String()
		if dms {
			out = pos.ToDms()
		}
		if geohashLen > 0 {
			out += "  " + pos.GeoHash(geohashLen)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, out)
	}
	return nil
}
