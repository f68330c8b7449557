package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RaysceneNS/surveygrid"
)

var locateCmd = &cobra.Command{
	Use:   "locate <lat,lng>...",
	Short: "Find the grid reference containing a coordinate",
	Long: `Finds the DLS grid reference whose center best matches each
coordinate. Coordinates are decimal degrees, latitude first.

Examples:
  gridconv locate 56.08892,-118.519379
  gridconv locate --nts 56.7,-121.1
  gridconv locate "49.354435, -114.524994" 54.1,-113.5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().Bool("nts", false, "report a BC NTS reference instead of DLS")
	rootCmd.AddCommand(locateCmd)
}

func parseCoordinate(s string) (surveygrid.LatLongCoordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return surveygrid.LatLongCoordinate{}, eris.Errorf("coordinate %q: want lat,lng", s)
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return surveygrid.LatLongCoordinate{}, eris.Errorf("coordinate %q: want lat,lng", s)
	}
	return surveygrid.NewLatLongCoordinate(float32(lat), float32(lng)), nil
}

func runLocate(cmd *cobra.Command, args []string) error {
	nts, _ := cmd.Flags().GetBool("nts")

	conv, err := newConverter()
	if err != nil {
		return err
	}

	for _, arg := range args {
		pos, err := parseCoordinate(arg)
		if err != nil {
			return err
		}

		var ref fmt.Stringer
		if nts {
			ref, err = surveygrid.NtsFromLatLong(pos)
		} else {
			var d surveygrid.DlsSystem
			d, err = conv.FromLatLong(pos)
			if errors.Is(err, surveygrid.ErrNoConvergence) {
				// Best-effort reference is still usable, just flagged.
				zap.L().Warn("search bound exhausted", zap.String("coordinate", arg),
					zap.String("best", d.String()))
				err = nil
			}
			ref = d
		}
		if err != nil {
			return eris.Wrapf(err, "locate %q", arg)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, ref)
	}
	return nil
}
