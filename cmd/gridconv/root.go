package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RaysceneNS/surveygrid"
	"github.com/RaysceneNS/surveygrid/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "gridconv",
	Short: "Convert western Canada land survey grid references",
	Long: `Converts between geographic coordinates and land survey grid
references (DLS, BC NTS, federal permit) using a bundled dataset of
surveyed township boundary markers. Works fully offline.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newConverter assembles a GridConverter from the loaded configuration.
func newConverter() (*surveygrid.GridConverter, error) {
	store := surveygrid.DefaultStore()
	if cfg.Markers.File != "" {
		var provider surveygrid.MarkerProvider = surveygrid.NewFileProvider(cfg.Markers.File)
		if cfg.Markers.Cache {
			provider = surveygrid.NewCachedProvider(provider)
		}
		store = surveygrid.NewMarkerStoreWithProvider(provider)
		zap.L().Debug("using external marker file",
			zap.String("file", cfg.Markers.File), zap.Bool("cache", cfg.Markers.Cache))
	}

	opts := []surveygrid.ConverterOption{
		surveygrid.WithStore(store),
		surveygrid.WithMaxSteps(cfg.Locate.MaxSteps),
	}
	if cfg.Locate.SpatialIndex {
		ix, err := surveygrid.NewTownshipIndex(store)
		if err != nil {
			return nil, fmt.Errorf("build township index: %w", err)
		}
		opts = append(opts, surveygrid.WithTownshipIndex(ix))
		zap.L().Debug("township index built", zap.Int("townships", ix.Size()))
	}
	return surveygrid.NewGridConverter(opts...), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
