package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zhyangithub/eataway-router/internal/adapters/directions"
	"github.com/Zhyangithub/eataway-router/internal/domain"
	"github.com/Zhyangithub/eataway-router/internal/platform/logger"
	"github.com/Zhyangithub/eataway-router/internal/services"
	"github.com/Zhyangithub/eataway-router/internal/tabular"
)

var runDriver string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate routes once and print the itineraries",
	RunE:  runOnce,
}

func init() {
	runCmd.Flags().StringVar(&runDriver, "driver", "", "only run for this driver")
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	optimizer, err := directions.NewClient(cfg.Directions.APIKey, nil, logger.New("directions"))
	if err != nil {
		return err
	}

	runner := &services.Runner{
		Tables: tabular.FileSource{
			CoordinatesPath: cfg.Tables.Coordinates,
			RoutesPath:      cfg.Tables.Routes,
		},
		Optimizer:     optimizer,
		Warehouse:     domain.Coordinate{Lat: cfg.Warehouse.Lat, Lng: cfg.Warehouse.Lng},
		MaxWaypoints:  cfg.Pipeline.MaxWaypointsPerLink,
		HeaderMarker:  cfg.Pipeline.HeaderMarker,
		HeaderScanRow: cfg.Pipeline.HeaderScanRows,
		Log:           logger.New("pipeline"),
	}

	roster := cfg.Drivers
	if runDriver != "" {
		roster = []string{runDriver}
	}

	results := runner.RunAll(ctx, roster)
	printResults(cmd, roster, results)
	return nil
}

func printResults(cmd *cobra.Command, roster []string, results domain.RunResults) {
	drivers := append([]string(nil), roster...)
	sort.Strings(drivers)

	for _, driver := range drivers {
		res := results.Drivers[driver]
		cmd.Printf("== %s ==\n", driver)
		if !res.OK() {
			cmd.Printf("no route: %s\n\n", res.Error)
			continue
		}

		cmd.Printf("%d stops, %d min, %.1f km\n", len(res.Stops), res.Stats.DurationMinutes, res.Stats.DistanceKm)
		for i, s := range res.Stops {
			cmd.Printf("%2d. %s\n", i+1, s.Name)
		}
		for i, link := range res.NavLinks {
			cmd.Printf("segment %d: %s\n", i+1, link)
		}
		if len(res.Unmatched) > 0 {
			cmd.Printf("unmatched (%d): %s\n", len(res.Unmatched), fmt.Sprint(res.Unmatched))
		}
		cmd.Println()
	}
}
