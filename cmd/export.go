package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zhyangithub/eataway-router/internal/adapters/repositories"
	"github.com/Zhyangithub/eataway-router/internal/export"
	"github.com/Zhyangithub/eataway-router/internal/platform/db"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the last run's results to a spreadsheet",
	RunE:  exportResults,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default rutter_YYYYMMDD.xlsx)")
	rootCmd.AddCommand(exportCmd)
}

func exportResults(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, dialect, err := db.Open(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	store := repositories.NewSQLStateStore(database, dialect)
	results, err := store.LoadResults(ctx)
	if err != nil {
		return err
	}
	if results == nil {
		return errors.New("no stored results; run `eataway-router run` or trigger a run first")
	}

	workbook, err := export.Workbook(cfg.Drivers, *results)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = fmt.Sprintf("rutter_%s.xlsx", time.Now().Format("20060102"))
	}
	if err := os.WriteFile(out, workbook, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", out, err)
	}
	cmd.Printf("wrote %s\n", out)
	return nil
}
