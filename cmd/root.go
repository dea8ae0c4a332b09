// Package cmd holds the eataway-router CLI. Every command is a thin
// caller of the pipeline; none of them reimplement it.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Zhyangithub/eataway-router/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "eataway-router",
	Short:        "Daily delivery route generation for the warehouse roster",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads .env first so secrets like the directions API key
// can live outside the config file.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load(cfgPath)
}
