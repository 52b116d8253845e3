// Package cli implements the mention-radar commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mention-radar/config"
	"mention-radar/database"
)

// Version is stamped at build time with -ldflags "-X mention-radar/cli.Version=...".
var Version = "dev"

var configPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "mention-radar",
	Short: "Keyword mention monitoring dashboard",
	Long:  "Web dashboard, JSON API and tools for monitoring keyword mentions collected by a scraper.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file (overridden by $RADAR_CONFIG)")
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// openDatabase loads the config and initialises the shared connection.
func openDatabase() (config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if err := database.InitDB(cfg.Database); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
