package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath *string
var verbose *bool
var offline *string

var config Config

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "framedata.json5", "The config file to read, <name>.local.json5 overrides it.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages and dump HTTP traffic.")
	offline = rootCmd.PersistentFlags().String("offline", "", "Read pages from <dir>/<id>.html or <dir>/<id>.wiki instead of the wiki.")
}

var rootCmd = &cobra.Command{
	Use:   "framedata-cli",
	Short: "framedata-cli scrapes frame data from the supercombo wiki and looks moves up in it.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		InitTelemetry(cmd.Context(), *verbose)

		cfg, err := readConfig(*configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if *offline != "" {
			cfg.PagesDir = *offline
		}
		config = cfg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ShutdownTelemetry()
	},
	SilenceUsage: true,
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
