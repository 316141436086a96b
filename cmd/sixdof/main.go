package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/logging"
	"github.com/san-kum/sixdof/internal/storage"
)

var (
	settingsFile string
	dataDir      string
	logLevel     string

	settings *config.Settings
	log      zerolog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sixdof",
		Short:         "flight dynamics utilities and trajectory propagation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.LoadSettings(settingsFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data") {
				s.DataDir = dataDir
			}
			if cmd.Flags().Changed("log-level") {
				s.LogLevel = logLevel
			}
			settings = s
			log = logging.New(s.LogLevel, os.Stderr)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "./runs", "run directory for the file store")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn, error or trace")

	rootCmd.AddCommand(
		newRunCmd(), newListCmd(), newPlotCmd(), newExportCmd(), newLiveCmd(), newPresetsCmd(),
		newSweepCmd(), newAtmosCmd(), newGeoCmd(), newOrbitCmd(), newKeplerCmd(), newLookupCmd(), newNoiseCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openStore() (storage.Store, error) {
	return storage.Open(settings.Store.Backend, settings.DataDir, settings.Store.DSN, log)
}
