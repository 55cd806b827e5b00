// Package main is the adreport command: a web service and offline tools for
// turning ad-campaign exports into daily reports.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aerissecure/adreport/internal/config"
	"github.com/aerissecure/adreport/internal/logging"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:           "adreport",
	Short:         "Build daily reports from ad-campaign spreadsheet exports",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Setup(os.Stderr, logLevel, logFormat)
	},
}

func init() {
	defaults, err := config.Load()
	if err != nil {
		// Bad environment is reported by serve; fall back to built-in defaults here.
		defaults, _ = config.LoadFrom(map[string]string{})
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", defaults.LogFormat, "Log format (text, json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(filterCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("adreport failed.")
		os.Exit(1)
	}
}
