// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ecolens/carbon-csv/internal/config"
	"ecolens/carbon-csv/internal/logging"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input       string
	Output      string
	SaveHistory bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, populated in PersistentPreRun
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "carbon-csv",
		Short: "A CLI tool to estimate the carbon footprint of financial transactions.",
		Long: `carbon-csv reads transaction CSV files, classifies each purchase into an
emission category and estimates the carbon footprint in kg CO2e, with
benchmark comparisons and optional AI coaching.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to carbon-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
			logging.SetLogger(logging.NewLogrusAdapterFromLogger(Log))

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Error loading configuration: %v", err)
			}
			Cfg = cfg
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all persistent flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output directory for result documents")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.SaveHistory, "save-history", false, "Record the run in the local history database")
}
