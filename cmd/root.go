package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jkivimaki/orderintake/internal/config"
	"github.com/jkivimaki/orderintake/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

// rootCmd represents the base command for the orderintake application
var rootCmd = &cobra.Command{
	Use:   "orderintake",
	Short: "Turns order emails into Business Central sales orders",
	Long: `orderintake fetches order emails from a Gmail inbox, identifies sales
orders from the email text and attachment images using a vision model and
the product catalog, and posts the identified orders to Business Central.

The pipeline stages can be run individually (fetch, identify, post) or as
an agent-driven workflow (run).`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "orderintake version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration file and applies flag overrides, then
// installs the configured logger as the process default.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newIdentifyCmd())
	rootCmd.AddCommand(newPostCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())
}
