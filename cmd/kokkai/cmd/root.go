package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/kokkai/internal/app"
	"github.com/corey/kokkai/internal/config"
	"github.com/corey/kokkai/internal/logger"
)

var (
	logLevel  string
	logFormat string

	// cfg is loaded before every command runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "kokkai",
	Short:             "Speech clustering for parliamentary minutes",
	Long:              "Groups speeches by shared key phrases, assigns clips to topics, and aligns clips to the speeches they show.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

func loadConfig(cmd *cobra.Command, args []string) error {
	paths := app.NewPaths(projectRoot())
	c, err := config.Load(paths.Config, paths.EnvFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		c.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		c.Logging.Format = logFormat
	}
	logger.Setup(c.Logging.Level, c.Logging.Format, os.Stderr)
	cfg = c
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(clusterCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(alignCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(wipeCmd)
	rootCmd.AddCommand(configCmd)
}
