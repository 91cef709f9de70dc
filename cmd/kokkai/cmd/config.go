package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/corey/kokkai/internal/app"
)

var configYAML bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows resolved paths and the effective settings after config file, .env and KOKKAI_* overrides.",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configYAML, "yaml", false, "Print the effective config as YAML (a valid config.yaml)")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configYAML {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	}

	paths := app.NewPaths(projectRoot())
	status := func(path string) string {
		if _, err := os.Stat(path); err == nil {
			return fmt.Sprintf("%s✓%s", colorGreen, colorReset)
		}
		return fmt.Sprintf("%s✗ missing%s", colorYellow, colorReset)
	}

	c := cfg.Cluster
	fmt.Printf("%s⚡ kokkai config%s\n", colorBold, colorReset)
	fmt.Printf("  Root:       %s\n", paths.Project)
	fmt.Printf("  DB:         %s %s\n", paths.DB, status(paths.DB))
	fmt.Printf("  Config:     %s %s\n", paths.Config, status(paths.Config))
	fmt.Printf("  Env:        %s %s\n", paths.EnvFile, status(paths.EnvFile))
	fmt.Printf("  Cluster:    core ≤ %.2f  sub ≤ %.2f  max %d  min-core %d  workers %d  clean %t\n",
		c.CoreThreshold, c.SubThreshold, c.MaxClusters, c.MinCoreSize, c.Workers, c.CleanText)
	fmt.Printf("  Match:      top %d  min-len %d\n", cfg.Match.TopK, cfg.Match.MinPhraseLen)
	fmt.Printf("  Logging:    %s %s\n", cfg.Logging.Level, cfg.Logging.Format)
	return nil
}
