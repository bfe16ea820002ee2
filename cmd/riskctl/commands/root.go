package commands

import (
	"github.com/spf13/cobra"

	"github.com/procurelens/supplier-risk/internal/config"
	"github.com/procurelens/supplier-risk/internal/monitoring"
)

var rootCmd = &cobra.Command{
	Use:   "riskctl",
	Short: "Supplier risk scoring engine",
	Long: `riskctl scores suppliers for supply-chain risk.

It fits the preprocessing transformers from a training set, runs the
pre-trained classifier over supplier records, and produces risk levels,
class probabilities, per-category risk breakdowns and prioritized
recommendations.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves configuration once per command invocation
func loadConfig() (*config.Config, *monitoring.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, monitoring.NewLogger(cfg.LogLevel), nil
}
