package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/procurelens/supplier-risk/internal/dataset"
	"github.com/procurelens/supplier-risk/internal/features"
	"github.com/procurelens/supplier-risk/internal/supplier"
)

var (
	fitInput  string
	fitOutput string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit preprocessing transformers from a training CSV",
	Long: `Fits the imputer medians and categorical vocabularies over a training
set and writes them to a transformers artifact. The artifact is loaded
read-only at prediction time; classifier training itself is out of scope
and happens in the modelling pipeline.

Example:
  riskctl fit --input data/raw/suppliers_data.csv --output models/transformers.json`,
	RunE: runFit,
}

func init() {
	rootCmd.AddCommand(fitCmd)

	fitCmd.Flags().StringVar(&fitInput, "input", "", "training CSV file (required)")
	fitCmd.Flags().StringVar(&fitOutput, "output", "", "artifact path (default from config)")
	fitCmd.MarkFlagRequired("input")
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	output := fitOutput
	if output == "" {
		output = cfg.TransformersPath
	}

	start := time.Now()

	records, err := dataset.LoadCSV(fitInput)
	if err != nil {
		logger.Error("Failed to load training set", "error", err, "path", fitInput)
		return err
	}

	artifact, err := features.FitTransformers(records)
	if err != nil {
		logger.Error("Failed to fit transformers", "error", err)
		return err
	}

	if err := features.SaveTransformers(output, artifact); err != nil {
		logger.Error("Failed to save transformers", "error", err, "path", output)
		return err
	}

	logger.FitLogger(len(records), len(features.AllNumericColumns), len(supplier.CategoricalColumns), time.Since(start))
	logger.Info("Transformers artifact written", "path", output)

	return nil
}
