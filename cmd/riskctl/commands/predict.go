package commands

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/procurelens/supplier-risk/internal/dataset"
	"github.com/procurelens/supplier-risk/internal/predictor"
	"github.com/procurelens/supplier-risk/internal/store"
	"github.com/procurelens/supplier-risk/internal/supplier"
)

var (
	predictInput string
	predictSave  bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score supplier records with the loaded classifier",
	Long: `Loads the classifier, label codec and fitted transformers, scores the
input records and writes one JSON outcome per record to stdout. Records
with data errors (unknown category, missing field) fail individually
without aborting the batch.

The input may be a JSON object, a JSON array of objects, or a CSV file
with a header row.

Example:
  riskctl predict --input supplier.json
  riskctl predict --input batch.csv --save`,
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringVar(&predictInput, "input", "", "records file, JSON or CSV (required)")
	predictCmd.Flags().BoolVar(&predictSave, "save", false, "persist outcomes to the assessment store")
	predictCmd.MarkFlagRequired("input")
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := predictor.Load(predictor.ArtifactPaths{
		Model:        cfg.ModelPath,
		Labels:       cfg.LabelsPath,
		Transformers: cfg.TransformersPath,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize prediction engine", "error", err)
		return err
	}

	records, err := loadRecords(predictInput)
	if err != nil {
		logger.Error("Failed to load records", "error", err, "path", predictInput)
		return err
	}

	outcomes := engine.PredictBatch(records)

	if predictSave {
		if err := saveOutcomes(cmd.Context(), cfg.DatabasePath, records, outcomes); err != nil {
			logger.Error("Failed to persist assessments", "error", err)
			return err
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outcomes)
}

func loadRecords(path string) ([]supplier.Record, error) {
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return dataset.LoadCSV(path)
	}
	return dataset.LoadJSON(path)
}

func saveOutcomes(ctx context.Context, dbPath string, records []supplier.Record, outcomes []predictor.Outcome) error {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := store.NewRepository(db)
	for _, outcome := range outcomes {
		if outcome.Failed() {
			continue
		}

		assessment, err := store.NewAssessment(outcome.SupplierID, outcome.SupplierName, outcome.Result)
		if err != nil {
			return err
		}

		saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = repo.SaveAssessment(saveCtx, assessment)
		cancel()
		if err != nil {
			return err
		}
	}

	return nil
}
