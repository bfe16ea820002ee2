package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/procurelens/supplier-risk/internal/risk"
)

var explainInput string

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Compute rule-based risk details without the classifier",
	Long: `Computes the five category risk scores and levels directly from raw
supplier attributes. No model artifacts are needed: the explanation path
is independent of the classifier by design.

Example:
  riskctl explain --input supplier.json`,
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)

	explainCmd.Flags().StringVar(&explainInput, "input", "", "record file, JSON (required)")
	explainCmd.MarkFlagRequired("input")
}

func runExplain(cmd *cobra.Command, args []string) error {
	_, logger, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := loadRecords(explainInput)
	if err != nil {
		logger.Error("Failed to load records", "error", err, "path", explainInput)
		return err
	}

	type explanation struct {
		SupplierID   string        `json:"supplier_id,omitempty"`
		SupplierName string        `json:"supplier_name,omitempty"`
		RiskDetails  []risk.Detail `json:"risk_details"`
	}

	explanations := make([]explanation, len(records))
	for i, rec := range records {
		explanations[i] = explanation{
			SupplierID:   rec.ID,
			SupplierName: rec.Name,
			RiskDetails:  risk.Explain(rec),
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(explanations)
}
