package commands

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/procurelens/supplier-risk/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent persisted assessments",
	Long: `Reads the assessment store and prints the most recent predictions,
newest first, with per-level counts.

Example:
  riskctl history --limit 10`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of assessments to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("Failed to open assessment store", "error", err)
		return err
	}
	defer db.Close()

	repo := store.NewRepository(db)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	assessments, err := repo.RecentAssessments(queryCtx, historyLimit)
	if err != nil {
		logger.Error("Failed to load assessments", "error", err)
		return err
	}

	counts, err := repo.CountByRiskLevel(queryCtx)
	if err != nil {
		logger.Error("Failed to count assessments", "error", err)
		return err
	}

	out := struct {
		Counts      map[string]int     `json:"counts_by_risk_level"`
		Assessments []store.Assessment `json:"assessments"`
	}{
		Counts:      counts,
		Assessments: assessments,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
