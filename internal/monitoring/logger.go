package monitoring

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger provides structured JSON logging with domain helpers
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new logger at the given level ("debug", "info",
// "warn", "error"; anything else falls back to info)
func NewLogger(level string) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// PredictionLogger logs one completed prediction
func (l *Logger) PredictionLogger(supplierName, riskLevel string, confidence, riskScore float64, duration time.Duration) {
	l.Info("Prediction completed",
		"supplier", supplierName,
		"risk_level", riskLevel,
		"confidence", confidence,
		"risk_score", riskScore,
		"duration_ms", duration.Milliseconds(),
	)
}

// FitLogger logs a transformer fit run
func (l *Logger) FitLogger(rows, numericColumns, categoricalColumns int, duration time.Duration) {
	l.Info("Transformers fitted",
		"training_rows", rows,
		"numeric_columns", numericColumns,
		"categorical_columns", categoricalColumns,
		"duration_ms", duration.Milliseconds(),
	)
}

// BatchLogger logs a batch prediction run
func (l *Logger) BatchLogger(total, succeeded, failed int, duration time.Duration) {
	l.Info("Batch prediction completed",
		"records", total,
		"succeeded", succeeded,
		"failed", failed,
		"duration_ms", duration.Milliseconds(),
	)
}
