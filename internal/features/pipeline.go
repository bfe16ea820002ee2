package features

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/procurelens/supplier-risk/internal/errors"
	"github.com/procurelens/supplier-risk/internal/supplier"
)

// Pipeline is the shared record-to-vector path: build derived features,
// impute gaps, encode categoricals, assemble the schema-ordered vector.
// The fit-time and inference-time code paths both go through Transform, so
// the two can never disagree on columns or ordering.
type Pipeline struct {
	imputer *Imputer
	encoder *Encoder
}

// NewPipeline wires a fitted imputer and encoder into a transform pipeline
func NewPipeline(imputer *Imputer, encoder *Encoder) (*Pipeline, error) {
	if imputer == nil || !imputer.Fitted() {
		return nil, errors.NewNotLoadedError("imputer")
	}
	if encoder == nil || !encoder.Fitted() {
		return nil, errors.NewNotLoadedError("categorical encoder")
	}
	return &Pipeline{imputer: imputer, encoder: encoder}, nil
}

// PipelineFromArtifact builds the transform pipeline from a loaded artifact
func PipelineFromArtifact(artifact *TransformerArtifact) (*Pipeline, error) {
	return NewPipeline(artifact.Imputer(), artifact.Encoder())
}

// Transform turns one raw record into the ordered model input vector
func (p *Pipeline) Transform(rec supplier.Record) ([]float64, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	featureMap := Build(rec)
	if err := p.imputer.Apply(featureMap); err != nil {
		return nil, err
	}

	encoded, err := p.encoder.Encode(rec)
	if err != nil {
		return nil, err
	}
	for col, code := range encoded {
		featureMap[col] = code
	}

	return AssembleVector(featureMap)
}

// AllNumericColumns is the imputation domain: raw numerics plus derived
// composites. Encoded categoricals are excluded — a missing categorical is a
// hard error, never imputed.
var AllNumericColumns = func() []string {
	cols := make([]string, 0, len(supplier.NumericColumns)+len(DerivedColumns))
	cols = append(cols, supplier.NumericColumns...)
	cols = append(cols, DerivedColumns...)
	return cols
}()

// FitTransformers fits the imputer medians and encoder vocabularies over a
// training set and packages both into a persistable artifact. This is the
// transformer fit only; classifier training happens elsewhere and its output
// is consumed as an opaque artifact.
func FitTransformers(records []supplier.Record) (*TransformerArtifact, error) {
	if len(records) == 0 {
		return nil, errors.NewValidationError("cannot fit transformers on an empty training set", "", "")
	}

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, err
		}
	}

	rows := make([]map[string]float64, len(records))
	for i, rec := range records {
		rows[i] = Build(rec)
	}

	imputer := NewImputer()
	imputer.Fit(rows, AllNumericColumns)

	encoder := NewEncoder()
	encoder.Fit(records)

	return &TransformerArtifact{
		Version:      ArtifactVersion,
		FittedAt:     time.Now().UTC(),
		TrainingRows: len(records),
		Medians:      imputer.Medians(),
		Vocabularies: encoder.Vocabularies(),
		ColumnStats:  summarizeColumns(rows, AllNumericColumns),
	}, nil
}

// summarizeColumns computes per-column fit diagnostics over the observed
// (pre-imputation) training values
func summarizeColumns(rows []map[string]float64, columns []string) map[string]ColumnStat {
	stats := make(map[string]ColumnStat, len(columns))
	for _, col := range columns {
		var observed []float64
		for _, row := range rows {
			if v, ok := row[col]; ok {
				observed = append(observed, v)
			}
		}
		if len(observed) == 0 {
			continue
		}

		min, max := observed[0], observed[0]
		for _, v := range observed[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}

		stddev := 0.0
		if len(observed) > 1 {
			stddev = stat.StdDev(observed, nil)
		}

		stats[col] = ColumnStat{
			Mean:   stat.Mean(observed, nil),
			StdDev: stddev,
			Min:    min,
			Max:    max,
			Count:  len(observed),
		}
	}
	return stats
}
