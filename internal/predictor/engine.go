// Package predictor orchestrates the prediction pipeline: record validation,
// feature transformation, classification, and the rule-based explanation
// path, combined into one result per supplier.
package predictor

import (
	"time"

	"github.com/procurelens/supplier-risk/internal/classifier"
	"github.com/procurelens/supplier-risk/internal/errors"
	"github.com/procurelens/supplier-risk/internal/features"
	"github.com/procurelens/supplier-risk/internal/monitoring"
	"github.com/procurelens/supplier-risk/internal/risk"
	"github.com/procurelens/supplier-risk/internal/supplier"
)

// Engine binds the loaded model, label codec and fitted transformer pipeline
// into one prediction service. All held state is read-only after
// construction, so a single Engine is safe for unbounded concurrent Predict
// calls without locking. Dependencies are injected explicitly — there is no
// lazily-initialized process-wide instance to hide them.
type Engine struct {
	model    classifier.Model
	labels   *classifier.LabelCodec
	pipeline *features.Pipeline
	logger   *monitoring.Logger
}

// NewEngine wires an engine from its collaborators. It refuses half-built
// bundles and model/schema shape mismatches up front so a misconfigured
// process fails at startup instead of corrupting predictions later.
func NewEngine(model classifier.Model, labels *classifier.LabelCodec, pipeline *features.Pipeline, logger *monitoring.Logger) (*Engine, error) {
	if model == nil {
		return nil, errors.NewNotLoadedError("classifier")
	}
	if labels == nil {
		return nil, errors.NewNotLoadedError("label codec")
	}
	if pipeline == nil {
		return nil, errors.NewNotLoadedError("feature pipeline")
	}

	if model.NumClasses() != len(labels.Classes) {
		return nil, errors.NewLoadError("classifier", errors.NewValidationError(
			"model class count does not match label codec", "", ""))
	}
	if model.NumFeatures() != len(features.ModelColumns) {
		return nil, errors.NewLoadError("classifier", errors.NewValidationError(
			"model feature count does not match feature schema", "", ""))
	}

	return &Engine{
		model:    model,
		labels:   labels,
		pipeline: pipeline,
		logger:   logger,
	}, nil
}

// ArtifactPaths locates the three persisted artifacts the engine needs
type ArtifactPaths struct {
	Model        string
	Labels       string
	Transformers string
}

// Load builds an engine from persisted artifacts. Any failure is fatal: the
// caller must abort startup rather than serve with partial state.
func Load(paths ArtifactPaths, logger *monitoring.Logger) (*Engine, error) {
	forest, err := classifier.LoadForest(paths.Model)
	if err != nil {
		return nil, err
	}

	labels, err := classifier.LoadLabelCodec(paths.Labels)
	if err != nil {
		return nil, err
	}

	artifact, err := features.LoadTransformers(paths.Transformers)
	if err != nil {
		return nil, err
	}

	pipeline, err := features.PipelineFromArtifact(artifact)
	if err != nil {
		return nil, err
	}

	return NewEngine(forest, labels, pipeline, logger)
}

// Predict scores one supplier record. Per-record data problems (missing
// fields, unknown categories, malformed flags) come back as typed errors;
// the caller decides whether to reject or re-route the single record.
func (e *Engine) Predict(rec supplier.Record) (*Result, error) {
	start := time.Now()

	vector, err := e.pipeline.Transform(rec)
	if err != nil {
		return nil, err
	}

	label, err := e.model.Predict(vector)
	if err != nil {
		return nil, err
	}

	probs, err := e.model.PredictProba(vector)
	if err != nil {
		return nil, err
	}

	riskLevel, err := e.labels.Decode(label)
	if err != nil {
		return nil, err
	}

	probabilities := make(map[string]float64, len(probs))
	maxProb := 0.0
	for i, p := range probs {
		class, decodeErr := e.labels.Decode(i)
		if decodeErr != nil {
			return nil, decodeErr
		}
		probabilities[class] = p
		if p > maxProb {
			maxProb = p
		}
	}

	result := &Result{
		PredictedRiskLevel: riskLevel,
		RiskProbability:    probabilities,
		Confidence:         probs[label],
		RiskScore:          maxProb * 10,
		RiskDetails:        risk.Explain(rec),
		Recommendations:    risk.Recommend(riskLevel),
	}

	if e.logger != nil {
		e.logger.PredictionLogger(rec.Name, riskLevel, result.Confidence, result.RiskScore, time.Since(start))
	}

	return result, nil
}

// PredictBatch scores records independently and in input order: N records in,
// N outcomes out, failures captured per slot without touching neighbors.
func (e *Engine) PredictBatch(records []supplier.Record) []Outcome {
	start := time.Now()
	outcomes := make([]Outcome, len(records))
	failed := 0

	for i, rec := range records {
		result, err := e.Predict(rec)
		if err != nil {
			outcomes[i] = failureOutcome(i, rec.ID, rec.Name, err)
			failed++
			continue
		}
		outcomes[i] = Outcome{
			Index:        i,
			SupplierID:   rec.ID,
			SupplierName: rec.Name,
			Result:       result,
		}
	}

	if e.logger != nil {
		e.logger.BatchLogger(len(records), len(records)-failed, failed, time.Since(start))
	}

	return outcomes
}
