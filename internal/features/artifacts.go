package features

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/procurelens/supplier-risk/internal/errors"
)

// ColumnStat summarizes one training column, kept in the artifact so a fit
// can be sanity-checked against the data that produced it
type ColumnStat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// TransformerArtifact is the persisted fitted state of the preprocessing
// pipeline: imputer medians and encoder vocabularies, plus fit metadata.
// Written once at fit time, loaded read-only at inference time. The encoder
// vocabularies are explicit value lists (index = code) so the categorical
// bijection is diffable and survives round-trips byte for byte.
type TransformerArtifact struct {
	Version      int                   `json:"version"`
	FittedAt     time.Time             `json:"fitted_at"`
	TrainingRows int                   `json:"training_rows"`
	Medians      map[string]float64    `json:"medians"`
	Vocabularies map[string][]string   `json:"vocabularies"`
	ColumnStats  map[string]ColumnStat `json:"column_stats,omitempty"`
}

// ArtifactVersion is bumped when the artifact layout changes incompatibly
const ArtifactVersion = 1

// SaveTransformers writes the artifact as indented JSON
func SaveTransformers(path string, artifact *TransformerArtifact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create artifact directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create transformers artifact", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(artifact); err != nil {
		return errors.NewStorageError("failed to encode transformers artifact", err)
	}

	return nil
}

// LoadTransformers reads a fitted artifact. Any failure is a fatal LoadError:
// a process without fitted transformers must refuse to serve predictions.
func LoadTransformers(path string) (*TransformerArtifact, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError("transformers", err)
	}
	defer file.Close()

	var artifact TransformerArtifact
	if err := json.NewDecoder(file).Decode(&artifact); err != nil {
		return nil, errors.NewLoadError("transformers", err)
	}

	if len(artifact.Medians) == 0 || len(artifact.Vocabularies) == 0 {
		return nil, errors.NewLoadError("transformers",
			errors.NewValidationError("artifact has empty medians or vocabularies", "", ""))
	}

	return &artifact, nil
}

// Imputer reconstructs a fitted imputer from the artifact
func (a *TransformerArtifact) Imputer() *Imputer {
	return RestoreImputer(a.Medians)
}

// Encoder reconstructs a fitted encoder from the artifact
func (a *TransformerArtifact) Encoder() *Encoder {
	return RestoreEncoder(a.Vocabularies)
}
