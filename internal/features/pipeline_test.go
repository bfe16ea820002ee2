package features

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/supplier-risk/internal/errors"
)

func fittedArtifact(t *testing.T) *TransformerArtifact {
	t.Helper()
	artifact, err := FitTransformers(trainingRecords())
	require.NoError(t, err)
	return artifact
}

func TestFitTransformers(t *testing.T) {
	artifact := fittedArtifact(t)

	assert.Equal(t, ArtifactVersion, artifact.Version)
	assert.Equal(t, len(trainingRecords()), artifact.TrainingRows)
	assert.NotEmpty(t, artifact.Medians)
	assert.Equal(t, []string{"Maroc", "France", "Chine"}, artifact.Vocabularies["country"])

	stat, ok := artifact.ColumnStats["debt_ratio"]
	require.True(t, ok)
	assert.Equal(t, 4, stat.Count)
	assert.InDelta(t, 0.45, stat.Mean, 1e-9)
	assert.Equal(t, 0.0, stat.StdDev, "identical observations have zero spread")
}

func TestFitTransformersEmptySet(t *testing.T) {
	_, err := FitTransformers(nil)
	assert.Error(t, err)
}

func TestPipelineTransform(t *testing.T) {
	pipeline, err := PipelineFromArtifact(fittedArtifact(t))
	require.NoError(t, err)

	vector, err := pipeline.Transform(fullRecord())
	require.NoError(t, err)
	require.Len(t, vector, len(ModelColumns))

	// spot-check: encoded country sits at its schema position
	idx := -1
	for i, col := range ModelColumns {
		if col == "country_encoded" {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx)
	assert.Equal(t, 0.0, vector[idx], "Maroc was observed first at fit time")
}

func TestPipelineTransformImputesMissingNumerics(t *testing.T) {
	pipeline, err := PipelineFromArtifact(fittedArtifact(t))
	require.NoError(t, err)

	rec := fullRecord()
	delete(rec.Numerics, "debt_ratio")
	delete(rec.Numerics, "financial_health_score")

	vector, err := pipeline.Transform(rec)
	require.NoError(t, err)
	require.Len(t, vector, len(ModelColumns))

	idx := -1
	for i, col := range ModelColumns {
		if col == "debt_ratio" {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx)
	assert.InDelta(t, 0.45, vector[idx], 1e-9, "gap filled with the training median")
}

func TestPipelineTransformUnknownCategory(t *testing.T) {
	pipeline, err := PipelineFromArtifact(fittedArtifact(t))
	require.NoError(t, err)

	rec := fullRecord()
	rec.Country = "Atlantis"

	_, err = pipeline.Transform(rec)
	require.Error(t, err)
	assert.True(t, errors.IsUnknownCategory(err))
}

func TestPipelineTransformMissingFlag(t *testing.T) {
	pipeline, err := PipelineFromArtifact(fittedArtifact(t))
	require.NoError(t, err)

	rec := fullRecord()
	delete(rec.Flags, "certification_iso")

	_, err = pipeline.Transform(rec)
	require.Error(t, err)
	assert.True(t, errors.IsMissingField(err))
}

func TestPipelineTransformDeterministic(t *testing.T) {
	pipeline, err := PipelineFromArtifact(fittedArtifact(t))
	require.NoError(t, err)

	v1, err := pipeline.Transform(fullRecord())
	require.NoError(t, err)
	v2, err := pipeline.Transform(fullRecord())
	require.NoError(t, err)

	assert.Equal(t, v1, v2, "identical input must produce bit-for-bit identical vectors")
}

func TestArtifactSaveLoadRoundTrip(t *testing.T) {
	artifact := fittedArtifact(t)
	path := filepath.Join(t.TempDir(), "models", "transformers.json")

	require.NoError(t, SaveTransformers(path, artifact))

	loaded, err := LoadTransformers(path)
	require.NoError(t, err)

	assert.Equal(t, artifact.Medians, loaded.Medians)
	assert.Equal(t, artifact.Vocabularies, loaded.Vocabularies, "code order must survive persistence")

	pipeline, err := PipelineFromArtifact(loaded)
	require.NoError(t, err)

	want, err := PipelineFromArtifact(artifact)
	require.NoError(t, err)

	v1, err := want.Transform(fullRecord())
	require.NoError(t, err)
	v2, err := pipeline.Transform(fullRecord())
	require.NoError(t, err)
	assert.Equal(t, v1, v2, "fit-time and loaded pipelines must agree exactly")
}

func TestLoadTransformersMissingFile(t *testing.T) {
	_, err := LoadTransformers(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))
}
