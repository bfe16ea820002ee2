package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/supplier-risk/internal/supplier"
)

func TestModelColumnsComposition(t *testing.T) {
	expectedLen := len(supplier.NumericColumns) + len(DerivedColumns) + len(EncodedColumns)
	require.Len(t, ModelColumns, expectedLen)

	// raw numerics first, derived next, encoded last — the order the
	// classifier was trained against
	assert.Equal(t, supplier.NumericColumns, ModelColumns[:len(supplier.NumericColumns)])
	assert.Equal(t, DerivedColumns,
		ModelColumns[len(supplier.NumericColumns):len(supplier.NumericColumns)+len(DerivedColumns)])
	assert.Equal(t, EncodedColumns, ModelColumns[expectedLen-len(EncodedColumns):])
}

func TestModelColumnsUnique(t *testing.T) {
	seen := make(map[string]bool, len(ModelColumns))
	for _, col := range ModelColumns {
		assert.False(t, seen[col], "duplicate schema column %s", col)
		seen[col] = true
	}
}

func TestModelColumnsExcludeRawStrings(t *testing.T) {
	excluded := append([]string{}, supplier.CategoricalColumns...)
	excluded = append(excluded, supplier.FlagColumns...)
	excluded = append(excluded, "supplier_id", "supplier_name", "risk_level", "criticity_level",
		"last_update", "last_assessment_date", "risk_score")

	inSchema := make(map[string]bool, len(ModelColumns))
	for _, col := range ModelColumns {
		inSchema[col] = true
	}

	for _, col := range excluded {
		assert.False(t, inSchema[col], "column %s must not reach the classifier", col)
	}
}

func TestAssembleVectorOrder(t *testing.T) {
	featureMap := make(map[string]float64, len(ModelColumns))
	for i, col := range ModelColumns {
		featureMap[col] = float64(i)
	}

	vector, err := AssembleVector(featureMap)
	require.NoError(t, err)
	require.Len(t, vector, len(ModelColumns))

	for i := range vector {
		assert.Equal(t, float64(i), vector[i], "vector position %d must follow schema order", i)
	}
}

func TestAssembleVectorMissingColumn(t *testing.T) {
	featureMap := make(map[string]float64, len(ModelColumns))
	for _, col := range ModelColumns {
		featureMap[col] = 1
	}
	delete(featureMap, ColComplianceScore)

	_, err := AssembleVector(featureMap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColComplianceScore)
}
