package features

import (
	"github.com/procurelens/supplier-risk/internal/errors"
	"github.com/procurelens/supplier-risk/internal/supplier"
)

// EncodedSuffix is appended to a categorical column name to form its
// integer-coded counterpart
const EncodedSuffix = "_encoded"

// DerivedColumns lists the composite features in schema order
var DerivedColumns = []string{
	ColRevenuePerYear,
	ColFinancialStability,
	ColOperationalExcellence,
	ColLogisticsEfficiency,
	ColMaturityScore,
	ColIsEstablished,
	ColIsYoungCompany,
	ColIATFBinary,
	ColAS9100Binary,
	ColReachBinary,
	ColISOBinary,
	ColCertificationCount,
	ColHasSectorCertification,
	ColComplianceScore,
	ColTotalIncidents,
	ColExternalRiskScore,
	ColRiskDebtInteraction,
	ColQualityDeliveryInteraction,
	ColDebtToRevenueRatio,
	ColProfitabilityRatio,
}

// EncodedColumns lists the integer-coded categorical features in schema order
var EncodedColumns = func() []string {
	cols := make([]string, len(supplier.CategoricalColumns))
	for i, col := range supplier.CategoricalColumns {
		cols[i] = col + EncodedSuffix
	}
	return cols
}()

// ModelColumns is the full ordered feature schema fed to the classifier:
// raw numerics, then derived composites, then encoded categoricals. It is a
// single statically declared list on purpose — both the fit path and the
// inference path assemble vectors from this exact slice, so column-order
// drift between training and serving cannot happen. Identifier, label, raw
// categorical, raw yes/no and date columns never appear here.
var ModelColumns = func() []string {
	cols := make([]string, 0, len(supplier.NumericColumns)+len(DerivedColumns)+len(EncodedColumns))
	cols = append(cols, supplier.NumericColumns...)
	cols = append(cols, DerivedColumns...)
	cols = append(cols, EncodedColumns...)
	return cols
}()

// AssembleVector orders a fully populated feature map into the model input
// vector. Every schema column must be present: a gap at this point means the
// imputer or encoder upstream was skipped, which is an internal fault rather
// than a data error.
func AssembleVector(featureMap map[string]float64) ([]float64, error) {
	vector := make([]float64, len(ModelColumns))
	for i, col := range ModelColumns {
		v, ok := featureMap[col]
		if !ok {
			return nil, errors.NewInternalError(
				"feature map is missing schema column "+col, nil)
		}
		vector[i] = v
	}
	return vector, nil
}
