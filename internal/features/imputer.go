package features

import (
	"math"
	"sort"

	"github.com/procurelens/supplier-risk/internal/errors"
)

// Imputer fills absent numeric features with per-column medians fitted once
// from the training set. Read-only after Fit/restore: safe to share across
// concurrent callers.
type Imputer struct {
	medians map[string]float64
	fitted  bool
}

// NewImputer creates an unfitted imputer
func NewImputer() *Imputer {
	return &Imputer{}
}

// RestoreImputer rebuilds a fitted imputer from persisted medians
func RestoreImputer(medians map[string]float64) *Imputer {
	cp := make(map[string]float64, len(medians))
	for k, v := range medians {
		cp[k] = v
	}
	return &Imputer{medians: cp, fitted: true}
}

// Fit computes the median of each column over the training rows, skipping
// missing cells. Columns with no observation at all get no median; a record
// missing such a column still fails assembly, which is the correct outcome
// for a column the training set never saw.
func (im *Imputer) Fit(rows []map[string]float64, columns []string) {
	im.medians = make(map[string]float64, len(columns))
	for _, col := range columns {
		var observed []float64
		for _, row := range rows {
			if v, ok := row[col]; ok && !math.IsNaN(v) {
				observed = append(observed, v)
			}
		}
		if len(observed) == 0 {
			continue
		}
		im.medians[col] = median(observed)
	}
	im.fitted = true
}

// Fitted reports whether the imputer holds medians
func (im *Imputer) Fitted() bool {
	return im.fitted
}

// Medians returns a copy of the fitted per-column medians
func (im *Imputer) Medians() map[string]float64 {
	cp := make(map[string]float64, len(im.medians))
	for k, v := range im.medians {
		cp[k] = v
	}
	return cp
}

// Apply fills every absent column that has a fitted median. Present values
// are never touched. Applying before fitting is an error.
func (im *Imputer) Apply(featureMap map[string]float64) error {
	if !im.fitted {
		return errors.NewNotLoadedError("imputer")
	}
	for col, med := range im.medians {
		if _, ok := featureMap[col]; !ok {
			featureMap[col] = med
		}
	}
	return nil
}

func median(xs []float64) float64 {
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	mid := len(cp) / 2
	if len(cp)%2 == 1 {
		return cp[mid]
	}
	return 0.5 * (cp[mid-1] + cp[mid])
}
