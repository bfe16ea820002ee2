package risk

import (
	"math"

	"github.com/procurelens/supplier-risk/internal/supplier"
)

// The five fixed risk categories, in presentation order
const (
	CategoryFinancial    = "Financial Risk"
	CategoryOperational  = "Operational Risk"
	CategoryQuality      = "Quality Risk"
	CategoryGeopolitical = "Geopolitical Risk"
	CategoryCompliance   = "Compliance Risk"
)

// Fallback values used when the corresponding raw attribute is absent, so an
// explanation is still produced for partial records
const (
	defaultDebtRatio          = 0.5
	defaultOnTimeDelivery     = 90
	defaultQualityDefectRate  = 2
	defaultGeopoliticalRisk   = 3
	defaultEnvironmentalScore = 7
)

// Explain computes the five category scores directly from raw attributes.
// It is a pure function, fully independent of the classifier: the same
// record always yields the same details, whatever the model predicts.
// Scores are rounded to 2 decimals for presentation; the unrounded value is
// not retained.
func Explain(rec supplier.Record) []Detail {
	financial := numericOr(rec, "debt_ratio", defaultDebtRatio) * 100
	operational := 100 - numericOr(rec, "on_time_delivery_rate", defaultOnTimeDelivery)
	quality := numericOr(rec, "quality_defect_rate", defaultQualityDefectRate) * 20
	geopolitical := numericOr(rec, "geopolitical_risk", defaultGeopoliticalRisk) * 10
	compliance := (10 - numericOr(rec, "environmental_score", defaultEnvironmentalScore)) * 10

	return []Detail{
		{Category: CategoryFinancial, Score: round2(financial), Level: levelFor(financial)},
		{Category: CategoryOperational, Score: round2(operational), Level: levelFor(operational)},
		{Category: CategoryQuality, Score: round2(quality), Level: levelFor(quality)},
		{Category: CategoryGeopolitical, Score: round2(geopolitical), Level: levelFor(geopolitical)},
		{Category: CategoryCompliance, Score: round2(compliance), Level: levelFor(compliance)},
	}
}

// levelFor applies the fixed thresholds, inclusive on the high side:
// 70.0 is HIGH and 40.0 is MEDIUM.
func levelFor(score float64) Level {
	switch {
	case score >= 70:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}

func numericOr(rec supplier.Record, col string, fallback float64) float64 {
	if v, ok := rec.Numeric(col); ok {
		return v
	}
	return fallback
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
