package features

import (
	"math"

	"github.com/procurelens/supplier-risk/internal/supplier"
)

// Derived feature column names, in schema order
const (
	ColRevenuePerYear             = "revenue_per_year"
	ColFinancialStability         = "financial_stability"
	ColOperationalExcellence      = "operational_excellence"
	ColLogisticsEfficiency        = "logistics_efficiency"
	ColMaturityScore              = "maturity_score"
	ColIsEstablished              = "is_established"
	ColIsYoungCompany             = "is_young_company"
	ColIATFBinary                 = "iatf_16949_binary"
	ColAS9100Binary               = "as9100_binary"
	ColReachBinary                = "reach_compliance_binary"
	ColISOBinary                  = "certification_iso_binary"
	ColCertificationCount         = "certification_count"
	ColHasSectorCertification     = "has_sector_certification"
	ColComplianceScore            = "compliance_score"
	ColTotalIncidents             = "total_incidents"
	ColExternalRiskScore          = "external_risk_score"
	ColRiskDebtInteraction        = "risk_debt_interaction"
	ColQualityDeliveryInteraction = "quality_delivery_interaction"
	ColDebtToRevenueRatio         = "debt_to_revenue_ratio"
	ColProfitabilityRatio         = "profitability_ratio"
)

// Build derives the composite features from a raw record. Pure: the record is
// never mutated and identical input produces bit-for-bit identical output.
// A derived value whose numeric inputs are partially missing is left absent
// so the fitted imputer can fill it; flag-only features are always present.
func Build(rec supplier.Record) map[string]float64 {
	out := make(map[string]float64, len(rec.Numerics)+20)
	for col, v := range rec.Numerics {
		out[col] = v
	}

	// get reports all inputs present; values align with the column order
	get := func(cols ...string) ([]float64, bool) {
		vals := make([]float64, len(cols))
		for i, col := range cols {
			v, ok := rec.Numeric(col)
			if !ok {
				return nil, false
			}
			vals[i] = v
		}
		return vals, true
	}

	if v, ok := get("revenue_millions", "years_in_business"); ok {
		out[ColRevenuePerYear] = v[0] / math.Max(v[1], 1)
	}

	if v, ok := get("financial_health_score", "debt_ratio", "profit_margin"); ok {
		out[ColFinancialStability] = v[0]*0.4 + (1-v[1])*5*0.3 + v[2]*0.3
	}

	if v, ok := get("on_time_delivery_rate", "quality_defect_rate", "capacity_utilization"); ok {
		out[ColOperationalExcellence] = (v[0]*0.5 + clip(100-v[1]*10, 0, 100)*0.3 + v[2]*0.2) / 10
	}

	if v, ok := get("on_time_delivery_rate", "lead_time_days"); ok {
		out[ColLogisticsEfficiency] = v[0] / math.Log1p(v[1])
	}

	if v, ok := get("years_in_business"); ok {
		out[ColMaturityScore] = clip(v[0]/20, 0, 1) * 10
		out[ColIsEstablished] = binary(v[0] >= 10)
		out[ColIsYoungCompany] = binary(v[0] < 5)
	}

	iatf := rec.FlagBinary(supplier.ColIATF16949)
	as9100 := rec.FlagBinary(supplier.ColAS9100)
	reach := rec.FlagBinary(supplier.ColReachCompliance)
	iso := rec.FlagBinary(supplier.ColCertificationISO)

	out[ColIATFBinary] = iatf
	out[ColAS9100Binary] = as9100
	out[ColReachBinary] = reach
	out[ColISOBinary] = iso

	certCount := iso + iatf + as9100 + reach
	hasSector := binary(iatf == 1 || as9100 == 1)
	out[ColCertificationCount] = certCount
	out[ColHasSectorCertification] = hasSector

	if v, ok := get("environmental_score"); ok {
		out[ColComplianceScore] = (certCount*2 + v[0] + hasSector*2) / 1.2
	}

	if v, ok := get("supply_chain_disruption_history", "cybersecurity_incidents", "labor_disputes"); ok {
		out[ColTotalIncidents] = v[0] + v[1] + v[2]

		if e, okEnv := get("geopolitical_risk", "environmental_score"); okEnv {
			out[ColExternalRiskScore] = e[0]*0.5 + out[ColTotalIncidents]*2 + (10-e[1])*0.3
		}
	}

	if v, ok := get("debt_ratio", "geopolitical_risk"); ok {
		out[ColRiskDebtInteraction] = v[0] * v[1]
	}

	if v, ok := get("quality_defect_rate", "on_time_delivery_rate"); ok {
		out[ColQualityDeliveryInteraction] = v[0] * (100 - v[1])
	}

	if v, ok := get("debt_ratio", "revenue_millions"); ok {
		out[ColDebtToRevenueRatio] = v[0] / math.Max(v[1], 0.1)
	}

	if v, ok := get("profit_margin", "revenue_millions"); ok {
		out[ColProfitabilityRatio] = v[0] / math.Max(v[1], 0.1)
	}

	return out
}

func binary(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
