package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/supplier-risk/internal/supplier"
)

// fullRecord returns a complete, well-formed supplier record shared by the
// package tests
func fullRecord() supplier.Record {
	return supplier.Record{
		ID:      "F0001",
		Name:    "Supplier_0001",
		Country: "Maroc",
		Region:  "EMEA",
		Sector:  "automotive",
		Family:  "Câblage",
		Flags: map[string]string{
			supplier.ColCertificationISO:  "yes",
			supplier.ColIATF16949:         "yes",
			supplier.ColAS9100:            "no",
			supplier.ColReachCompliance:   "yes",
			supplier.ColSingleSource:      "no",
			supplier.ColCertExpiryNext90d: "no",
			supplier.ColTradeBarrierFlag:  "no",
			supplier.ColRouteDisruption:   "no",
			supplier.ColNonConformity:     "no",
		},
		Numerics: map[string]float64{
			"distance_km":                     500.0,
			"years_in_business":               15,
			"revenue_millions":                25.5,
			"profit_margin":                   8.5,
			"debt_ratio":                      0.45,
			"liquidity_ratio":                 1.8,
			"payment_delay_days":              5,
			"financial_health_score":          7.2,
			"otd_3m":                          92.5,
			"avg_delay_days_3m":               2.0,
			"delay_volatility_3m":             1.0,
			"otd_6m":                          92.5,
			"avg_delay_days_6m":               2.0,
			"on_time_delivery_rate":           92.5,
			"lead_time_days":                  25,
			"ppm_3m":                          100,
			"defect_rate_3m":                  1.5,
			"quality_defect_rate":             1.5,
			"cpk_latest":                      1.3,
			"recurring_8d":                    0,
			"capacity_utilization":            78.5,
			"esg_score":                       75.0,
			"environmental_score":             7.8,
			"country_risk_index":              35,
			"geopolitical_risk":               3.5,
			"supply_chain_disruption_history": 1,
			"cybersecurity_incidents":         0,
			"labor_disputes":                  0,
		},
	}
}

func TestBuildDerivedFormulas(t *testing.T) {
	out := Build(fullRecord())

	tests := []struct {
		column   string
		expected float64
	}{
		{ColRevenuePerYear, 1.7},
		{ColFinancialStability, 7.2*0.4 + (1-0.45)*5*0.3 + 8.5*0.3},
		{ColOperationalExcellence, (92.5*0.5 + 85*0.3 + 78.5*0.2) / 10},
		{ColLogisticsEfficiency, 92.5 / math.Log1p(25)},
		{ColMaturityScore, 7.5},
		{ColIsEstablished, 1},
		{ColIsYoungCompany, 0},
		{ColISOBinary, 1},
		{ColIATFBinary, 1},
		{ColAS9100Binary, 0},
		{ColReachBinary, 1},
		{ColCertificationCount, 3},
		{ColHasSectorCertification, 1},
		{ColComplianceScore, (3*2 + 7.8 + 1*2) / 1.2},
		{ColTotalIncidents, 1},
		{ColExternalRiskScore, 3.5*0.5 + 1*2 + (10-7.8)*0.3},
		{ColRiskDebtInteraction, 0.45 * 3.5},
		{ColQualityDeliveryInteraction, 1.5 * (100 - 92.5)},
		{ColDebtToRevenueRatio, 0.45 / 25.5},
		{ColProfitabilityRatio, 8.5 / 25.5},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			v, ok := out[tt.column]
			require.True(t, ok, "derived column %s missing", tt.column)
			assert.InDelta(t, tt.expected, v, 1e-9)
		})
	}
}

func TestBuildCopiesRawNumerics(t *testing.T) {
	rec := fullRecord()
	out := Build(rec)

	for col, v := range rec.Numerics {
		got, ok := out[col]
		require.True(t, ok, "raw column %s missing from output", col)
		assert.Equal(t, v, got)
	}
}

func TestBuildIsPure(t *testing.T) {
	rec := fullRecord()
	before := rec.Clone()

	out1 := Build(rec)
	out2 := Build(rec)

	assert.Equal(t, before, rec, "Build must not mutate its input")
	assert.Equal(t, out1, out2, "identical input must produce identical output")
}

func TestBuildClipsOperationalExcellence(t *testing.T) {
	rec := fullRecord()
	rec.Numerics["quality_defect_rate"] = 50 // 100 - 500 clips to 0

	out := Build(rec)
	expected := (92.5*0.5 + 0*0.3 + 78.5*0.2) / 10
	assert.InDelta(t, expected, out[ColOperationalExcellence], 1e-9)
}

func TestBuildYoungCompany(t *testing.T) {
	rec := fullRecord()
	rec.Numerics["years_in_business"] = 3

	out := Build(rec)
	assert.Equal(t, 0.0, out[ColIsEstablished])
	assert.Equal(t, 1.0, out[ColIsYoungCompany])
	assert.InDelta(t, 1.5, out[ColMaturityScore], 1e-9)
	// revenue_per_year denominator floors at 1
	rec.Numerics["years_in_business"] = 0
	out = Build(rec)
	assert.InDelta(t, 25.5, out[ColRevenuePerYear], 1e-9)
}

func TestBuildRatioDenominatorFloor(t *testing.T) {
	rec := fullRecord()
	rec.Numerics["revenue_millions"] = 0.01

	out := Build(rec)
	assert.InDelta(t, 0.45/0.1, out[ColDebtToRevenueRatio], 1e-9)
	assert.InDelta(t, 8.5/0.1, out[ColProfitabilityRatio], 1e-9)
}

func TestBuildLeavesDerivedAbsentOnMissingInput(t *testing.T) {
	rec := fullRecord()
	delete(rec.Numerics, "financial_health_score")
	delete(rec.Numerics, "lead_time_days")

	out := Build(rec)

	_, ok := out[ColFinancialStability]
	assert.False(t, ok, "financial_stability should be absent when an input is missing")
	_, ok = out[ColLogisticsEfficiency]
	assert.False(t, ok, "logistics_efficiency should be absent when an input is missing")

	// flag-derived features never depend on numerics
	assert.Equal(t, 3.0, out[ColCertificationCount])
	assert.Equal(t, 1.0, out[ColHasSectorCertification])
}
