package supplier

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/procurelens/supplier-risk/internal/errors"
)

// Flag values. Anything other than these two literals in a yes/no column is a
// data error, never coerced.
const (
	FlagYes = "yes"
	FlagNo  = "no"
)

// Column names for the categorical attributes
const (
	ColCountry = "country"
	ColRegion  = "region"
	ColSector  = "sector"
	ColFamily  = "family"
)

// Column names for the yes/no string flags
const (
	ColCertificationISO  = "certification_iso"
	ColIATF16949         = "iatf_16949"
	ColAS9100            = "as9100"
	ColReachCompliance   = "reach_compliance"
	ColSingleSource      = "single_source"
	ColCertExpiryNext90d = "cert_expiry_next90d"
	ColTradeBarrierFlag  = "trade_barrier_flag"
	ColRouteDisruption   = "route_disruption_flag"
	ColNonConformity     = "non_conformity_flag"
)

// CategoricalColumns lists the free-form string attributes, in the order they
// are encoded
var CategoricalColumns = []string{ColCountry, ColRegion, ColSector, ColFamily}

// FlagColumns lists every yes/no string attribute
var FlagColumns = []string{
	ColCertificationISO,
	ColIATF16949,
	ColAS9100,
	ColReachCompliance,
	ColSingleSource,
	ColCertExpiryNext90d,
	ColTradeBarrierFlag,
	ColRouteDisruption,
	ColNonConformity,
}

// CertificationFlagColumns are the four flags that feed the derived
// certification features. They are required: a missing certification flag
// cannot be imputed.
var CertificationFlagColumns = []string{
	ColCertificationISO,
	ColIATF16949,
	ColAS9100,
	ColReachCompliance,
}

// NumericColumns lists the raw numeric attributes in their canonical order.
// This order is load-bearing: it is the prefix of the model feature schema and
// must stay identical between the fit and inference paths.
var NumericColumns = []string{
	"distance_km",
	"years_in_business",
	"revenue_millions",
	"profit_margin",
	"debt_ratio",
	"liquidity_ratio",
	"payment_delay_days",
	"financial_health_score",
	"otd_3m",
	"avg_delay_days_3m",
	"delay_volatility_3m",
	"otd_6m",
	"avg_delay_days_6m",
	"on_time_delivery_rate",
	"lead_time_days",
	"ppm_3m",
	"defect_rate_3m",
	"quality_defect_rate",
	"cpk_latest",
	"recurring_8d",
	"capacity_utilization",
	"esg_score",
	"environmental_score",
	"country_risk_index",
	"geopolitical_risk",
	"supply_chain_disruption_history",
	"cybersecurity_incidents",
	"labor_disputes",
}

// Record is the unit of work: one supplier's raw attributes. Numeric fields
// live in a presence-aware map so a missing value is distinguishable from
// zero; the imputer fills the gaps downstream.
type Record struct {
	ID       string             `json:"supplier_id,omitempty"`
	Name     string             `json:"supplier_name,omitempty"`
	Country  string             `json:"country"`
	Region   string             `json:"region"`
	Sector   string             `json:"sector"`
	Family   string             `json:"family"`
	Flags    map[string]string  `json:"flags"`
	Numerics map[string]float64 `json:"numerics"`
}

// Categorical returns the value of a categorical column by name
func (r Record) Categorical(col string) string {
	switch col {
	case ColCountry:
		return r.Country
	case ColRegion:
		return r.Region
	case ColSector:
		return r.Sector
	case ColFamily:
		return r.Family
	}
	return ""
}

// Numeric returns a raw numeric attribute and whether it is present
func (r Record) Numeric(col string) (float64, bool) {
	v, ok := r.Numerics[col]
	return v, ok
}

// Flag returns a yes/no attribute and whether it is present
func (r Record) Flag(col string) (string, bool) {
	v, ok := r.Flags[col]
	return v, ok
}

// FlagBinary maps a yes/no attribute to 1/0 by exact string match on "yes"
func (r Record) FlagBinary(col string) float64 {
	if r.Flags[col] == FlagYes {
		return 1
	}
	return 0
}

// Clone returns a deep copy of the record
func (r Record) Clone() Record {
	cp := r
	cp.Flags = make(map[string]string, len(r.Flags))
	for k, v := range r.Flags {
		cp.Flags[k] = v
	}
	cp.Numerics = make(map[string]float64, len(r.Numerics))
	for k, v := range r.Numerics {
		cp.Numerics[k] = v
	}
	return cp
}

// Validate checks structural integrity: categorical columns present, every
// supplied flag a literal yes/no, the four certification flags present.
// Numeric gaps are legal here; the imputer covers them.
func (r Record) Validate() error {
	for _, col := range CategoricalColumns {
		if r.Categorical(col) == "" {
			return errors.NewMissingFieldError(col)
		}
	}

	for _, col := range FlagColumns {
		v, ok := r.Flags[col]
		if !ok {
			continue
		}
		if v != FlagYes && v != FlagNo {
			return errors.NewValidationError(
				fmt.Sprintf("flag column %q must be %q or %q", col, FlagYes, FlagNo), col, v)
		}
	}

	for _, col := range CertificationFlagColumns {
		if _, ok := r.Flags[col]; !ok {
			return errors.NewMissingFieldError(col)
		}
	}

	return nil
}

// FromMap builds a Record from a decoded JSON object keyed by column name.
// Unknown keys are ignored so callers can pass rows that still carry labels
// or dates.
func FromMap(row map[string]interface{}) (Record, error) {
	rec := Record{
		Flags:    make(map[string]string),
		Numerics: make(map[string]float64),
	}

	if v, ok := stringValue(row["supplier_id"]); ok {
		rec.ID = v
	}
	if v, ok := stringValue(row["supplier_name"]); ok {
		rec.Name = v
	}

	for _, col := range CategoricalColumns {
		v, ok := stringValue(row[col])
		if !ok {
			continue
		}
		switch col {
		case ColCountry:
			rec.Country = v
		case ColRegion:
			rec.Region = v
		case ColSector:
			rec.Sector = v
		case ColFamily:
			rec.Family = v
		}
	}

	for _, col := range FlagColumns {
		if v, ok := stringValue(row[col]); ok {
			rec.Flags[col] = v
		}
	}

	for _, col := range NumericColumns {
		raw, ok := row[col]
		if !ok || raw == nil {
			continue
		}
		v, err := numericValue(raw)
		if err != nil {
			return Record{}, errors.NewValidationError(
				fmt.Sprintf("column %q is not numeric", col), col, fmt.Sprintf("%v", raw))
		}
		rec.Numerics[col] = v
	}

	return rec, nil
}

func stringValue(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func numericValue(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("unsupported numeric type %T", v)
}
