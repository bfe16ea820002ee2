package predictor

import (
	"github.com/procurelens/supplier-risk/internal/errors"
	"github.com/procurelens/supplier-risk/internal/risk"
)

// Result is one successful prediction: the classifier path (level,
// probabilities, confidence, score) combined with the independent
// explanation path (details, recommendations) at this presentation boundary.
type Result struct {
	PredictedRiskLevel string                `json:"predicted_risk_level"`
	RiskProbability    map[string]float64    `json:"risk_probability"`
	Confidence         float64               `json:"confidence"`
	RiskScore          float64               `json:"risk_score"`
	RiskDetails        []risk.Detail         `json:"risk_details"`
	Recommendations    []risk.Recommendation `json:"recommendations"`
}

// Outcome is one batch slot: either a Result or a structured failure. A bad
// record never aborts the batch or the process.
type Outcome struct {
	Index         int     `json:"index"`
	SupplierID    string  `json:"supplier_id,omitempty"`
	SupplierName  string  `json:"supplier_name,omitempty"`
	Result        *Result `json:"result,omitempty"`
	Error         string  `json:"error,omitempty"`
	ErrorCategory string  `json:"error_category,omitempty"`
}

// Failed reports whether this outcome carries an error instead of a result
func (o Outcome) Failed() bool {
	return o.Result == nil
}

func failureOutcome(index int, id, name string, err error) Outcome {
	appErr := errors.ToAppError(err)
	return Outcome{
		Index:         index,
		SupplierID:    id,
		SupplierName:  name,
		Error:         appErr.Error(),
		ErrorCategory: string(appErr.Category),
	}
}
