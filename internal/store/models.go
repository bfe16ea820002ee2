package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/procurelens/supplier-risk/internal/errors"
	"github.com/procurelens/supplier-risk/internal/predictor"
)

// Assessment is one persisted prediction. Details and recommendations are
// stored as JSON snapshots so the history is self-contained even if a later
// model changes the live output.
type Assessment struct {
	ID                 string    `json:"id" db:"id"`
	SupplierID         string    `json:"supplier_id,omitempty" db:"supplier_id"`
	SupplierName       string    `json:"supplier_name,omitempty" db:"supplier_name"`
	PredictedRiskLevel string    `json:"predicted_risk_level" db:"predicted_risk_level"`
	Confidence         float64   `json:"confidence" db:"confidence"`
	RiskScore          float64   `json:"risk_score" db:"risk_score"`
	RiskDetails        string    `json:"risk_details" db:"risk_details"`
	Recommendations    string    `json:"recommendations" db:"recommendations"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// NewAssessment snapshots a prediction result under a fresh UUID
func NewAssessment(supplierID, supplierName string, result *predictor.Result) (*Assessment, error) {
	details, err := json.Marshal(result.RiskDetails)
	if err != nil {
		return nil, errors.NewStorageError("failed to marshal risk details", err)
	}

	recommendations, err := json.Marshal(result.Recommendations)
	if err != nil {
		return nil, errors.NewStorageError("failed to marshal recommendations", err)
	}

	return &Assessment{
		ID:                 uuid.New().String(),
		SupplierID:         supplierID,
		SupplierName:       supplierName,
		PredictedRiskLevel: result.PredictedRiskLevel,
		Confidence:         result.Confidence,
		RiskScore:          result.RiskScore,
		RiskDetails:        string(details),
		Recommendations:    string(recommendations),
		CreatedAt:          time.Now().UTC(),
	}, nil
}
