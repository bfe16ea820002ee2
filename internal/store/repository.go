package store

import (
	"context"
	"database/sql"

	"github.com/procurelens/supplier-risk/internal/errors"
)

// Repository handles assessment persistence
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveAssessment inserts one assessment row
func (r *Repository) SaveAssessment(ctx context.Context, a *Assessment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assessments (id, supplier_id, supplier_name, predicted_risk_level,
			confidence, risk_score, risk_details, recommendations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.SupplierID, a.SupplierName, a.PredictedRiskLevel,
		a.Confidence, a.RiskScore, a.RiskDetails, a.Recommendations, a.CreatedAt)

	if err != nil {
		return errors.NewStorageError("failed to save assessment", err)
	}

	return nil
}

// RecentAssessments returns the newest assessments, most recent first
func (r *Repository) RecentAssessments(ctx context.Context, limit int) ([]Assessment, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, supplier_id, supplier_name, predicted_risk_level,
			confidence, risk_score, risk_details, recommendations, created_at
		FROM assessments
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.NewStorageError("failed to query assessments", err)
	}
	defer rows.Close()

	var assessments []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.ID, &a.SupplierID, &a.SupplierName, &a.PredictedRiskLevel,
			&a.Confidence, &a.RiskScore, &a.RiskDetails, &a.Recommendations, &a.CreatedAt); err != nil {
			return nil, errors.NewStorageError("failed to scan assessment", err)
		}
		assessments = append(assessments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("failed to iterate assessments", err)
	}

	return assessments, nil
}

// GetAssessment fetches one assessment by id
func (r *Repository) GetAssessment(ctx context.Context, id string) (*Assessment, error) {
	var a Assessment
	err := r.db.QueryRowContext(ctx, `
		SELECT id, supplier_id, supplier_name, predicted_risk_level,
			confidence, risk_score, risk_details, recommendations, created_at
		FROM assessments
		WHERE id = ?
	`, id).Scan(&a.ID, &a.SupplierID, &a.SupplierName, &a.PredictedRiskLevel,
		&a.Confidence, &a.RiskScore, &a.RiskDetails, &a.Recommendations, &a.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewStorageError("failed to query assessment", err)
	}

	return &a, nil
}

// CountByRiskLevel returns assessment counts grouped by predicted level
func (r *Repository) CountByRiskLevel(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT predicted_risk_level, COUNT(*)
		FROM assessments
		GROUP BY predicted_risk_level
	`)
	if err != nil {
		return nil, errors.NewStorageError("failed to count assessments", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, errors.NewStorageError("failed to scan count", err)
		}
		counts[level] = count
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("failed to iterate counts", err)
	}

	return counts, nil
}
