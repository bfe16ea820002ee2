package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/procurelens/supplier-risk/internal/errors"
)

// Canonical risk level labels. Lowercase is canonical throughout the core;
// uppercasing is a display-only transform that belongs to callers.
const (
	LabelLow      = "low"
	LabelMedium   = "medium"
	LabelHigh     = "high"
	LabelCritical = "critical"
)

// RiskLevels is the fixed four-value label space
var RiskLevels = []string{LabelLow, LabelMedium, LabelHigh, LabelCritical}

// LabelCodec is the persisted bijection between the classifier's internal
// integer labels and the canonical risk level strings. Classes[i] is the
// string for integer label i; probability vectors are aligned to the same
// order.
type LabelCodec struct {
	Classes []string `json:"classes"`
}

// LoadLabelCodec reads the persisted label encoding and validates that it
// covers exactly the canonical label space
func LoadLabelCodec(path string) (*LabelCodec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError("label codec", err)
	}
	defer file.Close()

	var codec LabelCodec
	if err := json.NewDecoder(file).Decode(&codec); err != nil {
		return nil, errors.NewLoadError("label codec", err)
	}

	if err := codec.validate(); err != nil {
		return nil, errors.NewLoadError("label codec", err)
	}

	return &codec, nil
}

func (c *LabelCodec) validate() error {
	if len(c.Classes) != len(RiskLevels) {
		return fmt.Errorf("expected %d classes, got %d", len(RiskLevels), len(c.Classes))
	}
	seen := make(map[string]bool, len(c.Classes))
	for _, class := range c.Classes {
		seen[class] = true
	}
	for _, level := range RiskLevels {
		if !seen[level] {
			return fmt.Errorf("label space is missing class %q", level)
		}
	}
	return nil
}

// Decode maps an integer label back to its risk level string
func (c *LabelCodec) Decode(label int) (string, error) {
	if label < 0 || label >= len(c.Classes) {
		return "", errors.NewValidationError(
			fmt.Sprintf("integer label %d outside class range", label), "label", fmt.Sprintf("%d", label))
	}
	return c.Classes[label], nil
}

// Encode maps a risk level string to its integer label
func (c *LabelCodec) Encode(level string) (int, error) {
	for i, class := range c.Classes {
		if class == level {
			return i, nil
		}
	}
	return 0, errors.NewValidationError(
		fmt.Sprintf("unknown risk level %q", level), "risk_level", level)
}
