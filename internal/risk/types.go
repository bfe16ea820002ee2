package risk

// Level is the ordinal severity of one risk category
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// Priority ranks a recommendation
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Detail is one scored risk category. Score is 0-100+ and deliberately not
// normalized; Level comes from the fixed thresholds in levelFor.
type Detail struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Level    Level   `json:"level"`
}

// Recommendation is one prioritized action for a predicted risk level
type Recommendation struct {
	Priority Priority `json:"priority"`
	Action   string   `json:"action"`
	Impact   string   `json:"impact"`
}
