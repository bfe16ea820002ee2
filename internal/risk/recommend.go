package risk

// Recommendation tables, fixed per predicted-level bucket. The lists are
// ordered by priority and returned as defensive copies so callers cannot
// corrupt the tables.
var (
	highRecommendations = []Recommendation{
		{Priority: PriorityHigh, Action: "Immediate audit required", Impact: "Critical - Reduce risk by 30%"},
		{Priority: PriorityHigh, Action: "Activate backup suppliers", Impact: "High - Ensure supply continuity"},
		{Priority: PriorityMedium, Action: "Renegotiate delivery terms", Impact: "Medium - Improve delivery rate by 15%"},
	}

	mediumRecommendations = []Recommendation{
		{Priority: PriorityMedium, Action: "Quarterly performance review", Impact: "Medium - Monitor trends"},
		{Priority: PriorityMedium, Action: "Request certification updates", Impact: "Low - Maintain compliance"},
	}

	lowRecommendations = []Recommendation{
		{Priority: PriorityLow, Action: "Maintain standard monitoring", Impact: "Low - Continue good performance"},
		{Priority: PriorityLow, Action: "Annual partnership review", Impact: "Low - Strengthen relationship"},
	}
)

// Recommend maps a predicted risk level to its fixed, ordered action list.
// Levels are the canonical lowercase strings; "high" and "critical" share a
// bucket, anything unrecognized falls into the low bucket. Recommendations
// never vary within a bucket.
func Recommend(riskLevel string) []Recommendation {
	switch riskLevel {
	case "high", "critical":
		return copyRecommendations(highRecommendations)
	case "medium":
		return copyRecommendations(mediumRecommendations)
	default:
		return copyRecommendations(lowRecommendations)
	}
}

func copyRecommendations(recs []Recommendation) []Recommendation {
	return append([]Recommendation(nil), recs...)
}
