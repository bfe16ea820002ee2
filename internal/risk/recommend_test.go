package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendHighAndCriticalShareBucket(t *testing.T) {
	high := Recommend("high")
	critical := Recommend("critical")

	assert.Equal(t, high, critical, "high and critical must yield identical recommendation lists")
	require.Len(t, high, 3)

	assert.Equal(t, PriorityHigh, high[0].Priority)
	assert.Equal(t, "Immediate audit required", high[0].Action)
	assert.Equal(t, "Critical - Reduce risk by 30%", high[0].Impact)
	assert.Equal(t, "Activate backup suppliers", high[1].Action)
	assert.Equal(t, PriorityMedium, high[2].Priority)
	assert.Equal(t, "Renegotiate delivery terms", high[2].Action)
}

func TestRecommendMedium(t *testing.T) {
	recs := Recommend("medium")
	require.Len(t, recs, 2)

	assert.Equal(t, PriorityMedium, recs[0].Priority)
	assert.Equal(t, "Quarterly performance review", recs[0].Action)
	assert.Equal(t, "Request certification updates", recs[1].Action)
	assert.Equal(t, "Low - Maintain compliance", recs[1].Impact)
}

func TestRecommendDefaultBucket(t *testing.T) {
	low := Recommend("low")
	require.Len(t, low, 2)
	assert.Equal(t, "Maintain standard monitoring", low[0].Action)
	assert.Equal(t, "Annual partnership review", low[1].Action)

	// bucketing is case-sensitive on the canonical lowercase labels;
	// anything else falls through to the low bucket
	assert.Equal(t, low, Recommend(""))
	assert.Equal(t, low, Recommend("HIGH"))
	assert.Equal(t, low, Recommend("unknown"))
}

func TestRecommendReturnsDefensiveCopies(t *testing.T) {
	first := Recommend("high")
	first[0].Action = "tampered"

	second := Recommend("high")
	assert.Equal(t, "Immediate audit required", second[0].Action)
}

func TestRecommendIsDeterministic(t *testing.T) {
	for _, level := range []string{"low", "medium", "high", "critical"} {
		assert.Equal(t, Recommend(level), Recommend(level))
	}
}
