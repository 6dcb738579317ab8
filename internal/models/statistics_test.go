package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveNumberIncrementalMean(t *testing.T) {
	stats := NewQuestionStatistics()
	for _, v := range []float64{1, 2, 3, 4, 5} {
		stats.ObserveNumber(v)
	}

	require.NotNil(t, stats.Average)
	assert.InDelta(t, 3.0, *stats.Average, 1e-9)
	assert.Equal(t, 5, stats.NumericCount())
}

func TestObserveNumberSingleValue(t *testing.T) {
	stats := NewQuestionStatistics()
	stats.ObserveNumber(4)

	require.NotNil(t, stats.Average)
	assert.InDelta(t, 4.0, *stats.Average, 1e-9)
	assert.Equal(t, map[string]int{"4": 1}, stats.Distribution)
}

func TestAverageAbsentWithoutNumericAnswers(t *testing.T) {
	stats := NewQuestionStatistics()
	stats.ObserveText("CTO")
	stats.ObserveText("Founder")

	assert.Nil(t, stats.Average)
	assert.Equal(t, 0, stats.NumericCount())
	assert.Equal(t, []string{"CTO", "Founder"}, stats.RawResponses)
}

func TestTopEntriesRanksByCountThenFirstSeen(t *testing.T) {
	stats := NewQuestionStatistics()
	for _, v := range []string{"CTO", "Founder", "CTO", "Engineer", "Founder", "CTO"} {
		stats.Observe(v)
	}

	entries := stats.TopEntries(2)
	require.Len(t, entries, 2)
	assert.Equal(t, DistributionEntry{Value: "CTO", Count: 3}, entries[0])
	assert.Equal(t, DistributionEntry{Value: "Founder", Count: 2}, entries[1])
}

func TestTopEntriesTieKeepsInputOrder(t *testing.T) {
	stats := NewQuestionStatistics()
	for _, v := range []string{"b", "a", "c", "a", "b", "c"} {
		stats.Observe(v)
	}

	entries := stats.TopEntries(0)
	require.Len(t, entries, 3)
	assert.Equal(t, "b", entries[0].Value)
	assert.Equal(t, "a", entries[1].Value)
	assert.Equal(t, "c", entries[2].Value)
}
