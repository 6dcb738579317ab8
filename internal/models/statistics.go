package models

import (
	"sort"
	"strconv"
)

// QuestionStatistics aggregates every answer sharing a question id across a
// response collection. Instances are derived per aggregation call, never
// stored, and never mutated after the call returns.
type QuestionStatistics struct {
	TotalAnswers int            `json:"totalAnswers"`
	Distribution map[string]int `json:"distribution"`
	Average      *float64       `json:"average,omitempty"`
	RawResponses []string       `json:"responses,omitempty"`

	// first-seen order of distribution keys, for stable top-N ranking
	keyOrder []string
	// how many observed values were numeric; drives the running average
	numericCount int
}

func NewQuestionStatistics() *QuestionStatistics {
	return &QuestionStatistics{Distribution: map[string]int{}}
}

// Observe adds one occurrence of a distribution key.
func (s *QuestionStatistics) Observe(key string) {
	if _, seen := s.Distribution[key]; !seen {
		s.keyOrder = append(s.keyOrder, key)
	}
	s.Distribution[key]++
}

// ObserveText records a scalar string answer: one distribution increment plus
// the literal string kept inspectable for free-text questions.
func (s *QuestionStatistics) ObserveText(value string) {
	s.Observe(value)
	s.RawResponses = append(s.RawResponses, value)
}

// ObserveNumber folds a numeric answer into the running mean and counts one
// occurrence under the number's string form. The mean is updated
// incrementally so long collections do not accumulate a large sum.
func (s *QuestionStatistics) ObserveNumber(v float64) {
	s.numericCount++
	avg := 0.0
	if s.Average != nil {
		avg = *s.Average
	}
	avg += (v - avg) / float64(s.numericCount)
	s.Average = &avg

	s.Observe(strconv.FormatFloat(v, 'f', -1, 64))
}

// NumericCount reports how many observed values were numeric.
func (s *QuestionStatistics) NumericCount() int { return s.numericCount }

// DistributionEntry is one ranked distribution bucket.
type DistributionEntry struct {
	Value string
	Count int
}

// TopEntries ranks distribution buckets by count descending; ties keep the
// order the values were first seen in the input. n <= 0 returns all entries.
func (s *QuestionStatistics) TopEntries(n int) []DistributionEntry {
	entries := make([]DistributionEntry, 0, len(s.keyOrder))
	for _, key := range s.keyOrder {
		entries = append(entries, DistributionEntry{Value: key, Count: s.Distribution[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// SurveyStatistics is the aggregate over one response collection.
type SurveyStatistics struct {
	TotalResponses               int                            `json:"totalResponses"`
	AverageCompletionTimeSeconds *float64                       `json:"averageCompletionTime,omitempty"`
	QuestionStats                map[string]*QuestionStatistics `json:"questionStats"`
}

// TopLineItem is one displayed entry of a top-line metric.
type TopLineItem struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TopLineMetric is a curated headline metric for the dashboard.
type TopLineMetric struct {
	QuestionID string        `json:"questionId"`
	Label      string        `json:"label"`
	Items      []TopLineItem `json:"items"`
}
