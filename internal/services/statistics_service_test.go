package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/henley-workshops/survey-service/internal/models"
	"github.com/henley-workshops/survey-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func preWorkshopResponses() []*models.SurveyResponse {
	roles := []string{"CTO", "Founder", "CTO", "Engineer", "CTO"}
	tools := [][]string{
		{"ChatGPT"},
		{"ChatGPT", "Copilot"},
		{"Copilot"},
		{"ChatGPT"},
		{"ChatGPT", "Claude"},
	}

	responses := make([]*models.SurveyResponse, 0, 5)
	for i := 0; i < 5; i++ {
		completion := 120 + i*30
		r := &models.SurveyResponse{
			ID:               fmt.Sprintf("resp-%d", i+1),
			SurveyID:         "pre-2026",
			SurveyType:       models.SurveyTypePreWorkshop,
			ParticipantName:  fmt.Sprintf("Participant %d", i+1),
			ParticipantEmail: fmt.Sprintf("p%d@example.com", i+1),
			Timestamp:        fmt.Sprintf("2026-08-0%dT10:00:00Z", i+1),
			CompletionTime:   &completion,
		}
		r.SetAnswer("ai-familiarity", models.NumberValue(float64(i+1)))
		r.SetAnswer("role", models.ChoiceValue(roles[i]))
		r.SetAnswer("ai-tools-used", models.MultiChoiceValue(tools[i]))
		r.SetAnswer("goals", models.TextValue(fmt.Sprintf("goal %d", i+1)))
		responses = append(responses, r)
	}
	return responses
}

func TestAggregateRatingAverage(t *testing.T) {
	stats := Aggregate(preWorkshopResponses())

	assert.Equal(t, 5, stats.TotalResponses)

	familiarity := stats.QuestionStats["ai-familiarity"]
	require.NotNil(t, familiarity)
	assert.Equal(t, 5, familiarity.TotalAnswers)
	require.NotNil(t, familiarity.Average)
	assert.InDelta(t, 3.0, *familiarity.Average, 1e-9)
	assert.Equal(t, map[string]int{"1": 1, "2": 1, "3": 1, "4": 1, "5": 1}, familiarity.Distribution)
}

func TestAggregateDistributionTotals(t *testing.T) {
	stats := Aggregate(preWorkshopResponses())

	// Scalar questions: distribution counts sum to the answer count.
	role := stats.QuestionStats["role"]
	require.NotNil(t, role)
	assert.Equal(t, 5, role.TotalAnswers)
	total := 0
	for _, count := range role.Distribution {
		total += count
	}
	assert.Equal(t, role.TotalAnswers, total)
	assert.Equal(t, 3, role.Distribution["CTO"])

	// Multi-choice: one answer per participant, one count per picked option.
	toolsUsed := stats.QuestionStats["ai-tools-used"]
	require.NotNil(t, toolsUsed)
	assert.Equal(t, 5, toolsUsed.TotalAnswers)
	assert.Equal(t, 4, toolsUsed.Distribution["ChatGPT"])
	assert.Equal(t, 2, toolsUsed.Distribution["Copilot"])
	assert.Equal(t, 1, toolsUsed.Distribution["Claude"])
	assert.Nil(t, toolsUsed.Average)
}

func TestAggregateFreeTextKeepsRawResponses(t *testing.T) {
	stats := Aggregate(preWorkshopResponses())

	goals := stats.QuestionStats["goals"]
	require.NotNil(t, goals)
	assert.Len(t, goals.RawResponses, 5)
	assert.Equal(t, "goal 1", goals.RawResponses[0])
}

func TestAggregateCompletionTime(t *testing.T) {
	stats := Aggregate(preWorkshopResponses())

	// 120, 150, 180, 210, 240 seconds
	require.NotNil(t, stats.AverageCompletionTimeSeconds)
	assert.InDelta(t, 180.0, *stats.AverageCompletionTimeSeconds, 1e-9)
}

func TestAggregateEmptyCollection(t *testing.T) {
	stats := Aggregate(nil)

	assert.Equal(t, 0, stats.TotalResponses)
	assert.Empty(t, stats.QuestionStats)
	assert.Nil(t, stats.AverageCompletionTimeSeconds)
}

func TestSelectTopLineMetricsPreWorkshop(t *testing.T) {
	stats := Aggregate(preWorkshopResponses())

	metrics := SelectTopLineMetrics(stats, models.SurveyTypePreWorkshop)
	require.Len(t, metrics, 2)

	familiarity := metrics[0]
	assert.Equal(t, "ai-familiarity", familiarity.QuestionID)
	assert.Equal(t, "Average AI Familiarity", familiarity.Label)
	require.Len(t, familiarity.Items, 1)
	assert.Equal(t, "3.0 / 5", familiarity.Items[0].Label)
	assert.InDelta(t, 60.0, familiarity.Items[0].Percentage, 1e-9)

	roles := metrics[1]
	assert.Equal(t, "Top Roles", roles.Label)
	require.NotEmpty(t, roles.Items)
	assert.Equal(t, "CTO", roles.Items[0].Label)
	assert.Equal(t, 3, roles.Items[0].Count)
	assert.InDelta(t, 60.0, roles.Items[0].Percentage, 1e-9)
}

func TestSelectTopLineMetricsPostWorkshop(t *testing.T) {
	r := &models.SurveyResponse{SurveyType: models.SurveyTypePostWorkshop}
	r.SetAnswer("overall-satisfaction", models.NumberValue(4))
	r.SetAnswer("knowledge-gained", models.NumberValue(5))
	r.SetAnswer("recommendation", models.NumberValue(3))

	metrics := SelectTopLineMetrics(Aggregate([]*models.SurveyResponse{r}), models.SurveyTypePostWorkshop)
	require.Len(t, metrics, 3)
	assert.Equal(t, "Average Satisfaction", metrics[0].Label)
	assert.Equal(t, "4.0 / 5", metrics[0].Items[0].Label)
	assert.Equal(t, "Average Knowledge Gain", metrics[1].Label)
	assert.Equal(t, "Average Recommendation Score", metrics[2].Label)
	assert.Equal(t, "3.0 / 5", metrics[2].Items[0].Label)
}

func TestSelectTopLineMetricsOmitsMissingQuestions(t *testing.T) {
	r := &models.SurveyResponse{SurveyType: models.SurveyTypePostWorkshop}
	r.SetAnswer("overall-satisfaction", models.NumberValue(4))

	metrics := SelectTopLineMetrics(Aggregate([]*models.SurveyResponse{r}), models.SurveyTypePostWorkshop)
	require.Len(t, metrics, 1)
	assert.Equal(t, "Average Satisfaction", metrics[0].Label)

	assert.Empty(t, SelectTopLineMetrics(Aggregate(nil), models.SurveyTypePreWorkshop))
}

func TestGetStatisticsUsesCache(t *testing.T) {
	repo := newMockRepository()
	repo.responses.On("List", mock.Anything, repositories.ResponseFilters{}).
		Return(preWorkshopResponses(), nil).Once()

	service := NewStatisticsService(repo, newMemoryCache(), testLogger())

	first, err := service.GetStatistics(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, first.TotalResponses)

	// Second call is served from cache; List is only expected once.
	second, err := service.GetStatistics(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, second.TotalResponses)

	repo.responses.AssertExpectations(t)
}

func TestGetTopLineMetricsRejectsInvalidType(t *testing.T) {
	service := NewStatisticsService(newMockRepository(), newMemoryCache(), testLogger())

	_, err := service.GetTopLineMetrics(context.Background(), models.SurveyType("weekly"))
	assert.ErrorIs(t, err, ErrInvalidSurveyType)
}

func TestGetTopLineMetricsFiltersBySurveyType(t *testing.T) {
	repo := newMockRepository()
	surveyType := models.SurveyTypePreWorkshop
	repo.responses.On("List", mock.Anything, repositories.ResponseFilters{SurveyType: &surveyType}).
		Return(preWorkshopResponses(), nil).Once()

	service := NewStatisticsService(repo, newMemoryCache(), testLogger())

	metrics, err := service.GetTopLineMetrics(context.Background(), models.SurveyTypePreWorkshop)
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	repo.responses.AssertExpectations(t)
}
