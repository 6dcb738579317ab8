package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/henley-workshops/survey-service/internal/cache"
	"github.com/henley-workshops/survey-service/internal/models"
	"github.com/henley-workshops/survey-service/internal/repositories"
)

// Question ids and scale the top-line selector is hardwired to. The ids come
// from the workshop survey definitions; the engine itself never interprets
// them.
const (
	questionAIFamiliarity       = "ai-familiarity"
	questionRole                = "role"
	questionOverallSatisfaction = "overall-satisfaction"
	questionKnowledgeGained     = "knowledge-gained"
	questionRecommendation      = "recommendation"

	ratingScale   = 5
	topRolesLimit = 5
)

const statisticsCacheTTL = 2 * time.Minute

// StatisticsService computes aggregate statistics and top-line metrics over
// the stored responses.
type StatisticsService interface {
	GetStatistics(ctx context.Context, surveyType *models.SurveyType) (*models.SurveyStatistics, error)
	GetTopLineMetrics(ctx context.Context, surveyType models.SurveyType) ([]models.TopLineMetric, error)
}

type statisticsService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewStatisticsService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) StatisticsService {
	return &statisticsService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

// Aggregate folds a response collection into per-question statistics plus
// collection-level metrics. It is a pure function: a fresh statistics map is
// built per call and the input is never mutated.
func Aggregate(responses []*models.SurveyResponse) *models.SurveyStatistics {
	stats := &models.SurveyStatistics{
		TotalResponses: len(responses),
		QuestionStats:  make(map[string]*models.QuestionStatistics),
	}

	completionCount := 0
	completionTotal := 0.0

	for _, response := range responses {
		if response.CompletionTime != nil {
			completionCount++
			completionTotal += float64(*response.CompletionTime)
		}

		for _, answer := range response.Answers {
			qs, ok := stats.QuestionStats[answer.QuestionID]
			if !ok {
				qs = models.NewQuestionStatistics()
				stats.QuestionStats[answer.QuestionID] = qs
			}

			// One answer is one participant's response to the question,
			// regardless of how many options it carries.
			qs.TotalAnswers++

			switch answer.Value.Kind() {
			case models.ValueNumber:
				qs.ObserveNumber(answer.Value.Number())
			case models.ValueMultiChoice:
				for _, option := range answer.Value.Options() {
					qs.Observe(option)
				}
			default:
				// Without the survey schema a scalar string could be either
				// free text or a selected option; it counts in the
				// distribution and stays inspectable as raw text.
				qs.ObserveText(answer.Value.Text())
			}
		}
	}

	if completionCount > 0 {
		avg := completionTotal / float64(completionCount)
		stats.AverageCompletionTimeSeconds = &avg
	}

	return stats
}

// SelectTopLineMetrics projects the curated headline metrics for a survey
// type out of an aggregate. The (question, presentation) pairs are fixed;
// a metric is omitted when its question has no usable data.
func SelectTopLineMetrics(stats *models.SurveyStatistics, surveyType models.SurveyType) []models.TopLineMetric {
	metrics := make([]models.TopLineMetric, 0, 4)

	switch surveyType {
	case models.SurveyTypePreWorkshop:
		if m, ok := averageMetric(stats, questionAIFamiliarity, "Average AI Familiarity"); ok {
			metrics = append(metrics, m)
		}
		if m, ok := topEntriesMetric(stats, questionRole, "Top Roles", topRolesLimit); ok {
			metrics = append(metrics, m)
		}
	case models.SurveyTypePostWorkshop:
		if m, ok := averageMetric(stats, questionOverallSatisfaction, "Average Satisfaction"); ok {
			metrics = append(metrics, m)
		}
		if m, ok := averageMetric(stats, questionKnowledgeGained, "Average Knowledge Gain"); ok {
			metrics = append(metrics, m)
		}
		if m, ok := averageMetric(stats, questionRecommendation, "Average Recommendation Score"); ok {
			metrics = append(metrics, m)
		}
	}

	return metrics
}

// averageMetric renders a rating question's mean as "x.x / 5" with the mean
// as a fraction of the scale for the progress bar.
func averageMetric(stats *models.SurveyStatistics, questionID, label string) (models.TopLineMetric, bool) {
	qs, ok := stats.QuestionStats[questionID]
	if !ok || qs.Average == nil {
		return models.TopLineMetric{}, false
	}

	avg := *qs.Average
	return models.TopLineMetric{
		QuestionID: questionID,
		Label:      label,
		Items: []models.TopLineItem{{
			Label:      fmt.Sprintf("%.1f / %d", avg, ratingScale),
			Count:      0,
			Percentage: avg / ratingScale * 100,
		}},
	}, true
}

// topEntriesMetric renders the most frequent distribution values, with each
// count as a percentage of the total response count.
func topEntriesMetric(stats *models.SurveyStatistics, questionID, label string, limit int) (models.TopLineMetric, bool) {
	qs, ok := stats.QuestionStats[questionID]
	if !ok || len(qs.Distribution) == 0 {
		return models.TopLineMetric{}, false
	}

	entries := qs.TopEntries(limit)
	items := make([]models.TopLineItem, 0, len(entries))
	for _, entry := range entries {
		percentage := 0.0
		if stats.TotalResponses > 0 {
			percentage = float64(entry.Count) / float64(stats.TotalResponses) * 100
		}
		items = append(items, models.TopLineItem{
			Label:      entry.Value,
			Count:      entry.Count,
			Percentage: percentage,
		})
	}

	return models.TopLineMetric{QuestionID: questionID, Label: label, Items: items}, true
}

func (s *statisticsService) GetStatistics(ctx context.Context, surveyType *models.SurveyType) (*models.SurveyStatistics, error) {
	cacheKey := statisticsCacheKey(surveyType)

	var cached models.SurveyStatistics
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	responses, err := s.repo.Responses().List(ctx, repositories.ResponseFilters{SurveyType: surveyType})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch responses for statistics: %w", err)
	}

	stats := Aggregate(responses)

	if err := s.cache.Set(ctx, cacheKey, stats, statisticsCacheTTL); err != nil {
		s.logger.Warn("failed to cache survey statistics", "key", cacheKey, "error", err)
	}

	return stats, nil
}

func (s *statisticsService) GetTopLineMetrics(ctx context.Context, surveyType models.SurveyType) ([]models.TopLineMetric, error) {
	if !surveyType.Valid() {
		return nil, ErrInvalidSurveyType
	}

	st := surveyType
	responses, err := s.repo.Responses().List(ctx, repositories.ResponseFilters{SurveyType: &st})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch responses for top-line metrics: %w", err)
	}

	return SelectTopLineMetrics(Aggregate(responses), surveyType), nil
}

func statisticsCacheKey(surveyType *models.SurveyType) string {
	if surveyType == nil {
		return "survey:stats:all"
	}
	return "survey:stats:" + string(*surveyType)
}
