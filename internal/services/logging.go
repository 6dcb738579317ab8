package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/henley-workshops/survey-service/internal/models"
)

// responseServiceWithLogging decorates ResponseService with timing and
// outcome logs, keeping the service implementations free of log noise.
type responseServiceWithLogging struct {
	inner  ResponseService
	logger *slog.Logger
}

func NewResponseServiceWithLogging(inner ResponseService, logger *slog.Logger) ResponseService {
	return &responseServiceWithLogging{
		inner:  inner,
		logger: logger.With("service", "response"),
	}
}

func (s *responseServiceWithLogging) Submit(ctx context.Context, response *models.SurveyResponse) error {
	start := time.Now()
	err := s.inner.Submit(ctx, response)
	if err != nil {
		s.logger.Warn("submit rejected",
			"response_id", response.ID,
			"survey_type", response.SurveyType,
			"duration", time.Since(start).String(),
			"error", err)
		return err
	}
	s.logger.Info("response submitted",
		"response_id", response.ID,
		"survey_type", response.SurveyType,
		"answers", len(response.Answers),
		"duration", time.Since(start).String())
	return nil
}

func (s *responseServiceWithLogging) List(ctx context.Context, surveyType *models.SurveyType) ([]*models.SurveyResponse, error) {
	start := time.Now()
	responses, err := s.inner.List(ctx, surveyType)
	if err != nil {
		s.logger.Error("list failed", "duration", time.Since(start).String(), "error", err)
		return nil, err
	}
	s.logger.Debug("responses listed",
		"count", len(responses),
		"duration", time.Since(start).String())
	return responses, nil
}

func (s *responseServiceWithLogging) Get(ctx context.Context, id string) (*models.SurveyResponse, error) {
	return s.inner.Get(ctx, id)
}

func (s *responseServiceWithLogging) Delete(ctx context.Context, id string) error {
	err := s.inner.Delete(ctx, id)
	if err != nil {
		s.logger.Warn("delete failed", "response_id", id, "error", err)
		return err
	}
	s.logger.Info("response deleted", "response_id", id)
	return nil
}
