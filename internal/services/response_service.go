package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/henley-workshops/survey-service/internal/cache"
	apperrors "github.com/henley-workshops/survey-service/internal/errors"
	"github.com/henley-workshops/survey-service/internal/events"
	"github.com/henley-workshops/survey-service/internal/models"
	"github.com/henley-workshops/survey-service/internal/repositories"
	"gorm.io/gorm"
)

// ResponseService owns the write and read paths for survey responses.
// Validation happens here, at the store boundary; the aggregation core only
// ever sees records that passed it.
type ResponseService interface {
	Submit(ctx context.Context, response *models.SurveyResponse) error
	List(ctx context.Context, surveyType *models.SurveyType) ([]*models.SurveyResponse, error)
	Get(ctx context.Context, id string) (*models.SurveyResponse, error)
	Delete(ctx context.Context, id string) error
}

type responseService struct {
	repo      repositories.Repository
	validator *validator.Validate
	publisher events.EventPublisher
	cache     cache.CacheService
	logger    *slog.Logger
}

func NewResponseService(
	repo repositories.Repository,
	validate *validator.Validate,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	logger *slog.Logger,
) ResponseService {
	return &responseService{
		repo:      repo,
		validator: validate,
		publisher: publisher,
		cache:     cacheService,
		logger:    logger,
	}
}

func (s *responseService) Submit(ctx context.Context, response *models.SurveyResponse) error {
	if response.ID == "" {
		response.ID = uuid.New().String()
	}
	if response.Timestamp == "" {
		response.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	if err := s.validator.Struct(response); err != nil {
		verrs := apperrors.ToValidationErrors(err)
		if len(verrs) > 0 {
			return verrs
		}
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	if err := s.repo.Responses().Create(ctx, response); err != nil {
		return fmt.Errorf("failed to save survey response: %w", err)
	}

	s.invalidateStatistics(ctx)
	s.publish(ctx, events.NewResponseSubmittedEvent(response))

	return nil
}

func (s *responseService) List(ctx context.Context, surveyType *models.SurveyType) ([]*models.SurveyResponse, error) {
	if surveyType != nil && !surveyType.Valid() {
		return nil, ErrInvalidSurveyType
	}
	return s.repo.Responses().List(ctx, repositories.ResponseFilters{SurveyType: surveyType})
}

func (s *responseService) Get(ctx context.Context, id string) (*models.SurveyResponse, error) {
	response, err := s.repo.Responses().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}
	return response, nil
}

func (s *responseService) Delete(ctx context.Context, id string) error {
	existed, err := s.repo.Responses().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete survey response: %w", err)
	}
	if !existed {
		return ErrResponseNotFound
	}

	s.invalidateStatistics(ctx)
	s.publish(ctx, events.NewResponseDeletedEvent(id))

	return nil
}

// publish emits an event without letting broker trouble fail the write that
// already succeeded.
func (s *responseService) publish(ctx context.Context, event *events.SurveyEvent) {
	if err := s.publisher.PublishSurveyEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish survey event",
			"event_type", event.Type, "error", err)
	}
}

func (s *responseService) invalidateStatistics(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "survey:stats:*"); err != nil {
		s.logger.Warn("failed to invalidate statistics cache", "error", err)
	}
}
