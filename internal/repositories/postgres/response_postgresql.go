package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/henley-workshops/survey-service/internal/models"
	"github.com/henley-workshops/survey-service/internal/repositories"
	"gorm.io/gorm"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

// Create inserts the response row and one flat answer row per answer in a
// single transaction, encoding each value through the answer-cell codec.
func (r *ResponsePostgreSQL) Create(ctx context.Context, response *models.SurveyResponse) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return fmt.Errorf("failed to create survey response: %w", err)
		}

		rows := make([]models.SurveyAnswerRow, 0, len(response.Answers))
		for _, answer := range response.Answers {
			rows = append(rows, models.SurveyAnswerRow{
				ResponseID:  response.ID,
				QuestionID:  answer.QuestionID,
				AnswerValue: answer.Value.EncodeCell(),
			})
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to create survey answers: %w", err)
			}
		}

		return nil
	})
}

func (r *ResponsePostgreSQL) GetByID(ctx context.Context, id string) (*models.SurveyResponse, error) {
	var response models.SurveyResponse
	err := r.db.WithContext(ctx).First(&response, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get survey response: %w", err)
	}

	if err := r.loadAnswers(ctx, []*models.SurveyResponse{&response}); err != nil {
		return nil, err
	}
	return &response, nil
}

// List returns responses newest first, each with its full answer list.
func (r *ResponsePostgreSQL) List(ctx context.Context, filters repositories.ResponseFilters) ([]*models.SurveyResponse, error) {
	query := r.db.WithContext(ctx).Model(&models.SurveyResponse{}).Order("timestamp DESC")

	if filters.SurveyType != nil {
		query = query.Where("survey_type = ?", *filters.SurveyType)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var responses []*models.SurveyResponse
	if err := query.Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to list survey responses: %w", err)
	}
	if len(responses) == 0 {
		return responses, nil
	}

	if err := r.loadAnswers(ctx, responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *ResponsePostgreSQL) Delete(ctx context.Context, id string) (bool, error) {
	existed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("response_id = ?", id).Delete(&models.SurveyAnswerRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete survey answers: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.SurveyResponse{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete survey response: %w", result.Error)
		}
		existed = result.RowsAffected > 0
		return nil
	})
	return existed, err
}

// loadAnswers fetches the answer rows for every response in one query and
// decodes each cell back into a typed value. Row insertion order is kept so
// answer order matches submission order.
func (r *ResponsePostgreSQL) loadAnswers(ctx context.Context, responses []*models.SurveyResponse) error {
	ids := make([]string, 0, len(responses))
	byID := make(map[string]*models.SurveyResponse, len(responses))
	for _, response := range responses {
		ids = append(ids, response.ID)
		byID[response.ID] = response
	}

	var rows []models.SurveyAnswerRow
	err := r.db.WithContext(ctx).
		Where("response_id IN ?", ids).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to load survey answers: %w", err)
	}

	for _, row := range rows {
		response, ok := byID[row.ResponseID]
		if !ok {
			continue
		}
		response.Answers = append(response.Answers, models.Answer{
			QuestionID: row.QuestionID,
			Value:      models.DecodeCell(row.AnswerValue),
		})
	}
	return nil
}
