package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/henley-workshops/survey-service/internal/models"
	"github.com/henley-workshops/survey-service/internal/repositories"
	"gorm.io/gorm"
)

type ParticipantPostgreSQL struct {
	db *gorm.DB
}

func NewParticipantPostgreSQL(db *gorm.DB) repositories.ParticipantRepository {
	return &ParticipantPostgreSQL{db: db}
}

func (p *ParticipantPostgreSQL) Create(ctx context.Context, participant *models.Participant) error {
	if err := p.db.WithContext(ctx).Create(participant).Error; err != nil {
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (p *ParticipantPostgreSQL) GetByID(ctx context.Context, id string) (*models.Participant, error) {
	var participant models.Participant
	err := p.db.WithContext(ctx).First(&participant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return &participant, nil
}

func (p *ParticipantPostgreSQL) List(ctx context.Context) ([]*models.Participant, error) {
	var participants []*models.Participant
	err := p.db.WithContext(ctx).Order("timestamp DESC").Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}
