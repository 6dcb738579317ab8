package postgres

import (
	"fmt"

	"github.com/henley-workshops/survey-service/internal/models"
	"github.com/henley-workshops/survey-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	responses    repositories.ResponseRepository
	participants repositories.ParticipantRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		responses:    NewResponsePostgreSQL(db),
		participants: NewParticipantPostgreSQL(db),
	}
}

func (r *Repository) Responses() repositories.ResponseRepository { return r.responses }

func (r *Repository) Participants() repositories.ParticipantRepository { return r.participants }

// Migrate creates or updates the survey tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.SurveyResponse{},
		&models.SurveyAnswerRow{},
		&models.Participant{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate survey tables: %w", err)
	}
	return nil
}
