package repositories

import (
	"context"

	"github.com/henley-workshops/survey-service/internal/models"
)

// ResponseFilters narrows a response listing. Listings are always newest
// first by submission timestamp.
type ResponseFilters struct {
	SurveyType *models.SurveyType
	Limit      int
	Offset     int
}

// ResponseRepository is the store behind survey responses. Implementations
// return materialized snapshots with every record's full answer list loaded;
// there is no lazy cursor. Backend failures surface as errors: callers never
// receive silently empty data.
type ResponseRepository interface {
	Create(ctx context.Context, response *models.SurveyResponse) error
	GetByID(ctx context.Context, id string) (*models.SurveyResponse, error)
	List(ctx context.Context, filters ResponseFilters) ([]*models.SurveyResponse, error)
	// Delete reports whether a record existed and was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// ParticipantRepository is the store behind intake submissions.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	GetByID(ctx context.Context, id string) (*models.Participant, error)
	List(ctx context.Context) ([]*models.Participant, error)
}

// Repository bundles every store the services need.
type Repository interface {
	Responses() ResponseRepository
	Participants() ParticipantRepository
}
