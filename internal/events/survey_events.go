package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/henley-workshops/survey-service/internal/models"
)

// EventType represents the survey lifecycle events published to the bus.
type EventType string

const (
	EventResponseSubmitted     EventType = "response.submitted"
	EventResponseDeleted       EventType = "response.deleted"
	EventParticipantRegistered EventType = "participant.registered"
)

// SurveyEvent is the envelope shared by all published events.
type SurveyEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type ResponseSubmittedEvent struct {
	ResponseID       string            `json:"response_id"`
	SurveyID         string            `json:"survey_id"`
	SurveyType       models.SurveyType `json:"survey_type"`
	ParticipantEmail string            `json:"participant_email"`
	AnswerCount      int               `json:"answer_count"`
}

type ResponseDeletedEvent struct {
	ResponseID string `json:"response_id"`
}

type ParticipantRegisteredEvent struct {
	ParticipantID string           `json:"participant_id"`
	Organisation  string           `json:"organisation"`
	Track         models.FocusArea `json:"track"`
	Readiness     models.Readiness `json:"readiness"`
}

func newSurveyEvent(eventType EventType, data interface{}) *SurveyEvent {
	return &SurveyEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    "survey-service",
		Version:   "1.0",
		Data:      data,
	}
}

// NewResponseSubmittedEvent builds the event emitted after a successful insert.
func NewResponseSubmittedEvent(response *models.SurveyResponse) *SurveyEvent {
	return newSurveyEvent(EventResponseSubmitted, ResponseSubmittedEvent{
		ResponseID:       response.ID,
		SurveyID:         response.SurveyID,
		SurveyType:       response.SurveyType,
		ParticipantEmail: response.ParticipantEmail,
		AnswerCount:      len(response.Answers),
	})
}

// NewResponseDeletedEvent builds the event emitted after a delete.
func NewResponseDeletedEvent(responseID string) *SurveyEvent {
	return newSurveyEvent(EventResponseDeleted, ResponseDeletedEvent{ResponseID: responseID})
}

// NewParticipantRegisteredEvent builds the event emitted after an intake submission.
func NewParticipantRegisteredEvent(participant *models.Participant) *SurveyEvent {
	return newSurveyEvent(EventParticipantRegistered, ParticipantRegisteredEvent{
		ParticipantID: participant.ID,
		Organisation:  participant.Organisation,
		Track:         participant.Track,
		Readiness:     participant.Readiness,
	})
}
