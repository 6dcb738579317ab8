package models

import (
	"time"
)

type SurveyType string

const (
	SurveyTypePreWorkshop  SurveyType = "pre-workshop"
	SurveyTypePostWorkshop SurveyType = "post-workshop"
)

func (t SurveyType) Valid() bool {
	return t == SurveyTypePreWorkshop || t == SurveyTypePostWorkshop
}

// SurveyResponse is one survey submission. Records are immutable once
// persisted; the store supports insert and delete-by-id only.
type SurveyResponse struct {
	ID                      string     `json:"id" gorm:"primaryKey;size:64" validate:"required"`
	SurveyID                string     `json:"surveyId" gorm:"column:survey_id;not null;size:64" validate:"required"`
	SurveyType              SurveyType `json:"surveyType" gorm:"column:survey_type;not null;size:32;index" validate:"required,survey_type"`
	ParticipantName         string     `json:"participantName" gorm:"column:participant_name;not null;size:200" validate:"required"`
	ParticipantEmail        string     `json:"participantEmail" gorm:"column:participant_email;not null;size:200" validate:"required,email"`
	ParticipantOrganization *string    `json:"participantOrganization,omitempty" gorm:"column:participant_organization;size:200"`
	Timestamp               string     `json:"timestamp" gorm:"not null;index"` // ISO-8601
	CompletionTime          *int       `json:"completionTime,omitempty" gorm:"column:completion_time" validate:"omitempty,min=0"` // seconds

	CreatedAt time.Time `json:"-"`

	// Answers are persisted in survey_answers, one text cell each; the
	// repository maps them through the AnswerValue codec.
	Answers []Answer `json:"answers" gorm:"-" validate:"required,min=1,dive"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}

// SetAnswer appends an answer, replacing any earlier answer for the same
// question id. Last write wins when a record is built incrementally.
func (r *SurveyResponse) SetAnswer(questionID string, value AnswerValue) {
	for i := range r.Answers {
		if r.Answers[i].QuestionID == questionID {
			r.Answers[i].Value = value
			return
		}
	}
	r.Answers = append(r.Answers, Answer{QuestionID: questionID, Value: value})
}

// AnswerFor returns the answer for a question id, if present.
func (r *SurveyResponse) AnswerFor(questionID string) (Answer, bool) {
	for _, a := range r.Answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}

// SurveyAnswerRow is the flat storage row behind SurveyResponse.Answers.
type SurveyAnswerRow struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	ResponseID  string `gorm:"column:response_id;not null;size:64;index"`
	QuestionID  string `gorm:"column:question_id;not null;size:128;index"`
	AnswerValue string `gorm:"column:answer_value;not null;type:text"`
}

func (SurveyAnswerRow) TableName() string {
	return "survey_answers"
}
