package models

import (
	"time"

	"gorm.io/datatypes"
)

type FocusArea string

const (
	FocusStrategy   FocusArea = "Strategy and leadership"
	FocusOperations FocusArea = "Operations and efficiency"
	FocusInnovation FocusArea = "Innovation and new business models"
	FocusData       FocusArea = "Data and platforms"
	FocusInvestment FocusArea = "Investment and ventures"
)

type Readiness string

const (
	ReadinessEarly         Readiness = "Early"
	ReadinessExperimenting Readiness = "Experimenting"
	ReadinessScaling       Readiness = "Scaling"
)

type Theme string

const (
	ThemeCostProductivity   Theme = "Cost and productivity"
	ThemeNewRevenue         Theme = "New revenue"
	ThemeCustomerExperience Theme = "Customer experience"
	ThemeRiskRegulation     Theme = "Risk and regulation"
	ThemeTalentSkills       Theme = "Talent and skills"
)

// Participant is one conversational intake submission: who they are, what
// they told us, and the derived analysis shown on the admin dashboard.
type Participant struct {
	ID        string `json:"id" gorm:"primaryKey;size:64"`
	Timestamp string `json:"timestamp" gorm:"not null;index"` // ISO-8601

	// Basic details
	Name         string    `json:"name" gorm:"not null;size:200" validate:"required"`
	Organisation string    `json:"organisation" gorm:"not null;size:200" validate:"required"`
	Role         string    `json:"role" gorm:"not null;size:200" validate:"required"`
	FocusArea    FocusArea `json:"focusArea" gorm:"column:focus_area;not null;size:64" validate:"required"`

	// Conversational answers
	AIHope          string `json:"aiHope" gorm:"column:ai_hope;type:text" validate:"required"`
	AIStuck         string `json:"aiStuck" gorm:"column:ai_stuck;type:text" validate:"required"`
	AITried         string `json:"aiTried" gorm:"column:ai_tried;type:text" validate:"required"`
	WorkshopSuccess string `json:"workshopSuccess" gorm:"column:workshop_success;type:text" validate:"required"`

	// Derived analysis
	Summary   string                     `json:"summary" gorm:"type:text"`
	Track     FocusArea                  `json:"track" gorm:"size:64"`
	Readiness Readiness                  `json:"readiness" gorm:"size:32"`
	Themes    datatypes.JSONSlice[Theme] `json:"themes" gorm:"column:themes"`

	CreatedAt time.Time `json:"-"`
}

func (Participant) TableName() string {
	return "participants"
}
