package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	apperrors "github.com/henley-workshops/survey-service/internal/errors"
	"github.com/henley-workshops/survey-service/internal/events"
	"github.com/henley-workshops/survey-service/internal/models"
	"github.com/henley-workshops/survey-service/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxThemes = 3

// IntakeService handles the conversational intake flow: it stores each
// participant and derives their track, readiness and themes with a keyword
// classifier over the free-text answers.
type IntakeService interface {
	Register(ctx context.Context, participant *models.Participant) error
	List(ctx context.Context) ([]*models.Participant, error)
	Get(ctx context.Context, id string) (*models.Participant, error)
}

type intakeService struct {
	repo      repositories.Repository
	validator *validator.Validate
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewIntakeService(
	repo repositories.Repository,
	validate *validator.Validate,
	publisher events.EventPublisher,
	logger *slog.Logger,
) IntakeService {
	return &intakeService{
		repo:      repo,
		validator: validate,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *intakeService) Register(ctx context.Context, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}
	if participant.Timestamp == "" {
		participant.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	if err := s.validator.Struct(participant); err != nil {
		verrs := apperrors.ToValidationErrors(err)
		if len(verrs) > 0 {
			return verrs
		}
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	AnalyzeParticipant(participant)

	if err := s.repo.Participants().Create(ctx, participant); err != nil {
		return fmt.Errorf("failed to save participant: %w", err)
	}

	if err := s.publisher.PublishSurveyEvent(ctx, events.NewParticipantRegisteredEvent(participant)); err != nil {
		s.logger.Warn("failed to publish participant event", "error", err)
	}

	return nil
}

func (s *intakeService) List(ctx context.Context) ([]*models.Participant, error) {
	return s.repo.Participants().List(ctx)
}

func (s *intakeService) Get(ctx context.Context, id string) (*models.Participant, error) {
	participant, err := s.repo.Participants().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return participant, nil
}

// readinessLadder maps keyword groups to readiness levels; higher entries
// win. "she deployed a pilot" ranks as Scaling, not Experimenting.
var readinessLadder = []struct {
	level    models.Readiness
	keywords []string
}{
	{models.ReadinessScaling, []string{"scaling", "production", "deployed"}},
	{models.ReadinessExperimenting, []string{"pilot", "experiment", "tried", "tested"}},
}

// themeKeywords maps each theme to the stems that signal it. Stems, not
// words: "efficien" catches efficient and efficiency.
var themeKeywords = []struct {
	theme    models.Theme
	keywords []string
}{
	{models.ThemeCostProductivity, []string{"cost", "efficien", "productiv"}},
	{models.ThemeNewRevenue, []string{"revenue", "growth", "sales"}},
	{models.ThemeCustomerExperience, []string{"customer", "experience", "service"}},
	{models.ThemeRiskRegulation, []string{"risk", "regulat", "complian"}},
	{models.ThemeTalentSkills, []string{"talent", "skill", "team", "people"}},
}

// AnalyzeParticipant fills the derived analysis fields in place. It is a
// deliberately simple keyword heuristic, not a model call.
func AnalyzeParticipant(p *models.Participant) {
	p.Track = p.FocusArea
	p.Readiness = classifyReadiness(p.AITried)
	p.Themes = datatypes.NewJSONSlice(classifyThemes(p.AIHope + " " + p.AIStuck + " " + p.WorkshopSuccess))
	p.Summary = buildSummary(p)
}

func classifyReadiness(tried string) models.Readiness {
	lowered := strings.ToLower(tried)
	for _, rung := range readinessLadder {
		for _, keyword := range rung.keywords {
			if strings.Contains(lowered, keyword) {
				return rung.level
			}
		}
	}
	return models.ReadinessEarly
}

func classifyThemes(text string) []models.Theme {
	lowered := strings.ToLower(text)

	var themes []models.Theme
	for _, candidate := range themeKeywords {
		for _, keyword := range candidate.keywords {
			if strings.Contains(lowered, keyword) {
				themes = append(themes, candidate.theme)
				break
			}
		}
	}

	if len(themes) == 0 {
		themes = append(themes, models.ThemeCostProductivity)
	}
	if len(themes) > maxThemes {
		themes = themes[:maxThemes]
	}
	return themes
}

func buildSummary(p *models.Participant) string {
	return fmt.Sprintf(
		"%s from %s is a %s focused on %s. They are seeking to leverage AI for %s. Their primary challenge involves %s, and they measure success by %s.",
		p.Name,
		p.Organisation,
		p.Role,
		strings.ToLower(string(p.FocusArea)),
		firstSentenceLower(p.AIHope),
		firstSentenceLower(p.AIStuck),
		firstSentenceLower(p.WorkshopSuccess),
	)
}

// firstSentenceLower takes everything before the first period, lowercased.
func firstSentenceLower(text string) string {
	sentence, _, _ := strings.Cut(text, ".")
	return strings.ToLower(sentence)
}
