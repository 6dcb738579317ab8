package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/henley-workshops/survey-service/internal/models"
	"github.com/henley-workshops/survey-service/internal/services"
	"github.com/henley-workshops/survey-service/internal/utils"
)

// ParticipantHandler serves the conversational intake endpoints.
type ParticipantHandler struct {
	BaseHandler
	service services.IntakeService
}

func NewParticipantHandler(service services.IntakeService, logger utils.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterParticipant handles POST /api/participants
func (h *ParticipantHandler) RegisterParticipant(c *gin.Context) {
	var participant models.Participant
	if err := c.ShouldBindJSON(&participant); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.service.Register(c.Request.Context(), &participant); err != nil {
		var verrs services.ValidationErrors
		if errors.As(err, &verrs) {
			h.RespondWithError(c, http.StatusBadRequest, "Missing or invalid fields", err, verrs)
			return
		}
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to save participant", err)
		return
	}

	// The derived analysis goes straight back so the intake flow can show
	// the participant their track and readiness.
	h.RespondWithSuccess(c, http.StatusCreated, "Participant registered successfully", participant)
}

// ListParticipants handles GET /api/participants
func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	participants, err := h.service.List(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch participants", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"participants": participants,
		"count":        len(participants),
	})
}

// GetParticipant handles GET /api/participants/:id
func (h *ParticipantHandler) GetParticipant(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	participant, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrParticipantNotFound) {
			h.RespondWithError(c, http.StatusNotFound, "Participant not found", nil)
			return
		}
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch participant", err)
		return
	}

	c.JSON(http.StatusOK, participant)
}
