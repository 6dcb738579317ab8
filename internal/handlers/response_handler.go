package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/henley-workshops/survey-service/internal/models"
	"github.com/henley-workshops/survey-service/internal/services"
	"github.com/henley-workshops/survey-service/internal/utils"
)

// ResponseHandler serves the survey response endpoints.
type ResponseHandler struct {
	BaseHandler
	service services.ResponseService
}

func NewResponseHandler(service services.ResponseService, logger utils.Logger) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SubmitResponse handles POST /api/surveys/responses
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	var response models.SurveyResponse
	if err := c.ShouldBindJSON(&response); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.service.Submit(c.Request.Context(), &response); err != nil {
		var verrs services.ValidationErrors
		if errors.As(err, &verrs) {
			h.RespondWithError(c, http.StatusBadRequest, "Missing or invalid fields", err, verrs)
			return
		}
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to save survey response", err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Survey response saved successfully", gin.H{"id": response.ID})
}

// ListResponses handles GET /api/surveys/responses
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	surveyType, ok := ParseSurveyTypeQuery(c)
	if !ok {
		return
	}

	responses, err := h.service.List(c.Request.Context(), surveyType)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch survey responses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"responses": responses,
		"count":     len(responses),
	})
}

// GetResponse handles GET /api/surveys/responses/:id
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	response, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrResponseNotFound) {
			h.RespondWithError(c, http.StatusNotFound, "Survey response not found", nil)
			return
		}
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch survey response", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteResponse handles DELETE /api/surveys/responses/:id
func (h *ResponseHandler) DeleteResponse(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrResponseNotFound) {
			h.RespondWithError(c, http.StatusNotFound, "Survey response not found", nil)
			return
		}
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to delete survey response", err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Survey response deleted successfully", nil)
}
