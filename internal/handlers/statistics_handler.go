package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/henley-workshops/survey-service/internal/models"
	"github.com/henley-workshops/survey-service/internal/services"
	"github.com/henley-workshops/survey-service/internal/utils"
)

// StatisticsHandler serves aggregate statistics and top-line metrics.
type StatisticsHandler struct {
	BaseHandler
	service services.StatisticsService
}

func NewStatisticsHandler(service services.StatisticsService, logger utils.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetStatistics handles GET /api/surveys/statistics
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	surveyType, ok := ParseSurveyTypeQuery(c)
	if !ok {
		return
	}

	stats, err := h.service.GetStatistics(c.Request.Context(), surveyType)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to calculate statistics", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}

// GetTopLineMetrics handles GET /api/surveys/toplines
func (h *StatisticsHandler) GetTopLineMetrics(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("type"))
	surveyType := models.SurveyType(raw)
	if !surveyType.Valid() {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid survey type", nil,
			"type must be pre-workshop or post-workshop")
		return
	}

	metrics, err := h.service.GetTopLineMetrics(c.Request.Context(), surveyType)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to calculate top-line metrics", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}
