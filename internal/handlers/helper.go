package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/henley-workshops/survey-service/internal/models"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// ParseSurveyTypeQuery reads the optional ?type= filter. The second return
// is false when the query held an unknown survey type, in which case a 400
// has already been written.
func ParseSurveyTypeQuery(c *gin.Context) (*models.SurveyType, bool) {
	raw := strings.TrimSpace(c.Query("type"))
	if raw == "" {
		return nil, true
	}

	surveyType := models.SurveyType(raw)
	if !surveyType.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid survey type",
			Details: "type must be pre-workshop or post-workshop",
		})
		return nil, false
	}
	return &surveyType, true
}
