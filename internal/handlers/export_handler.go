package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/henley-workshops/survey-service/internal/services"
	"github.com/henley-workshops/survey-service/internal/utils"
)

// ExportHandler serves CSV and Excel downloads.
type ExportHandler struct {
	BaseHandler
	service services.ExportService
}

func NewExportHandler(service services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ExportResponsesCSV handles GET /api/surveys/export/csv
func (h *ExportHandler) ExportResponsesCSV(c *gin.Context) {
	surveyType, ok := ParseSurveyTypeQuery(c)
	if !ok {
		return
	}

	data, filename, err := h.service.ResponsesCSV(c.Request.Context(), surveyType)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to export CSV", err)
		return
	}

	sendDownload(c, "text/csv", filename, data)
}

// ExportResponsesExcel handles GET /api/surveys/export/xlsx
func (h *ExportHandler) ExportResponsesExcel(c *gin.Context) {
	surveyType, ok := ParseSurveyTypeQuery(c)
	if !ok {
		return
	}

	data, filename, err := h.service.ResponsesExcel(c.Request.Context(), surveyType)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to export workbook", err)
		return
	}

	sendDownload(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, data)
}

// ExportParticipantsCSV handles GET /api/participants/export/csv
func (h *ExportHandler) ExportParticipantsCSV(c *gin.Context) {
	data, filename, err := h.service.ParticipantsCSV(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to export participants", err)
		return
	}

	sendDownload(c, "text/csv", filename, data)
}

func sendDownload(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
