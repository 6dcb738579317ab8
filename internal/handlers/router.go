package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/henley-workshops/survey-service/internal/services"
	"github.com/henley-workshops/survey-service/internal/utils"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	responseHandler    *ResponseHandler
	statisticsHandler  *StatisticsHandler
	exportHandler      *ExportHandler
	participantHandler *ParticipantHandler
}

func NewHandlerManager(
	responseService services.ResponseService,
	statisticsService services.StatisticsService,
	exportService services.ExportService,
	intakeService services.IntakeService,
	adminPasswordHash string,
	jwtSecret string,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:        NewAuthHandler(adminPasswordHash, jwtSecret, logger),
		responseHandler:    NewResponseHandler(responseService, logger),
		statisticsHandler:  NewStatisticsHandler(statisticsService, logger),
		exportHandler:      NewExportHandler(exportService, logger),
		participantHandler: NewParticipantHandler(intakeService, logger),
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   "survey-service",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		api.POST("/auth/login", hm.authHandler.Login)

		// Submission endpoints are open; everything the dashboard reads is
		// behind the admin gate.
		api.POST("/surveys/responses", hm.responseHandler.SubmitResponse)
		api.POST("/participants", hm.participantHandler.RegisterParticipant)

		admin := api.Group("", hm.authHandler.AdminMiddleware())
		{
			surveys := admin.Group("/surveys")
			{
				surveys.GET("/responses", hm.responseHandler.ListResponses)
				surveys.GET("/responses/:id", hm.responseHandler.GetResponse)
				surveys.DELETE("/responses/:id", hm.responseHandler.DeleteResponse)

				surveys.GET("/statistics", hm.statisticsHandler.GetStatistics)
				surveys.GET("/toplines", hm.statisticsHandler.GetTopLineMetrics)

				surveys.GET("/export/csv", hm.exportHandler.ExportResponsesCSV)
				surveys.GET("/export/xlsx", hm.exportHandler.ExportResponsesExcel)
			}

			participants := admin.Group("/participants")
			{
				participants.GET("", hm.participantHandler.ListParticipants)
				participants.GET("/:id", hm.participantHandler.GetParticipant)
				participants.GET("/export/csv", hm.exportHandler.ExportParticipantsCSV)
			}
		}
	}
}
