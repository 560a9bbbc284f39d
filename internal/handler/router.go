package handler

import (
	"patient-kiosk-backend/internal/config"
	"patient-kiosk-backend/internal/middleware"
	"patient-kiosk-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every kiosk endpoint. All routes are public: the kiosk
// runs on a closed LAN and the scanner, sensor box, and dashboard share it.
func NewRouter(
	cfg *config.Config,
	patientHandler *PatientHandler,
	sessionHandler *SessionHandler,
	readingHandler *ReadingHandler,
) *gin.Engine {
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "patient-kiosk-backend",
		})
	})

	api := r.Group("/api")
	{
		// Patient registry + dashboard projections
		api.GET("/patients", patientHandler.List)
		api.POST("/patients", patientHandler.Register)
		api.POST("/patients/update", patientHandler.Update)
		api.POST("/patients/delete", patientHandler.Delete)
		api.GET("/patients/delete", patientHandler.Delete) // kiosk UI uses a plain link
		api.GET("/patients/history", patientHandler.History)
		api.GET("/patients/history/export", patientHandler.ExportHistory)

		// Scanner
		api.GET("/scan", sessionHandler.Scan)
		api.POST("/sessions/clear", sessionHandler.Clear)
		api.GET("/sessions/clear", sessionHandler.Clear)

		// Sensor device + dashboard live view
		api.POST("/readings", readingHandler.Submit)
		api.GET("/readings/latest", readingHandler.Latest)
	}

	return r
}
