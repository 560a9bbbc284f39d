package handler

import (
	"net/http"

	"patient-kiosk-backend/internal/service"
	"patient-kiosk-backend/pkg/apperr"
	"patient-kiosk-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReadingHandler struct {
	readingService *service.ReadingService
}

func NewReadingHandler(readingService *service.ReadingService) *ReadingHandler {
	return &ReadingHandler{
		readingService: readingService,
	}
}

// Submit accepts a sensor payload and attaches it to the active session
// POST /api/readings
func (h *ReadingHandler) Submit(c *gin.Context) {
	var payload service.ReadingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.ErrorResponse(c, apperr.Wrap(apperr.Validation, "Invalid JSON", err))
		return
	}

	if err := h.readingService.SubmitReading(&payload); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"stored": true})
}

// Latest returns the monitored patient and their most recent reading.
// The dashboard polls this every second; "no active session" is a normal
// waiting state for it, so that case replies 200 rather than an error
// status the browser console would flood with.
// GET /api/readings/latest
func (h *ReadingHandler) Latest(c *gin.Context) {
	result, err := h.readingService.Latest()
	if err != nil {
		if apperr.IsKind(err, apperr.NoActiveSession) {
			utils.ErrorResponseStatus(c, http.StatusOK, err)
			return
		}
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
