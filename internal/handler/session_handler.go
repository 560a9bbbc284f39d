package handler

import (
	"patient-kiosk-backend/internal/service"
	"patient-kiosk-backend/pkg/apperr"
	"patient-kiosk-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// Scan handles an RFID scan: looks up the card and makes its patient the
// active session, returning the profile plus a signed session token.
// GET /api/scan?rfid=
func (h *SessionHandler) Scan(c *gin.Context) {
	rfid := c.Query("rfid")
	if rfid == "" {
		utils.ErrorResponse(c, apperr.New(apperr.Validation, "RFID required"))
		return
	}

	result, err := h.sessionService.StartSession(rfid)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// Clear drops the active session (administrative reset). Idempotent.
// POST|GET /api/sessions/clear
func (h *SessionHandler) Clear(c *gin.Context) {
	if err := h.sessionService.ClearAllSessions(); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"cleared": true})
}
