package handler

import (
	"strconv"

	"patient-kiosk-backend/internal/service"
	"patient-kiosk-backend/pkg/apperr"
	"patient-kiosk-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientService *service.PatientService
	readingService *service.ReadingService
}

func NewPatientHandler(patientService *service.PatientService, readingService *service.ReadingService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
		readingService: readingService,
	}
}

// List returns all registered patients (dashboard polls this every 5s)
// GET /api/patients
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.patientService.ListPatients()
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"patients": patients,
		"count":    len(patients),
	})
}

// Register creates a patient for a new RFID card
// POST /api/patients
func (h *PatientHandler) Register(c *gin.Context) {
	var req service.PatientRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}

	id, err := h.patientService.RegisterPatient(&req)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"id": id})
}

// Update replaces a patient's profile (full replace, no partial patch)
// POST /api/patients/update
func (h *PatientHandler) Update(c *gin.Context) {
	var req struct {
		service.PatientRequest
		ID string `form:"id" json:"id"`
	}
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}

	id := parseID(req.ID)
	if err := h.patientService.UpdatePatient(id, &req.PatientRequest); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"id": id})
}

// Delete removes a patient and, via cascade, all their readings and any
// active session. Accepts the id as form field or query parameter.
// POST|GET /api/patients/delete
func (h *PatientHandler) Delete(c *gin.Context) {
	id := parseID(requestID(c))
	if err := h.patientService.RemovePatient(id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"id": id})
}

// History returns up to 100 readings for a patient, newest first
// GET /api/patients/history?id=
func (h *PatientHandler) History(c *gin.Context) {
	id := parseID(c.Query("id"))
	readings, err := h.readingService.History(id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"readings": readings,
		"count":    len(readings),
	})
}

// ExportHistory downloads the same history window as an Excel workbook
// GET /api/patients/history/export?id=
func (h *PatientHandler) ExportHistory(c *gin.Context) {
	id := parseID(c.Query("id"))
	data, filename, err := h.readingService.ExportHistory(id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// requestID pulls the patient id from the form body or the query string,
// matching how the kiosk UI calls the delete endpoint.
func requestID(c *gin.Context) string {
	if id := c.PostForm("id"); id != "" {
		return id
	}
	return c.Query("id")
}

// parseID converts an id parameter; anything unparseable becomes 0 and is
// rejected downstream as a validation error.
func parseID(s string) uint {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
