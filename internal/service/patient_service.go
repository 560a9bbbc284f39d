package service

import (
	"strconv"
	"strings"

	"patient-kiosk-backend/internal/models"
	"patient-kiosk-backend/internal/repository"
	"patient-kiosk-backend/pkg/apperr"
)

type PatientService struct {
	patientRepo *repository.PatientRepository
}

func NewPatientService(patientRepo *repository.PatientRepository) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
	}
}

// PatientRequest carries the registration/update form. The kiosk UI posts
// everything as strings; optional fields left blank are stored as NULL.
type PatientRequest struct {
	RFIDUid          string `form:"rfid_uid" json:"rfid_uid"`
	FullName         string `form:"full_name" json:"full_name"`
	Age              string `form:"age" json:"age"`
	Gender           string `form:"gender" json:"gender"`
	BloodType        string `form:"blood_type" json:"blood_type"`
	MedicalHistory   string `form:"medical_history" json:"medical_history"`
	EmergencyContact string `form:"emergency_contact" json:"emergency_contact"`
}

// RegisterPatient creates a patient record for a new RFID card.
// Duplicate card uids are rejected by the storage constraint.
func (s *PatientService) RegisterPatient(req *PatientRequest) (uint, error) {
	if strings.TrimSpace(req.RFIDUid) == "" || strings.TrimSpace(req.FullName) == "" {
		return 0, apperr.New(apperr.Validation, "RFID and Full Name are required")
	}

	patient := &models.Patient{
		RFIDUid:  strings.TrimSpace(req.RFIDUid),
		FullName: strings.TrimSpace(req.FullName),
	}
	applyOptionalFields(patient, req)

	if err := s.patientRepo.CreatePatient(patient); err != nil {
		return 0, err
	}
	return patient.ID, nil
}

// UpdatePatient replaces every profile field of an existing patient.
// Blank optional fields overwrite the stored value with NULL — callers
// wanting a partial update must send the full profile.
func (s *PatientService) UpdatePatient(id uint, req *PatientRequest) error {
	if id == 0 || strings.TrimSpace(req.FullName) == "" {
		return apperr.New(apperr.Validation, "ID and Full Name are required")
	}

	patient := &models.Patient{
		ID:       id,
		FullName: strings.TrimSpace(req.FullName),
	}
	applyOptionalFields(patient, req)

	return s.patientRepo.UpdatePatient(patient)
}

// RemovePatient deletes a patient; the storage cascade removes the
// patient's readings and active session. Idempotent for unknown ids.
func (s *PatientService) RemovePatient(id uint) error {
	if id == 0 {
		return apperr.New(apperr.Validation, "Patient ID required")
	}
	return s.patientRepo.DeletePatient(id)
}

// ListPatients returns all registered patients, newest first
func (s *PatientService) ListPatients() ([]models.Patient, error) {
	return s.patientRepo.GetAllPatients()
}

// applyOptionalFields normalizes the optional form fields: blank strings
// become nil, a non-numeric age is treated as not provided.
func applyOptionalFields(patient *models.Patient, req *PatientRequest) {
	if age := strings.TrimSpace(req.Age); age != "" {
		if v, err := strconv.Atoi(age); err == nil {
			patient.Age = &v
		}
	}
	patient.Gender = optionalString(req.Gender)
	patient.BloodType = optionalString(req.BloodType)
	patient.MedicalHistory = optionalString(req.MedicalHistory)
	patient.EmergencyContact = optionalString(req.EmergencyContact)
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
