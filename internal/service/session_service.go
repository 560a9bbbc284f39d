package service

import (
	"log"

	"patient-kiosk-backend/internal/models"
	"patient-kiosk-backend/internal/repository"
	"patient-kiosk-backend/pkg/utils"

	"github.com/google/uuid"
)

type SessionService struct {
	patientRepo *repository.PatientRepository
	sessionRepo *repository.SessionRepository
}

func NewSessionService(
	patientRepo *repository.PatientRepository,
	sessionRepo *repository.SessionRepository,
) *SessionService {
	return &SessionService{
		patientRepo: patientRepo,
		sessionRepo: sessionRepo,
	}
}

// ScanResult is what the RFID scanner gets back: the patient bound to the
// card plus a signed token the sensor device can attach to its readings.
type ScanResult struct {
	Patient      *models.Patient `json:"patient"`
	SessionToken string          `json:"session_token"`
}

// StartSession looks up the scanned card and replaces the active session
// with a fresh one for that patient. The clear-and-insert runs atomically,
// so a second scan racing this one settles on exactly one row.
func (s *SessionService) StartSession(rfid string) (*ScanResult, error) {
	patient, err := s.patientRepo.GetPatientByRFID(rfid)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.New().String()
	session, err := s.sessionRepo.Replace(patient.ID, sessionID)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateSessionToken(session.SessionID, patient.ID)
	if err != nil {
		// The session itself is live; the device just falls back to
		// implicit attribution.
		log.Printf("Warning: failed to sign session token: %v", err)
		token = ""
	}

	log.Printf("Session started for patient %d (rfid %s)", patient.ID, rfid)
	return &ScanResult{Patient: patient, SessionToken: token}, nil
}

// ClearAllSessions drops the active session regardless of prior state
func (s *SessionService) ClearAllSessions() error {
	return s.sessionRepo.ClearAll()
}

// CurrentSession returns the active session, or nil when there is none
func (s *SessionService) CurrentSession() (*models.ActiveSession, error) {
	return s.sessionRepo.Current()
}
