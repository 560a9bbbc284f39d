package service

import (
	"patient-kiosk-backend/internal/models"
	"patient-kiosk-backend/internal/repository"
	"patient-kiosk-backend/pkg/apperr"
	"patient-kiosk-backend/pkg/utils"
)

type ReadingService struct {
	patientRepo *repository.PatientRepository
	sessionRepo *repository.SessionRepository
	readingRepo *repository.ReadingRepository
}

func NewReadingService(
	patientRepo *repository.PatientRepository,
	sessionRepo *repository.SessionRepository,
	readingRepo *repository.ReadingRepository,
) *ReadingService {
	return &ReadingService{
		patientRepo: patientRepo,
		sessionRepo: sessionRepo,
		readingRepo: readingRepo,
	}
}

// ReadingPayload is the sensor device's submission. Every vital is optional
// and lenient: absent or malformed values are stored as zero, never rejected
// (the firmware has no retry path, a dropped sample is just a gap).
type ReadingPayload struct {
	ECG        models.Numeric `json:"ecg"`
	HeartRate  models.Numeric `json:"hr"`
	SpO2       models.Numeric `json:"spo2"`
	BodyTemp   models.Numeric `json:"bodyTemp"`
	RoomTemp   models.Numeric `json:"roomTemp"`
	Humidity   models.Numeric `json:"humidity"`
	AirQuality models.Numeric `json:"airQuality"`

	// SessionToken optionally pins the reading to the session the device
	// believes it is monitoring. Without it the reading is attributed to
	// whatever session is active at insert time.
	SessionToken string `json:"session_token"`
}

// LatestResult is the dashboard's 1-second poll target. Reading is nil when
// the monitored patient has no samples yet; that is distinct from having no
// session at all, which is an error-kind result.
type LatestResult struct {
	Patient *models.Patient       `json:"patient"`
	Reading *models.SensorReading `json:"reading"`
}

// SubmitReading attributes the payload to the active session and appends one
// reading row. With no active session the payload is dropped outright —
// there is no queue and no buffer, the device re-sends on its own cadence.
func (s *ReadingService) SubmitReading(payload *ReadingPayload) error {
	session, err := s.sessionRepo.Current()
	if err != nil {
		return err
	}
	if session == nil {
		return apperr.New(apperr.NoActiveSession, "No active session")
	}

	if payload.SessionToken != "" {
		claims, err := utils.ValidateSessionToken(payload.SessionToken)
		if err != nil {
			return apperr.Wrap(apperr.Validation, "invalid session token", err)
		}
		// A stale token means the session changed under the device; the
		// reading must not be attributed to the new patient.
		if claims.SessionID != session.SessionID {
			return apperr.New(apperr.Validation, "session token does not match the active session")
		}
	}

	reading := &models.SensorReading{
		PatientID:  session.PatientID,
		ECGValue:   float64(payload.ECG),
		HeartRate:  float64(payload.HeartRate),
		SpO2:       float64(payload.SpO2),
		BodyTemp:   float64(payload.BodyTemp),
		RoomTemp:   float64(payload.RoomTemp),
		Humidity:   float64(payload.Humidity),
		AirQuality: float64(payload.AirQuality),
	}
	return s.readingRepo.CreateReading(reading)
}

// Latest resolves the active session to its patient profile and most recent
// reading for the dashboard poll.
func (s *ReadingService) Latest() (*LatestResult, error) {
	session, err := s.sessionRepo.Current()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperr.New(apperr.NoActiveSession, "no session")
	}

	patient, err := s.patientRepo.GetPatientByID(session.PatientID)
	if err != nil {
		return nil, err
	}

	reading, err := s.readingRepo.LatestForPatient(session.PatientID)
	if err != nil {
		return nil, err
	}

	return &LatestResult{Patient: patient, Reading: reading}, nil
}

// History returns up to 100 readings for a patient, newest first. An unknown
// patient id is reported as not found; a known patient with no readings gets
// an empty list.
func (s *ReadingService) History(patientID uint) ([]models.SensorReading, error) {
	if patientID == 0 {
		return nil, apperr.New(apperr.Validation, "Patient ID required")
	}

	exists, err := s.patientRepo.PatientExists(patientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "patient not found")
	}

	return s.readingRepo.HistoryForPatient(patientID)
}
