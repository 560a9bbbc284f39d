package repository

import (
	"errors"
	"time"

	"patient-kiosk-backend/internal/models"

	"gorm.io/gorm"
)

// historyLimit caps how many rows the dashboard history view pulls at once.
const historyLimit = 100

type ReadingRepository struct {
	db *gorm.DB
}

func NewReadingRepo(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// CreateReading appends one reading, stamping it with the server clock
func (r *ReadingRepository) CreateReading(reading *models.SensorReading) error {
	if reading.Timestamp.IsZero() {
		reading.Timestamp = time.Now().UTC()
	}
	return r.db.Create(reading).Error
}

// LatestForPatient returns the most recent reading for a patient, or nil
// when the patient has no readings yet. The id tie-break keeps ordering
// stable when readings land within the same timestamp resolution.
func (r *ReadingRepository) LatestForPatient(patientID uint) (*models.SensorReading, error) {
	var reading models.SensorReading
	err := r.db.Where("patient_id = ?", patientID).
		Order("timestamp DESC, id DESC").
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

// HistoryForPatient returns up to 100 readings for a patient, newest first
func (r *ReadingRepository) HistoryForPatient(patientID uint) ([]models.SensorReading, error) {
	var readings []models.SensorReading
	err := r.db.Where("patient_id = ?", patientID).
		Order("timestamp DESC, id DESC").
		Limit(historyLimit).
		Find(&readings).Error
	return readings, err
}

// CountForPatient returns the number of stored readings for a patient
func (r *ReadingRepository) CountForPatient(patientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.SensorReading{}).Where("patient_id = ?", patientID).Count(&count).Error
	return count, err
}
