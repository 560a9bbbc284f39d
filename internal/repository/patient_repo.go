package repository

import (
	"errors"

	"patient-kiosk-backend/internal/models"
	"patient-kiosk-backend/pkg/apperr"

	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// GetAllPatients retrieves all patients, newest registration first
func (r *PatientRepository) GetAllPatients() ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.Order("created_at DESC, id DESC").Find(&patients).Error
	return patients, err
}

// GetPatientByID retrieves a patient by ID
func (r *PatientRepository) GetPatientByID(id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "patient not found")
		}
		return nil, err
	}
	return &patient, nil
}

// GetPatientByRFID retrieves a patient by the unique card uid
func (r *PatientRepository) GetPatientByRFID(rfid string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("rfid_uid = ?", rfid).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "not found")
		}
		return nil, err
	}
	return &patient, nil
}

// CreatePatient inserts a new patient. Uniqueness of rfid_uid is enforced by
// the index, so two concurrent registrations cannot both succeed; the loser
// gets a conflict instead of a second row.
func (r *PatientRepository) CreatePatient(patient *models.Patient) error {
	err := r.db.Create(patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.Conflict, "RFID already registered")
		}
		return err
	}
	return nil
}

// UpdatePatient performs a full replace of the profile fields. Nil pointers
// overwrite the stored value with NULL — there is no partial-patch support.
func (r *PatientRepository) UpdatePatient(patient *models.Patient) error {
	return r.db.Model(&models.Patient{}).
		Where("id = ?", patient.ID).
		Select("full_name", "age", "gender", "blood_type", "medical_history", "emergency_contact").
		Updates(patient).Error
}

// DeletePatient removes a patient. The storage cascade drops the patient's
// sensor readings and any active session row. Deleting a missing id is a
// no-op, not an error.
func (r *PatientRepository) DeletePatient(id uint) error {
	return r.db.Delete(&models.Patient{}, id).Error
}

// PatientExists reports whether a patient row exists for id
func (r *PatientRepository) PatientExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Patient{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
