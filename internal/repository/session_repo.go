package repository

import (
	"errors"
	"time"

	"patient-kiosk-backend/internal/models"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Replace clears any existing active session and inserts a new one pointing
// at patientID. Both statements run in one transaction so every observer
// sees either the old row or the new row, never zero or two.
func (r *SessionRepository) Replace(patientID uint, sessionID string) (*models.ActiveSession, error) {
	session := &models.ActiveSession{
		SessionID:    sessionID,
		PatientID:    patientID,
		SessionStart: time.Now().UTC(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM active_session").Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Current returns the active session, or nil when no patient is being
// monitored. Absence is not an error at this layer.
func (r *SessionRepository) Current() (*models.ActiveSession, error) {
	var session models.ActiveSession
	err := r.db.First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// ClearAll unconditionally deletes every active session row. Idempotent.
func (r *SessionRepository) ClearAll() error {
	return r.db.Exec("DELETE FROM active_session").Error
}
