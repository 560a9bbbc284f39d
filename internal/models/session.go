package models

import "time"

// ActiveSession represents the active_session table.
// Invariant: zero or one row exists at any time — it is the global pointer
// to "the patient currently being monitored", replaced on every scan.
type ActiveSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionID    string    `gorm:"column:session_id;size:36;not null" json:"session_id"`
	PatientID    uint      `gorm:"not null;index" json:"patient_id"`
	SessionStart time.Time `gorm:"column:session_start" json:"session_start"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
}

// TableName specifies the table name for ActiveSession model
func (ActiveSession) TableName() string {
	return "active_session"
}
