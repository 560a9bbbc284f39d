package models

import "time"

// Patient represents the patients table. One row per registered RFID card.
// All profile attributes besides the card uid and name are optional and
// stored as NULL when the registration form leaves them blank.
type Patient struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	RFIDUid          string    `gorm:"column:rfid_uid;size:64;not null;uniqueIndex" json:"rfid_uid"`
	FullName         string    `gorm:"size:255;not null" json:"full_name"`
	Age              *int      `json:"age"`
	Gender           *string   `gorm:"size:20" json:"gender"`
	BloodType        *string   `gorm:"column:blood_type;size:10" json:"blood_type"`
	MedicalHistory   *string   `gorm:"type:text" json:"medical_history"`
	EmergencyContact *string   `gorm:"size:100" json:"emergency_contact"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}
