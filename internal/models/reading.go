package models

import (
	"strconv"
	"strings"
	"time"
)

// SensorReading represents the sensor_readings table. Rows are append-only:
// never updated, deleted only by cascade when the owning patient is removed.
type SensorReading struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PatientID  uint      `gorm:"not null;index" json:"patient_id"`
	ECGValue   float64   `gorm:"column:ecg_value;default:0" json:"ecg_value"`
	HeartRate  float64   `gorm:"column:heart_rate;default:0" json:"heart_rate"`
	SpO2       float64   `gorm:"column:spo2;default:0" json:"spo2"`
	BodyTemp   float64   `gorm:"column:body_temp;default:0" json:"body_temp"`
	RoomTemp   float64   `gorm:"column:room_temp;default:0" json:"room_temp"`
	Humidity   float64   `gorm:"column:humidity;default:0" json:"humidity"`
	AirQuality float64   `gorm:"column:air_quality;default:0" json:"air_quality"`
	Timestamp  time.Time `gorm:"column:timestamp;not null;index" json:"timestamp"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for SensorReading model
func (SensorReading) TableName() string {
	return "sensor_readings"
}

// Numeric decodes sensor values from device firmware, which sends them as
// JSON numbers, quoted numbers, or occasionally garbage. Absent, null, and
// unparseable values all decode to 0 — bad fields are zeroed, never rejected.
type Numeric float64

func (n *Numeric) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Numeric(v)
	return nil
}
