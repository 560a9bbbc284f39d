package service_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"patient-kiosk-backend/internal/database"
	"patient-kiosk-backend/internal/models"
	"patient-kiosk-backend/internal/repository"
	"patient-kiosk-backend/internal/service"
	"patient-kiosk-backend/pkg/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	patientRepo *repository.PatientRepository
	sessionRepo *repository.SessionRepository
	readingRepo *repository.ReadingRepository
	patients    *service.PatientService
	sessions    *service.SessionService
	readings    *service.ReadingService
}

// newTestEnv builds the full service stack on an in-memory SQLite database
// with foreign keys enforced, so the cascade behavior under test matches the
// production schema.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	utils.InitSessionTokens("test-secret", time.Hour)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive for the
	// whole test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	patientRepo := repository.NewPatientRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	readingRepo := repository.NewReadingRepo(db)

	return &testEnv{
		db:          db,
		patientRepo: patientRepo,
		sessionRepo: sessionRepo,
		readingRepo: readingRepo,
		patients:    service.NewPatientService(patientRepo),
		sessions:    service.NewSessionService(patientRepo, sessionRepo),
		readings:    service.NewReadingService(patientRepo, sessionRepo, readingRepo),
	}
}

// registerPatient is a fixture shortcut returning the new patient's id.
func (e *testEnv) registerPatient(t *testing.T, rfid, name string) uint {
	t.Helper()
	id, err := e.patients.RegisterPatient(&service.PatientRequest{
		RFIDUid:  rfid,
		FullName: name,
	})
	require.NoError(t, err)
	return id
}

func (e *testEnv) sessionRowCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&models.ActiveSession{}).Count(&count).Error)
	return count
}

func (e *testEnv) readingRowCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&models.SensorReading{}).Count(&count).Error)
	return count
}
