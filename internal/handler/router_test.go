package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"patient-kiosk-backend/internal/config"
	"patient-kiosk-backend/internal/database"
	"patient-kiosk-backend/internal/handler"
	"patient-kiosk-backend/internal/repository"
	"patient-kiosk-backend/internal/service"
	"patient-kiosk-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	gin.SetMode(gin.TestMode)
	utils.InitSessionTokens("test-secret", time.Hour)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	patientRepo := repository.NewPatientRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	readingRepo := repository.NewReadingRepo(db)

	patientService := service.NewPatientService(patientRepo)
	sessionService := service.NewSessionService(patientRepo, sessionRepo)
	readingService := service.NewReadingService(patientRepo, sessionRepo, readingRepo)

	cfg := &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
		Server: config.ServerConfig{
			Port:    "8080",
			GinMode: "test",
		},
	}

	return handler.NewRouter(cfg,
		handler.NewPatientHandler(patientService, readingService),
		handler.NewSessionHandler(sessionService),
		handler.NewReadingHandler(readingService),
	)
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (int, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w.Code, decoded
}

func doForm(t *testing.T, r http.Handler, path string, form url.Values) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w.Code, decoded
}

func TestKioskFlow_RegisterScanSubmitLatest(t *testing.T) {
	r := newTestRouter(t)

	// Register Jane Doe's card.
	code, body := doForm(t, r, "/api/patients", url.Values{
		"rfid_uid":  {"AA11"},
		"full_name": {"Jane Doe"},
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])

	// Scan the card: session starts, token comes back.
	code, body = doJSON(t, r, http.MethodGet, "/api/scan?rfid=AA11", "")
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	require.Equal(t, "Jane Doe", data["patient"].(map[string]interface{})["full_name"])
	require.NotEmpty(t, data["session_token"])

	// The sensor box posts a reading with no patient id in the payload.
	code, body = doJSON(t, r, http.MethodPost, "/api/readings", `{"hr":72,"spo2":98}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])

	// The dashboard poll sees the scanned patient and the fresh reading.
	code, body = doJSON(t, r, http.MethodGet, "/api/readings/latest", "")
	require.Equal(t, http.StatusOK, code)
	data = body["data"].(map[string]interface{})
	require.Equal(t, "Jane Doe", data["patient"].(map[string]interface{})["full_name"])
	reading := data["reading"].(map[string]interface{})
	require.EqualValues(t, 72, reading["heart_rate"])
	require.EqualValues(t, 98, reading["spo2"])
	require.EqualValues(t, 0, reading["ecg_value"])
}

func TestLatest_NoSessionIsOKWithMarker(t *testing.T) {
	r := newTestRouter(t)

	code, body := doJSON(t, r, http.MethodGet, "/api/readings/latest", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, false, body["success"])
	require.Equal(t, "no_active_session", body["error"])
}

func TestSubmitReading_NoSessionIsAnError(t *testing.T) {
	r := newTestRouter(t)

	code, body := doJSON(t, r, http.MethodPost, "/api/readings", `{"hr":72}`)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, false, body["success"])
	require.Equal(t, "no_active_session", body["error"])
}

func TestScan_UnknownCard(t *testing.T) {
	r := newTestRouter(t)

	code, body := doJSON(t, r, http.MethodGet, "/api/scan?rfid=ZZ99", "")
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "not_found", body["error"])

	code, body = doJSON(t, r, http.MethodGet, "/api/scan", "")
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "validation_error", body["error"])
}

func TestRegister_DuplicateRFIDConflict(t *testing.T) {
	r := newTestRouter(t)

	form := url.Values{"rfid_uid": {"AA11"}, "full_name": {"Jane Doe"}}
	code, _ := doForm(t, r, "/api/patients", form)
	require.Equal(t, http.StatusOK, code)

	code, body := doForm(t, r, "/api/patients", url.Values{
		"rfid_uid": {"AA11"}, "full_name": {"Someone Else"},
	})
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, "conflict", body["error"])
}

func TestDelete_AcceptsQueryParamAndIsIdempotent(t *testing.T) {
	r := newTestRouter(t)

	code, body := doForm(t, r, "/api/patients", url.Values{
		"rfid_uid": {"AA11"}, "full_name": {"Jane Doe"},
	})
	require.Equal(t, http.StatusOK, code)
	id := body["data"].(map[string]interface{})["id"].(float64)

	code, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/patients/delete?id=%.0f", id), "")
	require.Equal(t, http.StatusOK, code)

	// Deleting again is still a success.
	code, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/patients/delete?id=%.0f", id), "")
	require.Equal(t, http.StatusOK, code)
}

func TestClearSessions_AlwaysSucceeds(t *testing.T) {
	r := newTestRouter(t)

	code, body := doJSON(t, r, http.MethodPost, "/api/sessions/clear", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])

	// Afterwards the dashboard is back to the waiting state.
	_, body = doJSON(t, r, http.MethodGet, "/api/readings/latest", "")
	require.Equal(t, "no_active_session", body["error"])
}

func TestHistory_EndpointShapes(t *testing.T) {
	r := newTestRouter(t)

	code, body := doJSON(t, r, http.MethodGet, "/api/patients/history", "")
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "validation_error", body["error"])

	code, body = doJSON(t, r, http.MethodGet, "/api/patients/history?id=999", "")
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "not_found", body["error"])

	code, _ = doForm(t, r, "/api/patients", url.Values{
		"rfid_uid": {"AA11"}, "full_name": {"Jane Doe"},
	})
	require.Equal(t, http.StatusOK, code)

	code, body = doJSON(t, r, http.MethodGet, "/api/patients/history?id=1", "")
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	require.EqualValues(t, 0, data["count"])
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	code, body := doJSON(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])
}
