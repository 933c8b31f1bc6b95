package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"healthcare-backend/blacklist"
	"healthcare-backend/config"
	"healthcare-backend/db"
	"healthcare-backend/models"
	"healthcare-backend/routes"
	"healthcare-backend/utils"
)

// setupTestApp wires the full route surface against an in-memory database.
func setupTestApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// One connection, or each pooled conn would see its own empty :memory: DB.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Doctor{},
		&models.PatientDoctorMapping{},
		&models.RevokedToken{},
	))
	db.DB = gdb

	cfg := &config.Config{
		JWTSecret:  "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}

	app := fiber.New()
	store := blacklist.NewGormStore(gdb)
	routes.SetupAuthRoutes(app, cfg, store)
	routes.SetupPatientRoutes(app, cfg)
	routes.SetupDoctorRoutes(app, cfg)
	routes.SetupMappingRoutes(app, cfg)

	return app, cfg
}

func seedUser(t *testing.T, cfg *config.Config, name, email string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("SecurePass123!"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Name: name, Email: email, Password: string(hash), IsActive: true}
	require.NoError(t, db.DB.Create(user).Error)

	token, err := utils.GenerateToken(user, utils.TokenTypeAccess, time.Hour, cfg.JWTSecret)
	require.NoError(t, err)

	return user, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func patientPayload() fiber.Map {
	return fiber.Map{
		"first_name":    "John",
		"last_name":     "Doe",
		"email":         "john.doe@example.com",
		"phone":         "1234567890",
		"date_of_birth": "1990-01-15",
		"gender":        "M",
		"blood_group":   "O+",
	}
}

func doctorPayload(license string) fiber.Map {
	return fiber.Map{
		"first_name":          "Emily",
		"last_name":           "Chen",
		"email":               license + "@hospital.com",
		"specialization":      "neurology",
		"license_number":      license,
		"years_of_experience": 10,
	}
}

func createPatient(t *testing.T, app *fiber.App, token string) uint {
	t.Helper()
	status, body := doJSON(t, app, "POST", "/api/patients/", token, patientPayload())
	require.Equal(t, fiber.StatusCreated, status, "%v", body)
	return uint(body["data"].(map[string]interface{})["id"].(float64))
}

func createDoctor(t *testing.T, app *fiber.App, token, license string) uint {
	t.Helper()
	status, body := doJSON(t, app, "POST", "/api/doctors/", token, doctorPayload(license))
	require.Equal(t, fiber.StatusCreated, status, "%v", body)
	return uint(body["data"].(map[string]interface{})["id"].(float64))
}

func mappingCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.DB.Model(&models.PatientDoctorMapping{}).Count(&count).Error)
	return count
}

func TestPatientOwnershipIsolation(t *testing.T) {
	app, cfg := setupTestApp(t)
	_, aliceToken := seedUser(t, cfg, "Alice", "alice@hospital.com")
	_, bobToken := seedUser(t, cfg, "Bob", "bob@hospital.com")

	patientID := createPatient(t, app, aliceToken)
	path := fmt.Sprintf("/api/patients/%d", patientID)

	// Another user's patient is indistinguishable from a missing one.
	status, _ := doJSON(t, app, "GET", path, bobToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doJSON(t, app, "PUT", path, bobToken, patientPayload())
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doJSON(t, app, "DELETE", path, bobToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body := doJSON(t, app, "GET", "/api/patients/", bobToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(0), body["count"])

	status, body = doJSON(t, app, "GET", "/api/patients/", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])

	status, _ = doJSON(t, app, "GET", path, aliceToken, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestDeletePatientCascadesMappings(t *testing.T) {
	app, cfg := setupTestApp(t)
	_, token := seedUser(t, cfg, "Alice", "alice@hospital.com")

	patientID := createPatient(t, app, token)
	doctorID := createDoctor(t, app, token, "LIC-2024-001")

	status, _ := doJSON(t, app, "POST", "/api/mappings/", token, fiber.Map{
		"patient_id": patientID,
		"doctor_id":  doctorID,
		"is_primary": true,
	})
	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, int64(1), mappingCount(t))

	status, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/api/patients/%d", patientID), token, nil)
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, int64(0), mappingCount(t), "no orphaned mapping rows")

	status, _ = doJSON(t, app, "GET", fmt.Sprintf("/api/mappings/%d", patientID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDeleteDoctorCascadesMappings(t *testing.T) {
	app, cfg := setupTestApp(t)
	_, token := seedUser(t, cfg, "Alice", "alice@hospital.com")

	patientID := createPatient(t, app, token)
	doctorID := createDoctor(t, app, token, "LIC-2024-002")

	status, _ := doJSON(t, app, "POST", "/api/mappings/", token, fiber.Map{
		"patient_id": patientID,
		"doctor_id":  doctorID,
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/api/doctors/%d", doctorID), token, nil)
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, int64(0), mappingCount(t))
}

func TestCreateMappingRequiresPatientOwnership(t *testing.T) {
	app, cfg := setupTestApp(t)
	_, aliceToken := seedUser(t, cfg, "Alice", "alice@hospital.com")
	_, bobToken := seedUser(t, cfg, "Bob", "bob@hospital.com")

	patientID := createPatient(t, app, aliceToken)
	doctorID := createDoctor(t, app, bobToken, "LIC-2024-003")

	// Bob cannot assign doctors to Alice's patient, and the rejection
	// looks like a missing patient.
	status, _ := doJSON(t, app, "POST", "/api/mappings/", bobToken, fiber.Map{
		"patient_id": patientID,
		"doctor_id":  doctorID,
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, int64(0), mappingCount(t), "no mapping row persisted")

	status, _ = doJSON(t, app, "POST", "/api/mappings/", aliceToken, fiber.Map{
		"patient_id": patientID,
		"doctor_id":  doctorID,
	})
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestCreateMappingUnknownDoctor(t *testing.T) {
	app, cfg := setupTestApp(t)
	_, token := seedUser(t, cfg, "Alice", "alice@hospital.com")

	patientID := createPatient(t, app, token)

	status, _ := doJSON(t, app, "POST", "/api/mappings/", token, fiber.Map{
		"patient_id": patientID,
		"doctor_id":  9999,
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, int64(0), mappingCount(t), "no mapping row persisted")
}

func TestCreateMappingRejectsDuplicatePair(t *testing.T) {
	app, cfg := setupTestApp(t)
	_, token := seedUser(t, cfg, "Alice", "alice@hospital.com")

	patientID := createPatient(t, app, token)
	doctorID := createDoctor(t, app, token, "LIC-2024-004")

	payload := fiber.Map{"patient_id": patientID, "doctor_id": doctorID}
	status, _ := doJSON(t, app, "POST", "/api/mappings/", token, payload)
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, "POST", "/api/mappings/", token, payload)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "doctor_id")
	assert.Equal(t, int64(1), mappingCount(t))
}

func TestMappingIsPrimaryFilterIsCaseInsensitive(t *testing.T) {
	app, cfg := setupTestApp(t)
	_, token := seedUser(t, cfg, "Alice", "alice@hospital.com")

	patientID := createPatient(t, app, token)
	primaryDoc := createDoctor(t, app, token, "LIC-2024-005")
	otherDoc := createDoctor(t, app, token, "LIC-2024-006")

	status, _ := doJSON(t, app, "POST", "/api/mappings/", token, fiber.Map{
		"patient_id": patientID, "doctor_id": primaryDoc, "is_primary": true,
	})
	require.Equal(t, fiber.StatusCreated, status)
	status, _ = doJSON(t, app, "POST", "/api/mappings/", token, fiber.Map{
		"patient_id": patientID, "doctor_id": otherDoc,
	})
	require.Equal(t, fiber.StatusCreated, status)

	for _, q := range []string{"true", "True", "TRUE"} {
		status, body := doJSON(t, app, "GET", "/api/mappings/?is_primary="+q, token, nil)
		require.Equal(t, fiber.StatusOK, status)
		require.Equal(t, float64(1), body["count"], q)
		entry := body["data"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, true, entry["is_primary"], q)
	}

	status, body := doJSON(t, app, "GET", "/api/mappings/?is_primary=false", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])
}

func TestPatientDateOfBirthRoundTrip(t *testing.T) {
	app, cfg := setupTestApp(t)
	_, token := seedUser(t, cfg, "Alice", "alice@hospital.com")

	patientID := createPatient(t, app, token)
	path := fmt.Sprintf("/api/patients/%d", patientID)

	status, body := doJSON(t, app, "GET", path, token, nil)
	require.Equal(t, fiber.StatusOK, status)
	fetched := body["data"].(map[string]interface{})
	assert.Equal(t, "1990-01-15", fetched["date_of_birth"])

	// A full update fed straight back from a GET must validate.
	status, body = doJSON(t, app, "PUT", path, token, fetched)
	require.Equal(t, fiber.StatusOK, status, "%v", body)

	status, body = doJSON(t, app, "GET", path, token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "1990-01-15", body["data"].(map[string]interface{})["date_of_birth"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := setupTestApp(t)

	payload := fiber.Map{
		"name":             "New User",
		"email":            "newuser@example.com",
		"password":         "SecurePass123!",
		"confirm_password": "SecurePass123!",
	}
	status, _ := doJSON(t, app, "POST", "/api/auth/register", "", payload)
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, "POST", "/api/auth/register", "", payload)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "email")

	var count int64
	require.NoError(t, db.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "duplicate registration creates no user")
}

func TestCreateDoctorDuplicateLicense(t *testing.T) {
	app, cfg := setupTestApp(t)
	_, token := seedUser(t, cfg, "Alice", "alice@hospital.com")

	createDoctor(t, app, token, "LIC-2024-007")

	payload := doctorPayload("LIC-2024-007")
	payload["email"] = "someone.else@hospital.com"
	status, body := doJSON(t, app, "POST", "/api/doctors/", token, payload)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body["errors"], "license_number")
}

func TestAssignmentFlow(t *testing.T) {
	app, _ := setupTestApp(t)

	status, _ := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"name":             "Alice",
		"email":            "alice@hospital.com",
		"password":         "SecurePass123!",
		"confirm_password": "SecurePass123!",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email":    "alice@hospital.com",
		"password": "SecurePass123!",
	})
	require.Equal(t, fiber.StatusOK, status)
	token := body["data"].(map[string]interface{})["tokens"].(map[string]interface{})["access"].(string)

	patientID := createPatient(t, app, token)
	doctorID := createDoctor(t, app, token, "LIC-2024-008")

	status, _ = doJSON(t, app, "POST", "/api/mappings/", token, fiber.Map{
		"patient_id": patientID,
		"doctor_id":  doctorID,
		"is_primary": true,
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, body = doJSON(t, app, "GET", fmt.Sprintf("/api/mappings/%d", patientID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "John Doe", body["patient"].(map[string]interface{})["full_name"])

	entry := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, true, entry["is_primary"])
	doctor := entry["doctor_detail"].(map[string]interface{})
	assert.Equal(t, "Chen", doctor["last_name"])
	assert.Equal(t, "neurology", doctor["specialization"])
}
