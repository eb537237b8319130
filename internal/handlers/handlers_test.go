package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cradlelog/cradle-backend/internal/config"
	"github.com/cradlelog/cradle-backend/internal/handlers"
	"github.com/cradlelog/cradle-backend/internal/models"
	"github.com/cradlelog/cradle-backend/internal/routes"
	"github.com/cradlelog/cradle-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Baby{},
		&models.FeedingRecord{},
		&models.SleepRecord{},
		&models.VaccineRecord{},
		&models.RefreshToken{},
	))

	cfg := &config.Config{
		JWTSecret:           "handler-test-secret",
		JWTAccessExpiry:     15 * time.Minute,
		JWTRefreshExpiry:    time.Hour,
		RequireVerification: false,
	}

	authHandler := handlers.NewAuthHandler(services.NewAuthService(db, cfg, nil))
	feedingHandler := handlers.NewFeedingHandler(services.NewFeedingService(db))
	sleepHandler := handlers.NewSleepHandler(services.NewSleepService(db))
	vaccineHandler := handlers.NewVaccineHandler(services.NewVaccineService(db))
	babyHandler := handlers.NewBabyHandler(services.NewBabyService(db))

	app := fiber.New()
	routes.Setup(app, cfg, authHandler, handlers.NewHealthHandler(), feedingHandler, sleepHandler, vaccineHandler, babyHandler)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, path, token string) []map[string]interface{} {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	return list
}

func loginAs(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Test", "email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRecordRoutesRequireAuth(t *testing.T) {
	app := setupApp(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/feedings"},
		{http.MethodPost, "/api/feedings"},
		{http.MethodGet, "/api/sleeps"},
		{http.MethodPatch, "/api/sleeps/" + uuid.NewString()},
		{http.MethodGet, "/api/vaccines"},
		{http.MethodDelete, "/api/vaccines/" + uuid.NewString()},
		{http.MethodGet, "/api/babies"},
	} {
		resp, _ := doJSON(t, app, route.method, route.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}
}

func TestFeedingLifecycleOverHTTP(t *testing.T) {
	app := setupApp(t)
	token := loginAs(t, app, "alice@x.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/feedings", token, map[string]interface{}{
		"type": "bottle", "amount": 120.0, "timestamp": "2024-03-01T08:00:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	recordID, _ := body["id"].(string)
	require.NotEmpty(t, recordID)

	list := doJSONList(t, app, "/api/feedings", token)
	require.Len(t, list, 1)
	require.Equal(t, "bottle", list[0]["type"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/feedings/"+recordID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/feedings/"+recordID, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSleepCloseOverHTTP(t *testing.T) {
	app := setupApp(t)
	token := loginAs(t, app, "alice@x.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/sleeps", token, map[string]string{
		"start_time": "2024-01-01T22:00:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	recordID, _ := body["id"].(string)

	resp, _ = doJSON(t, app, http.MethodPatch, "/api/sleeps/"+recordID, token, map[string]string{
		"end_time": "2024-01-02T06:00:00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := doJSONList(t, app, "/api/sleeps", token)
	require.Len(t, list, 1)
	require.Equal(t, "8h0m0s", list[0]["duration"])
}

func TestCrossUserDeleteIsNotFound(t *testing.T) {
	app := setupApp(t)
	alice := loginAs(t, app, "alice@x.com")
	bob := loginAs(t, app, "bob@x.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/vaccines", alice, map[string]string{
		"vaccine_name": "MMR", "date_given": "2024-04-10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	recordID, _ := body["id"].(string)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/vaccines/"+recordID, bob, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Still there for Alice.
	list := doJSONList(t, app, "/api/vaccines", alice)
	require.Len(t, list, 1)
}

func TestRegisterDuplicateOverHTTP(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Alice", "email": "alice@x.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Mallory", "email": "alice@x.com", "password": "password456",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestValidationErrorsOverHTTP(t *testing.T) {
	app := setupApp(t)
	token := loginAs(t, app, "alice@x.com")

	// Malformed timestamp
	resp, _ := doJSON(t, app, http.MethodPost, "/api/feedings", token, map[string]string{
		"type": "bottle", "timestamp": "around noon",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Missing required field caught by struct validation
	resp, _ = doJSON(t, app, http.MethodPost, "/api/vaccines", token, map[string]string{
		"date_given": "2024-04-10",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
