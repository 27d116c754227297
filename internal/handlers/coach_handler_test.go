package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/coach-service/internal/cache"
	"github.com/coachdesk/coach-service/internal/events"
	"github.com/coachdesk/coach-service/internal/models"
	"github.com/coachdesk/coach-service/internal/repositories/memory"
	"github.com/coachdesk/coach-service/internal/services"
	"github.com/coachdesk/coach-service/internal/utils"
	"github.com/coachdesk/coach-service/internal/validator"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := events.NewBus(logger)
	t.Cleanup(func() { _ = bus.Close() })

	svc := services.NewCoachService(memory.New(), cache.NewCacheHelper(nil, ""), bus, logger, validator.New(), time.Minute)

	router := gin.New()
	NewHandlerManager(svc, utils.NewSlogLogger(logger)).SetupRoutes(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createCoach(t *testing.T, router *gin.Engine, name, email string) models.Coach {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/coaches", gin.H{
		"name":     name,
		"email":    email,
		"category": "Fitness",
		"rating":   4.5,
		"status":   "active",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var coach models.Coach
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &coach))
	return coach
}

func TestCreateCoach(t *testing.T) {
	router := newTestRouter(t)

	coach := createCoach(t, router, "John Doe", "john@example.com")
	assert.NotEmpty(t, coach.ID)
	assert.Equal(t, "John Doe", coach.Name)
	assert.Equal(t, 4.5, coach.Rating)
	assert.Equal(t, models.StatusActive, coach.Status)
	assert.False(t, coach.CreatedAt.IsZero())
}

func TestCreateCoach_ValidationErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"email": "a@x.com", "category": "Fitness", "rating": 4, "status": "active"}},
		{"missing email", gin.H{"name": "A", "category": "Fitness", "rating": 4, "status": "active"}},
		{"malformed email", gin.H{"name": "A", "email": "not-an-email", "category": "Fitness", "rating": 4, "status": "active"}},
		{"rating too low", gin.H{"name": "A", "email": "a@x.com", "category": "Fitness", "rating": 0, "status": "active"}},
		{"rating too high", gin.H{"name": "A", "email": "a@x.com", "category": "Fitness", "rating": 5.1, "status": "active"}},
		{"unknown status", gin.H{"name": "A", "email": "a@x.com", "category": "Fitness", "rating": 4, "status": "pending"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/coaches", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Validation failed", resp.Message)
			assert.NotNil(t, resp.Details)
		})
	}

	// Collection untouched after every rejection
	w := doRequest(t, router, http.MethodGet, "/coaches", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateCoach_NonNumericRating(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/coaches", gin.H{
		"name":     "A",
		"email":    "a@x.com",
		"category": "Fitness",
		"rating":   "high",
		"status":   "active",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request body", resp.Message)
}

func TestCreateCoach_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t)

	createCoach(t, router, "John Doe", "john@example.com")

	w := doRequest(t, router, http.MethodPost, "/coaches", gin.H{
		"name":     "Other John",
		"email":    "JOHN@EXAMPLE.COM",
		"category": "Fitness",
		"rating":   3,
		"status":   "active",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Message)
}

func TestListCoaches(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/coaches", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	createCoach(t, router, "Ann", "ann@x.com")
	createCoach(t, router, "Bob", "bob@x.com")

	w = doRequest(t, router, http.MethodGet, "/coaches", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var coaches []models.Coach
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &coaches))
	require.Len(t, coaches, 2)
	assert.Equal(t, "Ann", coaches[0].Name)
	assert.Equal(t, "Bob", coaches[1].Name)
}

func TestGetCoach(t *testing.T) {
	router := newTestRouter(t)
	created := createCoach(t, router, "Ann", "ann@x.com")

	w := doRequest(t, router, http.MethodGet, "/coaches/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var coach models.Coach
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &coach))
	assert.Equal(t, created.ID, coach.ID)

	w = doRequest(t, router, http.MethodGet, "/coaches/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCoach(t *testing.T) {
	router := newTestRouter(t)
	created := createCoach(t, router, "Ann", "ann@x.com")

	w := doRequest(t, router, http.MethodPut, "/coaches/"+created.ID, gin.H{"status": "inactive"})
	require.Equal(t, http.StatusOK, w.Code)

	var coach models.Coach
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &coach))
	assert.Equal(t, models.StatusInactive, coach.Status)
	assert.Equal(t, "Ann", coach.Name)
	assert.Equal(t, created.CreatedAt.Unix(), coach.CreatedAt.Unix())

	w = doRequest(t, router, http.MethodPut, "/coaches/missing", gin.H{"name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodPut, "/coaches/"+created.ID, gin.H{"rating": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCoach(t *testing.T) {
	router := newTestRouter(t)
	created := createCoach(t, router, "Ann", "ann@x.com")

	w := doRequest(t, router, http.MethodDelete, "/coaches/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ack services.DeleteCoachResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.NotEmpty(t, ack.Message)

	w = doRequest(t, router, http.MethodGet, "/coaches/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/coaches/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportCoaches(t *testing.T) {
	router := newTestRouter(t)
	createCoach(t, router, "Ann", "ann@x.com")

	w := doRequest(t, router, http.MethodGet, "/coaches/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, w.Body.Len())
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "ok", resp["storage"])
}
