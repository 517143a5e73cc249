package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pingableMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func runHealthCheck(t *testing.T, handler http.Handler, path string) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var response HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	return rec, response
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(sqlmock.Sqlmock)
		expectedStatus int
		expectedHealth string
	}{
		{
			name:           "healthy database",
			setupMock:      func(mock sqlmock.Sqlmock) { mock.ExpectPing() },
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
		},
		{
			name: "database connection error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(sql.ErrConnDone)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := pingableMockDB(t)
			tt.setupMock(mock)

			handler := &HealthHandler{DB: db, Version: "ponder-test"}
			rec, response := runHealthCheck(t, handler, "/health")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedHealth, response.Status)
			assert.Equal(t, "ponder-test", response.Version)
			assert.NotEmpty(t, response.Timestamp)
			assert.Contains(t, response.Checks, "database")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthHandler_NoDatabaseConfigured(t *testing.T) {
	handler := &HealthHandler{DB: nil, Version: "ponder-test"}
	rec, response := runHealthCheck(t, handler, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "not configured", response.Checks["database"].Message)
}

func TestHealthHandler_ReportsPoolDetails(t *testing.T) {
	db, mock := pingableMockDB(t)
	db.SetMaxOpenConns(10)
	mock.ExpectPing()

	handler := &HealthHandler{DB: db, Version: "ponder-test"}
	rec, response := runHealthCheck(t, handler, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", response.Status)

	dbCheck := response.Checks["database"]
	assert.NotNil(t, dbCheck.Details)
	// Nothing is holding a connection, so utilization reads 0%.
	assert.Contains(t, dbCheck.Details, "utilization_percent")
	assert.Equal(t, float64(0), dbCheck.Details["utilization_percent"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthHandler_UnlimitedPoolIsDegraded(t *testing.T) {
	db, mock := pingableMockDB(t)
	// MaxOpenConns 0 means unlimited; utilization is undefined then.
	db.SetMaxOpenConns(0)
	mock.ExpectPing()

	handler := &HealthHandler{DB: db, Version: "ponder-test"}
	rec, response := runHealthCheck(t, handler, "/health")

	// The database is reachable, so the endpoint stays OK overall.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", response.Status)

	dbCheck := response.Checks["database"]
	assert.Equal(t, "degraded", dbCheck.Status)
	assert.Equal(t, "connection pool max connections not configured", dbCheck.Message)
	assert.Equal(t, float64(0), dbCheck.Details["max_open_connections"])

	_, hasUtilization := dbCheck.Details["utilization_percent"]
	assert.False(t, hasUtilization, "utilization is meaningless with an unlimited pool")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthHandler_SingleConnectionPool(t *testing.T) {
	db, mock := pingableMockDB(t)
	db.SetMaxOpenConns(1)
	mock.ExpectPing()

	handler := &HealthHandler{DB: db, Version: "ponder-test"}
	rec, response := runHealthCheck(t, handler, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)

	dbCheck := response.Checks["database"]
	assert.Equal(t, float64(1), dbCheck.Details["max_open_connections"])
	assert.Contains(t, dbCheck.Details, "utilization_percent")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthHandler_ResponseHeaders(t *testing.T) {
	db, mock := pingableMockDB(t)
	mock.ExpectPing()

	handler := &HealthHandler{DB: db, Version: "ponder-test"}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadyHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(sqlmock.Sqlmock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "ready",
			setupMock:      func(mock sqlmock.Sqlmock) { mock.ExpectPing() },
			expectedStatus: http.StatusOK,
			expectedBody:   "ready",
		},
		{
			name: "database not ready",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(sql.ErrConnDone)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := pingableMockDB(t)
			tt.setupMock(mock)

			handler := &ReadyHandler{DB: db}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, rec.Body.String())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReadyHandler_NoDatabaseConfigured(t *testing.T) {
	handler := &ReadyHandler{DB: nil}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "database not configured")
}

func TestReadyHandler_SlowPingTimesOut(t *testing.T) {
	db, mock := pingableMockDB(t)
	mock.ExpectPing().WillDelayFor(3 * time.Second)

	handler := &ReadyHandler{DB: db}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	handler := &LiveHandler{}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}
