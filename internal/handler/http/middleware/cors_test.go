package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

// stubOriginValidator answers IsAllowed with a fixed verdict.
type stubOriginValidator struct {
	allowed bool
	origins []string
}

func (s *stubOriginValidator) IsAllowed(origin string) bool {
	return s.allowed
}

func (s *stubOriginValidator) GetAllowedOrigins() []string {
	return s.origins
}

// recordingCORSLogger counts log calls and keeps the last message/fields.
type recordingCORSLogger struct {
	infoCount  int
	warnCount  int
	debugCount int
	lastMsg    string
	lastFields map[string]interface{}
}

func (l *recordingCORSLogger) Info(msg string, fields map[string]interface{}) {
	l.infoCount++
	l.lastMsg = msg
	l.lastFields = fields
}

func (l *recordingCORSLogger) Warn(msg string, fields map[string]interface{}) {
	l.warnCount++
	l.lastMsg = msg
	l.lastFields = fields
}

func (l *recordingCORSLogger) Debug(msg string, fields map[string]interface{}) {
	l.debugCount++
	l.lastMsg = msg
	l.lastFields = fields
}

// questionsOrigin is the browser frontend origin used throughout these tests.
const questionsOrigin = "http://localhost:3000"

func corsTestConfig(allowed bool, logger CORSLogger) CORSConfig {
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return CORSConfig{
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           3600,
		Validator: &stubOriginValidator{
			allowed: allowed,
			origins: []string{questionsOrigin},
		},
		Logger: logger,
	}
}

// TestCORS_Preflight_AllowedOrigin: a preflight from the frontend origin gets
// 204 with the full header set, and the wrapped handler never runs.
func TestCORS_Preflight_AllowedOrigin(t *testing.T) {
	nextCalled := false
	handler := CORS(corsTestConfig(true, nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("OPTIONS", "/questions", nil)
	req.Header.Set("Origin", questionsOrigin)
	req.Header.Set("Access-Control-Request-Method", "GET")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != questionsOrigin {
		t.Errorf("Allow-Origin = %q, want %q", got, questionsOrigin)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want \"true\"", got)
	}
	methods := rec.Header().Get("Access-Control-Allow-Methods")
	if !strings.Contains(methods, "GET") || !strings.Contains(methods, "POST") {
		t.Errorf("Allow-Methods = %q, want GET and POST", methods)
	}
	headers := rec.Header().Get("Access-Control-Allow-Headers")
	if !strings.Contains(headers, "Content-Type") || !strings.Contains(headers, "Authorization") {
		t.Errorf("Allow-Headers = %q, want Content-Type and Authorization", headers)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "3600" {
		t.Errorf("Max-Age = %q, want \"3600\"", got)
	}
	if nextCalled {
		t.Error("next handler must not run for preflight requests")
	}
}

// TestCORS_Preflight_DisallowedOrigin: an unknown origin gets no CORS headers
// and a warning log; the handler still runs (the browser does the blocking).
func TestCORS_Preflight_DisallowedOrigin(t *testing.T) {
	logger := &recordingCORSLogger{}
	nextCalled := false
	handler := CORS(corsTestConfig(false, logger))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("OPTIONS", "/questions", nil)
	req.Header.Set("Origin", "http://evil.invalid")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "" {
		t.Errorf("Allow-Methods = %q, want empty", got)
	}
	if logger.warnCount != 1 {
		t.Errorf("warn count = %d, want 1", logger.warnCount)
	}
	if !strings.Contains(logger.lastMsg, "origin not allowed") {
		t.Errorf("warn message = %q, want it to mention the disallowed origin", logger.lastMsg)
	}
	if !nextCalled {
		t.Error("next handler should still run for a disallowed preflight")
	}
}

// TestCORS_ActualRequest covers the non-preflight path for allowed and
// disallowed origins across the question and seed routes.
func TestCORS_ActualRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		origin     string
		allowed    bool
		wantOrigin string
		wantWarns  int
	}{
		{"allowed GET questions", "GET", "/questions", questionsOrigin, true, questionsOrigin, 0},
		{"allowed GET question detail", "GET", "/questions/1", questionsOrigin, true, questionsOrigin, 0},
		{"allowed POST seed", "POST", "/seed", questionsOrigin, true, questionsOrigin, 0},
		{"disallowed origin", "GET", "/questions", "http://evil.invalid", false, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingCORSLogger{}
			nextCalled := false
			handler := CORS(corsTestConfig(tt.allowed, logger))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", tt.origin)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if logger.warnCount != tt.wantWarns {
				t.Errorf("warn count = %d, want %d", logger.warnCount, tt.wantWarns)
			}
			// Actual requests always reach the handler; the browser enforces
			// the response headers, not the server.
			if !nextCalled {
				t.Error("next handler should run for actual requests")
			}
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
			}
		})
	}
}

// TestCORS_SameOrigin_NoOriginHeader: requests without an Origin header (the
// server-rendered HTML pages, curl) skip CORS processing entirely.
func TestCORS_SameOrigin_NoOriginHeader(t *testing.T) {
	logger := &recordingCORSLogger{}
	nextCalled := false
	handler := CORS(corsTestConfig(true, logger))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/view/1", nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty for same-origin", got)
	}
	if logger.warnCount != 0 {
		t.Errorf("warn count = %d, want 0 for same-origin", logger.warnCount)
	}
	if !nextCalled {
		t.Error("next handler should run for same-origin requests")
	}
}

// TestCORS_Preflight_DebugLog: allowed preflights log at debug with the
// origin and requested method.
func TestCORS_Preflight_DebugLog(t *testing.T) {
	logger := &recordingCORSLogger{}
	handler := CORS(corsTestConfig(true, logger))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("OPTIONS", "/seed", nil)
	req.Header.Set("Origin", questionsOrigin)
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if logger.debugCount != 1 {
		t.Errorf("debug count = %d, want 1", logger.debugCount)
	}
	if !strings.Contains(logger.lastMsg, "preflight request") {
		t.Errorf("debug message = %q, want it to mention the preflight", logger.lastMsg)
	}
	if logger.lastFields["origin"] != questionsOrigin {
		t.Errorf("origin field = %v, want %q", logger.lastFields["origin"], questionsOrigin)
	}
	if logger.lastFields["requested_method"] != "POST" {
		t.Errorf("requested_method field = %v, want POST", logger.lastFields["requested_method"])
	}
}

// TestCORS_MaxAge: the configured cache window is echoed verbatim.
func TestCORS_MaxAge(t *testing.T) {
	tests := []struct {
		name   string
		maxAge int
	}{
		{"1 hour", 3600},
		{"24 hours", 86400},
		{"no cache", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := corsTestConfig(true, nil)
			cfg.MaxAge = tt.maxAge
			handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("OPTIONS", "/questions", nil)
			req.Header.Set("Origin", questionsOrigin)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Max-Age"); got != strconv.Itoa(tt.maxAge) {
				t.Errorf("Max-Age = %q, want %d", got, tt.maxAge)
			}
		})
	}
}

// TestCORS_OriginEchoedExactly: the allowed origin is echoed back untouched,
// including scheme, subdomain, and port.
func TestCORS_OriginEchoedExactly(t *testing.T) {
	origins := []string{
		"http://localhost:3000",
		"https://ponder.example.org",
		"https://app.ponder.example.org:8443",
	}

	for _, origin := range origins {
		t.Run(origin, func(t *testing.T) {
			cfg := corsTestConfig(true, nil)
			cfg.Validator = &stubOriginValidator{allowed: true, origins: []string{origin}}
			handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/questions", nil)
			req.Header.Set("Origin", origin)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
				t.Errorf("Allow-Origin = %q, want %q", got, origin)
			}
		})
	}
}

// TestCORS_NoDuplicateHeaders: repeated requests through the same handler
// chain set each CORS header exactly once.
func TestCORS_NoDuplicateHeaders(t *testing.T) {
	handler := CORS(corsTestConfig(true, nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/questions", nil)
		req.Header.Set("Origin", questionsOrigin)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Values("Access-Control-Allow-Origin"); len(got) != 1 {
			t.Errorf("request %d: %d Allow-Origin headers, want 1", i+1, len(got))
		}
	}
}

// TestCORS_NilLogger: a config without a logger must not panic.
func TestCORS_NilLogger(t *testing.T) {
	cfg := corsTestConfig(false, nil)
	cfg.Logger = nil
	handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/questions", nil)
	req.Header.Set("Origin", "http://evil.invalid")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
