package question_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"ponder/internal/common/pagination"
	"ponder/internal/domain/entity"
	"ponder/internal/handler/http/question"
	qUC "ponder/internal/usecase/question"
)

type stubListRepo struct {
	questions []*entity.Question
	listErr   error
}

func (s *stubListRepo) List(_ context.Context) ([]*entity.Question, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.questions, nil
}

func (s *stubListRepo) Exists(_ context.Context, _ string) (bool, error) {
	return false, nil
}
func (s *stubListRepo) Insert(_ context.Context, _, _ string) (int64, error) {
	return 0, nil
}
func (s *stubListRepo) Get(_ context.Context, _ int64) (*entity.Question, error) {
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedQuestions() []*entity.Question {
	return []*entity.Question{
		{ID: 1, Title: "What is justice?", Content: "Justice..."},
		{ID: 2, Title: "Does free will exist?", Content: "Free will..."},
		{ID: 3, Title: "What is the nature of time?", Content: "Time..."},
	}
}

func newListHandler(repo *stubListRepo) question.ListHandler {
	return question.ListHandler{
		Svc:           &qUC.Service{Repo: repo},
		PaginationCfg: pagination.DefaultConfig(),
		Logger:        testLogger(),
	}
}

func TestListHandler_Success(t *testing.T) {
	handler := newListHandler(&stubListRepo{questions: seedQuestions()})

	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var result pagination.Response[question.DTO]
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(result.Data) != 3 {
		t.Errorf("len(result.Data) = %d, want 3", len(result.Data))
	}
	if result.Pagination.Total != 3 {
		t.Errorf("result.Pagination.Total = %d, want 3", result.Pagination.Total)
	}
	if result.Data[0].Title != "What is justice?" {
		t.Errorf("result.Data[0].Title = %q, want %q", result.Data[0].Title, "What is justice?")
	}
}

func TestListHandler_TitleFilter(t *testing.T) {
	handler := newListHandler(&stubListRepo{questions: seedQuestions()})

	// Case-insensitive substring match
	req := httptest.NewRequest(http.MethodGet, "/questions?q=JUSTICE", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var result pagination.Response[question.DTO]
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(result.Data) != 1 {
		t.Fatalf("len(result.Data) = %d, want 1", len(result.Data))
	}
	if result.Data[0].ID != 1 {
		t.Errorf("result.Data[0].ID = %d, want 1", result.Data[0].ID)
	}
}

func TestListHandler_FilterNoMatch(t *testing.T) {
	handler := newListHandler(&stubListRepo{questions: seedQuestions()})

	req := httptest.NewRequest(http.MethodGet, "/questions?q=nonexistent", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var result pagination.Response[question.DTO]
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// Empty page is a valid response, not an error
	if len(result.Data) != 0 {
		t.Errorf("len(result.Data) = %d, want 0", len(result.Data))
	}
	if result.Pagination.Total != 0 {
		t.Errorf("result.Pagination.Total = %d, want 0", result.Pagination.Total)
	}
}

func TestListHandler_Pagination(t *testing.T) {
	handler := newListHandler(&stubListRepo{questions: seedQuestions()})

	req := httptest.NewRequest(http.MethodGet, "/questions?page=2&limit=2", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var result pagination.Response[question.DTO]
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(result.Data) != 1 {
		t.Fatalf("len(result.Data) = %d, want 1", len(result.Data))
	}
	if result.Data[0].ID != 3 {
		t.Errorf("result.Data[0].ID = %d, want 3", result.Data[0].ID)
	}
	if result.Pagination.TotalPages != 2 {
		t.Errorf("result.Pagination.TotalPages = %d, want 2", result.Pagination.TotalPages)
	}
}

func TestListHandler_InvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"negative page", "page=-1"},
		{"zero page", "page=0"},
		{"non-numeric page", "page=abc"},
		{"zero limit", "limit=0"},
		{"limit over max", "limit=10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newListHandler(&stubListRepo{questions: seedQuestions()})

			req := httptest.NewRequest(http.MethodGet, "/questions?"+tt.query, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestListHandler_RepositoryError(t *testing.T) {
	handler := newListHandler(&stubListRepo{listErr: errors.New("db connection lost")})

	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}
