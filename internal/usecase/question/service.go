package question

import (
	"context"
	"fmt"
	"strings"

	"ponder/internal/common/pagination"
	"ponder/internal/domain/entity"
	"ponder/internal/repository"
)

// Service provides question read use cases.
// It delegates persistence to the repository and applies filtering and
// pagination on the result set, so match semantics do not depend on the
// storage backend.
type Service struct {
	Repo repository.QuestionRepository
}

// PaginatedResult represents one page of a question listing.
// It contains both the data and pagination metadata.
type PaginatedResult struct {
	Data       []*entity.Question
	Pagination pagination.Metadata
}

// List retrieves questions in creation order. When query is non-empty, only
// questions whose title contains it case-insensitively are kept; the filtered
// set is then paginated according to params.
func (s *Service) List(ctx context.Context, query string, params pagination.Params) (*PaginatedResult, error) {
	questions, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	if query != "" {
		questions = filterByTitle(questions, query)
	}

	total := int64(len(questions))
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	page := []*entity.Question{}
	if offset < len(questions) {
		end := offset + params.Limit
		if end > len(questions) {
			end = len(questions)
		}
		page = questions[offset:end]
	}

	return &PaginatedResult{
		Data: page,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}, nil
}

// filterByTitle returns the questions whose title contains the query,
// ignoring case. Lowercasing works on runes, so non-ASCII titles match.
func filterByTitle(questions []*entity.Question, query string) []*entity.Question {
	needle := strings.ToLower(query)

	matched := make([]*entity.Question, 0, len(questions))
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.Title), needle) {
			matched = append(matched, q)
		}
	}
	return matched
}

// Get retrieves a single question by its ID.
// Returns ErrInvalidQuestionID if the ID is not positive.
// Returns ErrQuestionNotFound if the question does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Question, error) {
	if id <= 0 {
		return nil, ErrInvalidQuestionID
	}

	question, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	return question, nil
}
