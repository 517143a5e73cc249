package repository

import (
	"context"

	"ponder/internal/domain/entity"
)

// QuestionRepository is the durable store of question records, keyed uniquely
// by title. Implementations must enforce title uniqueness with a storage-layer
// constraint; Exists is only a fast-path hint and two writers may race between
// checking and inserting.
type QuestionRepository interface {
	// Exists reports whether a record with exactly this title is persisted.
	Exists(ctx context.Context, title string) (bool, error)
	// Insert creates a record and returns its assigned ID. Each call is an
	// independently durable write, never batched with later inserts.
	// Returns entity.ErrDuplicateTitle if a record with the title already
	// exists at the moment of the write.
	Insert(ctx context.Context, title, content string) (int64, error)
	// List retrieves all records in creation order.
	List(ctx context.Context) ([]*entity.Question, error)
	// Get retrieves a record by ID. Returns (nil, nil) if absent.
	Get(ctx context.Context, id int64) (*entity.Question, error)
}
