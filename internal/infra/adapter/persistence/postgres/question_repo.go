// Package postgres provides the PostgreSQL implementation of the question
// repository.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"ponder/internal/domain/entity"
	"ponder/internal/repository"
)

// uniqueViolation is the PostgreSQL error code raised when the UNIQUE
// constraint on questions.title rejects a write.
const uniqueViolation = "23505"

// QuestionRepo implements the QuestionRepository interface using PostgreSQL.
type QuestionRepo struct{ db *sql.DB }

// NewQuestionRepo creates a new PostgreSQL-backed question repository.
func NewQuestionRepo(db *sql.DB) repository.QuestionRepository {
	return &QuestionRepo{db: db}
}

func (repo *QuestionRepo) Exists(ctx context.Context, title string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM questions WHERE title = $1)`
	var existsFlag bool
	err := repo.db.QueryRowContext(ctx, query, title).Scan(&existsFlag)
	if err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return existsFlag, nil
}

// Insert writes one record in its own implicit transaction. The UNIQUE
// constraint, not the caller's prior Exists check, is what guarantees a
// single record per title under concurrent writers.
func (repo *QuestionRepo) Insert(ctx context.Context, title, content string) (int64, error) {
	const query = `
INSERT INTO questions (title, content)
VALUES ($1, $2)
RETURNING id`
	var id int64
	err := repo.db.QueryRowContext(ctx, query, title, content).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, fmt.Errorf("Insert: title %q: %w", title, entity.ErrDuplicateTitle)
		}
		return 0, fmt.Errorf("Insert: %w", err)
	}
	return id, nil
}

func (repo *QuestionRepo) List(ctx context.Context) ([]*entity.Question, error) {
	const query = `
SELECT id, title, content
FROM questions
ORDER BY id`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	questions := make([]*entity.Question, 0, 100)
	for rows.Next() {
		var question entity.Question
		if err := rows.Scan(&question.ID, &question.Title, &question.Content); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		questions = append(questions, &question)
	}
	return questions, rows.Err()
}

func (repo *QuestionRepo) Get(ctx context.Context, id int64) (*entity.Question, error) {
	const query = `
SELECT id, title, content
FROM questions
WHERE id = $1
LIMIT 1`
	var question entity.Question
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&question.ID, &question.Title, &question.Content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &question, nil
}
