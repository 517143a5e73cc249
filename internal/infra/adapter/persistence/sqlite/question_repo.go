// Package sqlite provides the SQLite implementation of the question
// repository, used for local development and the one-shot CLI seeder.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite3 "modernc.org/sqlite"

	"ponder/internal/domain/entity"
	"ponder/internal/repository"
)

// SQLite extended result codes raised when the unique index on
// questions.title rejects a write.
const (
	sqliteConstraintUnique     = 2067
	sqliteConstraintPrimaryKey = 1555
)

// QuestionRepo implements the QuestionRepository interface using SQLite.
type QuestionRepo struct{ db *sql.DB }

// NewQuestionRepo creates a new SQLite-backed question repository.
func NewQuestionRepo(db *sql.DB) repository.QuestionRepository {
	return &QuestionRepo{db: db}
}

func (repo *QuestionRepo) Exists(ctx context.Context, title string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM questions WHERE title = ?)`
	var existsFlag bool
	err := repo.db.QueryRowContext(ctx, query, title).Scan(&existsFlag)
	if err != nil {
		return false, fmt.Errorf("Exists: QueryRowContext: %w", err)
	}
	return existsFlag, nil
}

// Insert writes one record in its own implicit transaction. The unique index,
// not the caller's prior Exists check, guarantees a single record per title
// under concurrent writers.
func (repo *QuestionRepo) Insert(ctx context.Context, title, content string) (int64, error) {
	const query = `
INSERT INTO questions (title, content)
VALUES (?, ?)
`
	res, err := repo.db.ExecContext(ctx, query, title, content)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("Insert: title %q: %w", title, entity.ErrDuplicateTitle)
		}
		return 0, fmt.Errorf("Insert: ExecContext: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("Insert: LastInsertId: %w", err)
	}
	return id, nil
}

func (repo *QuestionRepo) List(ctx context.Context) ([]*entity.Question, error) {
	const query = `
SELECT id, title, content
FROM questions
ORDER BY id
`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
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

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}

	return questions, nil
}

func (repo *QuestionRepo) Get(ctx context.Context, id int64) (*entity.Question, error) {
	const query = `
SELECT id, title, content
FROM questions
WHERE id = ?
LIMIT 1
`
	var question entity.Question
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&question.ID, &question.Title, &question.Content)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return &question, nil
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// The typed check covers the modernc driver; the message check covers
// database/sql wrappers that strip the concrete type.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite3.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqliteConstraintUnique || code == sqliteConstraintPrimaryKey
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
