package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-import/internal/domain"
	"quiz-import/internal/repository/models"
	"quiz-import/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// CreateQuiz implements domain.QuizRepository. An empty ID is filled with a
// new ULID and the timestamps are set on the passed quiz.
func (a *QuizDatabaseAdapter) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if err := quiz.Validate(); err != nil {
		return err
	}
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	now := time.Now()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	query := `INSERT INTO quizzes (id, title, created_at, updated_at) VALUES (:1, :2, :3, :4)`
	if _, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, quiz.ID, quiz.Title, quiz.CreatedAt, quiz.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create quiz %s: %w", quiz.ID, err)
	}
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var m models.Quiz
	query := `SELECT
		id "ID",
		title "TITLE",
		created_at "CREATED_AT",
		updated_at "UPDATED_AT",
		deleted_at "DELETED_AT"
	FROM quizzes
	WHERE id = :1 AND deleted_at IS NULL`

	if err := GetExecutor(ctx, a.db).GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", id, err)
	}
	return &domain.Quiz{ID: m.ID, Title: m.Title, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}, nil
}
