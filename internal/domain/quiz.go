package domain

import (
	"context"
	"strings"
	"time"
)

// Quiz is the container imported questions are appended to.
type Quiz struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks that the quiz can be stored.
func (q *Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return ValidationErrors{NewMissingFieldError("title")}
	}
	return nil
}

// QuizRepository persists quizzes.
type QuizRepository interface {
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	// GetQuizByID returns nil, nil when the quiz does not exist or is deleted.
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
}
