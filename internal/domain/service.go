package domain

import "context"

// QuestionRepository defines the interface for imported question persistence
type QuestionRepository interface {
	// QuizExists reports whether the target quiz is present
	QuizExists(ctx context.Context, quizID string) (bool, error)

	// NextPosition returns the position the next appended question gets
	NextPosition(ctx context.Context, quizID string) (int, error)

	// AppendQuestions stores questions (and their options) after the existing ones
	AppendQuestions(ctx context.Context, quizID string, questions []Question) error

	// GetQuestionsByQuizID returns the questions of a quiz ordered by position
	GetQuestionsByQuizID(ctx context.Context, quizID string) ([]Question, error)
}

// TransactionManager runs fn inside a database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
