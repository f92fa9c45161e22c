package repository

import (
	"context"
	"fmt"
	"time"

	"quiz-import/internal/domain"
	"quiz-import/internal/repository/models"
	"quiz-import/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuestionDatabaseAdapter implements domain.QuestionRepository on Oracle via sqlx.
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// QuizExists implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) QuizExists(ctx context.Context, quizID string) (bool, error) {
	var count int
	query := `SELECT COUNT(1) FROM quizzes WHERE id = :1 AND deleted_at IS NULL`
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &count, query, quizID); err != nil {
		return false, fmt.Errorf("failed to check quiz %s: %w", quizID, err)
	}
	return count > 0, nil
}

// NextPosition implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) NextPosition(ctx context.Context, quizID string) (int, error) {
	return nextPosition(ctx, GetExecutor(ctx, a.db), quizID)
}

func nextPosition(ctx context.Context, exec DBTX, quizID string) (int, error) {
	var last int
	query := `SELECT NVL(MAX(position), 0) FROM quiz_questions WHERE quiz_id = :1`
	if err := exec.GetContext(ctx, &last, query, quizID); err != nil {
		return 0, fmt.Errorf("failed to get last question position for quiz %s: %w", quizID, err)
	}
	return last + 1, nil
}

// AppendQuestions implements domain.QuestionRepository. Questions are
// validated first, then stored after the quiz's existing questions. The
// slice elements receive their ID, QuizID, Position and CreatedAt. Callers
// wanting all-or-nothing semantics run it inside WithTransaction.
func (a *QuestionDatabaseAdapter) AppendQuestions(ctx context.Context, quizID string, questions []domain.Question) error {
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	exec := GetExecutor(ctx, a.db)
	position, err := nextPosition(ctx, exec, quizID)
	if err != nil {
		return err
	}

	now := time.Now()
	for i := range questions {
		q := &questions[i]
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		q.QuizID = quizID
		q.Position = position + i
		q.CreatedAt = now

		row := toModelQuestion(q)
		_, err := exec.ExecContext(ctx, `INSERT INTO quiz_questions (
			id, quiz_id, position, question_type, question_text,
			points, audio_path, explanation, answer_inferred, created_at
		) VALUES (
			:1, :2, :3, :4, :5, :6, :7, :8, :9, :10
		)`,
			row.ID, row.QuizID, row.Position, row.QuestionType, row.QuestionText,
			row.Points, row.AudioPath, row.Explanation, row.AnswerInferred, row.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert question %s: %w", q.ID, err)
		}

		for j, opt := range q.Options {
			_, err := exec.ExecContext(ctx, `INSERT INTO quiz_question_options (
				id, question_id, position, option_text, is_correct
			) VALUES (
				:1, :2, :3, :4, :5
			)`,
				util.NewULID(), q.ID, j+1, opt.Text, util.BoolToNumber(opt.Correct),
			)
			if err != nil {
				return fmt.Errorf("failed to insert option %d of question %s: %w", j+1, q.ID, err)
			}
		}
	}
	return nil
}

// GetQuestionsByQuizID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.QuizQuestion
	err := exec.SelectContext(ctx, &rows, `SELECT
		id, quiz_id, position, question_type, question_text,
		points, audio_path, explanation, answer_inferred, created_at
	FROM quiz_questions
	WHERE quiz_id = :1
	ORDER BY position`, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}

	questions := make([]domain.Question, 0, len(rows))
	if len(rows) == 0 {
		return questions, nil
	}

	var optionRows []models.QuizQuestionOption
	err = exec.SelectContext(ctx, &optionRows, `SELECT
		o.id, o.question_id, o.position, o.option_text, o.is_correct
	FROM quiz_question_options o
	JOIN quiz_questions q ON q.id = o.question_id
	WHERE q.quiz_id = :1
	ORDER BY q.position, o.position`, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get options for quiz %s: %w", quizID, err)
	}

	byQuestion := make(map[string][]domain.QuestionOption, len(rows))
	for _, o := range optionRows {
		byQuestion[o.QuestionID] = append(byQuestion[o.QuestionID], domain.QuestionOption{
			Text:    o.OptionText,
			Correct: o.IsCorrect != 0,
		})
	}

	for i := range rows {
		q := toDomainQuestion(&rows[i])
		q.Options = byQuestion[q.ID]
		if q.Options == nil {
			q.Options = []domain.QuestionOption{}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func toModelQuestion(q *domain.Question) models.QuizQuestion {
	return models.QuizQuestion{
		ID:             q.ID,
		QuizID:         q.QuizID,
		Position:       q.Position,
		QuestionType:   string(q.Type),
		QuestionText:   q.Text,
		Points:         q.Points,
		AudioPath:      util.StringToNullString(q.AudioPath),
		Explanation:    util.StringToNullString(q.Explanation),
		AnswerInferred: util.BoolToNumber(q.AnswerInferred),
		CreatedAt:      q.CreatedAt,
	}
}

func toDomainQuestion(m *models.QuizQuestion) domain.Question {
	return domain.Question{
		ID:             m.ID,
		QuizID:         m.QuizID,
		Type:           domain.QuestionType(m.QuestionType),
		Text:           m.QuestionText,
		Points:         m.Points,
		AudioPath:      util.NullStringToString(m.AudioPath),
		Explanation:    util.NullStringToString(m.Explanation),
		AnswerInferred: m.AnswerInferred != 0,
		Position:       m.Position,
		CreatedAt:      m.CreatedAt,
	}
}
