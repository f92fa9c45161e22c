package models

import (
	"database/sql"
	"time"
)

// QuizQuestion is a row of quiz_questions.
type QuizQuestion struct {
	ID             string         `db:"ID"` // ULID
	QuizID         string         `db:"QUIZ_ID"`
	Position       int            `db:"POSITION"` // 1-based order inside the quiz
	QuestionType   string         `db:"QUESTION_TYPE"`
	QuestionText   string         `db:"QUESTION_TEXT"`
	Points         int            `db:"POINTS"`
	AudioPath      sql.NullString `db:"AUDIO_PATH"`
	Explanation    sql.NullString `db:"EXPLANATION"`
	AnswerInferred int            `db:"ANSWER_INFERRED"` // NUMBER(1)
	CreatedAt      time.Time      `db:"CREATED_AT"`
}

// QuizQuestionOption is a row of quiz_question_options.
type QuizQuestionOption struct {
	ID         string `db:"ID"`
	QuestionID string `db:"QUESTION_ID"`
	Position   int    `db:"POSITION"`
	OptionText string `db:"OPTION_TEXT"`
	IsCorrect  int    `db:"IS_CORRECT"` // NUMBER(1)
}
