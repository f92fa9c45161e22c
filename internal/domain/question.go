package domain

import (
	"fmt"
	"strings"
	"time"
)

// QuestionType is the answer shape of an imported question.
type QuestionType string

const (
	QuestionTypeSingle    QuestionType = "single"
	QuestionTypeMultiple  QuestionType = "multiple"
	QuestionTypeTrueFalse QuestionType = "truefalse"
)

// DefaultQuestionPoints is the score every imported question starts with.
const DefaultQuestionPoints = 1

// UntitledQuestionText replaces an empty question text.
const UntitledQuestionText = "(Untitled)"

// QuestionOption is one answer choice of a question.
type QuestionOption struct {
	Text    string `json:"text" yaml:"text"`
	Correct bool   `json:"correct" yaml:"correct"`
}

// Question is a structured quiz question produced by the text import.
type Question struct {
	ID          string           `json:"id" yaml:"id"`
	QuizID      string           `json:"quiz_id,omitempty" yaml:"quiz_id,omitempty"`
	Type        QuestionType     `json:"type" yaml:"type"`
	Text        string           `json:"text" yaml:"text"`
	Points      int              `json:"points" yaml:"points"`
	Options     []QuestionOption `json:"options" yaml:"options"`
	AudioPath   string           `json:"audio_path,omitempty" yaml:"audio_path,omitempty"`
	Explanation string           `json:"explanation" yaml:"explanation"`
	// AnswerInferred marks questions whose correct option was guessed
	// (first option) because the source named no answer.
	AnswerInferred bool      `json:"answer_inferred,omitempty" yaml:"answer_inferred,omitempty"`
	Position       int       `json:"position,omitempty" yaml:"position,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitzero" yaml:"-"`
}

// CorrectCount returns how many options are marked correct.
func (q *Question) CorrectCount() int {
	n := 0
	for _, o := range q.Options {
		if o.Correct {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants a question must hold before it is persisted.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("question text is required")
	}
	if q.Points <= 0 {
		return NewValidationError("points must be positive")
	}
	switch q.Type {
	case QuestionTypeTrueFalse:
		if len(q.Options) != 2 || q.Options[0].Text != "True" || q.Options[1].Text != "False" {
			return NewValidationError("true/false question must have exactly the options True and False")
		}
	case QuestionTypeSingle:
		if len(q.Options) > 0 && q.CorrectCount() != 1 {
			return NewValidationError(fmt.Sprintf("single choice question must have one correct option, got %d", q.CorrectCount()))
		}
	case QuestionTypeMultiple:
		if q.CorrectCount() < 2 {
			return NewValidationError("multiple choice question must have at least two correct options")
		}
	default:
		return NewValidationError(fmt.Sprintf("unknown question type: %q", q.Type))
	}
	return nil
}

// NewValidationError builds a validation error that is not tied to a request field.
func NewValidationError(message string) error {
	return NewError(CodeValidation, message, nil)
}
