package dto

import "quiz-import/internal/domain"

// ImportPreviewRequest carries raw quiz text to parse without saving
// @Description Raw quiz text (pasted or OCR output)
type ImportPreviewRequest struct {
	Text string `json:"text"`
}

// ImportBatchPreviewRequest carries several independent texts
type ImportBatchPreviewRequest struct {
	Texts []string `json:"texts"`
}

// ImportQuizRequest appends questions to a quiz, either from fresh text or
// from a draft returned by a previous preview. Exactly one must be set.
// @Description Import request, provide text or draft_id
type ImportQuizRequest struct {
	Text    string `json:"text,omitempty"`
	DraftID string `json:"draft_id,omitempty"`
}

// OptionResponse is one answer choice
type OptionResponse struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// QuestionResponse is a parsed or stored question
// @Description Structured question
type QuestionResponse struct {
	ID             string           `json:"id"`
	Type           string           `json:"type"`
	Text           string           `json:"text"`
	Points         int              `json:"points"`
	Options        []OptionResponse `json:"options"`
	AudioPath      string           `json:"audio_path,omitempty"`
	Explanation    string           `json:"explanation"`
	AnswerInferred bool             `json:"answer_inferred,omitempty"`
	Position       int              `json:"position,omitempty"`
}

// ImportPreviewResponse is the parse result of one text
type ImportPreviewResponse struct {
	DraftID   string             `json:"draft_id,omitempty"`
	Count     int                `json:"count"`
	Questions []QuestionResponse `json:"questions"`
	Warning   string             `json:"warning,omitempty"`
}

// ImportResultResponse reports the questions appended to a quiz
type ImportResultResponse struct {
	QuizID        string             `json:"quiz_id"`
	ImportedCount int                `json:"imported_count"`
	Questions     []QuestionResponse `json:"questions"`
}

// QuizQuestionsResponse lists the stored questions of a quiz
type QuizQuestionsResponse struct {
	QuizID    string             `json:"quiz_id"`
	Count     int                `json:"count"`
	Questions []QuestionResponse `json:"questions"`
}

// NewQuestionResponses converts domain questions, keeping order. It never
// returns nil so empty lists encode as [].
func NewQuestionResponses(questions []domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		opts := make([]OptionResponse, 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, OptionResponse{Text: o.Text, Correct: o.Correct})
		}
		out = append(out, QuestionResponse{
			ID:             q.ID,
			Type:           string(q.Type),
			Text:           q.Text,
			Points:         q.Points,
			Options:        opts,
			AudioPath:      q.AudioPath,
			Explanation:    q.Explanation,
			AnswerInferred: q.AnswerInferred,
			Position:       q.Position,
		})
	}
	return out
}
