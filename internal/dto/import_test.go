package dto

import (
	"encoding/json"
	"testing"

	"quiz-import/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionResponses(t *testing.T) {
	got := NewQuestionResponses([]domain.Question{
		{
			ID: "q1", Type: domain.QuestionTypeTrueFalse, Text: "Sky is blue", Points: 1, AudioPath: "a.mp3",
			Options: []domain.QuestionOption{{Text: "True", Correct: true}, {Text: "False"}},
		},
		{ID: "q2", Type: domain.QuestionTypeSingle, Text: "(Untitled)", Points: 1},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "truefalse", got[0].Type)
	assert.Equal(t, []OptionResponse{{Text: "True", Correct: true}, {Text: "False"}}, got[0].Options)
	assert.NotNil(t, got[1].Options)

	assert.NotNil(t, NewQuestionResponses(nil))
}

func TestQuestionResponse_JSONOmitsEmptyAudio(t *testing.T) {
	b, err := json.Marshal(NewQuestionResponses([]domain.Question{{ID: "q1", Type: domain.QuestionTypeSingle, Text: "x", Points: 1}})[0])
	require.NoError(t, err)
	assert.NotContains(t, string(b), "audio_path")
	assert.NotContains(t, string(b), "answer_inferred")
	assert.Contains(t, string(b), `"explanation":""`)
	assert.Contains(t, string(b), `"options":[]`)
}
