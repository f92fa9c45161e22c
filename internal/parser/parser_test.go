package parser

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"quiz-import/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("q%d", n)
	}
}

func newTestParser() *Parser {
	return New(WithIDGenerator(sequentialIDs()))
}

func optionTexts(q domain.Question) []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Text
	}
	return out
}

func correctFlags(q domain.Question) []bool {
	out := make([]bool, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Correct
	}
	return out
}

func TestParse_EndToEnd(t *testing.T) {
	input := `Q1: What is the capital of Japan?
A. Osaka
B. Tokyo
C. Kyoto
Answer: B`

	got := newTestParser().Parse(input)
	require.Len(t, got, 1)

	want := domain.Question{
		ID:     "q1",
		Type:   domain.QuestionTypeSingle,
		Text:   "What is the capital of Japan?",
		Points: 1,
		Options: []domain.QuestionOption{
			{Text: "Osaka", Correct: false},
			{Text: "Tokyo", Correct: true},
			{Text: "Kyoto", Correct: false},
		},
	}
	assert.Equal(t, want, got[0])
}

func TestParse_EmptyInput(t *testing.T) {
	p := newTestParser()
	for _, in := range []string{"", "   ", "\n\t\r\n  \n"} {
		got := p.Parse(in)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestParse_NumberedBlocksInOrder(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&sb, "Q%d: Question number %d\nA. first\nB. second\nAnswer: A\n\n", i, i)
	}

	got := newTestParser().Parse(sb.String())
	require.Len(t, got, 5)
	for i, q := range got {
		assert.Equal(t, fmt.Sprintf("Question number %d", i+1), q.Text)
		assert.Equal(t, []string{"first", "second"}, optionTexts(q))
	}
}

func TestParse_TrueFalse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantText  string
		wantFlags []bool
	}{
		{
			name:      "english inline with answer",
			input:     "Q1: The sky is blue. True/False\nAnswer: True",
			wantText:  "The sky is blue. True/False",
			wantFlags: []bool{true, false},
		},
		{
			name:      "vietnamese inline with answer",
			input:     "Câu 1: Trời màu xanh (Đúng/Sai)\nAnswer: Sai",
			wantText:  "Trời màu xanh (Đúng/Sai)",
			wantFlags: []bool{false, true},
		},
		{
			name:      "short tokens without answer",
			input:     "1. Water boils at 100C. T/F",
			wantText:  "Water boils at 100C. T/F",
			wantFlags: []bool{false, false},
		},
		{
			name:      "statement on its own line",
			input:     "The earth is flat. True/False\nAnswer: F",
			wantText:  domain.UntitledQuestionText,
			wantFlags: []bool{false, true},
		},
		{
			name:      "lettered pair with letter answer",
			input:     "Q1: Go has generics (True/False)\nA. True\nB. False\nAnswer: A",
			wantText:  "Go has generics (True/False)",
			wantFlags: []bool{true, false},
		},
		{
			name:      "pair written false first keeps index mapping",
			input:     "Q1: Go has generics (True/False)\nA. False\nB. True\nAnswer: B",
			wantText:  "Go has generics (True/False)",
			wantFlags: []bool{false, true},
		},
		{
			name:      "first letter of a false first pair marks true",
			input:     "Q1: Go has generics (True/False)\nA. False\nB. True\nAnswer: A",
			wantText:  "Go has generics (True/False)",
			wantFlags: []bool{true, false},
		},
		{
			name:      "vietnamese bullet pair with checkbox",
			input:     "Câu 3: Hà Nội là thủ đô (Đúng/Sai)\n- [x] Đúng\n- [ ] Sai",
			wantText:  "Hà Nội là thủ đô (Đúng/Sai)",
			wantFlags: []bool{true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestParser().Parse(tt.input)
			require.Len(t, got, 1)
			q := got[0]
			assert.Equal(t, domain.QuestionTypeTrueFalse, q.Type)
			assert.Equal(t, tt.wantText, q.Text)
			assert.Equal(t, []string{"True", "False"}, optionTexts(q))
			assert.Equal(t, tt.wantFlags, correctFlags(q))
			assert.False(t, q.AnswerInferred)
		})
	}
}

func TestParse_AnswerResolution(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantType     domain.QuestionType
		wantFlags    []bool
		wantInferred bool
	}{
		{
			name:      "multiple letters",
			input:     "Q1: Pick primes\nA. 2\nB. 4\nC. 3\nAnswer: A, C",
			wantType:  domain.QuestionTypeMultiple,
			wantFlags: []bool{true, false, true},
		},
		{
			name:      "semicolon and space separated",
			input:     "Q1: Pick\nA. a\nB. b\nC. c\nD. d\nAns: B;D",
			wantType:  domain.QuestionTypeMultiple,
			wantFlags: []bool{false, true, false, true},
		},
		{
			name:      "numeric answer",
			input:     "Q1: Pick\n- one\n- two\n- three\nAnswer: 2",
			wantType:  domain.QuestionTypeSingle,
			wantFlags: []bool{false, true, false},
		},
		{
			name:      "lowercase letter",
			input:     "Q1: Pick\nA. one\nB. two\nanswer: b",
			wantType:  domain.QuestionTypeSingle,
			wantFlags: []bool{false, true},
		},
		{
			name:      "last answer line wins",
			input:     "Q1: Pick\nA. one\nAnswer: A\nB. two\nC. three\nAnswer: C",
			wantType:  domain.QuestionTypeSingle,
			wantFlags: []bool{false, false, true},
		},
		{
			name:         "out of range letter falls back to first option",
			input:        "Q1: Pick\nA. one\nB. two\nC. three\nAnswer: E",
			wantType:     domain.QuestionTypeSingle,
			wantFlags:    []bool{true, false, false},
			wantInferred: true,
		},
		{
			name:         "no answer falls back to first option",
			input:        "Q1: Pick\nA. one\nB. two",
			wantType:     domain.QuestionTypeSingle,
			wantFlags:    []bool{true, false},
			wantInferred: true,
		},
		{
			name:      "checkbox markers",
			input:     "Q1: Pick primes\n- [x] 2\n- [ ] 4\n- [X] 3",
			wantType:  domain.QuestionTypeMultiple,
			wantFlags: []bool{true, false, true},
		},
		{
			name:      "answer key overrides checkboxes",
			input:     "Q1: Pick\n- [x] one\n- [ ] two\nAnswer: 2",
			wantType:  domain.QuestionTypeSingle,
			wantFlags: []bool{false, true},
		},
		{
			name:      "letters count lettered options only",
			input:     "Q1: Pick\n- intro note\nA. one\nB. two\nAnswer: B",
			wantType:  domain.QuestionTypeSingle,
			wantFlags: []bool{false, false, true},
		},
		{
			name:      "letter arithmetic without lettered options",
			input:     "Q1: Pick\n- one\n- two\n- three\nAnswer: C",
			wantType:  domain.QuestionTypeSingle,
			wantFlags: []bool{false, false, true},
		},
		{
			name:         "answer text that is no letter or number falls back",
			input:        "Q1: Capital?\nA. Osaka\nB. Tokyo\nAnswer: tokyo",
			wantType:     domain.QuestionTypeSingle,
			wantFlags:    []bool{true, false},
			wantInferred: true,
		},
		{
			name:         "empty answer line overrides checkboxes",
			input:        "Q1: Pick\n- [ ] x\n- [x] y\nAnswer:",
			wantType:     domain.QuestionTypeSingle,
			wantFlags:    []bool{true, false},
			wantInferred: true,
		},
		{
			name:      "bare true answer on ordinary options",
			input:     "Q1: Agree?\nA. Yes\nB. No\nAnswer: true",
			wantType:  domain.QuestionTypeSingle,
			wantFlags: []bool{true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestParser().Parse(tt.input)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantType, got[0].Type)
			assert.Equal(t, tt.wantFlags, correctFlags(got[0]))
			assert.Equal(t, tt.wantInferred, got[0].AnswerInferred)
		})
	}
}

func TestParse_SingleChoiceNeverWithoutCorrectOption(t *testing.T) {
	inputs := []string{
		"Q1: a\nA. x\nB. y",
		"Q1: a\n- x\n- y\n- z",
		"Q1: a\nA. x\nAnswer: 9",
		"Q1: a\n- [ ] x\n- [ ] y",
	}
	for _, in := range inputs {
		got := newTestParser().Parse(in)
		require.Len(t, got, 1)
		assert.Equal(t, domain.QuestionTypeSingle, got[0].Type)
		assert.Equal(t, 1, got[0].CorrectCount(), "input %q", in)
		assert.True(t, got[0].Options[0].Correct)
	}
}

func TestParse_AudioInheritance(t *testing.T) {
	input := `Audio: track1.mp3
Q1: First
A. a
B. b
Answer: A
Q2: Second
A. c
B. d
Answer: B
Audio: track2.mp3
Q3: Third
A. e
B. f`

	got := newTestParser().Parse(input)
	require.Len(t, got, 3)
	assert.Equal(t, "track1.mp3", got[0].AudioPath)
	assert.Equal(t, "track1.mp3", got[1].AudioPath)
	assert.Equal(t, "track2.mp3", got[2].AudioPath)
}

func TestParse_AudioAfterBlockWithoutOptions(t *testing.T) {
	input := `Audio: track1.mp3
Q1: Listen first
A. a
Answer: A
Q2: The speaker is a teacher. True/False
Audio: track2.mp3
Q3: Who is speaking?
A. e
B. f`

	got := newTestParser().Parse(input)
	require.Len(t, got, 3)
	assert.Equal(t, domain.QuestionTypeTrueFalse, got[1].Type)
	assert.Equal(t, "track1.mp3", got[0].AudioPath)
	assert.Equal(t, "track1.mp3", got[1].AudioPath)
	assert.Equal(t, "track2.mp3", got[2].AudioPath)
}

func TestParse_AudioPlacement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "after inline true/false block without earlier audio",
			input: "Q1: Sky is green. True/False\nAudio: track2.mp3\nQ2: next\nA. x",
			want:  []string{"", "track2.mp3"},
		},
		{
			name:  "after text only block",
			input: "Q1: Describe the picture\nAudio: track2.mp3\nQ2: next\nA. x",
			want:  []string{"", "track2.mp3"},
		},
		{
			name:  "at end of input",
			input: "Audio: track1.mp3\nQ1: last\nA. x\nAudio: track2.mp3",
			want:  []string{"track1.mp3"},
		},
		{
			name:  "followed by question text",
			input: "Q1:\nAudio: q1.mp3\nWhat did you hear?\nA. x\nQ2: next",
			want:  []string{"q1.mp3", "q1.mp3"},
		},
		{
			name:  "followed by an answer line",
			input: "Q1: Listen\nA. x\nAudio: q1.mp3\nAnswer: A\nQ2: next",
			want:  []string{"q1.mp3", "q1.mp3"},
		},
		{
			name:  "consecutive audio lines heading a block",
			input: "Q1: Listen\nAudio: a.mp3\nAudio: b.mp3\nA. x",
			want:  []string{"b.mp3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestParser().Parse(tt.input)
			require.Len(t, got, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, got[i].AudioPath, "question %d", i+1)
			}
		})
	}
}

func TestParse_AudioInsideBlock(t *testing.T) {
	input := `Audio: shared.mp3
Q1: Listen and answer
Audio: lesson / part 2 → q1.mp3
A. a
B. b
Q2: Next
A. c`

	got := newTestParser().Parse(input)
	require.Len(t, got, 2)
	assert.Equal(t, "lesson/part 2/q1.mp3", got[0].AudioPath)
	// The in-block audio line also becomes the shared path.
	assert.Equal(t, "lesson/part 2/q1.mp3", got[1].AudioPath)
}

func TestParse_TrailingAudioWithoutEarlierShared(t *testing.T) {
	input := "Q1: No audio here\nA. a\nAudio: next.mp3\nQ2: With audio\nA. b"

	got := newTestParser().Parse(input)
	require.Len(t, got, 2)
	assert.Empty(t, got[0].AudioPath)
	assert.Equal(t, "next.mp3", got[1].AudioPath)
}

func TestParse_AudioDoesNotLeakAcrossCalls(t *testing.T) {
	p := newTestParser()
	first := p.Parse("Audio: track1.mp3\nQ1: x\nA. a")
	require.Len(t, first, 1)
	assert.Equal(t, "track1.mp3", first[0].AudioPath)

	second := p.Parse("Q1: y\nA. b")
	require.Len(t, second, 1)
	assert.Empty(t, second[0].AudioPath)
}

func TestParse_AudioOnlyProducesNothing(t *testing.T) {
	assert.Empty(t, newTestParser().Parse("Audio: a.mp3\nAudio: b.mp3"))
}

func TestParse_BlockBoundaries(t *testing.T) {
	t.Run("empty question start is dropped", func(t *testing.T) {
		got := newTestParser().Parse("Q1:\nQ2: Real question\nA. x")
		require.Len(t, got, 1)
		assert.Equal(t, "Real question", got[0].Text)
	})

	t.Run("question text spans lines", func(t *testing.T) {
		got := newTestParser().Parse("Q1: What is\nthe capital?\nA. x")
		require.Len(t, got, 1)
		assert.Equal(t, "What is the capital?", got[0].Text)
	})

	t.Run("empty question start takes the next plain line", func(t *testing.T) {
		got := newTestParser().Parse("Q1:\nWhich one?\nA. x")
		require.Len(t, got, 1)
		assert.Equal(t, "Which one?", got[0].Text)
	})

	t.Run("plain text only", func(t *testing.T) {
		got := newTestParser().Parse("Just some text\nmore text")
		require.Len(t, got, 1)
		assert.Equal(t, "Just some text more text", got[0].Text)
		assert.Equal(t, domain.QuestionTypeSingle, got[0].Type)
		assert.Empty(t, got[0].Options)
		assert.False(t, got[0].AnswerInferred)
	})

	t.Run("answer before any question", func(t *testing.T) {
		got := newTestParser().Parse("Answer: B\nQ1: Real\nA. x\nB. y")
		require.Len(t, got, 2)
		assert.Equal(t, domain.UntitledQuestionText, got[0].Text)
		assert.Empty(t, got[0].Options)
		assert.Equal(t, "Real", got[1].Text)
	})

	t.Run("options before any question", func(t *testing.T) {
		got := newTestParser().Parse("A. x\nB. y\nAnswer: B")
		require.Len(t, got, 1)
		assert.Equal(t, domain.UntitledQuestionText, got[0].Text)
		assert.Equal(t, []bool{false, true}, correctFlags(got[0]))
	})

	t.Run("lone empty answer line", func(t *testing.T) {
		got := newTestParser().Parse("Answer:")
		require.Len(t, got, 1)
		assert.Equal(t, domain.UntitledQuestionText, got[0].Text)
		assert.Equal(t, domain.QuestionTypeSingle, got[0].Type)
		assert.Empty(t, got[0].Options)
	})
}

func TestParse_MixedFormats(t *testing.T) {
	input := `1. Which city is in Japan?
A. Paris
B. “Tokyo”
Answer: B

Question 2: Select the even numbers
- [x] 2
- [ ] 3
- [x] 4

3) Cats are mammals — True/False
Answer: T`

	got := newTestParser().Parse(input)
	require.Len(t, got, 3)

	assert.Equal(t, domain.QuestionTypeSingle, got[0].Type)
	assert.Equal(t, []string{"Paris", `"Tokyo"`}, optionTexts(got[0]))
	assert.Equal(t, []bool{false, true}, correctFlags(got[0]))

	assert.Equal(t, domain.QuestionTypeMultiple, got[1].Type)
	assert.Equal(t, []string{"2", "3", "4"}, optionTexts(got[1]))

	assert.Equal(t, domain.QuestionTypeTrueFalse, got[2].Type)
	assert.Equal(t, "Cats are mammals - True/False", got[2].Text)
	assert.Equal(t, []bool{true, false}, correctFlags(got[2]))

	for _, q := range got {
		assert.Equal(t, 1, q.Points)
		assert.Empty(t, q.Explanation)
		assert.NoError(t, q.Validate())
	}
}

func TestParse_DefaultParserGeneratesULIDs(t *testing.T) {
	got := Parse("Q1: a\nA. x\nQ2: b\nA. y")
	require.Len(t, got, 2)
	assert.Len(t, got[0].ID, 26)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestParse_ConcurrentCallsAreIsolated(t *testing.T) {
	p := New()
	const workers = 16

	var wg sync.WaitGroup
	errs := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var input string
			if i%2 == 0 {
				input = fmt.Sprintf("Audio: track%d.mp3\nQ1: x\nA. a\nQ2: y\nA. b", i)
			} else {
				input = "Q1: x\nA. a\nQ2: y\nA. b"
			}
			for _, q := range p.Parse(input) {
				want := ""
				if i%2 == 0 {
					want = fmt.Sprintf("track%d.mp3", i)
				}
				if q.AudioPath != want {
					errs <- fmt.Sprintf("worker %d: audio %q, want %q", i, q.AudioPath, want)
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
