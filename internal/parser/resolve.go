package parser

import (
	"regexp"
	"strconv"
	"strings"

	"quiz-import/internal/domain"
)

const (
	trueOptionText  = "True"
	falseOptionText = "False"
)

var (
	answerTokenSeparator = regexp.MustCompile(`[,;\s]+`)
	trueFalseWords       = regexp.MustCompile(`(?i)true|false|đúng|sai`)
)

// option is a parsed answer choice before correctness is resolved.
type option struct {
	text     string
	lettered bool
	checked  bool
}

type tfWord int

const (
	tfNone tfWord = iota
	tfTrue
	tfFalse
)

// parseTFWord recognises a bare true/false answer such as "T", "false" or "Đúng".
func parseTFWord(s string) tfWord {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "đúng":
		return tfTrue
	case "false", "f", "sai":
		return tfFalse
	default:
		return tfNone
	}
}

func trueFalseOptions() []option {
	return []option{{text: trueOptionText}, {text: falseOptionText}}
}

// indexSet keeps resolved option indices unique.
type indexSet map[int]struct{}

func (s indexSet) add(i int)      { s[i] = struct{}{} }
func (s indexSet) has(i int) bool { _, ok := s[i]; return ok }

// resolve turns one accumulated block into a question. It always returns a
// best-effort result.
func (p *Parser) resolve(b *block, sharedAudio string) domain.Question {
	tfSignal := hasTrueFalsePair(b.questionText)

	// An inline "True/False" option line only signals the question type.
	var opts []option
	for _, raw := range b.optionLines {
		if hasTrueFalsePair(raw) {
			tfSignal = true
		}
		if m := letteredOptionPattern.FindStringSubmatch(raw); m != nil {
			opts = append(opts, option{text: strings.TrimSpace(m[2]), lettered: true})
			continue
		}
		if m := bulletOptionPattern.FindStringSubmatch(raw); m != nil {
			opts = append(opts, option{text: strings.TrimSpace(m[2]), checked: strings.EqualFold(m[1], "x")})
		}
	}

	if tfSignal && len(opts) == 0 {
		opts = trueFalseOptions()
	}

	correct := indexSet{}
	if b.hasAnswerKey {
		switch answerWord := parseTFWord(b.answerKey); answerWord {
		case tfTrue, tfFalse:
			if len(opts) == 0 {
				opts = trueFalseOptions()
			}
			if answerWord == tfTrue {
				correct.add(0)
			} else {
				correct.add(1)
			}
		default:
			resolveAnswerKey(b.answerKey, opts, correct)
		}
	} else {
		for i, o := range opts {
			if o.checked {
				correct.add(i)
			}
		}
	}
	for i := range correct {
		if i < 0 || i >= len(opts) {
			delete(correct, i)
		}
	}

	q := domain.Question{
		ID:          p.newID(),
		Text:        questionText(b.questionText),
		Points:      domain.DefaultQuestionPoints,
		Explanation: "",
	}

	switch {
	case tfSignal && len(opts) == 2 && trueFalseWords.MatchString(opts[0].text+" "+opts[1].text):
		q.Type = domain.QuestionTypeTrueFalse
		q.Options = []domain.QuestionOption{
			{Text: trueOptionText, Correct: correct.has(0)},
			{Text: falseOptionText, Correct: correct.has(1)},
		}
	default:
		if len(correct) > 1 {
			q.Type = domain.QuestionTypeMultiple
		} else {
			q.Type = domain.QuestionTypeSingle
		}
		q.Options = make([]domain.QuestionOption, len(opts))
		for i, o := range opts {
			q.Options[i] = domain.QuestionOption{Text: o.text, Correct: correct.has(i)}
		}
		if len(q.Options) > 0 && len(correct) == 0 {
			q.Options[0].Correct = true
			q.AnswerInferred = true
		}
	}

	if b.audioSet {
		q.AudioPath = b.audioPath
	} else {
		q.AudioPath = sharedAudio
	}
	return q
}

// resolveAnswerKey maps an answer key such as "B", "A, C", "2" or "1;3" onto
// option indices. A letter counts lettered options only, falling back to the
// plain alphabet position when the block has fewer lettered options. Tokens
// outside the option range are ignored.
func resolveAnswerKey(key string, opts []option, correct indexSet) {
	for _, token := range answerTokenSeparator.Split(key, -1) {
		token = strings.Trim(token, ".()[]")
		if token == "" {
			continue
		}
		idx := -1
		if len(token) == 1 {
			if c := strings.ToUpper(token)[0]; c >= 'A' && c <= 'H' {
				idx = letterIndex(opts, int(c-'A'))
			}
		}
		if idx < 0 {
			if n, err := strconv.Atoi(token); err == nil {
				idx = n - 1
			}
		}
		if idx >= 0 && idx < len(opts) {
			correct.add(idx)
		}
	}
}

// letterIndex returns the position of the n-th lettered option among all options.
func letterIndex(opts []option, n int) int {
	seen := -1
	for i, o := range opts {
		if !o.lettered {
			continue
		}
		seen++
		if seen == n {
			return i
		}
	}
	return n
}

func questionText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.UntitledQuestionText
	}
	return text
}
