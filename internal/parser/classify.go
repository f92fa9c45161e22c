package parser

import (
	"regexp"
	"strings"
)

// LineKind tags one line of normalized input.
type LineKind int

const (
	LinePlain LineKind = iota
	LineAnswerKey
	LineAudio
	LineQuestionStart
	LineOption
)

func (k LineKind) String() string {
	switch k {
	case LineAnswerKey:
		return "answer-key"
	case LineAudio:
		return "audio"
	case LineQuestionStart:
		return "question-start"
	case LineOption:
		return "option"
	default:
		return "plain"
	}
}

// Line is a trimmed, non-empty input line with its classification.
// Value holds the captured part: the answer key, the audio path, the question
// text without numbering, or the whole line for options and plain text.
type Line struct {
	Kind  LineKind
	Raw   string
	Value string
}

const (
	tfTrueWords  = `(?:true|t|đúng)`
	tfFalseWords = `(?:false|f|sai)`
	tfSeparator  = `(?:\s*[/\-]\s*|\s+)`
	wordStart    = `(?:^|[^\p{L}\p{N}_])`
	wordEnd      = `(?:[^\p{L}\p{N}_]|$)`
)

var (
	answerKeyPattern     = regexp.MustCompile(`(?i)^ans(?:wer)?\s*:\s*(.*)$`)
	audioPattern         = regexp.MustCompile(`(?i)^audio\s*[:\-]\s*(.+)$`)
	slashSpacing         = regexp.MustCompile(`\s*/\s*`)
	questionStartPattern = regexp.MustCompile(`(?i)^(?:q(?:uestion)?|câu)?\s*\d+\s*[:.)]\s*(.*)$`)

	letteredOptionPattern = regexp.MustCompile(`^([A-H])[.)]\s*(.*)$`)
	bulletOptionPattern   = regexp.MustCompile(`^[-*•・]\s*(?:\[([ xX]?)\]\s*)?(.*)$`)

	inlineTrueFalsePattern = regexp.MustCompile(`(?i)` + wordStart +
		`(?:` + tfTrueWords + tfSeparator + tfFalseWords + `|` + tfFalseWords + tfSeparator + tfTrueWords + `)` +
		wordEnd)
)

// Rule pairs a line kind with its matcher. Rules are tried in order and the
// first match decides the kind.
type Rule struct {
	Kind  LineKind
	Match func(line string) (value string, ok bool)
}

var classifyRules = []Rule{
	{Kind: LineAnswerKey, Match: matchAnswerKey},
	{Kind: LineAudio, Match: matchAudio},
	{Kind: LineQuestionStart, Match: matchQuestionStart},
	{Kind: LineOption, Match: matchOption},
}

// Rules returns the classification rules in precedence order.
func Rules() []Rule {
	out := make([]Rule, len(classifyRules))
	copy(out, classifyRules)
	return out
}

// Classify tags a trimmed, non-empty line. Lines no rule accepts are plain
// question text.
func Classify(line string) Line {
	for _, rule := range classifyRules {
		if value, ok := rule.Match(line); ok {
			return Line{Kind: rule.Kind, Raw: line, Value: value}
		}
	}
	return Line{Kind: LinePlain, Raw: line, Value: line}
}

func matchAnswerKey(line string) (string, bool) {
	m := answerKeyPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func matchAudio(line string) (string, bool) {
	m := audioPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return slashSpacing.ReplaceAllString(strings.TrimSpace(m[1]), "/"), true
}

func matchQuestionStart(line string) (string, bool) {
	m := questionStartPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func matchOption(line string) (string, bool) {
	if letteredOptionPattern.MatchString(line) ||
		bulletOptionPattern.MatchString(line) ||
		inlineTrueFalsePattern.MatchString(line) {
		return line, true
	}
	return "", false
}

// hasTrueFalsePair reports whether s carries an inline true/false token pair
// such as "True/False", "T - F" or "Đúng/Sai".
func hasTrueFalsePair(s string) bool {
	return inlineTrueFalsePattern.MatchString(s)
}
