// Package parser turns free-form quiz text (pasted, OCR output or .txt files)
// into structured questions.
//
// Input is processed in a single forward pass:
//
//	raw text -> Normalize -> Classify each line -> accumulate blocks -> resolve questions
//
// Lettered options ("A. Tokyo"), bullet options with optional checkboxes
// ("- [x] Tokyo"), inline true/false markers ("True/False", "Đúng/Sai"),
// answer-key lines ("Answer: B") and audio references ("Audio: track1.mp3")
// are recognised. Malformed input never fails: unknown lines fold into the
// question text and missing answers fall back to the first option.
package parser

import (
	"strings"

	"quiz-import/internal/domain"
	"quiz-import/internal/util"
)

// Parser converts quiz text into questions.
type Parser struct {
	newID func() string
}

// Option configures a Parser.
type Option func(*Parser)

// WithIDGenerator replaces the ULID generator used for question IDs.
func WithIDGenerator(fn func() string) Option {
	return func(p *Parser) {
		if fn != nil {
			p.newID = fn
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{newID: util.NewULID}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse converts text into questions in source order. It returns an empty
// slice when nothing parseable is found. Each call builds its own session, so
// the open block and the shared audio never outlive the call and one Parser
// may serve concurrent callers.
func (p *Parser) Parse(text string) []domain.Question {
	s := &session{parser: p, questions: []domain.Question{}}

	normalized := Normalize(text)
	if normalized == "" {
		return s.questions
	}

	for _, raw := range strings.Split(normalized, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		s.feed(Classify(line))
	}
	s.flush()
	return s.questions
}

var defaultParser = New()

// Parse converts text with a default Parser.
func Parse(text string) []domain.Question {
	return defaultParser.Parse(text)
}
