package parser

import "quiz-import/internal/domain"

// block collects the raw lines of one question until the next question starts.
type block struct {
	questionText string
	optionLines  []string
	answerKey    string
	hasAnswerKey bool

	// audioPath overrides the shared audio when audioSet is true, even if empty.
	audioPath string
	audioSet  bool
}

func newBlock(text string) *block {
	return &block{questionText: text}
}

// nonTrivial reports whether the block holds anything worth resolving.
func (b *block) nonTrivial() bool {
	return b.questionText != "" || len(b.optionLines) > 0 || b.hasAnswerKey
}

func (b *block) appendText(line string) {
	if b.questionText == "" {
		b.questionText = line
		return
	}
	b.questionText += " " + line
}

// setAnswerKey keeps the last answer line of the block.
func (b *block) setAnswerKey(key string) {
	b.answerKey = key
	b.hasAnswerKey = true
}

// setAudio gives the block its own audio path.
func (b *block) setAudio(path string) {
	b.audioPath = path
	b.audioSet = true
}

// keepAudio pins the audio the block had before a trailing audio line, so the
// new shared path only reaches later blocks.
func (b *block) keepAudio(previousShared string) {
	if !b.audioSet {
		b.setAudio(previousShared)
	}
}

// pendingAudio is an audio line read inside a block whose owner is not known
// yet: the line after it decides whether it heads the open block or the next.
type pendingAudio struct {
	path     string
	previous string
}

// audioTracker holds the audio path shared by every following block until
// another audio line replaces it. One tracker lives for one Parse call.
type audioTracker struct {
	path string
}

// update replaces the shared path and returns the previous one.
func (a *audioTracker) update(path string) string {
	previous := a.path
	a.path = path
	return previous
}

func (a *audioTracker) current() string {
	return a.path
}

// session is the state of a single Parse call: the open block, the shared
// audio and the questions emitted so far.
type session struct {
	parser    *Parser
	audio     audioTracker
	current   *block
	pending   *pendingAudio
	questions []domain.Question
}

func (s *session) ensureBlock() {
	if s.current == nil {
		s.current = newBlock("")
	}
}

// feed advances the accumulator by one classified line.
func (s *session) feed(line Line) {
	if line.Kind == LineAudio {
		previous := s.audio.update(line.Value)
		if s.current != nil {
			if s.pending == nil {
				s.pending = &pendingAudio{previous: previous}
			}
			s.pending.path = line.Value
		}
		return
	}
	if line.Kind != LineQuestionStart {
		s.settleAudio(false)
	}

	switch line.Kind {
	case LineAnswerKey:
		s.ensureBlock()
		s.current.setAnswerKey(line.Value)
	case LineQuestionStart:
		s.flush()
		s.current = newBlock(line.Value)
	case LineOption:
		s.ensureBlock()
		s.current.optionLines = append(s.current.optionLines, line.Value)
	default:
		if s.current == nil {
			s.current = newBlock(line.Value)
			return
		}
		s.current.appendText(line.Value)
	}
}

// settleAudio hands a pending audio line to the open block. A trailing line,
// one followed by a question start or the end of input, leaves the block with
// the audio it had before.
func (s *session) settleAudio(trailing bool) {
	if s.pending == nil {
		return
	}
	if trailing {
		s.current.keepAudio(s.pending.previous)
	} else {
		s.current.setAudio(s.pending.path)
	}
	s.pending = nil
}

// flush resolves the open block, dropping it when it is empty.
func (s *session) flush() {
	s.settleAudio(true)
	if s.current != nil && s.current.nonTrivial() {
		s.questions = append(s.questions, s.parser.resolve(s.current, s.audio.current()))
	}
	s.current = nil
}
