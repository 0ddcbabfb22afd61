// Package session drives the per-conversation quiz lifecycle: language
// selection, generation, one-at-a-time delivery, answer correlation and
// scoring.
package session

import (
	"context"
	"sync"

	"lecturequizbot/models"
)

// Stage is the lifecycle stage of a quiz session.
type Stage int

const (
	StageAwaitContentLanguage Stage = iota
	StageAwaitQuizLanguage
	StageGenerating
	StageDelivering
	StageTerminated
)

func (s Stage) String() string {
	switch s {
	case StageAwaitContentLanguage:
		return "await_content_language"
	case StageAwaitQuizLanguage:
		return "await_quiz_language"
	case StageGenerating:
		return "generating"
	case StageDelivering:
		return "delivering"
	case StageTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// PollSender is the delivery transport for a single quiz prompt. The
// returned poll identifier is opaque to the session and later correlates
// the participant's answer. The transport owns message formatting,
// truncation and localization; it must report (and may log) its own
// send failures.
type PollSender interface {
	SendQuizPoll(ctx context.Context, chatID int64, q models.Question, lang string) (pollID string, err error)
}

// Session is the quiz state machine for one conversation. All state is
// private to that conversation; methods are safe for concurrent use.
type Session struct {
	ChatID   int64
	UserID   int64
	Document models.Document

	mu          sync.Mutex
	stage       Stage
	contentLang string
	quizLang    string
	bank        []models.Question
	index       int
	score       int
	polls       map[string]int // open poll id -> correct option index
}

// New creates a session awaiting its content-language selection.
func New(chatID, userID int64, doc models.Document) *Session {
	return &Session{
		ChatID:   chatID,
		UserID:   userID,
		Document: doc,
		stage:    StageAwaitContentLanguage,
		polls:    make(map[string]int),
	}
}

// Stage returns the current lifecycle stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Languages returns the chosen content and quiz languages.
func (s *Session) Languages() (content, quiz string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentLang, s.quizLang
}

// ChooseContentLanguage records the document's content language and
// advances to the quiz-language selection. It reports false when the
// session is not awaiting a content language.
func (s *Session) ChooseContentLanguage(lang string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageAwaitContentLanguage {
		return false
	}
	s.contentLang = lang
	s.stage = StageAwaitQuizLanguage
	return true
}

// ChooseQuizLanguage records the language the questions should be
// written in and advances to Generating.
func (s *Session) ChooseQuizLanguage(lang string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageAwaitQuizLanguage {
		return false
	}
	s.quizLang = lang
	s.stage = StageGenerating
	return true
}

// BeginDelivery installs the generated bank and advances to Delivering.
// An empty bank or a session no longer in Generating is refused.
func (s *Session) BeginDelivery(bank []models.Question) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageGenerating || len(bank) == 0 {
		return false
	}
	s.bank = bank
	s.stage = StageDelivering
	return true
}

// DeliverNext sends the item at the current index and records its poll
// identifier before advancing. An item whose send fails is skipped so a
// single bad item cannot stall the whole session. When the bank is
// exhausted the session transitions to Terminated exactly once and
// finished is true; the caller removes the session and reports the
// final score.
func (s *Session) DeliverNext(ctx context.Context, sender PollSender) (finished bool, score, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageDelivering {
		return false, s.score, len(s.bank)
	}

	for s.index < len(s.bank) {
		q := s.bank[s.index]
		pollID, err := sender.SendQuizPoll(ctx, s.ChatID, q, s.quizLang)
		if err != nil {
			s.index++
			continue
		}
		s.polls[pollID] = q.Correct
		s.index++
		return false, s.score, len(s.bank)
	}

	s.stage = StageTerminated
	return true, s.score, len(s.bank)
}

// RecordAnswer consumes the open poll mapping and scores the chosen
// option: +1 on a match, nothing otherwise (chosen < 0 means the
// participant retracted or never chose). ok is false when the poll
// identifier was not issued by this session or was already consumed.
func (s *Session) RecordAnswer(pollID string, chosen int) (correct, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want, ok := s.polls[pollID]
	if !ok {
		return false, false
	}
	delete(s.polls, pollID)
	if chosen == want {
		s.score++
		return true, true
	}
	return false, true
}

// Terminate cancels the session from any stage without further scoring
// and returns the final tally.
func (s *Session) Terminate() (score, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage = StageTerminated
	return s.score, len(s.bank)
}

// Progress returns the running score and bank size.
func (s *Session) Progress() (score, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score, len(s.bank)
}

func (s *Session) peekPoll(pollID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want, ok := s.polls[pollID]
	return want, ok
}
