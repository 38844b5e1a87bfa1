// Package quiz implements the test-session state machine: question
// sequencing, distractor sampling, answer scoring and result
// persistence.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/zmx4/aelp/internal/entities"
)

// State is the session lifecycle position.
type State string

const (
	StateConfiguring State = "configuring"
	StateInProgress  State = "in_progress"
	StateFinished    State = "finished"
)

// ErrNoWords signals that the selected range yielded no words. The
// session stays in the configuring state; this is a status, not a
// storage failure.
var ErrNoWords = errors.New("no words available in the selected range")

// ErrInvalidQuestionCount signals a non-positive question count.
var ErrInvalidQuestionCount = errors.New("question count must be greater than zero")

// ErrNotInProgress signals an answer submitted outside a running test.
var ErrNotInProgress = errors.New("no test in progress")

// WordSource samples test words from a graded word list.
type WordSource interface {
	RandomWords(rng entities.TestRange, count int) ([]entities.ListWord, error)
}

// ResultStore persists a finished session's record and mistakes as one
// unit of work.
type ResultStore interface {
	SaveSessionResult(rec *entities.TestRecord, sessionMistakes []entities.Mistake) error
}

// ProblemData is the per-question outcome of a session.
type ProblemData struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	CostTimeMs  int64  `json:"cost_time_ms"`
	IsRight     bool   `json:"is_right"`
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the session clock. Tests use it to make question
// timing deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRand overrides the randomness source used for sampling and option
// shuffling.
func WithRand(rnd *rand.Rand) Option {
	return func(s *Session) { s.rnd = rnd }
}

// WithOnFinished registers a callback receiving the full per-question
// results list once the session finishes. Delivery is synchronous, after
// persistence succeeded.
func WithOnFinished(fn func([]ProblemData)) Option {
	return func(s *Session) { s.onFinished = fn }
}

// Session runs one quiz from configuration to a persisted result. It is
// not safe for concurrent use; the application holds a single active
// session at a time.
type Session struct {
	source     WordSource
	store      ResultStore
	now        func() time.Time
	rnd        *rand.Rand
	onFinished func([]ProblemData)

	state         State
	words         []entities.ListWord
	distractors   *distractorPool
	current       Question
	index         int
	problems      []ProblemData
	mistakes      []entities.Mistake
	questionStart time.Time
	startedAt     time.Time
}

// NewSession creates a session in the configuring state.
func NewSession(source WordSource, store ResultStore, opts ...Option) *Session {
	s := &Session{
		source: source,
		store:  store,
		now:    time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		state:  StateConfiguring,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Start samples questionCount words plus a shared distractor pool from
// the selected range and moves the session in progress. An empty sample
// falls back to configuring with ErrNoWords.
func (s *Session) Start(rng entities.TestRange, questionCount int) error {
	if questionCount <= 0 {
		return ErrInvalidQuestionCount
	}

	words, err := s.source.RandomWords(rng, questionCount)
	if err != nil {
		return fmt.Errorf("sample test words: %w", err)
	}
	if len(words) == 0 {
		s.state = StateConfiguring
		return ErrNoWords
	}

	// The pool is sampled larger than needed so choice questions do not
	// run dry even after dedup and consumption.
	poolWords, err := s.source.RandomWords(rng, questionCount*4)
	if err != nil {
		return fmt.Errorf("sample distractor pool: %w", err)
	}
	translations := make([]string, 0, len(poolWords))
	for _, w := range poolWords {
		translations = append(translations, w.Translation)
	}

	s.words = words
	s.distractors = newDistractorPool(translations)
	s.problems = s.problems[:0]
	s.mistakes = s.mistakes[:0]
	s.index = 0
	s.state = StateInProgress
	s.startedAt = s.now()
	s.setupQuestion()
	return nil
}

// Current returns the question awaiting an answer.
func (s *Session) Current() (Question, bool) {
	if s.state != StateInProgress {
		return Question{}, false
	}
	return s.current, true
}

// Progress returns the 1-based question number and the total count.
func (s *Session) Progress() (int, int) {
	return s.index + 1, len(s.words)
}

// Submit scores the answer for the current question, records it, and
// advances. Finishing the last question persists the session result;
// storage failures propagate to the caller untouched.
func (s *Session) Submit(answer string) (bool, error) {
	if s.state != StateInProgress {
		return false, ErrNotInProgress
	}

	elapsed := s.now().Sub(s.questionStart)
	isRight := s.current.Check(answer)

	s.problems = append(s.problems, ProblemData{
		Word:        s.current.Word,
		Translation: s.current.Translation,
		CostTimeMs:  elapsed.Milliseconds(),
		IsRight:     isRight,
	})
	if !isRight {
		s.mistakes = append(s.mistakes, entities.Mistake{
			WordText: s.current.Word,
			Time:     s.now(),
			Count:    1,
		})
	}

	s.index++
	if s.index >= len(s.words) {
		if err := s.finish(); err != nil {
			return isRight, err
		}
		return isRight, nil
	}

	s.setupQuestion()
	return isRight, nil
}

// Results returns the per-question outcomes recorded so far.
func (s *Session) Results() []ProblemData {
	return s.problems
}

// Question types alternate deterministically by position parity: even
// index multiple choice, odd index fill-in-the-blank.
func (s *Session) setupQuestion() {
	w := s.words[s.index]
	if s.index%2 == 0 {
		s.current = buildChoiceQuestion(s.index, w.Word, w.Translation, s.distractors, s.rnd)
	} else {
		s.current = buildFillQuestion(s.index, w.Word, w.Translation)
	}
	s.questionStart = s.now()
}

func (s *Session) finish() error {
	rightCount := 0
	for _, p := range s.problems {
		if p.IsRight {
			rightCount++
		}
	}
	accuracy := 0.0
	if len(s.problems) > 0 {
		accuracy = float64(rightCount) / float64(len(s.problems))
	}

	rec := &entities.TestRecord{
		TestTime:       s.now(),
		TotalQuestions: len(s.problems),
		Accuracy:       accuracy,
	}
	if err := s.store.SaveSessionResult(rec, s.mistakes); err != nil {
		return err
	}

	s.state = StateFinished
	if s.onFinished != nil {
		s.onFinished(s.problems)
	}
	return nil
}
