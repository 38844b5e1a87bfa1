// Package review runs a type-the-word pass over recorded mistakes and
// adjusts their counters: a right answer decrements the count, a wrong
// one increments it and advances the timestamp. Counts at or below zero
// mean the word is mastered.
package review

import (
	"errors"
	"strings"
	"time"

	"github.com/zmx4/aelp/internal/entities"
)

// ErrNotInProgress signals an answer submitted outside a running review.
var ErrNotInProgress = errors.New("no review in progress")

// ErrNothingToReview signals an empty or unusable mistake list.
var ErrNothingToReview = errors.New("no mistakes to review")

// MistakeUpdater persists adjusted mistake rows by primary key.
type MistakeUpdater interface {
	UpdateMistakeData(entries []entities.Mistake) error
}

// Summary is the outcome of a finished review.
type Summary struct {
	Total      int `json:"total"`
	RightCount int `json:"right_count"`
	Mastered   int `json:"mastered"`
}

// Session reviews a fixed list of mistakes sequentially.
type Session struct {
	store    MistakeUpdater
	now      func() time.Time
	mistakes []entities.Mistake
	index    int
	right    int
	active   bool
}

// NewSession creates a review over the given mistakes. Entries without a
// word text are skipped; ErrNothingToReview is returned when none are
// usable.
func NewSession(store MistakeUpdater, items []entities.Mistake, now func() time.Time) (*Session, error) {
	if now == nil {
		now = time.Now
	}

	usable := make([]entities.Mistake, 0, len(items))
	for _, m := range items {
		if strings.TrimSpace(m.WordText) == "" {
			continue
		}
		usable = append(usable, m)
	}
	if len(usable) == 0 {
		return nil, ErrNothingToReview
	}

	return &Session{
		store:    store,
		now:      now,
		mistakes: usable,
		active:   true,
	}, nil
}

// Current returns the translation prompt for the word under review.
func (s *Session) Current() (string, bool) {
	if !s.active {
		return "", false
	}
	return s.mistakes[s.index].Translation, true
}

// Progress returns the 1-based position and the total count.
func (s *Session) Progress() (int, int) {
	return s.index + 1, len(s.mistakes)
}

// Submit scores the typed word against the one under review and adjusts
// its counter. Completing the list persists every adjusted row and
// returns the summary; until then the summary is nil.
func (s *Session) Submit(input string) (bool, *Summary, error) {
	if !s.active {
		return false, nil, ErrNotInProgress
	}

	m := &s.mistakes[s.index]
	isRight := strings.EqualFold(strings.TrimSpace(input), m.WordText)
	if isRight {
		s.right++
		m.Count--
	} else {
		m.Count++
		m.Time = s.now()
	}

	s.index++
	if s.index < len(s.mistakes) {
		return isRight, nil, nil
	}

	s.active = false
	if err := s.store.UpdateMistakeData(s.mistakes); err != nil {
		return isRight, nil, err
	}

	summary := &Summary{
		Total:      len(s.mistakes),
		RightCount: s.right,
	}
	for _, m := range s.mistakes {
		if m.Mastered() {
			summary.Mastered++
		}
	}
	return isRight, summary, nil
}
