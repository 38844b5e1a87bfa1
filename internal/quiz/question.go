package quiz

import (
	"math/rand"
	"strings"
)

// Kind discriminates the two question types a session alternates
// between.
type Kind string

const (
	// KindChoice asks for the correct translation among four options.
	KindChoice Kind = "choice"
	// KindFill asks to complete the blanked trailing half of the word.
	KindFill Kind = "fill"
)

// Question is one quiz question presented to the caller.
type Question struct {
	Index       int      `json:"index"`
	Kind        Kind     `json:"kind"`
	Word        string   `json:"word"`
	Translation string   `json:"-"`
	Options     []string `json:"options,omitempty"`
	Prompt      string   `json:"prompt,omitempty"`

	// missing holds the blanked suffix a fill question expects.
	missing string
}

// Check scores an answer: option text for choice questions, the missing
// letters for fill questions. Comparison is trimmed and case-insensitive.
func (q Question) Check(answer string) bool {
	answer = strings.TrimSpace(answer)
	switch q.Kind {
	case KindFill:
		return strings.EqualFold(answer, q.missing)
	default:
		return strings.EqualFold(answer, q.Translation)
	}
}

// distractorPool hands out wrong multiple-choice options. Entries are
// deduplicated by translation text and consumed as questions use them,
// so the same wrong answer is not recycled within one session.
type distractorPool struct {
	pool []string
}

func newDistractorPool(translations []string) *distractorPool {
	seen := make(map[string]bool, len(translations))
	pool := make([]string, 0, len(translations))
	for _, t := range translations {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		pool = append(pool, t)
	}
	return &distractorPool{pool: pool}
}

// take removes up to n entries not equal to correct and returns them.
func (p *distractorPool) take(n int, correct string, rnd *rand.Rand) []string {
	candidates := make([]int, 0, len(p.pool))
	for i, t := range p.pool {
		if !strings.EqualFold(t, correct) {
			candidates = append(candidates, i)
		}
	}
	rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	taken := make([]string, 0, len(candidates))
	drop := make(map[int]bool, len(candidates))
	for _, i := range candidates {
		taken = append(taken, p.pool[i])
		drop[i] = true
	}

	remaining := p.pool[:0]
	for i, t := range p.pool {
		if !drop[i] {
			remaining = append(remaining, t)
		}
	}
	p.pool = remaining

	return taken
}

func buildChoiceQuestion(index int, word, translation string, pool *distractorPool, rnd *rand.Rand) Question {
	options := append([]string{translation}, pool.take(3, translation, rnd)...)
	rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return Question{
		Index:       index,
		Kind:        KindChoice,
		Word:        word,
		Translation: translation,
		Options:     options,
	}
}

func buildFillQuestion(index int, word, translation string) Question {
	runes := []rune(word)
	missingLen := len(runes) / 2
	if missingLen < 1 {
		missingLen = 1
	}
	if missingLen > len(runes) {
		missingLen = len(runes)
	}
	prefix := string(runes[:len(runes)-missingLen])
	missing := string(runes[len(runes)-missingLen:])
	return Question{
		Index:       index,
		Kind:        KindFill,
		Word:        word,
		Translation: translation,
		Prompt:      prefix + strings.Repeat("_", missingLen),
		missing:     missing,
	}
}
