package quiz

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFillQuestion_BlanksTrailingHalf(t *testing.T) {
	q := buildFillQuestion(1, "apple", "a fruit")

	assert.Equal(t, KindFill, q.Kind)
	assert.Equal(t, "app__", q.Prompt)
	assert.True(t, q.Check("le"))
	assert.True(t, q.Check(" LE "))
	assert.False(t, q.Check("pp"))
}

func TestBuildFillQuestion_SingleRuneWord(t *testing.T) {
	q := buildFillQuestion(1, "a", "first letter")

	// At least one rune is always blanked, even for one-letter words.
	assert.Equal(t, "_", q.Prompt)
	assert.True(t, q.Check("a"))
}

func TestBuildFillQuestion_TwoRuneWord(t *testing.T) {
	q := buildFillQuestion(1, "go", "to move")

	assert.Equal(t, "g_", q.Prompt)
	assert.True(t, q.Check("o"))
}

func TestBuildChoiceQuestion(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	pool := newDistractorPool([]string{"wrong one", "wrong two", "wrong three", "wrong four"})

	q := buildChoiceQuestion(0, "apple", "a fruit", pool, rnd)

	assert.Equal(t, KindChoice, q.Kind)
	require.Len(t, q.Options, 4)
	assert.Contains(t, q.Options, "a fruit")
	assert.True(t, q.Check("a fruit"))
	assert.True(t, q.Check("A Fruit"))
	assert.False(t, q.Check("wrong one"))
}

func TestDistractorPool_DedupesAndDropsBlanks(t *testing.T) {
	pool := newDistractorPool([]string{"same", "Same", "  ", "", "other"})
	assert.Len(t, pool.pool, 2)
}

func TestDistractorPool_TakeExcludesCorrectAnswer(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	pool := newDistractorPool([]string{"a fruit", "wrong one", "wrong two", "wrong three"})

	taken := pool.take(3, "a fruit", rnd)
	assert.Len(t, taken, 3)
	assert.NotContains(t, taken, "a fruit")
}

func TestDistractorPool_TakenOptionsAreNotReused(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	translations := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		translations = append(translations, "wrong "+strings.Repeat("x", i+1))
	}
	pool := newDistractorPool(translations)

	seen := make(map[string]bool)
	for i := 0; i < 4; i++ {
		for _, taken := range pool.take(3, "correct", rnd) {
			assert.False(t, seen[taken], "distractor %q handed out twice", taken)
			seen[taken] = true
		}
	}
	assert.Len(t, seen, 12)
	assert.Empty(t, pool.pool)
}

func TestDistractorPool_TakeWhenPoolRunsDry(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	pool := newDistractorPool([]string{"only one"})

	taken := pool.take(3, "correct", rnd)
	assert.Len(t, taken, 1)
	assert.Empty(t, pool.take(3, "correct", rnd))
}
