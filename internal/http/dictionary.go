package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zmx4/aelp/internal/entities"
)

// DictionaryStore defines read operations against the reference
// dictionary store.
type DictionaryStore interface {
	QueryWordInfo(word string) (*entities.DictionaryEntry, error)
	QueryWords(translation string) ([]string, error)
}

type DictionaryController struct {
	store DictionaryStore
}

func NewDictionaryController(store DictionaryStore) *DictionaryController {
	return &DictionaryController{store: store}
}

// Search looks up a single word in the reference dictionary.
// GET /api/dictionary/search?word=...
func (dc *DictionaryController) Search(c *gin.Context) {
	word := c.Query("word")
	if word == "" {
		respondBadRequest(c, "word is required")
		return
	}

	entry, err := dc.store.QueryWordInfo(word)
	if err != nil {
		respondInternalError(c, err, "dictionary search")
		return
	}
	if entry == nil {
		respondNotFound(c, "word")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"word":        entry.Word,
		"translation": entry.Translation,
		"tags":        entry.Tags(),
		"entry":       entry,
	})
}

// ReverseSearch finds words whose translation contains the given text.
// GET /api/dictionary/words?translation=...
func (dc *DictionaryController) ReverseSearch(c *gin.Context) {
	translation := c.Query("translation")
	if translation == "" {
		respondBadRequest(c, "translation is required")
		return
	}

	matches, err := dc.store.QueryWords(translation)
	if err != nil {
		respondInternalError(c, err, "dictionary reverse search")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"translation": translation,
		"words":       matches,
		"count":       len(matches),
	})
}
