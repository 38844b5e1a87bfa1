package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zmx4/aelp/internal/entities"
)

// FavoritesStore defines database operations for favorites management.
type FavoritesStore interface {
	AddToFavorites(entry entities.DictionaryEntry) error
	RemoveFromFavorites(wordText string) error
	SaveFavorites(entries []entities.DictionaryEntry) error
	LoadFavorites() ([]entities.Favorite, error)
}

type FavoritesController struct {
	store FavoritesStore
}

func NewFavoritesController(store FavoritesStore) *FavoritesController {
	return &FavoritesController{store: store}
}

// List returns every active favorite with its word and translation.
// GET /api/favorites
func (fc *FavoritesController) List(c *gin.Context) {
	favorites, err := fc.store.LoadFavorites()
	if err != nil {
		respondInternalError(c, err, "list favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// Add marks a dictionary entry as favorite. Re-adding an existing
// favorite simply refreshes its list flags.
// POST /api/favorites
func (fc *FavoritesController) Add(c *gin.Context) {
	var entry entities.DictionaryEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		respondBadRequest(c, "invalid favorite payload: "+err.Error())
		return
	}

	if err := fc.store.AddToFavorites(entry); err != nil {
		respondInternalError(c, err, "add favorite")
		return
	}

	respondSuccess(c, "favorite added")
}

// Remove deactivates a favorite by word text. Removing an unknown word
// is a no-op, not an error.
// DELETE /api/favorites/:word
func (fc *FavoritesController) Remove(c *gin.Context) {
	word := c.Param("word")
	if word == "" {
		respondBadRequest(c, "word is required")
		return
	}

	if err := fc.store.RemoveFromFavorites(word); err != nil {
		respondInternalError(c, err, "remove favorite")
		return
	}

	respondSuccess(c, "favorite removed")
}

// Save replaces the active favorites set with the given entries.
// Entries absent from the payload are deactivated.
// PUT /api/favorites
func (fc *FavoritesController) Save(c *gin.Context) {
	var entries []entities.DictionaryEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		respondBadRequest(c, "invalid favorites payload: "+err.Error())
		return
	}

	if err := fc.store.SaveFavorites(entries); err != nil {
		respondInternalError(c, err, "save favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "favorites saved",
		"count":   len(entries),
	})
}
