package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zmx4/aelp/internal/entities"
)

// MistakesStore defines database operations for mistake tracking.
type MistakesStore interface {
	LoadMistakeData(limit int) ([]entities.Mistake, error)
	SaveMistakeData(entries []entities.Mistake) error
	UpdateMistakeData(entries []entities.Mistake) error
}

type MistakesController struct {
	store MistakesStore
}

func NewMistakesController(store MistakesStore) *MistakesController {
	return &MistakesController{store: store}
}

// List returns the most recent mistakes, newest first.
// GET /api/mistakes?limit=n
func (mc *MistakesController) List(c *gin.Context) {
	limit := parseQueryLimit(c, 50, 500)

	rows, err := mc.store.LoadMistakeData(limit)
	if err != nil {
		respondInternalError(c, err, "list mistakes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mistakes": rows,
		"count":    len(rows),
		"limit":    limit,
	})
}

// Record merges a batch of mistakes into storage. Repeats of an
// already-known word accumulate its count instead of duplicating it.
// POST /api/mistakes
func (mc *MistakesController) Record(c *gin.Context) {
	var entries []entities.Mistake
	if err := c.ShouldBindJSON(&entries); err != nil {
		respondBadRequest(c, "invalid mistakes payload: "+err.Error())
		return
	}
	if len(entries) == 0 {
		respondBadRequest(c, "at least one mistake is required")
		return
	}

	if err := mc.store.SaveMistakeData(entries); err != nil {
		respondInternalError(c, err, "record mistakes")
		return
	}

	respondSuccess(c, "mistakes recorded")
}

// Update writes back reviewed mistake rows as-is. Used after a review
// round adjusted counts up or down.
// PUT /api/mistakes
func (mc *MistakesController) Update(c *gin.Context) {
	var entries []entities.Mistake
	if err := c.ShouldBindJSON(&entries); err != nil {
		respondBadRequest(c, "invalid mistakes payload: "+err.Error())
		return
	}
	if len(entries) == 0 {
		respondBadRequest(c, "at least one mistake is required")
		return
	}

	if err := mc.store.UpdateMistakeData(entries); err != nil {
		respondInternalError(c, err, "update mistakes")
		return
	}

	respondSuccess(c, "mistakes updated")
}
