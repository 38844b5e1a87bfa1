package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zmx4/aelp/internal/database/records"
	"github.com/zmx4/aelp/internal/entities"
)

// RecordsStore defines read operations for test records.
type RecordsStore interface {
	RecentTestRecords(n int) ([]entities.TestRecord, error)
	GetStats() (records.Stats, error)
}

type RecordsController struct {
	store RecordsStore
}

func NewRecordsController(store RecordsStore) *RecordsController {
	return &RecordsController{store: store}
}

// Recent returns the latest test records, newest first.
// GET /api/records?limit=n
func (rc *RecordsController) Recent(c *gin.Context) {
	limit := parseQueryLimit(c, 20, 200)

	recs, err := rc.store.RecentTestRecords(limit)
	if err != nil {
		respondInternalError(c, err, "list records")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": recs,
		"count":   len(recs),
		"limit":   limit,
	})
}

// GetStats returns an all-time summary across recorded tests.
// GET /api/records/stats
func (rc *RecordsController) GetStats(c *gin.Context) {
	stats, err := rc.store.GetStats()
	if err != nil {
		respondInternalError(c, err, "record stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
