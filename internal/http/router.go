package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Reference dictionary endpoints
	if cfg.Dictionary != nil {
		dictionaryController := NewDictionaryController(cfg.Dictionary)
		router.GET("/api/dictionary/search", dictionaryController.Search)
		router.GET("/api/dictionary/words", dictionaryController.ReverseSearch)
	}

	// Favorites endpoints
	if cfg.Favorites != nil {
		favoritesController := NewFavoritesController(cfg.Favorites)
		router.GET("/api/favorites", favoritesController.List)
		router.POST("/api/favorites", favoritesController.Add)
		router.PUT("/api/favorites", favoritesController.Save)
		router.DELETE("/api/favorites/:word", favoritesController.Remove)
	}

	// Mistake endpoints
	if cfg.Mistakes != nil {
		mistakesController := NewMistakesController(cfg.Mistakes)
		router.GET("/api/mistakes", mistakesController.List)
		router.POST("/api/mistakes", mistakesController.Record)
		router.PUT("/api/mistakes", mistakesController.Update)
	}

	// Test record endpoints
	if cfg.Records != nil {
		recordsController := NewRecordsController(cfg.Records)
		router.GET("/api/records", recordsController.Recent)
		router.GET("/api/records/stats", recordsController.GetStats)
	}

	// Quiz session endpoints
	if cfg.WordSource != nil && cfg.ResultStore != nil {
		quizController := NewQuizController(cfg.WordSource, cfg.ResultStore)
		router.POST("/api/quiz/start", quizController.Start)
		router.GET("/api/quiz/question", quizController.Question)
		router.POST("/api/quiz/answer", quizController.Answer)
		router.GET("/api/quiz/results", quizController.Results)
	}

	return router
}
