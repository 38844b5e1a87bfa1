package http

import (
	"github.com/zmx4/aelp/internal/database"
	"github.com/zmx4/aelp/internal/quiz"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database   *database.Database
	Dictionary DictionaryStore

	// Per-domain stores
	Favorites FavoritesStore
	Mistakes  MistakesStore
	Records   RecordsStore

	// Quiz session dependencies
	WordSource  quiz.WordSource
	ResultStore quiz.ResultStore

	// Application info
	Version string
}
