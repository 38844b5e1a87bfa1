package exporters

import "github.com/zmx4/aelp/internal/entities"

// FavoriteSource provides the active favorites to export.
type FavoriteSource interface {
	LoadFavorites() ([]entities.Favorite, error)
}

// MistakeSource provides recent mistakes to export, newest first.
type MistakeSource interface {
	LoadMistakeData(limit int) ([]entities.Mistake, error)
}

// StudySheetExporter writes the user's study data somewhere.
type StudySheetExporter interface {
	Export() (ExportResult, error)
}

type ExportResult struct {
	FavoritesProcessed int `json:"favorites_processed"`
	MistakesProcessed  int `json:"mistakes_processed"`
}
