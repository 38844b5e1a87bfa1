package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/zmx4/aelp/internal/database/favorites"
	"github.com/zmx4/aelp/internal/database/mistakes"
	"github.com/zmx4/aelp/internal/database/records"
	"github.com/zmx4/aelp/internal/database/words"
	"github.com/zmx4/aelp/internal/dictionary"
	"github.com/zmx4/aelp/internal/exporters"
	"github.com/zmx4/aelp/internal/http"
	"github.com/zmx4/aelp/internal/quiz"
	"github.com/zmx4/aelp/internal/refdict"
	"github.com/zmx4/aelp/internal/review"
	"github.com/zmx4/aelp/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// FavoritesStore implementations
var _ http.FavoritesStore = (*favorites.Repository)(nil)

// MistakesStore implementations
var _ http.MistakesStore = (*mistakes.Repository)(nil)

// RecordsStore implementations
var _ http.RecordsStore = (*records.Repository)(nil)

// DictionaryStore implementations
var _ http.DictionaryStore = (*refdict.Store)(nil)

// =============================================================================
// Quiz and Review
// =============================================================================

// WordSource implementations
var _ quiz.WordSource = (*refdict.Store)(nil)

// ResultStore implementations
var _ quiz.ResultStore = (*records.Repository)(nil)

// MistakeUpdater implementations
var _ review.MistakeUpdater = (*mistakes.Repository)(nil)

// =============================================================================
// Translation Lookup
// =============================================================================

// DictionaryClient implementations
var _ dictionary.Client = (*dictionary.FreeDictionaryClient)(nil)
var _ dictionary.Client = (*dictionary.ReferenceClient)(nil)

// TranslationLookup implementations
var _ mistakes.TranslationLookup = (*refdict.Store)(nil)
var _ mistakes.TranslationLookup = (*dictionary.Fallback)(nil)

// WordStore implementations
var _ tasks.WordStore = (*words.Repository)(nil)

// =============================================================================
// Export Pipeline
// =============================================================================

// StudySheetExporter implementations
var _ exporters.StudySheetExporter = (*exporters.MarkdownExporter)(nil)

// Source implementations
var _ exporters.FavoriteSource = (*favorites.Repository)(nil)
var _ exporters.MistakeSource = (*mistakes.Repository)(nil)
