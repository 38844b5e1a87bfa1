// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - FavoritesStore: favorites reconciliation (internal/http/favorites.go)
//   - MistakesStore: mistake accumulation (internal/http/mistakes.go)
//   - RecordsStore: test record history (internal/http/records.go)
//   - DictionaryStore: reference dictionary lookups (internal/http/dictionary.go)
//
// ## Quiz and Review Interfaces
//
//   - WordSource: graded word sampling (internal/quiz/session.go)
//   - ResultStore: atomic session persistence (internal/quiz/session.go)
//   - MistakeUpdater: review write-back (internal/review/session.go)
//
// ## Translation Interfaces
//
//   - Client: translation providers (internal/dictionary/client.go)
//   - TranslationLookup: read-time translation fill-in (internal/database/mistakes/repository.go)
//
// # Adding a New Translation Provider
//
// To add a new word translation source:
//
//  1. Implement Client in internal/dictionary/
//
//     type MerriamWebsterClient struct {
//         apiKey string
//     }
//
//     func (c *MerriamWebsterClient) Lookup(ctx context.Context, word string) (string, error)
//     func (c *MerriamWebsterClient) Name() string
//
//     var _ Client = (*MerriamWebsterClient)(nil)
//
//  2. Append it to the Fallback chain in entrypoint.go
//
// # Adding a New Database Domain
//
// To add a new data domain:
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Implement interface methods
//
//  4. Add compile-time check:
//
//     var _ SomeStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
