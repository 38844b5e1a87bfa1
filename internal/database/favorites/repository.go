// Package favorites maintains the favorited-word set and its per-wordlist
// classification with idempotent, order-independent merge semantics.
//
// Every mutation runs in one transaction and emits exactly one change
// notification, regardless of how many rows it touched.
package favorites

import (
	"gorm.io/gorm"

	"github.com/zmx4/aelp/internal/database/words"
	"github.com/zmx4/aelp/internal/entities"
	"github.com/zmx4/aelp/internal/notify"
)

// Repository handles favorites reconciliation against the user store.
type Repository struct {
	db      *gorm.DB
	changed notify.Notifier
}

// NewRepository creates a new favorites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// OnChange subscribes to favorites-changed notifications and returns an
// unsubscribe function.
func (r *Repository) OnChange(fn func()) func() {
	return r.changed.Subscribe(fn)
}

// AddToFavorites marks the entry's word as favorited, creating the Word
// row if absent and overwriting all six classification flags from the
// entry. Calling it twice with identical input leaves exactly one Word
// and one Favorite row. Word text is taken as supplied, empty included.
func (r *Repository) AddToFavorites(entry entities.DictionaryEntry) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		resolved, err := words.ResolveOrCreate(tx, map[string]string{
			entry.Word: entry.Translation,
		})
		if err != nil {
			return err
		}
		word := resolved[entry.Word]

		fav, err := findFavorite(tx, word.ID)
		if err != nil {
			return err
		}
		if fav == nil {
			fav = &entities.Favorite{WordID: word.ID}
		}

		applyFlags(fav, entry)
		fav.IsFavorite = true
		return tx.Save(fav).Error
	})
	if err != nil {
		return err
	}

	r.changed.Notify()
	return nil
}

// RemoveFromFavorites soft-removes the favorite for the given word text.
// Unknown words are a no-op; the Word and Favorite rows are retained so
// a later re-add resurrects them without duplication.
func (r *Repository) RemoveFromFavorites(wordText string) error {
	var removed bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var word entities.Word
		err := tx.Where("word = ?", wordText).First(&word).Error
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		fav, err := findFavorite(tx, word.ID)
		if err != nil || fav == nil {
			return err
		}

		fav.IsFavorite = false
		removed = true
		return tx.Save(fav).Error
	})
	if err != nil {
		return err
	}

	if removed {
		r.changed.Notify()
	}
	return nil
}

// SaveFavorites replaces the active favorites set with exactly the words
// in entries. Input is deduplicated by word text (last write wins);
// currently active favorites not mentioned become inactive; mentioned
// words get their classification flags overwritten. No duplicate Word or
// Favorite rows are created on repeated calls.
func (r *Repository) SaveFavorites(entries []entities.DictionaryEntry) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		byText := make(map[string]entities.DictionaryEntry, len(entries))
		translations := make(map[string]string, len(entries))
		for _, e := range entries {
			byText[e.Word] = e
			translations[e.Word] = e.Translation
		}

		resolved, err := words.ResolveOrCreate(tx, translations)
		if err != nil {
			return err
		}

		active := make(map[uint]bool, len(resolved))
		for _, w := range resolved {
			active[w.ID] = true
		}

		// This call is authoritative: anything currently favorited but
		// not in the active set is deactivated.
		var current []entities.Favorite
		if err := tx.Where("is_favorite = ?", true).Find(&current).Error; err != nil {
			return err
		}
		currentByWordID := make(map[uint]*entities.Favorite, len(current))
		for i := range current {
			currentByWordID[current[i].WordID] = &current[i]
			if !active[current[i].WordID] {
				current[i].IsFavorite = false
				if err := tx.Save(&current[i]).Error; err != nil {
					return err
				}
			}
		}

		for text, entry := range byText {
			word := resolved[text]

			fav := currentByWordID[word.ID]
			if fav == nil {
				fav, err = findFavorite(tx, word.ID)
				if err != nil {
					return err
				}
			}
			if fav == nil {
				fav = &entities.Favorite{WordID: word.ID}
			}

			applyFlags(fav, entry)
			fav.IsFavorite = true
			if err := tx.Save(fav).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.changed.Notify()
	return nil
}

// LoadFavorites returns all active favorites joined with their words.
// Ordering is storage-natural; callers needing a stable order sort
// client-side.
func (r *Repository) LoadFavorites() ([]entities.Favorite, error) {
	var favs []entities.Favorite
	err := r.db.Preload("Word").Where("is_favorite = ?", true).Find(&favs).Error
	return favs, err
}

func findFavorite(tx *gorm.DB, wordID uint) (*entities.Favorite, error) {
	var fav entities.Favorite
	err := tx.Where("word_id = ?", wordID).First(&fav).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

// applyFlags overwrites the six classification flags from the entry. The
// reference store encodes membership as the literal 1; any other value,
// absent included, means false. Flags are replaced, never OR'd.
func applyFlags(fav *entities.Favorite, entry entities.DictionaryEntry) {
	fav.IsCet4 = entry.Cet4 == 1
	fav.IsCet6 = entry.Cet6 == 1
	fav.IsHighSchool = entry.Hs == 1
	fav.IsPrimary = entry.Ph == 1
	fav.IsToefl = entry.Tf == 1
	fav.IsIelts = entry.Ys == 1
}
