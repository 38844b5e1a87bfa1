// Package words provides lookup and batch resolution of user-store Word
// rows. Both the favorites and mistake reconciliation services create
// Word rows lazily through ResolveOrCreate, so the logic lives here once.
package words

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/zmx4/aelp/internal/entities"
)

// Repository handles user word lookups.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new word repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a word by its generated id. Returns (nil, nil) when
// no such row exists.
func (r *Repository) GetByID(id uint) (*entities.Word, error) {
	var word entities.Word
	err := r.db.First(&word, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// GetByText retrieves a word by exact text match. Returns (nil, nil) when
// no such row exists.
func (r *Repository) GetByText(text string) (*entities.Word, error) {
	var word entities.Word
	err := r.db.Where("word = ?", text).First(&word).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// Blank returns up to limit words whose translation is empty. Used by the
// background enrichment task.
func (r *Repository) Blank(limit int) ([]entities.Word, error) {
	var words []entities.Word
	query := r.db.Where("translation = ''")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&words).Error
	return words, err
}

// SetTranslation updates a single word's translation.
func (r *Repository) SetTranslation(id uint, translation string) error {
	return r.db.Model(&entities.Word{}).Where("id = ?", id).
		Update("translation", translation).Error
}

// ResolveOrCreate maps each text in translations to its Word row,
// creating missing rows in one batch insert. Existing rows keep their
// stored translation; only newly created rows take the supplied one.
// The returned map carries generated ids for every input text.
func ResolveOrCreate(tx *gorm.DB, translations map[string]string) (map[string]entities.Word, error) {
	if len(translations) == 0 {
		return map[string]entities.Word{}, nil
	}

	texts := make([]string, 0, len(translations))
	for text := range translations {
		texts = append(texts, text)
	}

	var existing []entities.Word
	if err := tx.Where("word IN ?", texts).Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("resolve words: %w", err)
	}

	resolved := make(map[string]entities.Word, len(texts))
	for _, w := range existing {
		resolved[w.Text] = w
	}

	var missing []entities.Word
	for _, text := range texts {
		if _, ok := resolved[text]; !ok {
			missing = append(missing, entities.Word{
				Text:        text,
				Translation: translations[text],
			})
		}
	}

	if len(missing) > 0 {
		if err := tx.Create(&missing).Error; err != nil {
			return nil, fmt.Errorf("create words: %w", err)
		}
		for _, w := range missing {
			resolved[w.Text] = w
		}
	}

	return resolved, nil
}
