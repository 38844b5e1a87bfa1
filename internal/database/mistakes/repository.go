// Package mistakes records wrong answers as accumulating per-word
// counters rather than an append-only log. At most one Mistake row
// exists per word; repeated mistakes add to its count and advance its
// timestamp, never duplicate.
package mistakes

import (
	"strings"

	"gorm.io/gorm"

	"github.com/zmx4/aelp/internal/database/words"
	"github.com/zmx4/aelp/internal/entities"
)

// TranslationLookup supplies translations for words whose user-store row
// has a blank one. The reference dictionary store satisfies it.
type TranslationLookup interface {
	QueryTranslation(word string) string
}

// Repository handles mistake reconciliation against the user store.
type Repository struct {
	db           *gorm.DB
	translations TranslationLookup
}

// NewRepository creates a new mistakes repository. translations may be
// nil, in which case blank translations stay blank at read time.
func NewRepository(db *gorm.DB, translations TranslationLookup) *Repository {
	return &Repository{db: db, translations: translations}
}

// SaveMistakeData merges the batch into storage: entries without a word
// id are resolved (creating Word rows as needed), the batch is reduced
// to one delta per word, and each delta is applied to the existing row
// or inserted fresh. All of it happens in one transaction.
func (r *Repository) SaveMistakeData(entries []entities.Mistake) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		_, err := SaveInTx(tx, entries)
		return err
	})
}

// SaveInTx is SaveMistakeData running inside an existing transaction,
// returning the ids of every Mistake row the batch touched. It exists so
// test-record persistence can compose record and mistake writes into a
// single unit of work.
func SaveInTx(tx *gorm.DB, entries []entities.Mistake) ([]uint, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	resolved, err := resolveWordIDs(tx, entries)
	if err != nil {
		return nil, err
	}

	// Hard invariant: one delta per word before storage is consulted.
	merged := mergeByWordID(resolved)

	ids := make([]uint, 0, len(merged))
	for _, w := range merged {
		ids = append(ids, w.WordID)
	}

	var existing []entities.Mistake
	if err := tx.Where("word_id IN ?", ids).Find(&existing).Error; err != nil {
		return nil, err
	}
	existingByWordID := make(map[uint]*entities.Mistake, len(existing))
	for i := range existing {
		existingByWordID[existing[i].WordID] = &existing[i]
	}

	touched := make([]uint, 0, len(merged))
	for _, delta := range merged {
		row := existingByWordID[delta.WordID]
		if row == nil {
			row = &entities.Mistake{
				WordID: delta.WordID,
				Time:   delta.Time,
				Count:  delta.Count,
			}
		} else {
			row.Count += delta.Count
			if delta.Time.After(row.Time) {
				row.Time = delta.Time
			}
		}
		if err := tx.Save(row).Error; err != nil {
			return nil, err
		}
		touched = append(touched, row.ID)
	}
	return touched, nil
}

// LoadMistakeData returns mistakes newest first, ties broken by higher
// count first, optionally capped at limit (limit <= 0 means all). Rows
// are joined with their Word to populate the transient text fields;
// blank translations fall back to the injected lookup.
func (r *Repository) LoadMistakeData(limit int) ([]entities.Mistake, error) {
	var rows []entities.Mistake
	query := r.db.Preload("Word").Order("time DESC, count DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	r.fillTransient(rows)
	return rows, nil
}

// LoadMistakeDataByWordIDs returns the mistakes for the given word ids,
// joined with their words. Used to show the mistakes behind one test run.
func (r *Repository) LoadMistakeDataByWordIDs(ids []uint) ([]entities.Mistake, error) {
	var rows []entities.Mistake
	err := r.db.Preload("Word").Where("word_id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	r.fillTransient(rows)
	return rows, nil
}

// UpdateMistakeData upserts full rows by primary key with no merge
// semantics. Used after a review session has adjusted counts in place.
func (r *Repository) UpdateMistakeData(entries []entities.Mistake) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range entries {
			if err := tx.Save(&entries[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// resolveWordIDs backfills the word id of entries carrying only a word
// text, creating Word rows for unseen texts in one batch.
func resolveWordIDs(tx *gorm.DB, entries []entities.Mistake) ([]entities.Mistake, error) {
	pending := make(map[string]string)
	for _, e := range entries {
		if e.WordID == 0 && e.WordText != "" {
			pending[e.WordText] = ""
		}
	}

	if len(pending) == 0 {
		return entries, nil
	}

	resolved, err := words.ResolveOrCreate(tx, pending)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Mistake, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].WordID == 0 && out[i].WordText != "" {
			out[i].WordID = resolved[out[i].WordText].ID
		}
	}
	return out, nil
}

func (r *Repository) fillTransient(rows []entities.Mistake) {
	for i := range rows {
		if rows[i].Word != nil {
			rows[i].WordText = rows[i].Word.Text
			rows[i].Translation = rows[i].Word.Translation
		}
		if strings.TrimSpace(rows[i].Translation) == "" &&
			strings.TrimSpace(rows[i].WordText) != "" && r.translations != nil {
			rows[i].Translation = r.translations.QueryTranslation(rows[i].WordText)
		}
	}
}
