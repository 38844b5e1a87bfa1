// Package refdict provides read access to the reference dictionary
// store: the stardict-derived database holding the consolidated
// dictionary table and the six graded word-list tables. This package
// only consumes the schema; it never creates or migrates it (the
// import-wordlist command owns creation).
package refdict

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zmx4/aelp/internal/entities"
)

// Store is a read-only handle over the reference dictionary database.
type Store struct {
	db *gorm.DB
}

// Open opens the reference store at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open reference dictionary: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an already-open gorm handle. Used by the importer and
// by tests that seed their own reference database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// QueryWordInfo looks up the consolidated dictionary entry for a word by
// exact text match. Absent words are not an error: (nil, nil).
func (s *Store) QueryWordInfo(word string) (*entities.DictionaryEntry, error) {
	var entry entities.DictionaryEntry
	err := s.db.Where("word = ?", word).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	entry.Translation = NormalizeTranslation(entry.Translation)
	return &entry, nil
}

// QueryTranslation returns the translation for a word, or the empty
// string when the word is unknown or a lookup fails.
func (s *Store) QueryTranslation(word string) string {
	entry, err := s.QueryWordInfo(word)
	if err != nil || entry == nil {
		return ""
	}
	return entry.Translation
}

// QueryWords returns all words whose translation contains the given
// text. Used for reverse (translation to word) search.
func (s *Store) QueryWords(translation string) ([]string, error) {
	var results []string
	err := s.db.Model(&entities.DictionaryEntry{}).
		Where("translation LIKE ?", "%"+translation+"%").
		Pluck("word", &results).Error
	return results, err
}

// RandomWords samples up to count words from the graded list the range
// selects, in random order.
func (s *Store) RandomWords(rng entities.TestRange, count int) ([]entities.ListWord, error) {
	table, err := rng.ListTable()
	if err != nil {
		return nil, err
	}

	var rows []entities.ListWord
	err = s.db.Table(table).Order("RANDOM()").Limit(count).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Translation = NormalizeTranslation(rows[i].Translation)
	}
	return rows, nil
}

// NormalizeTranslation turns translation text with escaped newline
// sequences, as stored in the stardict tables, into real newlines.
func NormalizeTranslation(translation string) string {
	translation = strings.ReplaceAll(translation, "\\r\\n", "\n")
	return strings.ReplaceAll(translation, "\\n", "\n")
}

// ShortTranslation returns the first line of a translation, for compact
// listings.
func ShortTranslation(translation string) string {
	normalized := NormalizeTranslation(translation)
	if i := strings.IndexByte(normalized, '\n'); i >= 0 {
		return normalized[:i]
	}
	return normalized
}
