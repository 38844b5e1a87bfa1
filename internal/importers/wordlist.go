package importers

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/zmx4/aelp/internal/entities"
)

// ImportResult holds the outcome of a wordlist import.
type ImportResult struct {
	SheetsImported  int
	ListRows        map[entities.TestRange]int
	DictionaryWords int
	SkippedRows     int
}

// WordlistImporter reads an xlsx workbook with one sheet per graded
// word list and rebuilds the reference store from it: the six list
// tables plus the consolidated dictionary table with membership flags.
type WordlistImporter struct {
	db *gorm.DB
}

func NewWordlistImporter(db *gorm.DB) *WordlistImporter {
	return &WordlistImporter{db: db}
}

// dictionaryFlag maps each graded range to its flag column in the
// consolidated dictionary table.
func dictionaryFlag(rng entities.TestRange) string {
	switch rng {
	case entities.RangePrimary:
		return "ph"
	case entities.RangeHighSchool:
		return "hs"
	case entities.RangeCet4:
		return "cet4"
	case entities.RangeCet6:
		return "cet6"
	case entities.RangeToefl:
		return "tf"
	case entities.RangeIelts:
		return "ys"
	}
	return ""
}

// ImportFile rebuilds the reference store from the workbook at path.
// Sheet names must match the list table names (PrimarySchool,
// HighSchool, CET4, CET6, tf, ys); missing sheets are skipped. Rows use
// column A for the word and column B for the translation; rows with a
// blank word are counted as skipped. The whole import runs in one
// transaction so a malformed workbook never leaves a half-built store.
func (imp *WordlistImporter) ImportFile(path string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist file: %w", err)
	}
	defer f.Close()

	result := &ImportResult{
		ListRows: make(map[entities.TestRange]int),
	}
	// word -> consolidated entry, accumulating flags across sheets
	consolidated := make(map[string]*entities.DictionaryEntry)
	var order []string

	err = imp.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureSchema(tx); err != nil {
			return err
		}

		for _, rng := range entities.TestRanges() {
			table, err := rng.ListTable()
			if err != nil {
				return err
			}

			rows, err := f.GetRows(table)
			if err != nil {
				// Sheet absent from this workbook
				continue
			}
			result.SheetsImported++

			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear table %s: %w", table, err)
			}

			var listRows []entities.ListWord
			for i, row := range rows {
				word, translation := cellValues(row)
				if word == "" || (i == 0 && strings.EqualFold(word, "word")) {
					result.SkippedRows++
					continue
				}

				listRows = append(listRows, entities.ListWord{Word: word, Translation: translation})

				entry, ok := consolidated[word]
				if !ok {
					entry = &entities.DictionaryEntry{Word: word}
					consolidated[word] = entry
					order = append(order, word)
				}
				if entry.Translation == "" {
					entry.Translation = translation
				}
				setFlag(entry, dictionaryFlag(rng))
			}

			if len(listRows) > 0 {
				if err := tx.Table(table).CreateInBatches(listRows, 500).Error; err != nil {
					return fmt.Errorf("insert into %s: %w", table, err)
				}
			}
			result.ListRows[rng] = len(listRows)
		}

		if err := tx.Exec("DELETE FROM dictionary").Error; err != nil {
			return fmt.Errorf("clear dictionary: %w", err)
		}
		entries := make([]entities.DictionaryEntry, 0, len(order))
		for _, word := range order {
			entries = append(entries, *consolidated[word])
		}
		if len(entries) > 0 {
			if err := tx.CreateInBatches(entries, 500).Error; err != nil {
				return fmt.Errorf("insert dictionary: %w", err)
			}
		}
		result.DictionaryWords = len(entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func cellValues(row []string) (word, translation string) {
	if len(row) > 0 {
		word = strings.TrimSpace(row[0])
	}
	if len(row) > 1 {
		translation = strings.TrimSpace(row[1])
	}
	return word, translation
}

func setFlag(entry *entities.DictionaryEntry, column string) {
	switch column {
	case "ph":
		entry.Ph = 1
	case "hs":
		entry.Hs = 1
	case "cet4":
		entry.Cet4 = 1
	case "cet6":
		entry.Cet6 = 1
	case "tf":
		entry.Tf = 1
	case "ys":
		entry.Ys = 1
	}
}

// ensureSchema creates the reference tables when importing into a fresh
// database file.
func ensureSchema(tx *gorm.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS dictionary (
			word TEXT PRIMARY KEY,
			translation TEXT,
			cet4 INTEGER NOT NULL DEFAULT 0,
			cet6 INTEGER NOT NULL DEFAULT 0,
			hs INTEGER NOT NULL DEFAULT 0,
			ph INTEGER NOT NULL DEFAULT 0,
			tf INTEGER NOT NULL DEFAULT 0,
			ys INTEGER NOT NULL DEFAULT 0
		)`,
	}
	for _, rng := range entities.TestRanges() {
		table, err := rng.ListTable()
		if err != nil {
			return err
		}
		statements = append(statements, fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (word TEXT, translation TEXT)", table))
	}
	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create reference schema: %w", err)
		}
	}
	return nil
}
