package importers

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zmx4/aelp/internal/entities"
)

func writeWorkbook(t *testing.T, sheets map[string][][]string) string {
	path := "./test_wordlist_" + t.Name() + ".xlsx"

	f := excelize.NewFile()
	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			for j, cell := range row {
				ref, err := excelize.CoordinatesToCellName(j+1, i+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, ref, cell))
			}
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func setupImporter(t *testing.T) (*gorm.DB, *WordlistImporter, func(paths ...string)) {
	dbPath := "./test_refbuild_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cleanup := func(paths ...string) {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
		for _, p := range paths {
			os.Remove(p)
		}
	}
	return db, NewWordlistImporter(db), cleanup
}

func TestWordlistImporter_ImportFile(t *testing.T) {
	db, importer, cleanup := setupImporter(t)

	xlsxPath := writeWorkbook(t, map[string][][]string{
		"CET4": {
			{"word", "translation"},
			{"apple", "a fruit"},
			{"pear", "another fruit"},
		},
		"CET6": {
			{"word", "translation"},
			{"apple", "a fruit"},
			{"cherry", "a small fruit"},
		},
	})
	defer cleanup(xlsxPath)

	result, err := importer.ImportFile(xlsxPath)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SheetsImported)
	assert.Equal(t, 2, result.ListRows[entities.RangeCet4])
	assert.Equal(t, 2, result.ListRows[entities.RangeCet6])
	assert.Equal(t, 3, result.DictionaryWords)
	assert.Equal(t, 2, result.SkippedRows)

	// Words on both lists carry both flags.
	var apple entities.DictionaryEntry
	require.NoError(t, db.Where("word = ?", "apple").First(&apple).Error)
	assert.Equal(t, 1, apple.Cet4)
	assert.Equal(t, 1, apple.Cet6)
	assert.Zero(t, apple.Tf)

	var cherry entities.DictionaryEntry
	require.NoError(t, db.Where("word = ?", "cherry").First(&cherry).Error)
	assert.Zero(t, cherry.Cet4)
	assert.Equal(t, 1, cherry.Cet6)

	var listCount int64
	db.Table("CET4").Count(&listCount)
	assert.Equal(t, int64(2), listCount)
}

func TestWordlistImporter_ReplacesExistingData(t *testing.T) {
	db, importer, cleanup := setupImporter(t)

	first := writeWorkbook(t, map[string][][]string{
		"CET4": {{"stale", "old meaning"}},
	})
	second := writeWorkbook(t, map[string][][]string{
		"CET4": {{"fresh", "new meaning"}},
	})
	defer cleanup(first, second)

	_, err := importer.ImportFile(first)
	require.NoError(t, err)
	_, err = importer.ImportFile(second)
	require.NoError(t, err)

	var words []string
	require.NoError(t, db.Table("CET4").Pluck("word", &words).Error)
	assert.Equal(t, []string{"fresh"}, words)

	var dictCount int64
	db.Model(&entities.DictionaryEntry{}).Count(&dictCount)
	assert.Equal(t, int64(1), dictCount)
}

func TestWordlistImporter_SkipsBlankRows(t *testing.T) {
	db, importer, cleanup := setupImporter(t)

	xlsxPath := writeWorkbook(t, map[string][][]string{
		"CET4": {
			{"apple", "a fruit"},
			{"", ""},
			{"pear", "another fruit"},
		},
	})
	defer cleanup(xlsxPath)

	result, err := importer.ImportFile(xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ListRows[entities.RangeCet4])

	var listCount int64
	db.Table("CET4").Count(&listCount)
	assert.Equal(t, int64(2), listCount)
}

func TestWordlistImporter_MissingFile(t *testing.T) {
	_, importer, cleanup := setupImporter(t)
	defer cleanup()

	_, err := importer.ImportFile("./does_not_exist.xlsx")
	assert.Error(t, err)
}

func TestWordlistImporter_LargeSheet(t *testing.T) {
	db, importer, cleanup := setupImporter(t)

	rows := make([][]string, 0, 600)
	for i := 0; i < 600; i++ {
		rows = append(rows, []string{fmt.Sprintf("word%03d", i), fmt.Sprintf("meaning %d", i)})
	}
	xlsxPath := writeWorkbook(t, map[string][][]string{"ys": rows})
	defer cleanup(xlsxPath)

	result, err := importer.ImportFile(xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, 600, result.ListRows[entities.RangeIelts])
	assert.Equal(t, 600, result.DictionaryWords)

	var ys int64
	db.Model(&entities.DictionaryEntry{}).Where("ys = 1").Count(&ys)
	assert.Equal(t, int64(600), ys)
}
