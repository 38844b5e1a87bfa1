package mistakes

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zmx4/aelp/internal/entities"
)

type fakeLookup map[string]string

func (f fakeLookup) QueryTranslation(word string) string {
	return f[word]
}

func setupTestDB(t *testing.T, lookup TranslationLookup) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_mistakes_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Word{},
		&entities.Mistake{},
	)
	require.NoError(t, err)

	repo := NewRepository(db, lookup)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func TestRepository_SaveMistakeData_CreatesWordAndRow(t *testing.T) {
	db, repo, cleanup := setupTestDB(t, nil)
	defer cleanup()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err := repo.SaveMistakeData([]entities.Mistake{
		{WordText: "apple", Time: now, Count: 1},
	})
	require.NoError(t, err)

	var word entities.Word
	require.NoError(t, db.Where("word = ?", "apple").First(&word).Error)

	var row entities.Mistake
	require.NoError(t, db.Where("word_id = ?", word.ID).First(&row).Error)
	assert.Equal(t, 1, row.Count)
}

func TestRepository_SaveMistakeData_IntraBatchAccumulation(t *testing.T) {
	db, repo, cleanup := setupTestDB(t, nil)
	defer cleanup()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err := repo.SaveMistakeData([]entities.Mistake{
		{WordText: "apple", Time: now, Count: 1},
		{WordText: "apple", Time: now.Add(time.Minute), Count: 1},
		{WordText: "pear", Time: now, Count: 1},
	})
	require.NoError(t, err)

	var count int64
	db.Model(&entities.Mistake{}).Count(&count)
	assert.Equal(t, int64(2), count)

	var word entities.Word
	require.NoError(t, db.Where("word = ?", "apple").First(&word).Error)
	var row entities.Mistake
	require.NoError(t, db.Where("word_id = ?", word.ID).First(&row).Error)
	assert.Equal(t, 2, row.Count)
	assert.WithinDuration(t, now.Add(time.Minute), row.Time, time.Second)
}

func TestRepository_SaveMistakeData_CrossBatchAccumulation(t *testing.T) {
	db, repo, cleanup := setupTestDB(t, nil)
	defer cleanup()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveMistakeData([]entities.Mistake{
		{WordText: "apple", Time: now, Count: 2},
	}))
	require.NoError(t, repo.SaveMistakeData([]entities.Mistake{
		{WordText: "apple", Time: now.Add(time.Hour), Count: 3},
	}))

	var rows []entities.Mistake
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Count)
	assert.WithinDuration(t, now.Add(time.Hour), rows[0].Time, time.Second)

	// An older batch never rewinds the timestamp.
	require.NoError(t, repo.SaveMistakeData([]entities.Mistake{
		{WordText: "apple", Time: now, Count: 1},
	}))
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 6, rows[0].Count)
	assert.WithinDuration(t, now.Add(time.Hour), rows[0].Time, time.Second)
}

func TestRepository_SaveMistakeData_EmptyBatch(t *testing.T) {
	db, repo, cleanup := setupTestDB(t, nil)
	defer cleanup()

	require.NoError(t, repo.SaveMistakeData(nil))

	var count int64
	db.Model(&entities.Mistake{}).Count(&count)
	assert.Zero(t, count)
}

func TestRepository_LoadMistakeData_NewestFirst(t *testing.T) {
	_, repo, cleanup := setupTestDB(t, nil)
	defer cleanup()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveMistakeData([]entities.Mistake{
		{WordText: "old", Time: now.Add(-time.Hour), Count: 1},
		{WordText: "new", Time: now, Count: 1},
		{WordText: "newer", Time: now.Add(time.Hour), Count: 1},
	}))

	rows, err := repo.LoadMistakeData(0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "newer", rows[0].WordText)
	assert.Equal(t, "new", rows[1].WordText)
	assert.Equal(t, "old", rows[2].WordText)
}

func TestRepository_LoadMistakeData_TiesBrokenByCount(t *testing.T) {
	_, repo, cleanup := setupTestDB(t, nil)
	defer cleanup()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveMistakeData([]entities.Mistake{
		{WordText: "once", Time: now, Count: 1},
		{WordText: "often", Time: now, Count: 4},
	}))

	rows, err := repo.LoadMistakeData(0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "often", rows[0].WordText)
	assert.Equal(t, "once", rows[1].WordText)
}

func TestRepository_LoadMistakeData_Limit(t *testing.T) {
	_, repo, cleanup := setupTestDB(t, nil)
	defer cleanup()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveMistakeData([]entities.Mistake{
		{WordText: "a", Time: now, Count: 1},
		{WordText: "b", Time: now.Add(time.Minute), Count: 1},
		{WordText: "c", Time: now.Add(2 * time.Minute), Count: 1},
	}))

	rows, err := repo.LoadMistakeData(2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestRepository_LoadMistakeData_TranslationFallback(t *testing.T) {
	_, repo, cleanup := setupTestDB(t, fakeLookup{"apple": "a fruit"})
	defer cleanup()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveMistakeData([]entities.Mistake{
		{WordText: "apple", Time: now, Count: 1},
	}))

	// The Word row was created without a translation, so the lookup
	// fills it at read time.
	rows, err := repo.LoadMistakeData(0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "apple", rows[0].WordText)
	assert.Equal(t, "a fruit", rows[0].Translation)
}

func TestRepository_LoadMistakeDataByWordIDs(t *testing.T) {
	db, repo, cleanup := setupTestDB(t, nil)
	defer cleanup()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveMistakeData([]entities.Mistake{
		{WordText: "apple", Time: now, Count: 1},
		{WordText: "pear", Time: now, Count: 1},
	}))

	var word entities.Word
	require.NoError(t, db.Where("word = ?", "pear").First(&word).Error)

	rows, err := repo.LoadMistakeDataByWordIDs([]uint{word.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "pear", rows[0].WordText)
}

func TestRepository_UpdateMistakeData(t *testing.T) {
	_, repo, cleanup := setupTestDB(t, nil)
	defer cleanup()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveMistakeData([]entities.Mistake{
		{WordText: "apple", Time: now, Count: 3},
	}))

	rows, err := repo.LoadMistakeData(0)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// A review round decrements counts in place and writes back as-is.
	rows[0].Count = 0
	require.NoError(t, repo.UpdateMistakeData(rows))

	updated, err := repo.LoadMistakeData(0)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, 0, updated[0].Count)
	assert.True(t, updated[0].Mastered())
}
