package favorites

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zmx4/aelp/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_favorites_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Word{},
		&entities.Favorite{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func entry(word, translation string) entities.DictionaryEntry {
	return entities.DictionaryEntry{Word: word, Translation: translation}
}

func loadFavorite(t *testing.T, db *gorm.DB, word string) entities.Favorite {
	var w entities.Word
	require.NoError(t, db.Where("word = ?", word).First(&w).Error)

	var fav entities.Favorite
	require.NoError(t, db.Where("word_id = ?", w.ID).First(&fav).Error)
	return fav
}

func TestRepository_AddToFavorites(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	e := entry("apple", "a fruit")
	e.Cet4 = 1

	require.NoError(t, repo.AddToFavorites(e))

	// The word row was created lazily
	var word entities.Word
	require.NoError(t, db.Where("word = ?", "apple").First(&word).Error)
	assert.Equal(t, "a fruit", word.Translation)

	fav := loadFavorite(t, db, "apple")
	assert.True(t, fav.IsFavorite)
	assert.True(t, fav.IsCet4)
	assert.False(t, fav.IsCet6)
	assert.Equal(t, word.ID, fav.WordID)
}

func TestRepository_AddToFavorites_Idempotent(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	e := entry("apple", "a fruit")
	require.NoError(t, repo.AddToFavorites(e))
	require.NoError(t, repo.AddToFavorites(e))
	require.NoError(t, repo.AddToFavorites(e))

	var wordCount, favCount int64
	db.Model(&entities.Word{}).Count(&wordCount)
	db.Model(&entities.Favorite{}).Count(&favCount)
	assert.Equal(t, int64(1), wordCount)
	assert.Equal(t, int64(1), favCount)
}

func TestRepository_AddToFavorites_FlagsOverwriteNotUnion(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	first := entry("apple", "a fruit")
	first.Cet4 = 1
	require.NoError(t, repo.AddToFavorites(first))

	// Re-adding with a different classification replaces the flags
	// instead of accumulating them.
	second := entry("apple", "a fruit")
	second.Cet6 = 1
	require.NoError(t, repo.AddToFavorites(second))

	fav := loadFavorite(t, db, "apple")
	assert.False(t, fav.IsCet4)
	assert.True(t, fav.IsCet6)
	assert.True(t, fav.IsFavorite)
}

func TestRepository_AddToFavorites_ReactivatesRemoved(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.AddToFavorites(entry("apple", "a fruit")))
	require.NoError(t, repo.RemoveFromFavorites("apple"))
	require.NoError(t, repo.AddToFavorites(entry("apple", "a fruit")))

	fav := loadFavorite(t, db, "apple")
	assert.True(t, fav.IsFavorite)

	var favCount int64
	db.Model(&entities.Favorite{}).Count(&favCount)
	assert.Equal(t, int64(1), favCount)
}

func TestRepository_RemoveFromFavorites_SoftDelete(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.AddToFavorites(entry("apple", "a fruit")))
	require.NoError(t, repo.RemoveFromFavorites("apple"))

	// Both rows survive; only the flag flips.
	fav := loadFavorite(t, db, "apple")
	assert.False(t, fav.IsFavorite)

	var wordCount int64
	db.Model(&entities.Word{}).Count(&wordCount)
	assert.Equal(t, int64(1), wordCount)
}

func TestRepository_RemoveFromFavorites_UnknownWordIsNoop(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.RemoveFromFavorites("nope"))
}

func TestRepository_LoadFavorites_OnlyActive(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.AddToFavorites(entry("apple", "a fruit")))
	require.NoError(t, repo.AddToFavorites(entry("pear", "another fruit")))
	require.NoError(t, repo.RemoveFromFavorites("pear"))

	favs, err := repo.LoadFavorites()
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.NotNil(t, favs[0].Word)
	assert.Equal(t, "apple", favs[0].Word.Text)
	assert.Equal(t, "a fruit", favs[0].Word.Translation)
}

func TestRepository_SaveFavorites_Authoritative(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.AddToFavorites(entry("apple", "a fruit")))
	require.NoError(t, repo.AddToFavorites(entry("pear", "another fruit")))

	// Saving a set without "pear" deactivates it and activates the
	// newcomer.
	err := repo.SaveFavorites([]entities.DictionaryEntry{
		entry("apple", "a fruit"),
		entry("cherry", "a small fruit"),
	})
	require.NoError(t, err)

	favs, err := repo.LoadFavorites()
	require.NoError(t, err)
	words := make([]string, 0, len(favs))
	for _, f := range favs {
		words = append(words, f.Word.Text)
	}
	assert.ElementsMatch(t, []string{"apple", "cherry"}, words)

	pear := loadFavorite(t, db, "pear")
	assert.False(t, pear.IsFavorite)
}

func TestRepository_SaveFavorites_DedupesByText(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	first := entry("apple", "a fruit")
	first.Cet4 = 1
	last := entry("apple", "a fruit")
	last.Cet6 = 1

	// The last occurrence of a duplicated word wins.
	require.NoError(t, repo.SaveFavorites([]entities.DictionaryEntry{first, last}))

	var wordCount int64
	db.Model(&entities.Word{}).Count(&wordCount)
	assert.Equal(t, int64(1), wordCount)

	fav := loadFavorite(t, db, "apple")
	assert.False(t, fav.IsCet4)
	assert.True(t, fav.IsCet6)
}

func TestRepository_SaveFavorites_EmptyDeactivatesAll(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.AddToFavorites(entry("apple", "a fruit")))
	require.NoError(t, repo.SaveFavorites(nil))

	favs, err := repo.LoadFavorites()
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestRepository_OnChange(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	var notified int
	unsubscribe := repo.OnChange(func() { notified++ })
	defer unsubscribe()

	require.NoError(t, repo.AddToFavorites(entry("apple", "a fruit")))
	assert.Equal(t, 1, notified)

	require.NoError(t, repo.RemoveFromFavorites("apple"))
	assert.Equal(t, 2, notified)

	// Removing an already-removed word changes nothing and stays quiet.
	require.NoError(t, repo.RemoveFromFavorites("apple"))
	assert.Equal(t, 2, notified)

	require.NoError(t, repo.SaveFavorites([]entities.DictionaryEntry{entry("pear", "another fruit")}))
	assert.Equal(t, 3, notified)
}
