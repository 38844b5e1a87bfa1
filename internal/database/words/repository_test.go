package words

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
	dbPath := "./test_words_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Word{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func TestRepository_GetByText(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.Create(&entities.Word{Text: "apple", Translation: "a fruit"}).Error)

	word, err := repo.GetByText("apple")
	require.NoError(t, err)
	require.NotNil(t, word)
	assert.Equal(t, "a fruit", word.Translation)

	// Absent words are not an error
	missing, err := repo.GetByText("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_GetByID(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	created := entities.Word{Text: "apple"}
	require.NoError(t, db.Create(&created).Error)

	word, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, word)
	assert.Equal(t, "apple", word.Text)

	missing, err := repo.GetByID(created.ID + 100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_BlankAndSetTranslation(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.Create(&entities.Word{Text: "apple", Translation: "a fruit"}).Error)
	blankWord := entities.Word{Text: "pear"}
	require.NoError(t, db.Create(&blankWord).Error)

	blank, err := repo.Blank(10)
	require.NoError(t, err)
	require.Len(t, blank, 1)
	assert.Equal(t, "pear", blank[0].Text)

	require.NoError(t, repo.SetTranslation(blankWord.ID, "another fruit"))

	blank, err = repo.Blank(10)
	require.NoError(t, err)
	assert.Empty(t, blank)
}

func TestResolveOrCreate(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.Create(&entities.Word{Text: "apple", Translation: "stored"}).Error)

	resolved, err := ResolveOrCreate(db, map[string]string{
		"apple": "supplied",
		"pear":  "another fruit",
	})
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	// The existing row keeps its stored translation.
	assert.Equal(t, "stored", resolved["apple"].Translation)
	assert.NotZero(t, resolved["apple"].ID)

	// The new row takes the supplied one and gets an id.
	assert.Equal(t, "another fruit", resolved["pear"].Translation)
	assert.NotZero(t, resolved["pear"].ID)

	var count int64
	db.Model(&entities.Word{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestResolveOrCreate_Empty(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	resolved, err := ResolveOrCreate(db, nil)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}
