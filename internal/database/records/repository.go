// Package records persists quiz-session outcomes. SaveSessionResult is
// the single-transaction path a finishing session uses so a storage
// failure never leaves a test recorded with its mistakes lost.
package records

import (
	"gorm.io/gorm"

	"github.com/zmx4/aelp/internal/database/mistakes"
	"github.com/zmx4/aelp/internal/entities"
)

// Repository handles test-record persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new test-record repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveTestRecords upserts records by primary key.
func (r *Repository) SaveTestRecords(recs []entities.TestRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range recs {
			if err := tx.Save(&recs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadTestRecords returns all records in storage order.
func (r *Repository) LoadTestRecords() ([]entities.TestRecord, error) {
	var recs []entities.TestRecord
	err := r.db.Find(&recs).Error
	return recs, err
}

// RecentTestRecords returns the latest n records, newest first.
func (r *Repository) RecentTestRecords(n int) ([]entities.TestRecord, error) {
	var recs []entities.TestRecord
	err := r.db.Order("test_time DESC").Limit(n).Find(&recs).Error
	return recs, err
}

// Stats summarizes all recorded tests.
type Stats struct {
	TotalTests      int64   `json:"total_tests"`
	TotalQuestions  int64   `json:"total_questions"`
	AverageAccuracy float64 `json:"average_accuracy"`
}

// GetStats aggregates across every stored record. All values are zero
// when no tests have been taken yet.
func (r *Repository) GetStats() (Stats, error) {
	var s Stats
	err := r.db.Model(&entities.TestRecord{}).
		Select("COUNT(*) as total_tests, COALESCE(SUM(total_questions), 0) as total_questions, COALESCE(AVG(accuracy), 0) as average_accuracy").
		Scan(&s).Error
	return s, err
}

// SaveSessionResult writes the record and merges the session's mistakes
// in one transaction. The record's MistakeIDs are filled with the ids of
// the mistake rows the session touched before the record is written.
func (r *Repository) SaveSessionResult(rec *entities.TestRecord, sessionMistakes []entities.Mistake) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		touched, err := mistakes.SaveInTx(tx, sessionMistakes)
		if err != nil {
			return err
		}
		rec.MistakeIDs = touched
		return tx.Save(rec).Error
	})
}
