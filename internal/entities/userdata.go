package entities

import (
	"time"
)

// Word is a user-store vocabulary row. Rows are created lazily the first
// time a word is favorited or mis-answered and are never deleted outside
// of a full user-data wipe.
type Word struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Text        string `gorm:"column:word;index;size:256" json:"word"`
	Translation string `gorm:"size:2048" json:"translation"`
}

// Favorite marks a user word as favorited together with its graded
// word-list classification. The primary key is assigned from the owning
// Word's id, never auto-generated. Removal is soft: IsFavorite flips to
// false and the row stays.
type Favorite struct {
	WordID       uint  `gorm:"primaryKey;autoIncrement:false" json:"word_id"`
	IsCet4       bool  `json:"is_cet4"`
	IsCet6       bool  `json:"is_cet6"`
	IsHighSchool bool  `json:"is_high_school"`
	IsPrimary    bool  `json:"is_primary"`
	IsToefl      bool  `json:"is_toefl"`
	IsIelts      bool  `json:"is_ielts"`
	IsFavorite   bool  `gorm:"index" json:"is_favorite"`
	Word         *Word `gorm:"foreignKey:WordID" json:"word,omitempty"`
}

// Tags returns the human-readable names of the graded lists this
// favorite was classified into when saved.
func (f Favorite) Tags() []string {
	var tags []string
	if f.IsCet4 {
		tags = append(tags, "CET4")
	}
	if f.IsCet6 {
		tags = append(tags, "CET6")
	}
	if f.IsHighSchool {
		tags = append(tags, "High School")
	}
	if f.IsPrimary {
		tags = append(tags, "Primary School")
	}
	if f.IsToefl {
		tags = append(tags, "TOEFL")
	}
	if f.IsIelts {
		tags = append(tags, "IELTS")
	}
	return tags
}

// Mistake accumulates wrong answers for a single word. At most one row
// exists per WordID; repeated mistakes add to Count and advance Time to
// the latest occurrence.
type Mistake struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	WordID uint      `gorm:"index" json:"word_id"`
	Time   time.Time `json:"time"`
	Count  int       `json:"count"`

	// WordText and Translation are populated at read time from the
	// joined Word row (or a translation fallback), never persisted.
	WordText    string `gorm:"-" json:"word"`
	Translation string `gorm:"-" json:"translation"`

	Word *Word `gorm:"foreignKey:WordID" json:"-"`
}

// Mastered reports whether the word no longer counts as a mistake.
func (m Mistake) Mastered() bool {
	return m.Count <= 0
}

// TestRecord is the persisted outcome of one quiz session.
type TestRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TestTime       time.Time `json:"test_time"`
	TotalQuestions int       `json:"total_questions"`
	Accuracy       float64   `json:"accuracy"`
	MistakeIDs     []uint    `gorm:"serializer:json" json:"mistake_ids"`
}
