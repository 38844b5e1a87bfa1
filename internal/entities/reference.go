package entities

import "fmt"

// DictionaryEntry is a row of the consolidated `dictionary` table in the
// read-only reference store. The per-list flags use the literal 1 to mean
// "member of that graded list"; any other value means not a member.
type DictionaryEntry struct {
	Word        string `gorm:"column:word;primaryKey" json:"word"`
	Translation string `gorm:"column:translation" json:"translation"`
	Cet4        int    `gorm:"column:cet4" json:"cet4"`
	Cet6        int    `gorm:"column:cet6" json:"cet6"`
	Hs          int    `gorm:"column:hs" json:"hs"`
	Ph          int    `gorm:"column:ph" json:"ph"`
	Tf          int    `gorm:"column:tf" json:"tf"`
	Ys          int    `gorm:"column:ys" json:"ys"`
}

func (DictionaryEntry) TableName() string { return "dictionary" }

// Tags returns the human-readable names of the graded lists this entry
// belongs to.
func (d DictionaryEntry) Tags() []string {
	var tags []string
	if d.Cet4 == 1 {
		tags = append(tags, "CET4")
	}
	if d.Cet6 == 1 {
		tags = append(tags, "CET6")
	}
	if d.Hs == 1 {
		tags = append(tags, "High School")
	}
	if d.Ph == 1 {
		tags = append(tags, "Primary School")
	}
	if d.Tf == 1 {
		tags = append(tags, "TOEFL")
	}
	if d.Ys == 1 {
		tags = append(tags, "IELTS")
	}
	return tags
}

// ListWord is a row of one of the six graded word-list tables.
type ListWord struct {
	Word        string `gorm:"column:word" json:"word"`
	Translation string `gorm:"column:translation" json:"translation"`
}

// TestRange selects one of the six graded word lists.
type TestRange string

const (
	RangePrimary    TestRange = "primary"
	RangeHighSchool TestRange = "high-school"
	RangeCet4       TestRange = "cet4"
	RangeCet6       TestRange = "cet6"
	RangeToefl      TestRange = "toefl"
	RangeIelts      TestRange = "ielts"
)

// TestRanges lists every graded range in tier order.
func TestRanges() []TestRange {
	return []TestRange{RangePrimary, RangeHighSchool, RangeCet4, RangeCet6, RangeToefl, RangeIelts}
}

// ListTable maps a range to its table name in the reference store. The
// table names follow the stardict-derived database this application ships
// with, so they are not normalized.
func (r TestRange) ListTable() (string, error) {
	switch r {
	case RangePrimary:
		return "PrimarySchool", nil
	case RangeHighSchool:
		return "HighSchool", nil
	case RangeCet4:
		return "CET4", nil
	case RangeCet6:
		return "CET6", nil
	case RangeToefl:
		return "tf", nil
	case RangeIelts:
		return "ys", nil
	default:
		return "", fmt.Errorf("unknown test range %q", string(r))
	}
}
