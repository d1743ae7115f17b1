package testseries

import (
	"time"

	"gorm.io/datatypes"
)

// TestSeries is the managed, editable counterpart of a fixed tier
// definition. It is created lazily on the first content or media write
// for a tier (materialization). The unique index on TierCode guarantees
// at most one managed record per tier even when two first-writes race.
type TestSeries struct {
	ID               string         `json:"id" gorm:"primaryKey"`
	TierCode         string         `json:"tier_code" gorm:"uniqueIndex;not null"` // FTS, HTS, QTS, STS
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Subjects         datatypes.JSON `json:"subjects"` // []string
	SubjectUnitPrice uint           `json:"subject_unit_price" gorm:"default:0"`
	IsPublished      bool           `json:"is_published" gorm:"default:false"`
	IsDeleted        bool           `gorm:"default:false"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
