package testseries

import "gorm.io/gorm"

// Media asset kinds
const (
	MediaThumbnail = "thumbnail"
	MediaVideo     = "video"
)

// Media asset states
const (
	MediaActive   = "active"
	MediaArchived = "archived"
)

// MediaAsset is one thumbnail or intro video bound to a series.
// Invariant: for a given (SeriesRef scope, Kind) exactly one row has
// Status=active at any time. The swap that maintains this runs inside a
// database transaction (see testseries.MediaService.Attach).
type MediaAsset struct {
	gorm.Model
	SeriesRef     string `json:"series_ref" gorm:"index;not null"`
	Kind          string `json:"kind" gorm:"index;not null"` // thumbnail, video
	BlobRef       string `json:"blob_ref" gorm:"not null"`
	PublicURL     string `json:"public_url"`
	Status        string `json:"status" gorm:"index;default:'active'"` // active, archived
	PreviousAsset string `json:"previous_asset"`                       // blob ref of the asset this one replaced
}
