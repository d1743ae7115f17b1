package testseries

import "gorm.io/gorm"

// Paper represents one gradable question paper within a series.
// SeriesRef stores whichever series reference was in effect at upload
// time: a tier shorthand code or a managed record key.
type Paper struct {
	gorm.Model
	SeriesRef      string `json:"series_ref" gorm:"index;not null"`
	GroupName      string `json:"group" gorm:"column:paper_group;index"`
	Subject        string `json:"subject" gorm:"index"`
	SeriesInstance string `json:"series_instance" gorm:"index"` // series1..series3, FTS only
	PaperType      string `json:"paper_type" gorm:"default:'QUESTION'"`
	Title          string `json:"title"`
	BlobRef        string `json:"blob_ref"`
	FileURL        string `json:"file_url"`
	IsPublished    bool   `json:"is_published" gorm:"default:false"`
	IsDeleted      bool   `gorm:"default:false"`
}
