package testseries

import (
	tsModels "github.com/successfulca300-tech/ca-successfull-sub000/models/testseries"

	"gorm.io/gorm"
)

// PaperQuery carries the optional content filters of a paper listing.
type PaperQuery struct {
	Group    string
	Subject  string
	Instance string
}

// SubjectCount is one row of the public aggregate summary.
type SubjectCount struct {
	Subject string `json:"subject"`
	Papers  int64  `json:"papers"`
}

// VisiblePapers returns the published papers of a series the given
// entitlement may see, matching any alternate series reference. A
// subject-scoped entitlement filters papers through the token suffix
// rule; an unscoped one sees everything published.
func VisiblePapers(db *gorm.DB, key CatalogKey, ent Entitlement, q PaperQuery) ([]tsModels.Paper, error) {
	if !ent.HasAccess {
		return nil, nil
	}

	query := db.
		Where("series_ref IN ?", key.Alternates()).
		Where("is_published = ? AND is_deleted = ?", true, false)
	if q.Group != "" {
		query = query.Where("paper_group = ?", q.Group)
	}
	if q.Subject != "" {
		query = query.Where("subject = ?", q.Subject)
	}
	if q.Instance != "" {
		query = query.Where("series_instance = ?", q.Instance)
	}

	var papers []tsModels.Paper
	if err := query.Order("paper_group, subject, series_instance, id").Find(&papers).Error; err != nil {
		return nil, err
	}

	if ent.AllSubjects {
		return papers, nil
	}

	visible := papers[:0]
	for _, p := range papers {
		if ent.Allows(p.Subject) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// PublicSummary returns per-subject counts of published papers. Used by
// unauthenticated catalog pages, which never see paper rows themselves.
func PublicSummary(db *gorm.DB, key CatalogKey) ([]SubjectCount, error) {
	var counts []SubjectCount
	err := db.
		Model(&tsModels.Paper{}).
		Select("subject, count(*) as papers").
		Where("series_ref IN ?", key.Alternates()).
		Where("is_published = ? AND is_deleted = ?", true, false).
		Group("subject").
		Order("subject").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
