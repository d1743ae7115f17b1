package testseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisiblePapersScopedBySubjectTokens(t *testing.T) {
	db := newTestDB(t)
	reg := newTestRegistry(t, db)

	key, err := reg.Materialize(CatalogKey{TierCode: "FTS"})
	require.NoError(t, err)

	// papers under both reference forms; one unpublished
	seedPaper(t, db, "fts", "GROUP 1", "FR", "series1", true)
	seedPaper(t, db, key.SeriesID, "GROUP 1", "AFM", "series1", true)
	seedPaper(t, db, key.SeriesID, "GROUP 2", "DT", "series1", true)
	seedPaper(t, db, key.SeriesID, "GROUP 1", "FR", "series2", false)

	ent := Entitlement{HasAccess: true, Subjects: []string{"FR", "series1-AFM"}}

	papers, err := VisiblePapers(db, key, ent, PaperQuery{})
	require.NoError(t, err)
	require.Len(t, papers, 2)
	assert.Equal(t, "AFM", papers[0].Subject)
	assert.Equal(t, "FR", papers[1].Subject)
}

func TestVisiblePapersUnscopedSeesAllPublished(t *testing.T) {
	db := newTestDB(t)

	seedPaper(t, db, "hts", "GROUP 1", "FR", "", true)
	seedPaper(t, db, "hts", "GROUP 2", "DT", "", true)
	seedPaper(t, db, "hts", "GROUP 2", "IDT", "", false)

	key := CatalogKey{TierCode: "HTS"}
	ent := Entitlement{HasAccess: true, AllSubjects: true}

	papers, err := VisiblePapers(db, key, ent, PaperQuery{})
	require.NoError(t, err)
	assert.Len(t, papers, 2)
}

func TestVisiblePapersQueryFilters(t *testing.T) {
	db := newTestDB(t)

	seedPaper(t, db, "fts", "GROUP 1", "FR", "series1", true)
	seedPaper(t, db, "fts", "GROUP 1", "FR", "series2", true)
	seedPaper(t, db, "fts", "GROUP 2", "DT", "series1", true)

	key := CatalogKey{TierCode: "FTS"}
	ent := Entitlement{HasAccess: true, AllSubjects: true}

	papers, err := VisiblePapers(db, key, ent, PaperQuery{Group: "GROUP 1", Instance: "series1"})
	require.NoError(t, err)
	require.Len(t, papers, 1)
	assert.Equal(t, "FR", papers[0].Subject)

	papers, err = VisiblePapers(db, key, ent, PaperQuery{Subject: "DT"})
	require.NoError(t, err)
	assert.Len(t, papers, 1)
}

func TestVisiblePapersNoAccess(t *testing.T) {
	db := newTestDB(t)

	seedPaper(t, db, "fts", "GROUP 1", "FR", "series1", true)

	papers, err := VisiblePapers(db, CatalogKey{TierCode: "FTS"}, Entitlement{}, PaperQuery{})
	require.NoError(t, err)
	assert.Empty(t, papers)
}

func TestPublicSummaryCountsPublishedOnly(t *testing.T) {
	db := newTestDB(t)
	reg := newTestRegistry(t, db)

	key, err := reg.Materialize(CatalogKey{TierCode: "QTS"})
	require.NoError(t, err)

	seedPaper(t, db, "qts", "GROUP 1", "FR", "", true)
	seedPaper(t, db, key.SeriesID, "GROUP 1", "FR", "", true)
	seedPaper(t, db, key.SeriesID, "GROUP 2", "DT", "", true)
	seedPaper(t, db, key.SeriesID, "GROUP 2", "DT", "", false)

	counts, err := PublicSummary(db, key)
	require.NoError(t, err)

	require.Len(t, counts, 2)
	assert.Equal(t, SubjectCount{Subject: "DT", Papers: 1}, counts[0])
	assert.Equal(t, SubjectCount{Subject: "FR", Papers: 2}, counts[1])
}
