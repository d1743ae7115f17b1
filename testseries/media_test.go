package testseries

import (
	"testing"

	tsModels "github.com/successfulca300-tech/ca-successfull-sub000/models/testseries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachMaterializesAndKeepsOneActive(t *testing.T) {
	db := newTestDB(t)
	reg := newTestRegistry(t, db)
	svc := NewMediaService(db, reg)

	first, err := svc.Attach("fts", tsModels.MediaThumbnail, "blob-1", "/uploads/blob-1")
	require.NoError(t, err)
	assert.Equal(t, tsModels.MediaActive, first.Status)
	assert.Empty(t, first.PreviousAsset)

	// the shorthand upload materialized the managed record and the
	// asset was written under its key
	key, err := reg.Resolve("fts")
	require.NoError(t, err)
	require.False(t, key.Provisional())
	assert.Equal(t, key.SeriesID, first.SeriesRef)

	second, err := svc.Attach("FTS", tsModels.MediaThumbnail, "blob-2", "/uploads/blob-2")
	require.NoError(t, err)
	assert.Equal(t, tsModels.MediaActive, second.Status)
	assert.Equal(t, "blob-1", second.PreviousAsset)

	var active, archived []tsModels.MediaAsset
	require.NoError(t, db.Where("series_ref IN ? AND kind = ? AND status = ?",
		key.Alternates(), tsModels.MediaThumbnail, tsModels.MediaActive).Find(&active).Error)
	require.NoError(t, db.Where("series_ref IN ? AND kind = ? AND status = ?",
		key.Alternates(), tsModels.MediaThumbnail, tsModels.MediaArchived).Find(&archived).Error)

	require.Len(t, active, 1)
	assert.Equal(t, "blob-2", active[0].BlobRef)
	require.Len(t, archived, 1)
	assert.Equal(t, "blob-1", archived[0].BlobRef)
}

func TestAttachPrunesOlderArchivedAssets(t *testing.T) {
	db := newTestDB(t)
	svc := NewMediaService(db, newTestRegistry(t, db))

	for _, blob := range []string{"blob-1", "blob-2", "blob-3"} {
		_, err := svc.Attach("sts", tsModels.MediaVideo, blob, "/uploads/"+blob)
		require.NoError(t, err)
	}

	key, err := newTestRegistry(t, db).Resolve("sts")
	require.NoError(t, err)

	var assets []tsModels.MediaAsset
	require.NoError(t, db.Where("series_ref IN ? AND kind = ?",
		key.Alternates(), tsModels.MediaVideo).Order("id").Find(&assets).Error)

	// archived history never grows past one row
	require.Len(t, assets, 2)
	assert.Equal(t, "blob-2", assets[0].BlobRef)
	assert.Equal(t, tsModels.MediaArchived, assets[0].Status)
	assert.Equal(t, "blob-3", assets[1].BlobRef)
	assert.Equal(t, tsModels.MediaActive, assets[1].Status)
}

func TestAttachKindsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	svc := NewMediaService(db, newTestRegistry(t, db))

	_, err := svc.Attach("hts", tsModels.MediaThumbnail, "thumb-1", "/uploads/thumb-1")
	require.NoError(t, err)
	video, err := svc.Attach("hts", tsModels.MediaVideo, "video-1", "/uploads/video-1")
	require.NoError(t, err)

	// attaching a video must not archive the thumbnail
	assert.Empty(t, video.PreviousAsset)

	var count int64
	require.NoError(t, db.Model(&tsModels.MediaAsset{}).
		Where("status = ?", tsModels.MediaActive).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestAttachRejectsUnknownKindAndSeries(t *testing.T) {
	db := newTestDB(t)
	svc := NewMediaService(db, newTestRegistry(t, db))

	_, err := svc.Attach("fts", "banner", "blob-1", "/uploads/blob-1")
	assert.Error(t, err)

	_, err = svc.Attach("bogus", tsModels.MediaThumbnail, "blob-1", "/uploads/blob-1")
	assert.ErrorIs(t, err, ErrUnknownSeries)
}

func TestAttachFallbackInsertsActiveAsset(t *testing.T) {
	db := newTestDB(t)
	svc := NewMediaService(db, newTestRegistry(t, db))

	// leftover archived row from an aborted swap attempt
	require.NoError(t, db.Create(&tsModels.MediaAsset{
		SeriesRef: "fts", Kind: tsModels.MediaThumbnail,
		BlobRef: "stale", Status: tsModels.MediaArchived,
	}).Error)

	asset := &tsModels.MediaAsset{
		SeriesRef: "fts", Kind: tsModels.MediaThumbnail,
		BlobRef: "blob-9", PublicURL: "/uploads/blob-9",
		Status: tsModels.MediaActive,
	}
	require.NoError(t, svc.attachFallback([]string{"fts", "FTS"}, asset))

	// the retry path must never leave the series without an active asset
	var assets []tsModels.MediaAsset
	require.NoError(t, db.Where("series_ref IN ?", []string{"fts", "FTS"}).Find(&assets).Error)
	require.Len(t, assets, 1)
	assert.Equal(t, tsModels.MediaActive, assets[0].Status)
	assert.Equal(t, "blob-9", assets[0].BlobRef)
}

func TestMigrateShorthandRefsRewritesLegacyRows(t *testing.T) {
	db := newTestDB(t)
	reg := newTestRegistry(t, db)
	svc := NewMediaService(db, reg)

	seedPaper(t, db, "fts", "GROUP 1", "FR", "series1", true)
	seedPaper(t, db, "FTS", "GROUP 1", "AFM", "series1", true)

	key, err := reg.Materialize(CatalogKey{TierCode: "FTS"})
	require.NoError(t, err)

	svc.migrateShorthandRefs(key)

	var count int64
	require.NoError(t, db.Model(&tsModels.Paper{}).
		Where("series_ref = ?", key.SeriesID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
