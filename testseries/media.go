package testseries

import (
	"errors"
	"fmt"
	"log"
	"strings"

	tsModels "github.com/successfulca300-tech/ca-successfull-sub000/models/testseries"

	"gorm.io/gorm"
)

// ErrMetadataNotSaved is returned when both the transactional swap and
// the non-transactional fallback failed. The uploaded blob itself is
// intact; callers should report the upload as succeeded with a
// metadata-save failure rather than a hard error.
var ErrMetadataNotSaved = errors.New("media metadata could not be saved")

// MediaService maintains the one-active-asset-per-(series, kind)
// invariant. The swap is serialized through a database transaction, not
// an in-process lock, because several instances may run concurrently.
type MediaService struct {
	db       *gorm.DB
	registry *Registry
}

// NewMediaService builds the media reconciliation service.
func NewMediaService(db *gorm.DB, registry *Registry) *MediaService {
	return &MediaService{db: db, registry: registry}
}

// Attach records blobRef as the new active asset of (series, kind),
// archiving the previous active asset and pruning older archived rows.
// When the series only exists as a shorthand code, the managed record
// is materialized first and all later references use its key.
//
// The caller has already written the blob; on transaction failure a
// best-effort non-transactional retry runs so the upload is not lost.
func (m *MediaService) Attach(identifier, kind, blobRef, publicURL string) (*tsModels.MediaAsset, error) {
	if kind != tsModels.MediaThumbnail && kind != tsModels.MediaVideo {
		return nil, fmt.Errorf("unsupported media kind: %s", kind)
	}

	key, err := m.registry.Resolve(identifier)
	if err != nil {
		return nil, err
	}
	if key.Provisional() {
		key, err = m.registry.Materialize(key)
		if err != nil {
			return nil, err
		}
	}

	refs := key.Alternates()
	asset := tsModels.MediaAsset{
		SeriesRef: key.Canonical(),
		Kind:      kind,
		BlobRef:   blobRef,
		PublicURL: publicURL,
		Status:    tsModels.MediaActive,
	}

	txErr := m.db.Transaction(func(tx *gorm.DB) error {
		// Prune archived history so it never grows past one row.
		if err := tx.Unscoped().
			Where("series_ref IN ? AND kind = ? AND status = ?", refs, kind, tsModels.MediaArchived).
			Delete(&tsModels.MediaAsset{}).Error; err != nil {
			return err
		}

		var current tsModels.MediaAsset
		err := tx.Where("series_ref IN ? AND kind = ? AND status = ?", refs, kind, tsModels.MediaActive).
			First(&current).Error
		switch {
		case err == nil:
			if err := tx.Model(&current).Update("status", tsModels.MediaArchived).Error; err != nil {
				return err
			}
			asset.PreviousAsset = current.BlobRef
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		return tx.Create(&asset).Error
	})

	if txErr != nil {
		log.Printf("[MEDIA] Swap transaction failed for %s/%s, retrying without transaction: %v", key.Canonical(), kind, txErr)
		asset.ID = 0
		if err := m.attachFallback(refs, &asset); err != nil {
			// The blob write already succeeded and is the source of
			// truth for the caller's response; an orphaned blob is
			// cleaned up by the media sweeper.
			log.Printf("[MEDIA] Fallback insert also failed for %s/%s: %v", key.Canonical(), kind, err)
			return nil, ErrMetadataNotSaved
		}
	}

	if key.SeriesID != "" && key.TierCode != "" {
		go m.migrateShorthandRefs(key)
	}

	return &asset, nil
}

// attachFallback is the non-transactional retry: prune archived rows,
// then insert the new asset as active. It deliberately skips archiving
// the previous active asset rather than risk losing the upload.
func (m *MediaService) attachFallback(refs []string, asset *tsModels.MediaAsset) error {
	if err := m.db.Unscoped().
		Where("series_ref IN ? AND kind = ? AND status = ?", refs, asset.Kind, tsModels.MediaArchived).
		Delete(&tsModels.MediaAsset{}).Error; err != nil {
		log.Printf("[MEDIA] Fallback archive prune failed: %v", err)
	}
	return m.db.Create(asset).Error
}

// migrateShorthandRefs rewrites papers and media still referencing the
// tier shorthand to the managed record key, so every query converges on
// one representation. Runs asynchronously after a successful swap.
func (m *MediaService) migrateShorthandRefs(key CatalogKey) {
	shorthands := []string{strings.ToLower(key.TierCode), key.TierCode}

	res := m.db.Model(&tsModels.Paper{}).
		Where("series_ref IN ?", shorthands).
		Update("series_ref", key.SeriesID)
	if res.Error != nil {
		log.Printf("[MEDIA] Paper reference migration failed for %s: %v", key.TierCode, res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("[MEDIA] Migrated %d paper references from %s to %s", res.RowsAffected, key.TierCode, key.SeriesID)
	}

	res = m.db.Model(&tsModels.MediaAsset{}).
		Where("series_ref IN ?", shorthands).
		Update("series_ref", key.SeriesID)
	if res.Error != nil {
		log.Printf("[MEDIA] Media reference migration failed for %s: %v", key.TierCode, res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("[MEDIA] Migrated %d media references from %s to %s", res.RowsAffected, key.TierCode, key.SeriesID)
	}
}
