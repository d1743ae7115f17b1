package utils

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/successfulca300-tech/ca-successfull-sub000/config"
	"github.com/successfulca300-tech/ca-successfull-sub000/database"
	"github.com/successfulca300-tech/ca-successfull-sub000/models"
	tsModels "github.com/successfulca300-tech/ca-successfull-sub000/models/testseries"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeMediaSweeper sets up the daily cleanup jobs: orphaned blob
// removal and stale pending purchase expiry.
func InitializeMediaSweeper() {
	log.Println("[MEDIA-SWEEP] Initializing media sweeper...")

	c := cron.New()

	// Run daily at 2:45 AM, outside upload hours
	c.AddFunc("45 2 * * *", func() {
		log.Println("[MEDIA-SWEEP] Running daily sweep...")
		SweepOrphanBlobs()
		ExpireStalePurchases()
	})

	c.Start()
	log.Println("[MEDIA-SWEEP] Media sweeper started - runs daily at 2:45 AM")
}

// SweepOrphanBlobs deletes blobs in the upload directory that no media
// asset or paper references. Orphans appear when a media swap fails
// after the blob write succeeded; the swap path deliberately keeps the
// blob and leaves cleanup to this sweep.
func SweepOrphanBlobs() {
	db := database.Database.Db

	referenced := make(map[string]struct{})

	var mediaRefs []string
	if err := db.Model(&tsModels.MediaAsset{}).Pluck("blob_ref", &mediaRefs).Error; err != nil {
		log.Printf("[MEDIA-SWEEP] Error fetching media blob refs: %v", err)
		return
	}
	for _, ref := range mediaRefs {
		referenced[ref] = struct{}{}
	}

	var paperRefs []string
	if err := db.Model(&tsModels.Paper{}).Where("is_deleted = false").Pluck("blob_ref", &paperRefs).Error; err != nil {
		log.Printf("[MEDIA-SWEEP] Error fetching paper blob refs: %v", err)
		return
	}
	for _, ref := range paperRefs {
		referenced[ref] = struct{}{}
	}

	entries, err := os.ReadDir(config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("[MEDIA-SWEEP] Error reading upload dir: %v", err)
		return
	}

	// Only touch blobs from before today; an in-flight upload may not
	// have its database row yet.
	cutoff := now.BeginningOfDay()

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referenced[entry.Name()]; ok {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(config.AppConfig.UploadDir, entry.Name())); err != nil {
			log.Printf("[MEDIA-SWEEP] Error removing orphan blob %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}

	log.Printf("[MEDIA-SWEEP] Sweep complete, removed %d orphan blobs", removed)
}

// ExpireStalePurchases marks pending purchases older than 7 days as
// failed so abandoned checkouts do not linger.
func ExpireStalePurchases() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -7)

	res := db.Model(&models.Purchase{}).
		Where("payment_status = ? AND created_at < ?", models.PaymentPending, cutoff).
		Update("payment_status", models.PaymentFailed)
	if res.Error != nil {
		log.Printf("[MEDIA-SWEEP] Error expiring stale purchases: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[MEDIA-SWEEP] Expired %d stale pending purchases", res.RowsAffected)
	}
}
