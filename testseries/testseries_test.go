package testseries

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/successfulca300-tech/ca-successfull-sub000/models"
	tsModels "github.com/successfulca300-tech/ca-successfull-sub000/models/testseries"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway in-memory database migrated with the
// engine's models. Shared cache keeps the database alive across the
// pool's connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Purchase{},
		&tsModels.TestSeries{},
		&tsModels.Paper{},
		&tsModels.MediaAsset{},
	))

	return db
}

func newTestRegistry(t *testing.T, db *gorm.DB) *Registry {
	t.Helper()
	return NewRegistry(db, DefaultCatalog())
}

// tierDef fetches one tier from the default catalog.
func tierDef(t *testing.T, code string) TierDef {
	t.Helper()
	for _, def := range DefaultCatalog() {
		if def.Code == code {
			return def
		}
	}
	t.Fatalf("no tier %s in default catalog", code)
	return TierDef{}
}

// seedPurchase inserts a purchase row the entitlement resolver will
// consider (or skip, depending on status/resource type).
func seedPurchase(t *testing.T, db *gorm.DB, userID uint, resourceType, ref, status string, subjects []string) models.Purchase {
	t.Helper()

	p := models.Purchase{
		UserID:        userID,
		ResourceType:  resourceType,
		ResourceRef:   ref,
		PaymentStatus: status,
		Amount:        1000,
	}
	if subjects != nil {
		raw, err := json.Marshal(subjects)
		require.NoError(t, err)
		p.PurchasedSubjects = raw
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// seedPaper inserts a paper row for visibility tests.
func seedPaper(t *testing.T, db *gorm.DB, ref, group, subject, instance string, published bool) tsModels.Paper {
	t.Helper()

	paper := tsModels.Paper{
		SeriesRef:      ref,
		GroupName:      group,
		Subject:        subject,
		SeriesInstance: instance,
		PaperType:      "QUESTION",
		Title:          subject + " paper",
		BlobRef:        subject + "-" + instance + ".pdf",
		IsPublished:    published,
	}
	require.NoError(t, db.Create(&paper).Error)
	return paper
}
