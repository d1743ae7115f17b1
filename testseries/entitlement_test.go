package testseries

import (
	"testing"

	"github.com/successfulca300-tech/ca-successfull-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitlementUnionsPurchasesAcrossReferenceForms(t *testing.T) {
	db := newTestDB(t)
	reg := newTestRegistry(t, db)
	resolver := NewResolver(db, reg)

	key, err := reg.Materialize(CatalogKey{TierCode: "FTS"})
	require.NoError(t, err)

	// one purchase under the shorthand, one under the managed key
	seedPurchase(t, db, 7, models.ResourceTestSeries, "fts", models.PaymentPaid, []string{"FR"})
	seedPurchase(t, db, 7, models.ResourceTestSeries, key.SeriesID, models.PaymentPaid, []string{"series1-AFM"})

	ent, err := resolver.Entitlement(7, "fts")
	require.NoError(t, err)

	assert.True(t, ent.HasAccess)
	assert.False(t, ent.AllSubjects)
	assert.Equal(t, []string{"FR", "series1-AFM"}, ent.Subjects)

	assert.True(t, ent.Allows("FR"))
	assert.True(t, ent.Allows("AFM"), "series1-AFM must grant AFM via its suffix")
	assert.False(t, ent.Allows("DT"))
}

func TestEntitlementLegacyPurchaseGrantsUnscopedAccess(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db, newTestRegistry(t, db))

	seedPurchase(t, db, 3, models.ResourceTestSeries, "hts", models.PaymentPaid, nil)

	ent, err := resolver.Entitlement(3, "HTS")
	require.NoError(t, err)

	assert.True(t, ent.HasAccess)
	assert.True(t, ent.AllSubjects)
	assert.Empty(t, ent.Subjects)
	assert.True(t, ent.Allows("IDT"))
}

func TestEntitlementNoPurchases(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db, newTestRegistry(t, db))

	ent, err := resolver.Entitlement(3, "fts")
	require.NoError(t, err)

	assert.False(t, ent.HasAccess)
	assert.False(t, ent.Allows("FR"))
}

func TestEntitlementIgnoresIrrelevantPurchases(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db, newTestRegistry(t, db))

	seedPurchase(t, db, 5, models.ResourceTestSeries, "fts", models.PaymentPending, []string{"FR"})
	seedPurchase(t, db, 5, models.ResourceCourse, "fts", models.PaymentPaid, nil)
	seedPurchase(t, db, 5, models.ResourceTestSeries, "sts", models.PaymentPaid, []string{"FR"})
	seedPurchase(t, db, 9, models.ResourceTestSeries, "fts", models.PaymentPaid, []string{"FR"})

	ent, err := resolver.Entitlement(5, "fts")
	require.NoError(t, err)
	assert.False(t, ent.HasAccess, "pending, other-resource, other-series and other-user purchases must not grant access")
}

func TestEntitlementUnknownSeries(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db, newTestRegistry(t, db))

	_, err := resolver.Entitlement(5, "bogus")
	assert.ErrorIs(t, err, ErrUnknownSeries)
}
