package testseries

import (
	"testing"

	tsModels "github.com/successfulca300-tech/ca-successfull-sub000/models/testseries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTierCodeAnyCase(t *testing.T) {
	reg := newTestRegistry(t, newTestDB(t))

	for _, id := range []string{"fts", "FTS", " Fts "} {
		key, err := reg.Resolve(id)
		require.NoError(t, err, id)
		assert.True(t, key.Provisional())
		assert.Equal(t, "FTS", key.TierCode)
		assert.Equal(t, "fts", key.Canonical())
	}
}

func TestResolveUnknownIdentifier(t *testing.T) {
	reg := newTestRegistry(t, newTestDB(t))

	_, err := reg.Resolve("bogus")
	assert.ErrorIs(t, err, ErrUnknownSeries)

	_, err = reg.Resolve("")
	assert.ErrorIs(t, err, ErrUnknownSeries)

	// well-formed record key with no record behind it
	_, err = reg.Resolve("0b6bd97a-40b3-44b5-a9f5-d4f3a8a1d001")
	assert.ErrorIs(t, err, ErrUnknownSeries)
}

func TestMaterializeThenResolveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	reg := newTestRegistry(t, db)

	key, err := reg.Resolve("hts")
	require.NoError(t, err)
	require.True(t, key.Provisional())

	key, err = reg.Materialize(key)
	require.NoError(t, err)
	require.False(t, key.Provisional())
	assert.Equal(t, key.SeriesID, key.Canonical())

	// both the shorthand and the record key now resolve to the same key
	byCode, err := reg.Resolve("hts")
	require.NoError(t, err)
	assert.Equal(t, key, byCode)

	byID, err := reg.Resolve(key.SeriesID)
	require.NoError(t, err)
	assert.Equal(t, key, byID)
}

func TestMaterializeConvergesRacingWriters(t *testing.T) {
	db := newTestDB(t)
	reg := newTestRegistry(t, db)

	// two provisional keys for the same tier, as two first-writers
	// would hold before either insert lands
	first, err := reg.Materialize(CatalogKey{TierCode: "QTS"})
	require.NoError(t, err)
	second, err := reg.Materialize(CatalogKey{TierCode: "QTS"})
	require.NoError(t, err)

	assert.Equal(t, first.SeriesID, second.SeriesID)

	var count int64
	require.NoError(t, db.Model(&tsModels.TestSeries{}).Where("tier_code = ?", "QTS").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMaterializeNonProvisionalNoOp(t *testing.T) {
	reg := newTestRegistry(t, newTestDB(t))

	key := CatalogKey{SeriesID: "existing-id", TierCode: "FTS"}
	got, err := reg.Materialize(key)
	require.NoError(t, err)
	assert.Equal(t, key, got)
}

func TestAlternatesCoverBothReferenceForms(t *testing.T) {
	provisional := CatalogKey{TierCode: "FTS"}
	assert.Equal(t, []string{"fts", "FTS"}, provisional.Alternates())

	managed := CatalogKey{SeriesID: "rec-1", TierCode: "FTS"}
	assert.Equal(t, []string{"rec-1", "fts", "FTS"}, managed.Alternates())
}

func TestEffectiveTierAppliesManagedOverrides(t *testing.T) {
	db := newTestDB(t)
	reg := newTestRegistry(t, db)

	key, err := reg.Materialize(CatalogKey{TierCode: "FTS"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&tsModels.TestSeries{}).
		Where("id = ?", key.SeriesID).
		Updates(map[string]interface{}{
			"subject_unit_price": 500,
			"subjects":           `["FR","AFM"]`,
		}).Error)

	def, err := reg.EffectiveTier(key)
	require.NoError(t, err)
	assert.Equal(t, uint(500), def.SubjectUnitPrice)
	assert.Equal(t, []string{"FR", "AFM"}, def.Subjects)
	assert.True(t, def.MultiInstance) // fixed rule inputs stay code-defined
}

func TestEffectiveTierProvisionalUsesDefaults(t *testing.T) {
	reg := newTestRegistry(t, newTestDB(t))

	def, err := reg.EffectiveTier(CatalogKey{TierCode: "STS"})
	require.NoError(t, err)
	assert.Equal(t, uint(700), def.SubjectUnitPrice)
	assert.Equal(t, CatalogSubjects, def.Subjects)
}
