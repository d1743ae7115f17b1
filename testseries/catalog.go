package testseries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	tsModels "github.com/successfulca300-tech/ca-successfull-sub000/models/testseries"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownSeries is returned when an identifier matches neither a
// managed record key nor one of the known tier codes.
var ErrUnknownSeries = errors.New("unknown series identifier")

// Tier codes (shorthand series references usable before any managed
// record exists)
const (
	TierFull    = "FTS" // full syllabus, three parallel series
	TierHalf    = "HTS" // 50% syllabus coverage
	TierSelect  = "QTS" // 30% syllabus coverage
	TierSpecial = "STS" // specials
)

// TierDef is the immutable, code-defined description of one catalog
// tier. It is always available without a database lookup.
type TierDef struct {
	Code     string
	Label    string
	Subjects []string

	// Pricing rule inputs (see Price)
	SubjectUnitPrice uint
	PapersPerSubject int
	MultiInstance    bool
	KnownInstances   []string

	// STS-only specials pricing
	ComboSize        int
	ComboPrice       uint
	AllSubjectsPrice uint

	// Informational bundle price for FTS; the engine never applies it
	AllSeriesAllSubjectsPrice uint

	// Cap on percent coupons; 0 means uncapped
	PercentDiscountCap uint
}

// CatalogSubjects is the full subject list shared by every tier.
var CatalogSubjects = []string{"FR", "AFM", "AA", "DT", "IDT", "IBS"}

// SeriesInstances are the parallel series of the full-syllabus tier.
var SeriesInstances = []string{"series1", "series2", "series3"}

// DefaultCatalog returns the fixed four-tier catalog. Callers inject it
// into NewRegistry so tests can substitute their own table.
func DefaultCatalog() []TierDef {
	return []TierDef{
		{
			Code:                      TierFull,
			Label:                     "Full Syllabus Test Series",
			Subjects:                  CatalogSubjects,
			SubjectUnitPrice:          450,
			PapersPerSubject:          1,
			MultiInstance:             true,
			KnownInstances:            SeriesInstances,
			AllSeriesAllSubjectsPrice: 5999,
		},
		{
			Code:             TierHalf,
			Label:            "Half Syllabus Test Series",
			Subjects:         CatalogSubjects,
			SubjectUnitPrice: 550,
			PapersPerSubject: 2,
		},
		{
			Code:             TierSelect,
			Label:            "Chapter-wise Test Series",
			Subjects:         CatalogSubjects,
			SubjectUnitPrice: 350,
			PapersPerSubject: 3,
		},
		{
			Code:               TierSpecial,
			Label:              "Specials Test Series",
			Subjects:           CatalogSubjects,
			SubjectUnitPrice:   700,
			PapersPerSubject:   6,
			ComboSize:          2,
			ComboPrice:         1200,
			AllSubjectsPrice:   3600,
			PercentDiscountCap: 16,
		},
	}
}

// CatalogKey is the resolved identity of a series. A key is provisional
// when only the fixed tier definition exists; write paths must call
// Registry.Materialize before persisting anything against it.
type CatalogKey struct {
	SeriesID string // managed record key, empty for provisional keys
	TierCode string // canonical (uppercase) tier code
}

// Provisional reports whether no managed record backs this key yet.
func (k CatalogKey) Provisional() bool {
	return k.SeriesID == ""
}

// Canonical returns the reference new rows should be written under: the
// managed record key when one exists, otherwise the lowercase shorthand.
func (k CatalogKey) Canonical() string {
	if k.SeriesID != "" {
		return k.SeriesID
	}
	return strings.ToLower(k.TierCode)
}

// Alternates returns every reference form historical rows may have been
// written under. Downstream queries must match any of these, because
// purchases, papers and media created before materialization carry the
// shorthand while newer rows carry the managed key.
func (k CatalogKey) Alternates() []string {
	refs := make([]string, 0, 3)
	if k.SeriesID != "" {
		refs = append(refs, k.SeriesID)
	}
	if k.TierCode != "" {
		refs = append(refs, strings.ToLower(k.TierCode), k.TierCode)
	}
	return refs
}

// Registry resolves series identifiers against the fixed catalog and
// the managed records table.
type Registry struct {
	db    *gorm.DB
	tiers map[string]TierDef
}

// NewRegistry builds a registry over the given catalog table.
func NewRegistry(db *gorm.DB, catalog []TierDef) *Registry {
	tiers := make(map[string]TierDef, len(catalog))
	for _, def := range catalog {
		tiers[strings.ToUpper(def.Code)] = def
	}
	return &Registry{db: db, tiers: tiers}
}

// Tier returns the fixed definition for a tier code.
func (r *Registry) Tier(code string) (TierDef, bool) {
	def, ok := r.tiers[strings.ToUpper(strings.TrimSpace(code))]
	return def, ok
}

// Resolve maps an identifier (managed record key, tier code in any
// case, or garbage) to a CatalogKey.
//
// Resolution order:
//  1. identifier parses as a record key -> look up the managed record
//  2. identifier matches a known tier code -> look up its managed
//     record by tier code
//  3. tier code with no managed record yet -> provisional key (valid
//     for reads; writes must Materialize)
//  4. anything else -> ErrUnknownSeries
func (r *Registry) Resolve(identifier string) (CatalogKey, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return CatalogKey{}, fmt.Errorf("%w: empty identifier", ErrUnknownSeries)
	}

	if _, err := uuid.Parse(identifier); err == nil {
		var rec tsModels.TestSeries
		err := r.db.Where("id = ? AND is_deleted = ?", identifier, false).First(&rec).Error
		if err == nil {
			return CatalogKey{SeriesID: rec.ID, TierCode: strings.ToUpper(rec.TierCode)}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return CatalogKey{}, err
		}
		// Record keys never double as tier codes; fall through so the
		// caller gets ErrUnknownSeries below.
	}

	code := strings.ToUpper(identifier)
	if _, ok := r.tiers[code]; !ok {
		return CatalogKey{}, fmt.Errorf("%w: %s", ErrUnknownSeries, identifier)
	}

	var rec tsModels.TestSeries
	err := r.db.Where("tier_code = ? AND is_deleted = ?", code, false).First(&rec).Error
	if err == nil {
		return CatalogKey{SeriesID: rec.ID, TierCode: code}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return CatalogKey{}, err
	}

	return CatalogKey{TierCode: code}, nil
}

// Materialize creates the managed record for a provisional key, copying
// the tier defaults, and returns the persisted key. Safe to call with a
// non-provisional key (no-op).
//
// Two concurrent first-writers can both attempt creation; the unique
// tier_code index plus the re-fetch below converge them on one record.
func (r *Registry) Materialize(key CatalogKey) (CatalogKey, error) {
	if !key.Provisional() {
		return key, nil
	}

	def, ok := r.tiers[key.TierCode]
	if !ok {
		return CatalogKey{}, fmt.Errorf("%w: %s", ErrUnknownSeries, key.TierCode)
	}

	subjects, err := json.Marshal(def.Subjects)
	if err != nil {
		return CatalogKey{}, err
	}

	rec := tsModels.TestSeries{
		ID:               uuid.NewString(),
		TierCode:         def.Code,
		Title:            def.Label,
		Subjects:         subjects,
		SubjectUnitPrice: def.SubjectUnitPrice,
		IsPublished:      true,
	}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tier_code"}},
		DoNothing: true,
	}).Create(&rec).Error; err != nil {
		return CatalogKey{}, err
	}

	// Re-fetch whichever row won the insert race.
	var winner tsModels.TestSeries
	if err := r.db.Where("tier_code = ?", def.Code).First(&winner).Error; err != nil {
		return CatalogKey{}, err
	}

	return CatalogKey{SeriesID: winner.ID, TierCode: def.Code}, nil
}

// EffectiveTier merges the managed record's editable fields over the
// fixed tier defaults. Provisional keys yield the defaults unchanged.
func (r *Registry) EffectiveTier(key CatalogKey) (TierDef, error) {
	def, ok := r.tiers[key.TierCode]
	if !ok {
		return TierDef{}, fmt.Errorf("%w: %s", ErrUnknownSeries, key.TierCode)
	}
	if key.Provisional() {
		return def, nil
	}

	var rec tsModels.TestSeries
	if err := r.db.Where("id = ?", key.SeriesID).First(&rec).Error; err != nil {
		return TierDef{}, err
	}
	if rec.SubjectUnitPrice > 0 {
		def.SubjectUnitPrice = rec.SubjectUnitPrice
	}
	if len(rec.Subjects) > 0 {
		var subjects []string
		if err := json.Unmarshal(rec.Subjects, &subjects); err == nil && len(subjects) > 0 {
			def.Subjects = subjects
		}
	}
	return def, nil
}
