package testseries

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/successfulca300-tech/ca-successfull-sub000/models"

	"gorm.io/gorm"
)

// Entitlement is the computed subject-level access a user holds for one
// series. No matching paid purchase yields HasAccess=false; a paid
// purchase with no recorded subjects yields unscoped full access
// (AllSubjects=true), preserving pre-subject-tracking purchases.
type Entitlement struct {
	HasAccess   bool     `json:"has_access"`
	AllSubjects bool     `json:"all_subjects"`
	Subjects    []string `json:"subjects,omitempty"` // sorted union of purchased tokens
}

// Allows reports whether the entitlement covers a subject. A purchased
// token matches either exactly or via its "<instance>-<subject>" suffix,
// so "series1-AFM" grants AFM within series1.
func (e Entitlement) Allows(subject string) bool {
	if !e.HasAccess {
		return false
	}
	if e.AllSubjects {
		return true
	}
	for _, token := range e.Subjects {
		if token == subject {
			return true
		}
		if _, suffix, found := strings.Cut(token, "-"); found && suffix == subject {
			return true
		}
	}
	return false
}

// Resolver computes entitlements from paid purchase records.
type Resolver struct {
	db       *gorm.DB
	registry *Registry
}

// NewResolver builds an entitlement resolver over the given registry.
func NewResolver(db *gorm.DB, registry *Registry) *Resolver {
	return &Resolver{db: db, registry: registry}
}

// Entitlement resolves the identifier and computes the user's access.
func (r *Resolver) Entitlement(userID uint, identifier string) (Entitlement, error) {
	key, err := r.registry.Resolve(identifier)
	if err != nil {
		return Entitlement{}, err
	}
	return r.EntitlementForKey(userID, key)
}

// EntitlementForKey merges every paid purchase for the series - under
// any alternate reference form - into one access decision. Read-only;
// under concurrent purchase confirmation a partial union may be
// observed, which is acceptable (a later read converges).
func (r *Resolver) EntitlementForKey(userID uint, key CatalogKey) (Entitlement, error) {
	var purchases []models.Purchase
	err := r.db.
		Where("user_id = ? AND resource_type = ? AND payment_status = ? AND is_deleted = ?",
			userID, models.ResourceTestSeries, models.PaymentPaid, false).
		Where("resource_ref IN ?", key.Alternates()).
		Find(&purchases).Error
	if err != nil {
		return Entitlement{}, err
	}

	if len(purchases) == 0 {
		return Entitlement{}, nil
	}

	union := make(map[string]struct{})
	for _, p := range purchases {
		if len(p.PurchasedSubjects) == 0 {
			continue
		}
		var tokens []string
		if err := json.Unmarshal(p.PurchasedSubjects, &tokens); err != nil {
			continue // malformed legacy row; treat as no tokens
		}
		for _, t := range tokens {
			if t = strings.TrimSpace(t); t != "" {
				union[t] = struct{}{}
			}
		}
	}

	// Empty union means at least one paid purchase predates subject
	// tracking: unscoped full access.
	if len(union) == 0 {
		return Entitlement{HasAccess: true, AllSubjects: true}, nil
	}

	subjects := make([]string, 0, len(union))
	for t := range union {
		subjects = append(subjects, t)
	}
	sort.Strings(subjects)

	return Entitlement{HasAccess: true, Subjects: subjects}, nil
}
