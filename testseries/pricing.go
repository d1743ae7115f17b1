package testseries

import "fmt"

// CouponSpec is the pricing-relevant slice of a coupon record.
type CouponSpec struct {
	Type  string // FLAT, PERCENT
	Value uint   // rupees for FLAT, percent for PERCENT
}

// QuoteBreakdown explains which rule produced the base price.
type QuoteBreakdown struct {
	TierCode      string `json:"tier_code"`
	SubjectCount  int    `json:"subject_count"`
	InstanceCount int    `json:"instance_count"`
	UnitPrice     uint   `json:"unit_price"`
	PriceRule     string `json:"price_rule"` // per-subject, combo, all-subjects
}

// Quote is the result of pricing one selection.
type Quote struct {
	BasePrice   uint           `json:"base_price"`
	Discount    uint           `json:"discount"`
	FinalPrice  uint           `json:"final_price"`
	TotalPapers int            `json:"total_papers"`
	Breakdown   QuoteBreakdown `json:"breakdown"`
}

// Price computes the quote for a tier, a selection of series instances
// and subjects, and an optional coupon. Pure function; callers validate
// the selection first (see ValidateSelection).
//
// Rules (N = subject count, S = instance count):
//   - multi-instance tier (FTS): base = unit x N x max(1,S), papers = N x S
//   - single-instance tiers:     base = unit x N, papers = N x papersPerSubject
//   - specials (STS): combo price when N equals the combo size, the
//     all-subjects price when N covers the whole catalog, unit x N otherwise
//
// The FTS bundle price (AllSeriesAllSubjectsPrice) is informational only
// and never applied here.
func Price(def TierDef, instances, subjects []string, coupon *CouponSpec) Quote {
	n := uint(len(subjects))
	s := uint(len(instances))

	breakdown := QuoteBreakdown{
		TierCode:      def.Code,
		SubjectCount:  int(n),
		InstanceCount: int(s),
		UnitPrice:     def.SubjectUnitPrice,
		PriceRule:     "per-subject",
	}

	var base uint
	var papers int
	switch {
	case def.MultiInstance:
		if s < 1 {
			s = 1
		}
		base = def.SubjectUnitPrice * n * s
		papers = int(n) * def.PapersPerSubject * int(s)
	case def.ComboSize > 0 && int(n) == def.ComboSize:
		base = def.ComboPrice
		papers = int(n) * def.PapersPerSubject
		breakdown.PriceRule = "combo"
	case def.AllSubjectsPrice > 0 && int(n) == len(def.Subjects):
		base = def.AllSubjectsPrice
		papers = int(n) * def.PapersPerSubject
		breakdown.PriceRule = "all-subjects"
	default:
		base = def.SubjectUnitPrice * n
		papers = int(n) * def.PapersPerSubject
	}

	var discount uint
	if coupon != nil && papers > 0 {
		switch coupon.Type {
		case "FLAT":
			discount = coupon.Value
			if discount > base {
				discount = base
			}
		case "PERCENT":
			pct := coupon.Value
			if def.PercentDiscountCap > 0 && pct > def.PercentDiscountCap {
				pct = def.PercentDiscountCap
			}
			discount = base * pct / 100 // integer division floors
			if discount > base {
				discount = base
			}
		}
	}

	return Quote{
		BasePrice:   base,
		Discount:    discount,
		FinalPrice:  base - discount,
		TotalPapers: papers,
		Breakdown:   breakdown,
	}
}

// ValidateSelection checks a selection against the tier's rules and
// returns human-readable errors. An empty result means the selection is
// valid; the caller decides HTTP framing.
func ValidateSelection(def TierDef, instances, subjects []string) []string {
	var errs []string

	if def.MultiInstance {
		if len(instances) == 0 {
			errs = append(errs, fmt.Sprintf("%s requires at least one series selection!", def.Code))
		}
		for _, inst := range instances {
			if !contains(def.KnownInstances, inst) {
				errs = append(errs, fmt.Sprintf("Unknown series instance: %s!", inst))
			}
		}
	} else if len(instances) > 0 {
		errs = append(errs, fmt.Sprintf("%s does not take a series selection!", def.Code))
	}

	if len(subjects) == 0 {
		errs = append(errs, "At least one subject must be selected!")
	}
	for _, sub := range subjects {
		if !contains(def.Subjects, sub) {
			errs = append(errs, fmt.Sprintf("Unknown subject: %s!", sub))
		}
	}

	return errs
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
