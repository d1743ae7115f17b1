package testseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceFullTierMultipliesSubjectsByInstances(t *testing.T) {
	def := tierDef(t, TierFull)

	quote := Price(def, []string{"series1", "series2", "series3"},
		[]string{"FR", "AFM", "AA", "DT", "IDT"}, nil)

	// unit 450 x 5 subjects x 3 instances, never the informational
	// bundle price
	assert.Equal(t, uint(6750), quote.BasePrice)
	assert.Equal(t, uint(0), quote.Discount)
	assert.Equal(t, uint(6750), quote.FinalPrice)
	assert.Equal(t, 15, quote.TotalPapers)
	assert.Equal(t, "per-subject", quote.Breakdown.PriceRule)
}

func TestPriceFullTierDefaultsToOneInstance(t *testing.T) {
	def := tierDef(t, TierFull)

	quote := Price(def, nil, []string{"FR", "AFM"}, nil)

	assert.Equal(t, uint(900), quote.BasePrice)
	assert.Equal(t, 2, quote.TotalPapers)
}

func TestPriceSingleInstanceTiers(t *testing.T) {
	half := Price(tierDef(t, TierHalf), nil, []string{"FR", "DT"}, nil)
	assert.Equal(t, uint(1100), half.BasePrice)
	assert.Equal(t, 4, half.TotalPapers)

	sel := Price(tierDef(t, TierSelect), nil, []string{"FR", "DT"}, nil)
	assert.Equal(t, uint(700), sel.BasePrice)
	assert.Equal(t, 6, sel.TotalPapers)
}

func TestPriceSpecialsComboRule(t *testing.T) {
	quote := Price(tierDef(t, TierSpecial), nil, []string{"FR", "AFM"}, nil)

	assert.Equal(t, uint(1200), quote.BasePrice)
	assert.Equal(t, "combo", quote.Breakdown.PriceRule)
	assert.Equal(t, 12, quote.TotalPapers)
}

func TestPriceSpecialsAllSubjectsRule(t *testing.T) {
	def := tierDef(t, TierSpecial)

	quote := Price(def, nil, def.Subjects, nil)

	assert.Equal(t, uint(3600), quote.BasePrice)
	assert.Equal(t, "all-subjects", quote.Breakdown.PriceRule)
}

func TestPriceSpecialsPerSubjectOtherwise(t *testing.T) {
	quote := Price(tierDef(t, TierSpecial), nil, []string{"FR", "AFM", "DT"}, nil)

	assert.Equal(t, uint(2100), quote.BasePrice)
	assert.Equal(t, "per-subject", quote.Breakdown.PriceRule)
}

func TestPercentCouponCappedOnSpecials(t *testing.T) {
	def := tierDef(t, TierSpecial)

	quote := Price(def, nil, def.Subjects, &CouponSpec{Type: "PERCENT", Value: 20})

	// 20% asked, 16% cap applies: floor(3600 x 16 / 100) = 576
	assert.Equal(t, uint(3600), quote.BasePrice)
	assert.Equal(t, uint(576), quote.Discount)
	assert.Equal(t, uint(3024), quote.FinalPrice)
}

func TestPercentCouponUncappedOnOtherTiers(t *testing.T) {
	quote := Price(tierDef(t, TierHalf), nil, []string{"FR", "DT"},
		&CouponSpec{Type: "PERCENT", Value: 20})

	assert.Equal(t, uint(220), quote.Discount)
	assert.Equal(t, uint(880), quote.FinalPrice)
}

func TestFlatCouponClampedToBasePrice(t *testing.T) {
	quote := Price(tierDef(t, TierHalf), nil, []string{"FR"},
		&CouponSpec{Type: "FLAT", Value: 5000})

	assert.Equal(t, uint(550), quote.BasePrice)
	assert.Equal(t, uint(550), quote.Discount)
	assert.Equal(t, uint(0), quote.FinalPrice)
}

func TestCouponIgnoredWithoutPapers(t *testing.T) {
	quote := Price(tierDef(t, TierHalf), nil, nil,
		&CouponSpec{Type: "FLAT", Value: 100})

	assert.Equal(t, 0, quote.TotalPapers)
	assert.Equal(t, uint(0), quote.Discount)
}

func TestValidateSelectionInstanceRules(t *testing.T) {
	full := tierDef(t, TierFull)
	half := tierDef(t, TierHalf)

	errs := ValidateSelection(full, nil, []string{"FR"})
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "FTS")

	errs = ValidateSelection(full, []string{"series9"}, []string{"FR"})
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "series9")

	// single-instance tier rejects an instance selection, naming itself
	errs = ValidateSelection(half, []string{"series1"}, []string{"FR"})
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "HTS")

	assert.Empty(t, ValidateSelection(half, nil, []string{"FR", "DT"}))
	assert.Empty(t, ValidateSelection(full, []string{"series1", "series3"}, []string{"AA"}))
}

func TestValidateSelectionSubjectRules(t *testing.T) {
	half := tierDef(t, TierHalf)

	errs := ValidateSelection(half, nil, nil)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "subject")

	errs = ValidateSelection(half, nil, []string{"FR", "BOGUS"})
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "BOGUS")
}
