package commission

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrTiersAreRequired = errs.NewValueIsRequiredError("commission tiers")

// Tier applies to cumulative order counts in [min, max]. A nil max makes the
// tier unbounded.
type Tier struct {
	min   int
	max   *int
	rate  decimal.Decimal
	fixed kernel.Money
}

func NewTier(minCount int, maxCount *int, rate decimal.Decimal, fixed kernel.Money) (Tier, error) {
	if minCount < 1 {
		return Tier{}, errs.NewValueIsOutOfRangeError("orderCountMin", minCount, 1, "unbounded")
	}
	if maxCount != nil && *maxCount < minCount {
		return Tier{}, errs.NewValueIsOutOfRangeError("orderCountMax", *maxCount, minCount, "unbounded")
	}
	if rate.IsNegative() {
		return Tier{}, errs.NewValueIsOutOfRangeError("percentageRate", rate.String(), 0, "unbounded")
	}
	if err := fixed.Validate(); err != nil {
		return Tier{}, err
	}
	if fixed.IsNegative() {
		return Tier{}, errs.NewValueIsOutOfRangeError("fixedAmount", fixed.String(), 0, "unbounded")
	}

	t := Tier{min: minCount, rate: rate, fixed: fixed}
	if maxCount != nil {
		m := *maxCount
		t.max = &m
	}
	return t, nil
}

func (t Tier) Min() int              { return t.min }
func (t Tier) Rate() decimal.Decimal { return t.rate }
func (t Tier) Fixed() kernel.Money   { return t.fixed }
func (t Tier) IsUnbounded() bool     { return t.max == nil }

func (t Tier) Max() *int {
	if t.max == nil {
		return nil
	}
	m := *t.max
	return &m
}

// Contains reports whether count falls in the tier.
func (t Tier) Contains(count int) bool {
	return count >= t.min && (t.max == nil || count <= *t.max)
}

// Commission is amount × rate / 100 + fixed, rounded to cents.
func (t Tier) Commission(amount kernel.Money) (kernel.Money, error) {
	c, err := amount.Percent(t.rate).Add(t.fixed)
	if err != nil {
		return kernel.Money{}, err
	}
	return c.Round(2), nil
}

// ValidateTiers checks that the table starts at 1, is contiguous without
// overlaps, ends with an unbounded tier, never lowers the rate or the fixed
// amount, and is denominated in cur.
func ValidateTiers(tiers []Tier, cur kernel.Currency) error {
	if len(tiers) == 0 {
		return ErrTiersAreRequired
	}
	if tiers[0].min != 1 {
		return errs.NewValueIsInvalidErrorWithCause("commission tiers",
			fmt.Errorf("first tier starts at %d, not 1", tiers[0].min))
	}

	for i, t := range tiers {
		if !t.fixed.Currency().IsEqual(cur) {
			return errs.NewValueIsInvalidErrorWithCause("commission tiers",
				fmt.Errorf("tier %d is in %s, expected %s", i+1, t.fixed.Currency(), cur))
		}
		last := i == len(tiers)-1
		if last {
			if t.max != nil {
				return errs.NewValueIsInvalidErrorWithCause("commission tiers",
					fmt.Errorf("last tier must be unbounded, ends at %d", *t.max))
			}
			continue
		}

		next := tiers[i+1]
		if t.max == nil {
			return errs.NewValueIsInvalidErrorWithCause("commission tiers",
				fmt.Errorf("tier %d is unbounded but is not the last", i+1))
		}
		if next.min != *t.max+1 {
			return errs.NewValueIsInvalidErrorWithCause("commission tiers",
				fmt.Errorf("tier %d starts at %d, expected %d", i+2, next.min, *t.max+1))
		}
		if next.rate.LessThan(t.rate) || next.fixed.Amount().LessThan(t.fixed.Amount()) {
			return errs.NewValueIsInvalidErrorWithCause("commission tiers",
				fmt.Errorf("tier %d pays less than tier %d", i+2, i+1))
		}
	}
	return nil
}

// tierFor returns the tier containing count.
func tierFor(tiers []Tier, count int) (Tier, bool) {
	for _, t := range tiers {
		if t.Contains(count) {
			return t, true
		}
	}
	return Tier{}, false
}
