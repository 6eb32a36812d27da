package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepreciationMethod identifies how an asset loses value over time.
// The codes mirror the bookkeeping service's method codes.
type DepreciationMethod string

const (
	MethodNone             DepreciationMethod = "ND"
	MethodStraightLine     DepreciationMethod = "ST"
	MethodDiminishing100   DepreciationMethod = "100"
	MethodDiminishing150   DepreciationMethod = "150"
	MethodDiminishing200   DepreciationMethod = "200"
	MethodFullDepreciation DepreciationMethod = "FD"
)

// AveragingMethod controls how a period's share of the annual
// depreciation is derived.
type AveragingMethod string

const (
	// AveragingFullMonth books a flat 1/12 of the annual amount per period.
	AveragingFullMonth AveragingMethod = "FM"
	// AveragingActualDays prorates by the calendar days remaining in the
	// period's month.
	AveragingActualDays AveragingMethod = "AD"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// diminishingFactors maps a diminishing-value method to its multiplier.
var diminishingFactors = map[DepreciationMethod]decimal.Decimal{
	MethodDiminishing100: decimal.NewFromInt(1),
	MethodDiminishing150: decimal.RequireFromString("1.5"),
	MethodDiminishing200: decimal.NewFromInt(2),
}

// DepreciationInput is the immutable parameter set for one period's
// calculation. It is built once per period from an asset snapshot and
// passed by value.
type DepreciationInput struct {
	StartDate     time.Time
	PurchasePrice decimal.Decimal
	CostLimit     *decimal.Decimal
	ResidualValue *decimal.Decimal
	Method        DepreciationMethod
	Averaging     AveragingMethod
	Rate          *decimal.Decimal
	EffectiveLife *decimal.Decimal
}

// Base returns the depreciable base: the cost limit when set and
// non-zero, otherwise the purchase price, minus any residual value.
func (in DepreciationInput) Base() decimal.Decimal {
	base := in.PurchasePrice
	if in.CostLimit != nil && !in.CostLimit.IsZero() {
		base = *in.CostLimit
	}
	if in.ResidualValue != nil {
		base = base.Sub(*in.ResidualValue)
	}
	return base
}

type depreciationFunc func(DepreciationInput) (decimal.Decimal, error)

// dispatch maps each method code to its calculation. ND and FD are
// explicit no-ops: such assets carry no periodic charge.
var dispatch = map[DepreciationMethod]depreciationFunc{
	MethodNone:             zeroDepreciation,
	MethodFullDepreciation: zeroDepreciation,
	MethodStraightLine:     straightLine,
	MethodDiminishing100:   diminishingValue,
	MethodDiminishing150:   diminishingValue,
	MethodDiminishing200:   diminishingValue,
}

// Depreciate computes one period's depreciation amount, rounded to two
// decimal places.
func Depreciate(in DepreciationInput) (decimal.Decimal, error) {
	if in.Averaging != AveragingFullMonth && in.Averaging != AveragingActualDays {
		return decimal.Zero, ErrInvalidAveraging
	}

	f, ok := dispatch[in.Method]
	if !ok {
		return decimal.Zero, ErrInvalidMethod
	}

	amount, err := f(in)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Round(2), nil
}

func zeroDepreciation(DepreciationInput) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// straightLine spreads the annual charge evenly. The annual charge is
// base*rate/100 when a rate is configured, base/effective_life otherwise.
func straightLine(in DepreciationInput) (decimal.Decimal, error) {
	annual, err := annualCharge(in)
	if err != nil {
		return decimal.Zero, err
	}
	return periodShare(annual, in), nil
}

// diminishingValue is the straight-line effective-life charge multiplied
// by the method's declining-balance factor. Only the effective-life form
// is supported; a rate-based diminishing schedule is not.
func diminishingValue(in DepreciationInput) (decimal.Decimal, error) {
	if in.EffectiveLife == nil || in.EffectiveLife.IsZero() {
		return decimal.Zero, ErrEffectiveLifeRequired
	}

	annual := in.Base().Div(*in.EffectiveLife).Mul(diminishingFactors[in.Method])
	return periodShare(annual, in), nil
}

func annualCharge(in DepreciationInput) (decimal.Decimal, error) {
	switch {
	case in.Rate != nil && !in.Rate.IsZero():
		return in.Base().Mul(*in.Rate).Div(hundred), nil
	case in.EffectiveLife != nil && !in.EffectiveLife.IsZero():
		return in.Base().Div(*in.EffectiveLife), nil
	default:
		return decimal.Zero, ErrRateOrLifeRequired
	}
}

// periodShare turns an annual charge into one period's amount: a flat
// twelfth for full-month averaging, or a day-count proration against the
// days remaining in the start date's month for actual-days averaging.
func periodShare(annual decimal.Decimal, in DepreciationInput) decimal.Decimal {
	if in.Averaging == AveragingFullMonth {
		return annual.Div(twelve)
	}

	daysInYear := decimal.NewFromInt(int64(DaysInYear(in.StartDate)))
	daysLeft := decimal.NewFromInt(int64(DaysLeftInMonth(in.StartDate)))

	return annual.Div(daysInYear).Mul(daysLeft)
}
