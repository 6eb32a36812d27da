package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus is the lifecycle state of an asset.
type AssetStatus string

const (
	StatusDraft      AssetStatus = "draft"
	StatusRegistered AssetStatus = "registered"
	StatusDisposed   AssetStatus = "disposed"
)

// Asset is a purchased fixed asset together with its depreciation
// configuration and derived book value. An asset is owned by exactly one
// user and is never mutated concurrently for the same asset.
type Asset struct {
	ID           string
	UserID       string
	Name         string
	Number       string
	SerialNumber string
	Region       string
	Description  string
	TypeID       string

	PurchaseDate   time.Time
	PurchasePrice  decimal.Decimal
	WarrantyExpiry *time.Time

	DepreciationStartDate time.Time
	CostLimit             *decimal.Decimal
	ResidualValue         *decimal.Decimal
	Method                DepreciationMethod
	Averaging             AveragingMethod
	Rate                  *decimal.Decimal
	EffectiveLife         *decimal.Decimal

	Status    AssetStatus
	BookValue decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DepreciableBase returns the base the asset depreciates against.
func (a *Asset) DepreciableBase() decimal.Decimal {
	return a.DepreciationInput().Base()
}

// DepreciationInput builds the calculation input as of the asset's own
// depreciation start date.
func (a *Asset) DepreciationInput() DepreciationInput {
	return a.InputStartingAt(a.DepreciationStartDate)
}

// InputStartingAt builds a calculation input for an asset snapshot whose
// start date is shifted to the given as-of date. Monthly accrual uses
// this to compute each period against the first day of that period.
func (a *Asset) InputStartingAt(start time.Time) DepreciationInput {
	return DepreciationInput{
		StartDate:     start,
		PurchasePrice: a.PurchasePrice,
		CostLimit:     a.CostLimit,
		ResidualValue: a.ResidualValue,
		Method:        a.Method,
		Averaging:     a.Averaging,
		Rate:          a.Rate,
		EffectiveLife: a.EffectiveLife,
	}
}

// PeriodStart returns the as-of date for computing the period ending at
// periodEnd: the asset's own start date inside the start month, the first
// of the month for every later period.
func (a *Asset) PeriodStart(periodEnd time.Time) time.Time {
	if SameMonth(a.DepreciationStartDate, periodEnd) {
		return a.DepreciationStartDate
	}
	return FirstOfMonth(periodEnd)
}

// Validate checks the depreciation configuration.
func (a *Asset) Validate() error {
	if _, ok := dispatch[a.Method]; !ok {
		return ErrInvalidMethod
	}

	if a.Averaging != AveragingFullMonth && a.Averaging != AveragingActualDays {
		return ErrInvalidAveraging
	}

	switch a.Method {
	case MethodStraightLine:
		if nilOrZero(a.Rate) && nilOrZero(a.EffectiveLife) {
			return ErrRateOrLifeRequired
		}
	case MethodDiminishing100, MethodDiminishing150, MethodDiminishing200:
		if nilOrZero(a.EffectiveLife) {
			return ErrEffectiveLifeRequired
		}
	}

	return nil
}

func nilOrZero(d *decimal.Decimal) bool {
	return d == nil || d.IsZero()
}
