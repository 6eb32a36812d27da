package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType is a per-user template: assets created from a type inherit
// its depreciation configuration and posting accounts.
type AssetType struct {
	ID     string
	UserID string
	Name   string

	AssetAccountID       string
	AccumulatedAccountID string
	ExpenseAccountID     string
	Method               DepreciationMethod
	Averaging            AveragingMethod
	Rate                 *decimal.Decimal
	EffectiveLife        *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Apply copies the type's depreciation configuration onto an asset,
// leaving fields the caller already set untouched.
func (t *AssetType) Apply(a *Asset) {
	a.TypeID = t.ID
	if a.Method == "" {
		a.Method = t.Method
	}
	if a.Averaging == "" {
		a.Averaging = t.Averaging
	}
	if a.Rate == nil {
		a.Rate = t.Rate
	}
	if a.EffectiveLife == nil {
		a.EffectiveLife = t.EffectiveLife
	}
}
