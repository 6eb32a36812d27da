package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepreciationEntry is one posted period of depreciation for an asset.
// Entries are unique per (asset, period end) and are only ever created or
// deleted in bulk; the accumulated depreciation of an asset is the sum of
// its entry amounts.
type DepreciationEntry struct {
	ID        string
	AssetID   string
	PeriodEnd time.Time
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// SumEntries totals the amounts of a set of entries.
func SumEntries(entries []*DepreciationEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}
