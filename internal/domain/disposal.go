package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DisposalJournal is the journal proposed when an asset is sold or
// written off. Optional lines are nil when they do not apply: a disposal
// at a loss carries no gain line, a catch-up disposal carries a
// depreciation-to-be-posted line, a backdated disposal a reversal line.
type DisposalJournal struct {
	Cost                    decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
	SaleProceeds            decimal.Decimal

	GainOnDisposal *decimal.Decimal
	LossOnDisposal *decimal.Decimal
	CapitalGain    *decimal.Decimal

	DepreciationToBePosted   *decimal.Decimal
	DepreciationToBePostedOn *time.Time

	ReversalOfDepreciation *decimal.Decimal
	ReversalFrom           *time.Time
	ReversalTo             *time.Time
}

// DisposalRecord ties a disposed asset to its sale facts and computed
// journal. At most one disposal exists per asset; its existence implies
// the asset's status is disposed.
type DisposalRecord struct {
	ID                string
	AssetID           string
	DisposedOn        time.Time
	SaleProceeds      decimal.Decimal
	ProceedsAccountID string
	Journal           DisposalJournal
	CreatedAt         time.Time
}
