package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrellis/assetbook/internal/domain"
)

// Ledger maintains the ordered collection of calculated depreciation
// entries per asset. Every mutating operation also recomputes and
// persists the asset's book value, so asset state and ledger state move
// together inside the caller's transaction.
type Ledger struct {
	assetRepo AssetRepository
	entryRepo EntryRepository
	idGen     IDGenerator
}

// NewLedger creates a new Ledger.
func NewLedger(assetRepo AssetRepository, entryRepo EntryRepository, idGen IDGenerator) *Ledger {
	return &Ledger{
		assetRepo: assetRepo,
		entryRepo: entryRepo,
		idGen:     idGen,
	}
}

// Append posts a single period entry. Fails with ErrDuplicatePeriod when
// the period is already posted for the asset.
func (l *Ledger) Append(ctx context.Context, tx Transaction, asset *domain.Asset, periodEnd time.Time, amount decimal.Decimal) error {
	accumulated := amount
	if sum, err := l.entryRepo.SumByAsset(ctx, asset.ID); err != nil {
		return err
	} else if sum != nil {
		accumulated = accumulated.Add(*sum)
	}

	now := time.Now().UTC()

	entry := &domain.DepreciationEntry{
		ID:        l.idGen.Generate(),
		AssetID:   asset.ID,
		PeriodEnd: periodEnd,
		Amount:    amount,
		CreatedAt: now,
	}

	if err := l.entryRepo.Create(ctx, tx, entry); err != nil {
		return err
	}

	asset.BookValue = asset.DepreciableBase().Sub(accumulated).Round(2)

	return l.assetRepo.UpdateBookValue(ctx, tx, asset.ID, asset.BookValue, now)
}

// Regenerate clears the asset's ledger and posts one entry per period
// end. Each period is computed on an asset snapshot whose start date is
// shifted to the first day of that period (the asset's own start date
// inside the start month), so actual-days averaging prorates only the
// first period.
func (l *Ledger) Regenerate(ctx context.Context, tx Transaction, asset *domain.Asset, periodEnds []time.Time) error {
	if err := l.entryRepo.DeleteByAsset(ctx, tx, asset.ID); err != nil {
		return err
	}

	now := time.Now().UTC()
	total := decimal.Zero

	for _, periodEnd := range periodEnds {
		input := asset.InputStartingAt(asset.PeriodStart(periodEnd))

		amount, err := domain.Depreciate(input)
		if err != nil {
			return err
		}

		entry := &domain.DepreciationEntry{
			ID:        l.idGen.Generate(),
			AssetID:   asset.ID,
			PeriodEnd: periodEnd,
			Amount:    amount,
			CreatedAt: now,
		}

		if err := l.entryRepo.Create(ctx, tx, entry); err != nil {
			return err
		}

		total = total.Add(amount)
	}

	asset.BookValue = asset.DepreciableBase().Sub(total).Round(2)

	return l.assetRepo.UpdateBookValue(ctx, tx, asset.ID, asset.BookValue, now)
}

// Accumulated returns the sum of all posted entries, or nil when the
// asset has none.
func (l *Ledger) Accumulated(ctx context.Context, assetID string) (*decimal.Decimal, error) {
	return l.entryRepo.SumByAsset(ctx, assetID)
}

// Latest returns the entry with the maximum period end date. Fails with
// ErrNoDepreciationHistory when no entries exist.
func (l *Ledger) Latest(ctx context.Context, assetID string) (*domain.DepreciationEntry, error) {
	return l.entryRepo.Latest(ctx, assetID)
}

// Rollback deletes every entry posted strictly after the cutoff date and
// restores the reversed amounts onto the asset's book value, rounding
// after each restoration. Returns the number of entries reversed.
func (l *Ledger) Rollback(ctx context.Context, tx Transaction, asset *domain.Asset, cutoff time.Time) (int, error) {
	reversed, err := l.entryRepo.ListAfter(ctx, asset.ID, cutoff)
	if err != nil {
		return 0, err
	}

	if len(reversed) == 0 {
		return 0, nil
	}

	if err := l.entryRepo.DeleteAfter(ctx, tx, asset.ID, cutoff); err != nil {
		return 0, err
	}

	bookValue := asset.BookValue
	for _, entry := range reversed {
		bookValue = bookValue.Add(entry.Amount).Round(2)
	}
	asset.BookValue = bookValue

	err = l.assetRepo.UpdateBookValue(ctx, tx, asset.ID, bookValue, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	return len(reversed), nil
}
