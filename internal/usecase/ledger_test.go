package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
	"github.com/fintrellis/assetbook/internal/usecase/mocks"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newTestAsset() *domain.Asset {
	return &domain.Asset{
		ID:                    "asset-1",
		UserID:                "user-1",
		Name:                  "Forklift",
		Number:                "FA-0001",
		PurchasePrice:         dec("6000"),
		PurchaseDate:          domain.Date(2023, time.November, 8),
		DepreciationStartDate: domain.Date(2023, time.November, 8),
		Method:                domain.MethodStraightLine,
		Averaging:             domain.AveragingFullMonth,
		Rate:                  decPtr("20"),
		Status:                domain.StatusDraft,
		BookValue:             dec("6000"),
	}
}

func newLedger() (*usecase.Ledger, *mocks.MockAssetRepository, *mocks.MockEntryRepository) {
	assetRepo := mocks.NewMockAssetRepository()
	entryRepo := mocks.NewMockEntryRepository()
	ledger := usecase.NewLedger(assetRepo, entryRepo, mocks.NewMockIDGenerator())
	return ledger, assetRepo, entryRepo
}

func TestLedger_Regenerate(t *testing.T) {
	ctx := context.Background()
	ledger, assetRepo, entryRepo := newLedger()

	asset := newTestAsset()
	if err := assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	periods := []time.Time{
		domain.Date(2023, time.November, 30),
		domain.Date(2023, time.December, 31),
		domain.Date(2024, time.January, 31),
	}

	if err := ledger.Regenerate(ctx, &mocks.MockTransaction{}, asset, periods); err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}

	entries, _ := entryRepo.ListByAsset(ctx, asset.ID)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for _, entry := range entries {
		if !entry.Amount.Equal(dec("100")) {
			t.Errorf("entry %s amount = %s, want 100", entry.PeriodEnd, entry.Amount)
		}
	}

	if !asset.BookValue.Equal(dec("5700")) {
		t.Errorf("book value = %s, want 5700", asset.BookValue)
	}

	// Regenerating the same periods replaces rather than duplicates.
	if err := ledger.Regenerate(ctx, &mocks.MockTransaction{}, asset, periods); err != nil {
		t.Fatalf("second Regenerate() error = %v", err)
	}

	entries, _ = entryRepo.ListByAsset(ctx, asset.ID)
	if len(entries) != 3 {
		t.Fatalf("after regenerate got %d entries, want 3", len(entries))
	}
}

func TestLedger_RegenerateProratesFirstPeriodOnly(t *testing.T) {
	ctx := context.Background()
	ledger, assetRepo, entryRepo := newLedger()

	asset := newTestAsset()
	asset.Averaging = domain.AveragingActualDays
	if err := assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	periods := []time.Time{
		domain.Date(2023, time.November, 30),
		domain.Date(2023, time.December, 31),
	}

	if err := ledger.Regenerate(ctx, &mocks.MockTransaction{}, asset, periods); err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}

	entries, _ := entryRepo.ListByAsset(ctx, asset.ID)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// November runs from the real start date on the 8th, December from
	// the first of the month.
	if !entries[0].Amount.Equal(dec("72.33")) {
		t.Errorf("November = %s, want 72.33", entries[0].Amount)
	}
	if !entries[1].Amount.Equal(dec("98.63")) {
		t.Errorf("December = %s, want 98.63", entries[1].Amount)
	}
}

func TestLedger_AppendDuplicatePeriod(t *testing.T) {
	ctx := context.Background()
	ledger, assetRepo, _ := newLedger()

	asset := newTestAsset()
	if err := assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	periodEnd := domain.Date(2023, time.November, 30)

	if err := ledger.Append(ctx, &mocks.MockTransaction{}, asset, periodEnd, dec("100")); err != nil {
		t.Fatalf("first Append() error = %v", err)
	}

	err := ledger.Append(ctx, &mocks.MockTransaction{}, asset, periodEnd, dec("100"))
	if !errors.Is(err, domain.ErrDuplicatePeriod) {
		t.Errorf("second Append() error = %v, want ErrDuplicatePeriod", err)
	}
}

func TestLedger_Rollback(t *testing.T) {
	ctx := context.Background()
	ledger, assetRepo, entryRepo := newLedger()

	asset := newTestAsset()
	if err := assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	periods := []time.Time{
		domain.Date(2023, time.November, 30),
		domain.Date(2023, time.December, 31),
		domain.Date(2024, time.January, 31),
	}
	if err := ledger.Regenerate(ctx, &mocks.MockTransaction{}, asset, periods); err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}

	reversed, err := ledger.Rollback(ctx, &mocks.MockTransaction{}, asset, domain.Date(2023, time.November, 30))
	if err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	if reversed != 2 {
		t.Errorf("reversed = %d, want 2", reversed)
	}

	if !asset.BookValue.Equal(dec("5900")) {
		t.Errorf("book value = %s, want 5900", asset.BookValue)
	}

	entries, _ := entryRepo.ListByAsset(ctx, asset.ID)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	sum, err := ledger.Accumulated(ctx, asset.ID)
	if err != nil {
		t.Fatalf("Accumulated() error = %v", err)
	}
	if sum == nil || !sum.Equal(dec("100")) {
		t.Errorf("accumulated = %v, want 100", sum)
	}
}

func TestLedger_RollbackNothingToReverse(t *testing.T) {
	ctx := context.Background()
	ledger, assetRepo, _ := newLedger()

	asset := newTestAsset()
	if err := assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	reversed, err := ledger.Rollback(ctx, &mocks.MockTransaction{}, asset, domain.Date(2023, time.November, 30))
	if err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	if reversed != 0 {
		t.Errorf("reversed = %d, want 0", reversed)
	}
}

func TestLedger_EmptyAggregates(t *testing.T) {
	ctx := context.Background()
	ledger, _, _ := newLedger()

	sum, err := ledger.Accumulated(ctx, "asset-1")
	if err != nil {
		t.Fatalf("Accumulated() error = %v", err)
	}
	if sum != nil {
		t.Errorf("accumulated = %v, want nil", sum)
	}

	_, err = ledger.Latest(ctx, "asset-1")
	if !errors.Is(err, domain.ErrNoDepreciationHistory) {
		t.Errorf("Latest() error = %v, want ErrNoDepreciationHistory", err)
	}
}
