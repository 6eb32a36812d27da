package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
	"github.com/fintrellis/assetbook/internal/usecase/mocks"
)

type depreciationFixture struct {
	uc          *usecase.DepreciationUseCase
	assetRepo   *mocks.MockAssetRepository
	entryRepo   *mocks.MockEntryRepository
	settingRepo *mocks.MockSettingRepository
	outboxRepo  *mocks.MockOutboxRepository
}

func newDepreciationFixture() *depreciationFixture {
	assetRepo := mocks.NewMockAssetRepository()
	entryRepo := mocks.NewMockEntryRepository()
	settingRepo := mocks.NewMockSettingRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewDepreciationUseCase(
		mocks.NewMockTransactionManager(),
		assetRepo,
		settingRepo,
		outboxRepo,
		usecase.NewLedger(assetRepo, entryRepo, idGen),
		mocks.NewMockRetrier(),
		idGen,
		nil,
	)

	return &depreciationFixture{
		uc:          uc,
		assetRepo:   assetRepo,
		entryRepo:   entryRepo,
		settingRepo: settingRepo,
		outboxRepo:  outboxRepo,
	}
}

func (f *depreciationFixture) seedSetting(t *testing.T, startDate time.Time) {
	t.Helper()
	err := f.settingRepo.Create(context.Background(), &domain.AssetSetting{
		ID:        "setting-1",
		UserID:    "user-1",
		StartDate: startDate,
	})
	if err != nil {
		t.Fatalf("seed setting: %v", err)
	}
}

func TestDepreciationUseCase_Run(t *testing.T) {
	ctx := userContext()
	f := newDepreciationFixture()
	f.seedSetting(t, domain.Date(2023, time.November, 8))

	asset := newTestAsset()
	asset.Status = domain.StatusRegistered
	if err := f.assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	result, err := f.uc.Run(ctx, domain.Date(2024, time.January, 15))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Succeeded != 1 || result.Skipped != 0 {
		t.Fatalf("result = %d/%d, want 1 succeeded 0 skipped", result.Succeeded, result.Skipped)
	}

	entries, _ := f.entryRepo.ListByAsset(ctx, asset.ID)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3 (Nov, Dec, Jan)", len(entries))
	}

	stored, _ := f.assetRepo.GetByID(ctx, "user-1", asset.ID)
	if !stored.BookValue.Equal(dec("5700")) {
		t.Errorf("book value = %s, want 5700", stored.BookValue)
	}

	events := f.outboxRepo.Events()
	if len(events) != 1 || events[0].EventType != domain.EventTypeDepreciationRun {
		t.Errorf("outbox events = %+v, want one depreciation.run", events)
	}
}

func TestDepreciationUseCase_RunClampsToAssetStart(t *testing.T) {
	ctx := userContext()
	f := newDepreciationFixture()
	f.seedSetting(t, domain.Date(2023, time.November, 1))

	asset := newTestAsset()
	asset.Status = domain.StatusRegistered
	asset.DepreciationStartDate = domain.Date(2023, time.December, 15)
	if err := f.assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	if _, err := f.uc.Run(ctx, domain.Date(2024, time.January, 15)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	entries, _ := f.entryRepo.ListByAsset(ctx, asset.ID)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (Dec, Jan)", len(entries))
	}
	if !entries[0].PeriodEnd.Equal(domain.Date(2023, time.December, 31)) {
		t.Errorf("first period = %v, want 2023-12-31", entries[0].PeriodEnd)
	}
}

func TestDepreciationUseCase_RunSkipsInvalidAsset(t *testing.T) {
	ctx := userContext()
	f := newDepreciationFixture()
	f.seedSetting(t, domain.Date(2023, time.November, 8))

	good := newTestAsset()
	good.Status = domain.StatusRegistered
	if err := f.assetRepo.Create(ctx, nil, good); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	bad := newTestAsset()
	bad.ID = "asset-2"
	bad.Number = "FA-0002"
	bad.Status = domain.StatusRegistered
	bad.Rate = nil
	if err := f.assetRepo.Create(ctx, nil, bad); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	result, err := f.uc.Run(ctx, domain.Date(2023, time.December, 31))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Succeeded != 1 || result.Skipped != 1 {
		t.Fatalf("result = %d/%d, want 1 succeeded 1 skipped", result.Succeeded, result.Skipped)
	}

	var badOutcome *usecase.ItemOutcome
	for i := range result.Items {
		if result.Items[i].AssetID == bad.ID {
			badOutcome = &result.Items[i]
		}
	}
	if badOutcome == nil || !errors.Is(badOutcome.Err, domain.ErrRateOrLifeRequired) {
		t.Errorf("bad outcome = %+v, want ErrRateOrLifeRequired", badOutcome)
	}

	// The good asset was still processed.
	entries, _ := f.entryRepo.ListByAsset(ctx, good.ID)
	if len(entries) != 2 {
		t.Errorf("good asset got %d entries, want 2", len(entries))
	}
}

func TestDepreciationUseCase_RunRequiresSetting(t *testing.T) {
	ctx := userContext()
	f := newDepreciationFixture()

	_, err := f.uc.Run(ctx, domain.Date(2023, time.December, 31))
	if !errors.Is(err, domain.ErrSettingNotFound) {
		t.Errorf("Run() error = %v, want ErrSettingNotFound", err)
	}
}

func TestDepreciationUseCase_Rollback(t *testing.T) {
	ctx := userContext()
	f := newDepreciationFixture()
	f.seedSetting(t, domain.Date(2023, time.November, 8))

	asset := newTestAsset()
	asset.Status = domain.StatusRegistered
	if err := f.assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	if _, err := f.uc.Run(ctx, domain.Date(2024, time.January, 15)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	reversed, err := f.uc.Rollback(ctx, domain.Date(2023, time.November, 30))
	if err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	if reversed != 2 {
		t.Errorf("reversed = %d, want 2", reversed)
	}

	stored, _ := f.assetRepo.GetByID(ctx, "user-1", asset.ID)
	if !stored.BookValue.Equal(dec("5900")) {
		t.Errorf("book value = %s, want 5900", stored.BookValue)
	}
}

func TestDepreciationUseCase_RollbackThenRunReproducesTotal(t *testing.T) {
	ctx := userContext()
	f := newDepreciationFixture()
	f.seedSetting(t, domain.Date(2023, time.November, 8))

	asset := newTestAsset()
	asset.Status = domain.StatusRegistered
	if err := f.assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	toDate := domain.Date(2024, time.January, 15)
	if _, err := f.uc.Run(ctx, toDate); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	before, _ := f.entryRepo.SumByAsset(ctx, asset.ID)

	if _, err := f.uc.Rollback(ctx, domain.Date(2023, time.November, 30)); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	if _, err := f.uc.Run(ctx, toDate); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	after, _ := f.entryRepo.SumByAsset(ctx, asset.ID)
	if before == nil || after == nil || !before.Equal(*after) {
		t.Errorf("accumulated = %v then %v, want equal", before, after)
	}
}

func TestDepreciationUseCase_Entries(t *testing.T) {
	ctx := userContext()
	f := newDepreciationFixture()
	f.seedSetting(t, domain.Date(2023, time.November, 8))

	asset := newTestAsset()
	asset.Status = domain.StatusRegistered
	if err := f.assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	if _, err := f.uc.Run(ctx, domain.Date(2023, time.December, 31)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	entries, err := f.uc.Entries(ctx, asset.ID)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}

	_, err = f.uc.Entries(ctx, "missing")
	if !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("Entries(missing) error = %v, want ErrAssetNotFound", err)
	}
}
