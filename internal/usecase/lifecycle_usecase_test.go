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

type lifecycleFixture struct {
	uc           *usecase.LifecycleUseCase
	assetRepo    *mocks.MockAssetRepository
	entryRepo    *mocks.MockEntryRepository
	disposalRepo *mocks.MockDisposalRepository
	outboxRepo   *mocks.MockOutboxRepository
}

func newLifecycleFixture() *lifecycleFixture {
	assetRepo := mocks.NewMockAssetRepository()
	entryRepo := mocks.NewMockEntryRepository()
	disposalRepo := mocks.NewMockDisposalRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	idGen := mocks.NewMockIDGenerator()
	ledger := usecase.NewLedger(assetRepo, entryRepo, idGen)

	uc := usecase.NewLifecycleUseCase(
		mocks.NewMockTransactionManager(),
		assetRepo,
		entryRepo,
		disposalRepo,
		outboxRepo,
		ledger,
		nil,
		idGen,
		nil,
	)

	return &lifecycleFixture{
		uc:           uc,
		assetRepo:    assetRepo,
		entryRepo:    entryRepo,
		disposalRepo: disposalRepo,
		outboxRepo:   outboxRepo,
	}
}

func userContext() context.Context {
	return domain.WithUser(context.Background(), &domain.User{ID: "user-1"})
}

func TestLifecycleUseCase_Register(t *testing.T) {
	ctx := userContext()
	f := newLifecycleFixture()

	asset := newTestAsset()
	if err := f.assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	result, err := f.uc.Register(ctx, []string{asset.ID})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if result.Succeeded != 1 || result.Skipped != 0 {
		t.Fatalf("result = %d/%d, want 1 succeeded 0 skipped", result.Succeeded, result.Skipped)
	}

	stored, _ := f.assetRepo.GetByID(ctx, "user-1", asset.ID)
	if stored.Status != domain.StatusRegistered {
		t.Errorf("status = %s, want registered", stored.Status)
	}
	if !stored.BookValue.Equal(dec("5900")) {
		t.Errorf("book value = %s, want 5900", stored.BookValue)
	}

	entries, _ := f.entryRepo.ListByAsset(ctx, asset.ID)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !entries[0].PeriodEnd.Equal(domain.Date(2023, time.November, 30)) {
		t.Errorf("period end = %v, want 2023-11-30", entries[0].PeriodEnd)
	}
	if !entries[0].Amount.Equal(dec("100")) {
		t.Errorf("amount = %s, want 100", entries[0].Amount)
	}

	events := f.outboxRepo.Events()
	if len(events) != 1 || events[0].EventType != domain.EventTypeAssetRegistered {
		t.Errorf("outbox events = %+v, want one asset.registered", events)
	}
}

func TestLifecycleUseCase_RegisterIsIdempotent(t *testing.T) {
	ctx := userContext()
	f := newLifecycleFixture()

	asset := newTestAsset()
	if err := f.assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	for i := 0; i < 3; i++ {
		result, err := f.uc.Register(ctx, []string{asset.ID})
		if err != nil {
			t.Fatalf("Register() #%d error = %v", i+1, err)
		}
		if result.Skipped != 0 {
			t.Fatalf("Register() #%d skipped %d items", i+1, result.Skipped)
		}
	}

	entries, _ := f.entryRepo.ListByAsset(ctx, asset.ID)
	if len(entries) != 1 {
		t.Fatalf("got %d entries after re-registering, want 1", len(entries))
	}

	stored, _ := f.assetRepo.GetByID(ctx, "user-1", asset.ID)
	if !stored.BookValue.Equal(dec("5900")) {
		t.Errorf("book value = %s, want 5900", stored.BookValue)
	}
}

func TestLifecycleUseCase_RegisterSkipsBadItems(t *testing.T) {
	ctx := userContext()
	f := newLifecycleFixture()

	good := newTestAsset()
	if err := f.assetRepo.Create(ctx, nil, good); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	disposed := newTestAsset()
	disposed.ID = "asset-2"
	disposed.Number = "FA-0002"
	disposed.Status = domain.StatusDisposed
	if err := f.assetRepo.Create(ctx, nil, disposed); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	result, err := f.uc.Register(ctx, []string{good.ID, disposed.ID, "missing"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if result.Succeeded != 1 || result.Skipped != 2 {
		t.Fatalf("result = %d/%d, want 1 succeeded 2 skipped", result.Succeeded, result.Skipped)
	}

	if !errors.Is(result.Items[1].Err, domain.ErrAlreadyDisposed) {
		t.Errorf("disposed outcome = %v, want ErrAlreadyDisposed", result.Items[1].Err)
	}
	if !errors.Is(result.Items[2].Err, domain.ErrAssetNotFound) {
		t.Errorf("missing outcome = %v, want ErrAssetNotFound", result.Items[2].Err)
	}
}

func TestLifecycleUseCase_Draft(t *testing.T) {
	ctx := userContext()
	f := newLifecycleFixture()

	asset := newTestAsset()
	if err := f.assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	if _, err := f.uc.Register(ctx, []string{asset.ID}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := f.uc.Draft(ctx, []string{asset.ID})
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if result.Succeeded != 1 {
		t.Fatalf("result = %+v, want 1 succeeded", result)
	}

	stored, _ := f.assetRepo.GetByID(ctx, "user-1", asset.ID)
	if stored.Status != domain.StatusDraft {
		t.Errorf("status = %s, want draft", stored.Status)
	}
	if !stored.BookValue.Equal(dec("6000")) {
		t.Errorf("book value = %s, want 6000", stored.BookValue)
	}

	entries, _ := f.entryRepo.ListByAsset(ctx, asset.ID)
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestLifecycleUseCase_RegisterDraftRegisterRoundTrip(t *testing.T) {
	ctx := userContext()
	f := newLifecycleFixture()

	asset := newTestAsset()
	if err := f.assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	if _, err := f.uc.Register(ctx, []string{asset.ID}); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	first, _ := f.entryRepo.ListByAsset(ctx, asset.ID)

	if _, err := f.uc.Draft(ctx, []string{asset.ID}); err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if _, err := f.uc.Register(ctx, []string{asset.ID}); err != nil {
		t.Fatalf("second Register() error = %v", err)
	}
	second, _ := f.entryRepo.ListByAsset(ctx, asset.ID)

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("entries = %d then %d, want 1 and 1", len(first), len(second))
	}
	if !first[0].PeriodEnd.Equal(second[0].PeriodEnd) || !first[0].Amount.Equal(second[0].Amount) {
		t.Errorf("round trip produced a different entry: %+v vs %+v", first[0], second[0])
	}

	stored, _ := f.assetRepo.GetByID(ctx, "user-1", asset.ID)
	if !stored.BookValue.Equal(dec("5900")) {
		t.Errorf("book value = %s, want 5900", stored.BookValue)
	}
}

func TestLifecycleUseCase_Undispose(t *testing.T) {
	ctx := userContext()
	f := newLifecycleFixture()

	asset := newTestAsset()
	asset.Status = domain.StatusDisposed
	if err := f.assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	record := &domain.DisposalRecord{ID: "disp-1", AssetID: asset.ID}
	if err := f.disposalRepo.Create(ctx, nil, record); err != nil {
		t.Fatalf("seed disposal: %v", err)
	}

	got, err := f.uc.Undispose(ctx, asset.ID)
	if err != nil {
		t.Fatalf("Undispose() error = %v", err)
	}

	if got.Status != domain.StatusRegistered {
		t.Errorf("status = %s, want registered", got.Status)
	}
	if !got.BookValue.Equal(dec("6000")) {
		t.Errorf("book value = %s, want 6000", got.BookValue)
	}

	if _, err := f.disposalRepo.GetByAsset(ctx, asset.ID); !errors.Is(err, domain.ErrDisposalNotFound) {
		t.Errorf("disposal record still present, err = %v", err)
	}

	entries, _ := f.entryRepo.ListByAsset(ctx, asset.ID)
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestLifecycleUseCase_UndisposeRequiresDisposed(t *testing.T) {
	ctx := userContext()
	f := newLifecycleFixture()

	asset := newTestAsset()
	asset.Status = domain.StatusRegistered
	if err := f.assetRepo.Create(ctx, nil, asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	_, err := f.uc.Undispose(ctx, asset.ID)
	if !errors.Is(err, domain.ErrNotDisposed) {
		t.Errorf("Undispose() error = %v, want ErrNotDisposed", err)
	}
}

func TestLifecycleUseCase_RequiresUser(t *testing.T) {
	f := newLifecycleFixture()

	if _, err := f.uc.Register(context.Background(), []string{"asset-1"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Register() error = %v, want ErrUnauthorized", err)
	}
	if _, err := f.uc.Draft(context.Background(), []string{"asset-1"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Draft() error = %v, want ErrUnauthorized", err)
	}
	if _, err := f.uc.Undispose(context.Background(), "asset-1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Undispose() error = %v, want ErrUnauthorized", err)
	}
}
