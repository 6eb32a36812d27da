package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/infrastructure/metrics"
)

// ItemOutcome is the per-asset result of a batch lifecycle operation.
type ItemOutcome struct {
	AssetID string
	Err     error
}

// BatchResult collects per-item outcomes of a batch operation. A failed
// item is skipped, never aborts the batch.
type BatchResult struct {
	Succeeded int
	Skipped   int
	Items     []ItemOutcome
}

func (r *BatchResult) record(assetID string, err error) {
	if err != nil {
		r.Skipped++
	} else {
		r.Succeeded++
	}

	r.Items = append(r.Items, ItemOutcome{AssetID: assetID, Err: err})
}

// LifecycleUseCase drives the asset state machine: draft, registered,
// disposed and back.
type LifecycleUseCase struct {
	txManager    TransactionManager
	assetRepo    AssetRepository
	entryRepo    EntryRepository
	disposalRepo DisposalRepository
	outboxRepo   OutboxRepository
	ledger       *Ledger
	cache        Cache
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewLifecycleUseCase creates a new LifecycleUseCase. The metrics
// argument may be nil.
func NewLifecycleUseCase(
	txManager TransactionManager,
	assetRepo AssetRepository,
	entryRepo EntryRepository,
	disposalRepo DisposalRepository,
	outboxRepo OutboxRepository,
	ledger *Ledger,
	cache Cache,
	idGen IDGenerator,
	m *metrics.Metrics,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		txManager:    txManager,
		assetRepo:    assetRepo,
		entryRepo:    entryRepo,
		disposalRepo: disposalRepo,
		outboxRepo:   outboxRepo,
		ledger:       ledger,
		cache:        cache,
		idGen:        idGen,
		metrics:      m,
	}
}

// Register moves each asset to registered and seeds its ledger with the
// first period entry. Re-registering an already registered asset deletes
// and recomputes that entry, so the operation is safe to repeat.
func (uc *LifecycleUseCase) Register(ctx context.Context, assetIDs []string) (*BatchResult, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	result := &BatchResult{}
	for _, assetID := range assetIDs {
		result.record(assetID, uc.registerOne(ctx, user.ID, assetID))
	}

	uc.invalidateCounts(ctx, user.ID)

	if uc.metrics != nil {
		uc.metrics.AssetsRegistered.Add(float64(result.Succeeded))
	}

	return result, nil
}

func (uc *LifecycleUseCase) registerOne(ctx context.Context, userID, assetID string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	asset, err := uc.assetRepo.GetByIDForUpdate(ctx, tx, userID, assetID)
	if err != nil {
		return err
	}

	if asset.Status == domain.StatusDisposed {
		return domain.ErrAlreadyDisposed
	}

	if err := asset.Validate(); err != nil {
		return err
	}

	firstPeriod := domain.MonthEnd(asset.DepreciationStartDate)

	err = uc.ledger.Regenerate(ctx, tx, asset, []time.Time{firstPeriod})
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	err = uc.assetRepo.UpdateLifecycle(ctx, tx, asset.ID, domain.StatusRegistered, asset.BookValue, now)
	if err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   asset.ID,
		AggregateType: domain.AggregateTypeAsset,
		EventType:     domain.EventTypeAssetRegistered,
		Payload: map[string]any{
			"asset_id":   asset.ID,
			"book_value": asset.BookValue.String(),
			"period_end": firstPeriod.Format(time.DateOnly),
		},
		CreatedAt: now,
	}

	err = uc.outboxRepo.Create(ctx, tx, event)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Draft moves each asset back to draft: the ledger is cleared, any
// disposal record is removed and the book value resets to the purchase
// price.
func (uc *LifecycleUseCase) Draft(ctx context.Context, assetIDs []string) (*BatchResult, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	result := &BatchResult{}
	for _, assetID := range assetIDs {
		result.record(assetID, uc.draftOne(ctx, user.ID, assetID))
	}

	uc.invalidateCounts(ctx, user.ID)

	return result, nil
}

func (uc *LifecycleUseCase) draftOne(ctx context.Context, userID, assetID string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	asset, err := uc.assetRepo.GetByIDForUpdate(ctx, tx, userID, assetID)
	if err != nil {
		return err
	}

	if err := uc.entryRepo.DeleteByAsset(ctx, tx, asset.ID); err != nil {
		return err
	}

	if err := uc.disposalRepo.DeleteByAsset(ctx, tx, asset.ID); err != nil {
		return err
	}

	err = uc.assetRepo.UpdateLifecycle(ctx, tx, asset.ID, domain.StatusDraft, asset.PurchasePrice, time.Now().UTC())
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Undispose moves a disposed asset back to registered. The disposal
// record is deleted and the ledger is left empty; a subsequent register
// or depreciation run repopulates it.
func (uc *LifecycleUseCase) Undispose(ctx context.Context, assetID string) (*domain.Asset, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	asset, err := uc.assetRepo.GetByIDForUpdate(ctx, tx, user.ID, assetID)
	if err != nil {
		return nil, err
	}

	if asset.Status != domain.StatusDisposed {
		return nil, domain.ErrNotDisposed
	}

	if err := uc.disposalRepo.DeleteByAsset(ctx, tx, asset.ID); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.DeleteByAsset(ctx, tx, asset.ID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	err = uc.assetRepo.UpdateLifecycle(ctx, tx, asset.ID, domain.StatusRegistered, asset.PurchasePrice, now)
	if err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   asset.ID,
		AggregateType: domain.AggregateTypeAsset,
		EventType:     domain.EventTypeAssetUndisposed,
		Payload:       map[string]any{"asset_id": asset.ID},
		CreatedAt:     now,
	}

	err = uc.outboxRepo.Create(ctx, tx, event)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	asset.Status = domain.StatusRegistered
	asset.BookValue = asset.PurchasePrice
	asset.UpdatedAt = now

	uc.invalidateCounts(ctx, user.ID)

	return asset, nil
}

func (uc *LifecycleUseCase) invalidateCounts(ctx context.Context, userID string) {
	if uc.cache == nil {
		return
	}

	// Best effort; a stale count expires with the TTL anyway.
	_ = uc.cache.Delete(ctx, statusCountsKey(userID))
}

func statusCountsKey(userID string) string {
	return fmt.Sprintf("assets:counts:%s", userID)
}
