package usecase

import (
	"context"
	"time"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/infrastructure/metrics"
)

// DepreciationUseCase runs and rolls back periodic depreciation across a
// user's register.
type DepreciationUseCase struct {
	txManager   TransactionManager
	assetRepo   AssetRepository
	settingRepo SettingRepository
	outboxRepo  OutboxRepository
	ledger      *Ledger
	retrier     Retrier
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewDepreciationUseCase creates a new DepreciationUseCase. The metrics
// argument may be nil.
func NewDepreciationUseCase(
	txManager TransactionManager,
	assetRepo AssetRepository,
	settingRepo SettingRepository,
	outboxRepo OutboxRepository,
	ledger *Ledger,
	retrier Retrier,
	idGen IDGenerator,
	m *metrics.Metrics,
) *DepreciationUseCase {
	return &DepreciationUseCase{
		txManager:   txManager,
		assetRepo:   assetRepo,
		settingRepo: settingRepo,
		outboxRepo:  outboxRepo,
		ledger:      ledger,
		retrier:     retrier,
		idGen:       idGen,
		metrics:     m,
	}
}

// Run regenerates the ledger of every registered asset of the acting
// user with one entry per month end from the register start date up to
// toDate. A failure on one asset skips that asset and continues; the
// per-item outcomes are returned to the caller.
func (uc *DepreciationUseCase) Run(ctx context.Context, toDate time.Time) (*BatchResult, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	setting, err := uc.settingRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	assets, err := uc.assetRepo.ListByStatus(ctx, user.ID, domain.StatusRegistered)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	result := &BatchResult{}
	for _, asset := range assets {
		assetID := asset.ID

		err := uc.retrier.Retry(ctx, func() error {
			return uc.runOne(ctx, user.ID, assetID, setting.StartDate, toDate)
		})

		result.record(assetID, err)
	}

	if err := uc.publishRunEvent(ctx, user.ID, toDate, result); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepreciationRuns.Inc()
		uc.metrics.RunDuration.Observe(time.Since(start).Seconds())
		uc.metrics.RunAssetsSkipped.Add(float64(result.Skipped))
	}

	return result, nil
}

func (uc *DepreciationUseCase) runOne(ctx context.Context, userID, assetID string, startDate, toDate time.Time) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	asset, err := uc.assetRepo.GetByIDForUpdate(ctx, tx, userID, assetID)
	if err != nil {
		return err
	}

	if err := asset.Validate(); err != nil {
		return err
	}

	// The register-wide start date never reaches back before the asset
	// itself started depreciating.
	if asset.DepreciationStartDate.After(startDate) {
		startDate = asset.DepreciationStartDate
	}

	periodEnds := domain.MonthEnds(startDate, toDate)
	if len(periodEnds) == 0 {
		return nil
	}

	if err := uc.ledger.Regenerate(ctx, tx, asset, periodEnds); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesWritten.Add(float64(len(periodEnds)))
	}

	return nil
}

func (uc *DepreciationUseCase) publishRunEvent(ctx context.Context, userID string, toDate time.Time, result *BatchResult) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   userID,
		AggregateType: domain.AggregateTypeAsset,
		EventType:     domain.EventTypeDepreciationRun,
		Payload: map[string]any{
			"user_id":   userID,
			"run_to":    toDate.Format(time.DateOnly),
			"succeeded": result.Succeeded,
			"skipped":   result.Skipped,
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Rollback deletes every ledger entry with a period end after the cutoff
// across all assets of the acting user, restoring book values entry by
// entry. Returns the total number of entries reversed.
func (uc *DepreciationUseCase) Rollback(ctx context.Context, cutoff time.Time) (int, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	assets, err := uc.assetRepo.List(ctx, user.ID, AssetFilter{})
	if err != nil {
		return 0, err
	}

	total := 0
	for _, asset := range assets {
		assetID := asset.ID

		var reversed int
		err := uc.retrier.Retry(ctx, func() error {
			var err error
			reversed, err = uc.rollbackOne(ctx, user.ID, assetID, cutoff)
			return err
		})
		if err != nil {
			return total, err
		}

		total += reversed
	}

	if uc.metrics != nil {
		uc.metrics.DepreciationRollbacks.Inc()
	}

	return total, nil
}

func (uc *DepreciationUseCase) rollbackOne(ctx context.Context, userID, assetID string, cutoff time.Time) (int, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	asset, err := uc.assetRepo.GetByIDForUpdate(ctx, tx, userID, assetID)
	if err != nil {
		return 0, err
	}

	reversed, err := uc.ledger.Rollback(ctx, tx, asset, cutoff)
	if err != nil {
		return 0, err
	}

	if reversed == 0 {
		return 0, nil
	}

	return reversed, tx.Commit(ctx)
}

// Entries lists the posted ledger entries for one asset, oldest first.
func (uc *DepreciationUseCase) Entries(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := uc.assetRepo.GetByID(ctx, user.ID, assetID); err != nil {
		return nil, err
	}

	return uc.ledger.entryRepo.ListByAsset(ctx, assetID)
}
