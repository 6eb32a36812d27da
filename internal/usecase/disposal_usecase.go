package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/infrastructure/metrics"
)

// Disposal modes. A written-off asset is disposed with zero proceeds.
const (
	DisposalModeSold       = "sold"
	DisposalModeWrittenOff = "written_off"
)

// DisposalUseCase computes disposal journals and records disposals.
type DisposalUseCase struct {
	txManager    TransactionManager
	assetRepo    AssetRepository
	entryRepo    EntryRepository
	disposalRepo DisposalRepository
	settingRepo  SettingRepository
	outboxRepo   OutboxRepository
	cache        Cache
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewDisposalUseCase creates a new DisposalUseCase. The metrics
// argument may be nil.
func NewDisposalUseCase(
	txManager TransactionManager,
	assetRepo AssetRepository,
	entryRepo EntryRepository,
	disposalRepo DisposalRepository,
	settingRepo SettingRepository,
	outboxRepo OutboxRepository,
	cache Cache,
	idGen IDGenerator,
	m *metrics.Metrics,
) *DisposalUseCase {
	return &DisposalUseCase{
		txManager:    txManager,
		assetRepo:    assetRepo,
		entryRepo:    entryRepo,
		disposalRepo: disposalRepo,
		settingRepo:  settingRepo,
		outboxRepo:   outboxRepo,
		cache:        cache,
		idGen:        idGen,
		metrics:      m,
	}
}

// PreviewInput describes a disposal to price out.
type PreviewInput struct {
	AssetID      string
	DisposedOn   time.Time
	SaleProceeds decimal.Decimal
	Mode         string
}

// DisposeInput describes a disposal to record.
type DisposeInput struct {
	AssetID           string
	DisposedOn        time.Time
	SaleProceeds      decimal.Decimal
	ProceedsAccountID string
	Mode              string
}

// Preview computes the disposal journal without changing any state.
func (uc *DisposalUseCase) Preview(ctx context.Context, input PreviewInput) (*domain.DisposalJournal, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	proceeds, err := normalizeProceeds(input.SaleProceeds, input.Mode)
	if err != nil {
		return nil, err
	}

	asset, err := uc.assetRepo.GetByID(ctx, user.ID, input.AssetID)
	if err != nil {
		return nil, err
	}

	if asset.Status == domain.StatusDisposed {
		return nil, domain.ErrAlreadyDisposed
	}

	entries, err := uc.entryRepo.ListByAsset(ctx, asset.ID)
	if err != nil {
		return nil, err
	}

	return computeJournal(asset, entries, input.DisposedOn, proceeds)
}

// Dispose records the disposal: the journal is computed, a disposal
// record saved and the asset marked disposed. The ledger itself is never
// touched; catch-up and reversal amounts travel in the journal and are
// posted through the outbox.
func (uc *DisposalUseCase) Dispose(ctx context.Context, input DisposeInput) (*domain.DisposalRecord, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	proceeds, err := normalizeProceeds(input.SaleProceeds, input.Mode)
	if err != nil {
		return nil, err
	}

	if _, err := uc.settingRepo.GetByUser(ctx, user.ID); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	asset, err := uc.assetRepo.GetByIDForUpdate(ctx, tx, user.ID, input.AssetID)
	if err != nil {
		return nil, err
	}

	switch asset.Status {
	case domain.StatusRegistered:
	case domain.StatusDisposed:
		return nil, domain.ErrAlreadyDisposed
	default:
		return nil, domain.ErrNotRegistered
	}

	entries, err := uc.entryRepo.ListByAsset(ctx, asset.ID)
	if err != nil {
		return nil, err
	}

	journal, err := computeJournal(asset, entries, input.DisposedOn, proceeds)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	record := &domain.DisposalRecord{
		ID:                uc.idGen.Generate(),
		AssetID:           asset.ID,
		DisposedOn:        input.DisposedOn,
		SaleProceeds:      proceeds,
		ProceedsAccountID: input.ProceedsAccountID,
		Journal:           *journal,
		CreatedAt:         now,
	}

	if err := uc.disposalRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}

	err = uc.assetRepo.UpdateLifecycle(ctx, tx, asset.ID, domain.StatusDisposed, asset.BookValue, now)
	if err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   asset.ID,
		AggregateType: domain.AggregateTypeDisposal,
		EventType:     domain.EventTypeAssetDisposed,
		Payload:       disposalPayload(asset.ID, record),
		CreatedAt:     now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, statusCountsKey(user.ID))
	}

	if uc.metrics != nil {
		uc.metrics.AssetsDisposed.Inc()
	}

	return record, nil
}

// GetDisposal returns the recorded disposal for an asset.
func (uc *DisposalUseCase) GetDisposal(ctx context.Context, assetID string) (*domain.DisposalRecord, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := uc.assetRepo.GetByID(ctx, user.ID, assetID); err != nil {
		return nil, err
	}

	return uc.disposalRepo.GetByAsset(ctx, assetID)
}

func normalizeProceeds(proceeds decimal.Decimal, mode string) (decimal.Decimal, error) {
	if mode == DisposalModeWrittenOff {
		return decimal.Zero, nil
	}

	if proceeds.IsNegative() {
		return decimal.Decimal{}, domain.ErrInvalidProceeds
	}

	return proceeds, nil
}

// computeJournal prices a disposal on date D against the ledger whose
// latest posted period is L. Three cases: D == L settles directly, D > L
// accrues the missing whole months first, D < L reverses the periods
// posted past the disposal date.
func computeJournal(asset *domain.Asset, entries []*domain.DepreciationEntry, disposedOn time.Time, proceeds decimal.Decimal) (*domain.DisposalJournal, error) {
	if len(entries) == 0 {
		return nil, domain.ErrNoDepreciationHistory
	}

	accumulated := domain.SumEntries(entries)
	latest := entries[0].PeriodEnd
	for _, entry := range entries[1:] {
		if entry.PeriodEnd.After(latest) {
			latest = entry.PeriodEnd
		}
	}

	journal := &domain.DisposalJournal{
		Cost:                    asset.PurchasePrice,
		AccumulatedDepreciation: accumulated,
		SaleProceeds:            proceeds,
	}

	switch {
	case disposedOn.Equal(latest):
		settleSamePeriod(journal, asset, accumulated, proceeds)
	case disposedOn.After(latest):
		if err := settleCatchUp(journal, asset, latest, disposedOn, proceeds); err != nil {
			return nil, err
		}
	default:
		settleReversal(journal, asset, entries, latest, disposedOn, proceeds)
	}

	return journal, nil
}

func settleSamePeriod(journal *domain.DisposalJournal, asset *domain.Asset, accumulated, proceeds decimal.Decimal) {
	switch proceeds.Cmp(asset.PurchasePrice) {
	case 0:
		journal.GainOnDisposal = &accumulated
	case 1:
		journal.GainOnDisposal = &accumulated
		capitalGain := proceeds.Sub(asset.PurchasePrice)
		journal.CapitalGain = &capitalGain
	default:
		loss := asset.PurchasePrice.Sub(proceeds).Sub(accumulated)
		if loss.IsPositive() {
			journal.LossOnDisposal = &loss
		}
	}
}

func settleCatchUp(journal *domain.DisposalJournal, asset *domain.Asset, latest, disposedOn time.Time, proceeds decimal.Decimal) error {
	newDepreciation := decimal.Zero

	var lastPeriod time.Time
	for _, periodEnd := range domain.MonthEnds(latest, disposedOn) {
		// Already posted, or only partially owned in the disposal month.
		if !periodEnd.After(latest) || periodEnd.After(disposedOn) {
			continue
		}

		amount, err := domain.Depreciate(asset.InputStartingAt(asset.PeriodStart(periodEnd)))
		if err != nil {
			return err
		}

		newDepreciation = newDepreciation.Add(amount)
		lastPeriod = periodEnd
	}

	if !lastPeriod.IsZero() {
		posted := newDepreciation
		postedOn := lastPeriod
		journal.DepreciationToBePosted = &posted
		journal.DepreciationToBePostedOn = &postedOn
	}

	delta := proceeds.Add(newDepreciation).Sub(asset.PurchasePrice)

	switch proceeds.Cmp(asset.PurchasePrice) {
	case 0:
		journal.GainOnDisposal = &newDepreciation
	case 1:
		journal.GainOnDisposal = &newDepreciation
		capitalGain := proceeds.Sub(asset.PurchasePrice)
		journal.CapitalGain = &capitalGain
	default:
		if delta.IsPositive() {
			journal.GainOnDisposal = &delta
		} else {
			loss := delta.Neg()
			journal.LossOnDisposal = &loss
		}
	}

	return nil
}

func settleReversal(journal *domain.DisposalJournal, asset *domain.Asset, entries []*domain.DepreciationEntry, latest, disposedOn time.Time, proceeds decimal.Decimal) {
	reversal := decimal.Zero

	var earliest time.Time
	for _, entry := range entries {
		if !entry.PeriodEnd.After(disposedOn) {
			continue
		}

		reversal = reversal.Add(entry.Amount)
		if earliest.IsZero() || entry.PeriodEnd.Before(earliest) {
			earliest = entry.PeriodEnd
		}
	}

	from := domain.FirstOfMonth(disposedOn)
	to := disposedOn
	if !earliest.IsZero() {
		from = domain.FirstOfMonth(earliest)
		to = latest
	}

	journal.ReversalOfDepreciation = &reversal
	journal.ReversalFrom = &from
	journal.ReversalTo = &to

	delta := proceeds.Sub(asset.PurchasePrice)

	switch proceeds.Cmp(asset.PurchasePrice) {
	case 0:
		// No gain line: nothing accrued as of the disposal date.
	case 1:
		capitalGain := proceeds.Sub(asset.PurchasePrice)
		journal.CapitalGain = &capitalGain
	default:
		loss := delta.Neg()
		journal.LossOnDisposal = &loss
	}
}

func disposalPayload(assetID string, record *domain.DisposalRecord) map[string]any {
	payload := map[string]any{
		"asset_id":      assetID,
		"disposed_on":   record.DisposedOn.Format(time.DateOnly),
		"sale_proceeds": record.SaleProceeds.String(),
	}

	if record.Journal.GainOnDisposal != nil {
		payload["gain_on_disposal"] = record.Journal.GainOnDisposal.String()
	}

	if record.Journal.LossOnDisposal != nil {
		payload["loss_on_disposal"] = record.Journal.LossOnDisposal.String()
	}

	if record.Journal.CapitalGain != nil {
		payload["capital_gain"] = record.Journal.CapitalGain.String()
	}

	return payload
}
