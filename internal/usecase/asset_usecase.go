package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/infrastructure/metrics"
)

// AssetUseCase handles asset registry business logic.
type AssetUseCase struct {
	txManager TransactionManager
	assetRepo AssetRepository
	typeRepo  TypeRepository
	lifecycle *LifecycleUseCase
	cache     Cache
	idGen     IDGenerator
	metrics   *metrics.Metrics
}

// NewAssetUseCase creates a new AssetUseCase. The metrics argument may
// be nil.
func NewAssetUseCase(
	txManager TransactionManager,
	assetRepo AssetRepository,
	typeRepo TypeRepository,
	lifecycle *LifecycleUseCase,
	cache Cache,
	idGen IDGenerator,
	m *metrics.Metrics,
) *AssetUseCase {
	return &AssetUseCase{
		txManager: txManager,
		assetRepo: assetRepo,
		typeRepo:  typeRepo,
		lifecycle: lifecycle,
		cache:     cache,
		idGen:     idGen,
		metrics:   m,
	}
}

// CreateAssetInput represents input for creating an asset.
type CreateAssetInput struct {
	Asset    domain.Asset
	Register bool
}

// CreateAsset creates a new asset in draft, optionally registering it in
// the same call. When the asset names a type, the type's depreciation
// defaults fill any configuration the input leaves empty.
func (uc *AssetUseCase) CreateAsset(ctx context.Context, input CreateAssetInput) (*domain.Asset, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()

	asset := input.Asset
	asset.ID = uc.idGen.Generate()
	asset.UserID = user.ID
	asset.Status = domain.StatusDraft
	asset.BookValue = asset.PurchasePrice
	asset.CreatedAt = now
	asset.UpdatedAt = now

	if asset.TypeID != "" {
		assetType, err := uc.typeRepo.GetByID(ctx, user.ID, asset.TypeID)
		if err != nil {
			return nil, err
		}

		assetType.Apply(&asset)
	}

	if err := asset.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.assetRepo.Create(ctx, tx, &asset); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateCounts(ctx, user.ID)

	if uc.metrics != nil {
		uc.metrics.AssetsCreated.Inc()
	}

	if !input.Register {
		return &asset, nil
	}

	if err := uc.lifecycle.registerOne(ctx, user.ID, asset.ID); err != nil {
		return nil, err
	}

	return uc.assetRepo.GetByID(ctx, user.ID, asset.ID)
}

// GetAsset retrieves one asset of the acting user.
func (uc *AssetUseCase) GetAsset(ctx context.Context, id string) (*domain.Asset, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	return uc.assetRepo.GetByID(ctx, user.ID, id)
}

// ListAssets lists the user's assets with optional status, search and
// pagination.
func (uc *AssetUseCase) ListAssets(ctx context.Context, filter AssetFilter) ([]*domain.Asset, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	return uc.assetRepo.List(ctx, user.ID, filter)
}

// DeleteAssets removes the given assets of the acting user.
func (uc *AssetUseCase) DeleteAssets(ctx context.Context, ids []string) error {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := uc.assetRepo.Delete(ctx, user.ID, ids); err != nil {
		return err
	}

	uc.invalidateCounts(ctx, user.ID)

	return nil
}

// StatusCounts reports how many of the user's assets sit in each
// lifecycle state. Counts are cached per user and invalidated on every
// mutating operation.
func (uc *AssetUseCase) StatusCounts(ctx context.Context) (map[domain.AssetStatus]int, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	key := statusCountsKey(user.ID)

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, key); err == nil && cached != nil {
			var counts map[domain.AssetStatus]int
			if err := json.Unmarshal(cached, &counts); err == nil {
				return counts, nil
			}
		}
	}

	counts, err := uc.assetRepo.CountByStatus(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(counts); err == nil {
			_ = uc.cache.Set(ctx, key, encoded, StatusCountsCacheTTL)
		}
	}

	return counts, nil
}

func (uc *AssetUseCase) invalidateCounts(ctx context.Context, userID string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, statusCountsKey(userID))
}
