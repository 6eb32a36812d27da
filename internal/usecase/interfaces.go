package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrellis/assetbook/internal/domain"
)

// AssetFilter narrows an asset listing.
type AssetFilter struct {
	Status  domain.AssetStatus
	Search  string
	OrderBy string
	Limit   int
	Offset  int
}

// AssetRepository defines data access for assets. All reads are scoped to
// the owning user; a missing or foreign asset surfaces as ErrAssetNotFound.
type AssetRepository interface {
	Create(ctx context.Context, tx Transaction, asset *domain.Asset) error
	GetByID(ctx context.Context, userID, id string) (*domain.Asset, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, userID, id string) (*domain.Asset, error)
	List(ctx context.Context, userID string, filter AssetFilter) ([]*domain.Asset, error)
	ListByStatus(ctx context.Context, userID string, status domain.AssetStatus) ([]*domain.Asset, error)
	UpdateLifecycle(ctx context.Context, tx Transaction, id string, status domain.AssetStatus, bookValue decimal.Decimal, updatedAt time.Time) error
	UpdateBookValue(ctx context.Context, tx Transaction, id string, bookValue decimal.Decimal, updatedAt time.Time) error
	Delete(ctx context.Context, userID string, ids []string) error
	CountByStatus(ctx context.Context, userID string) (map[domain.AssetStatus]int, error)
}

// EntryRepository defines data access for calculated depreciation
// entries. Create returns ErrDuplicatePeriod when an entry already exists
// for the asset and period end.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.DepreciationEntry) error
	ListByAsset(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error)
	ListAfter(ctx context.Context, assetID string, after time.Time) ([]*domain.DepreciationEntry, error)
	SumByAsset(ctx context.Context, assetID string) (*decimal.Decimal, error)
	Latest(ctx context.Context, assetID string) (*domain.DepreciationEntry, error)
	DeleteByAsset(ctx context.Context, tx Transaction, assetID string) error
	DeleteAfter(ctx context.Context, tx Transaction, assetID string, after time.Time) error
}

// DisposalRepository defines data access for disposal records.
type DisposalRepository interface {
	Create(ctx context.Context, tx Transaction, record *domain.DisposalRecord) error
	GetByAsset(ctx context.Context, assetID string) (*domain.DisposalRecord, error)
	DeleteByAsset(ctx context.Context, tx Transaction, assetID string) error
}

// SettingRepository defines data access for per-user asset settings.
type SettingRepository interface {
	Create(ctx context.Context, setting *domain.AssetSetting) error
	GetByUser(ctx context.Context, userID string) (*domain.AssetSetting, error)
	Update(ctx context.Context, setting *domain.AssetSetting) error
}

// TypeRepository defines data access for asset types.
type TypeRepository interface {
	Create(ctx context.Context, assetType *domain.AssetType) error
	GetByID(ctx context.Context, userID, id string) (*domain.AssetType, error)
	List(ctx context.Context, userID string, limit, offset int) ([]*domain.AssetType, error)
	Update(ctx context.Context, assetType *domain.AssetType) error
}

// AccountRepository defines data access for posting accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.AssetAccount) error
	GetByID(ctx context.Context, id string) (*domain.AssetAccount, error)
	List(ctx context.Context) ([]*domain.AssetAccount, error)
}

// OutboxRepository defines data access for journal events awaiting
// publication to the bookkeeping service.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) (int64, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-executes an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyInFlight is the value stored under an idempotency key
// while the first request carrying it is still being processed.
const IdempotencyInFlight = "in-flight"

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
