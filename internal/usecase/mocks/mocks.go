package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
)

// MockAssetRepository is a mock implementation of AssetRepository.
type MockAssetRepository struct {
	mu     sync.RWMutex
	assets map[string]*domain.Asset

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, asset *domain.Asset) error
	GetByIDFunc          func(ctx context.Context, userID, id string) (*domain.Asset, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Asset, error)
	ListFunc             func(ctx context.Context, userID string, filter usecase.AssetFilter) ([]*domain.Asset, error)
	ListByStatusFunc     func(ctx context.Context, userID string, status domain.AssetStatus) ([]*domain.Asset, error)
	UpdateLifecycleFunc  func(ctx context.Context, tx usecase.Transaction, id string, status domain.AssetStatus, bookValue decimal.Decimal, updatedAt time.Time) error
	UpdateBookValueFunc  func(ctx context.Context, tx usecase.Transaction, id string, bookValue decimal.Decimal, updatedAt time.Time) error
	DeleteFunc           func(ctx context.Context, userID string, ids []string) error
	CountByStatusFunc    func(ctx context.Context, userID string) (map[domain.AssetStatus]int, error)
}

func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{
		assets: make(map[string]*domain.Asset),
	}
}

func (m *MockAssetRepository) Create(ctx context.Context, tx usecase.Transaction, asset *domain.Asset) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, asset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.assets {
		if existing.UserID == asset.UserID && existing.Number == asset.Number {
			return domain.ErrAssetNumberTaken
		}
	}
	copied := *asset
	m.assets[asset.ID] = &copied
	return nil
}

func (m *MockAssetRepository) GetByID(ctx context.Context, userID, id string) (*domain.Asset, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.assets[id]; ok && a.UserID == userID {
		copied := *a
		return &copied, nil
	}
	return nil, domain.ErrAssetNotFound
}

func (m *MockAssetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Asset, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, userID, id)
	}
	return m.GetByID(ctx, userID, id)
}

func (m *MockAssetRepository) List(ctx context.Context, userID string, filter usecase.AssetFilter) ([]*domain.Asset, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var assets []*domain.Asset
	for _, a := range m.assets {
		if a.UserID != userID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		copied := *a
		assets = append(assets, &copied)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}

func (m *MockAssetRepository) ListByStatus(ctx context.Context, userID string, status domain.AssetStatus) ([]*domain.Asset, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, userID, status)
	}
	return m.List(ctx, userID, usecase.AssetFilter{Status: status})
}

func (m *MockAssetRepository) UpdateLifecycle(ctx context.Context, tx usecase.Transaction, id string, status domain.AssetStatus, bookValue decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateLifecycleFunc != nil {
		return m.UpdateLifecycleFunc(ctx, tx, id, status, bookValue, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.assets[id]; ok {
		a.Status = status
		a.BookValue = bookValue
		a.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAssetRepository) UpdateBookValue(ctx context.Context, tx usecase.Transaction, id string, bookValue decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBookValueFunc != nil {
		return m.UpdateBookValueFunc(ctx, tx, id, bookValue, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.assets[id]; ok {
		a.BookValue = bookValue
		a.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAssetRepository) Delete(ctx context.Context, userID string, ids []string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, ids)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if a, ok := m.assets[id]; ok && a.UserID == userID {
			delete(m.assets, id)
		}
	}
	return nil
}

func (m *MockAssetRepository) CountByStatus(ctx context.Context, userID string) (map[domain.AssetStatus]int, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[domain.AssetStatus]int)
	for _, a := range m.assets {
		if a.UserID == userID {
			counts[a.Status]++
		}
	}
	return counts, nil
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.DepreciationEntry

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, entry *domain.DepreciationEntry) error
	ListByAssetFunc   func(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error)
	ListAfterFunc     func(ctx context.Context, assetID string, after time.Time) ([]*domain.DepreciationEntry, error)
	SumByAssetFunc    func(ctx context.Context, assetID string) (*decimal.Decimal, error)
	LatestFunc        func(ctx context.Context, assetID string) (*domain.DepreciationEntry, error)
	DeleteByAssetFunc func(ctx context.Context, tx usecase.Transaction, assetID string) error
	DeleteAfterFunc   func(ctx context.Context, tx usecase.Transaction, assetID string, after time.Time) error
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.DepreciationEntry),
	}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.DepreciationEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.entries {
		if existing.AssetID == entry.AssetID && existing.PeriodEnd.Equal(entry.PeriodEnd) {
			return domain.ErrDuplicatePeriod
		}
	}
	copied := *entry
	m.entries[entry.ID] = &copied
	return nil
}

func (m *MockEntryRepository) ListByAsset(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error) {
	if m.ListByAssetFunc != nil {
		return m.ListByAssetFunc(ctx, assetID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.DepreciationEntry
	for _, e := range m.entries {
		if e.AssetID == assetID {
			copied := *e
			entries = append(entries, &copied)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].PeriodEnd.Before(entries[j].PeriodEnd) })
	return entries, nil
}

func (m *MockEntryRepository) ListAfter(ctx context.Context, assetID string, after time.Time) ([]*domain.DepreciationEntry, error) {
	if m.ListAfterFunc != nil {
		return m.ListAfterFunc(ctx, assetID, after)
	}
	all, _ := m.ListByAsset(ctx, assetID)
	var entries []*domain.DepreciationEntry
	for _, e := range all {
		if e.PeriodEnd.After(after) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockEntryRepository) SumByAsset(ctx context.Context, assetID string) (*decimal.Decimal, error) {
	if m.SumByAssetFunc != nil {
		return m.SumByAssetFunc(ctx, assetID)
	}
	entries, _ := m.ListByAsset(ctx, assetID)
	if len(entries) == 0 {
		return nil, nil
	}
	sum := domain.SumEntries(entries)
	return &sum, nil
}

func (m *MockEntryRepository) Latest(ctx context.Context, assetID string) (*domain.DepreciationEntry, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx, assetID)
	}
	entries, _ := m.ListByAsset(ctx, assetID)
	if len(entries) == 0 {
		return nil, domain.ErrNoDepreciationHistory
	}
	return entries[len(entries)-1], nil
}

func (m *MockEntryRepository) DeleteByAsset(ctx context.Context, tx usecase.Transaction, assetID string) error {
	if m.DeleteByAssetFunc != nil {
		return m.DeleteByAssetFunc(ctx, tx, assetID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if e.AssetID == assetID {
			delete(m.entries, id)
		}
	}
	return nil
}

func (m *MockEntryRepository) DeleteAfter(ctx context.Context, tx usecase.Transaction, assetID string, after time.Time) error {
	if m.DeleteAfterFunc != nil {
		return m.DeleteAfterFunc(ctx, tx, assetID, after)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if e.AssetID == assetID && e.PeriodEnd.After(after) {
			delete(m.entries, id)
		}
	}
	return nil
}

// MockDisposalRepository is a mock implementation of DisposalRepository.
type MockDisposalRepository struct {
	mu        sync.RWMutex
	disposals map[string]*domain.DisposalRecord

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, record *domain.DisposalRecord) error
	GetByAssetFunc    func(ctx context.Context, assetID string) (*domain.DisposalRecord, error)
	DeleteByAssetFunc func(ctx context.Context, tx usecase.Transaction, assetID string) error
}

func NewMockDisposalRepository() *MockDisposalRepository {
	return &MockDisposalRepository{
		disposals: make(map[string]*domain.DisposalRecord),
	}
}

func (m *MockDisposalRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.DisposalRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.disposals[record.AssetID] = &copied
	return nil
}

func (m *MockDisposalRepository) GetByAsset(ctx context.Context, assetID string) (*domain.DisposalRecord, error) {
	if m.GetByAssetFunc != nil {
		return m.GetByAssetFunc(ctx, assetID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.disposals[assetID]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, domain.ErrDisposalNotFound
}

func (m *MockDisposalRepository) DeleteByAsset(ctx context.Context, tx usecase.Transaction, assetID string) error {
	if m.DeleteByAssetFunc != nil {
		return m.DeleteByAssetFunc(ctx, tx, assetID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.disposals, assetID)
	return nil
}

// MockSettingRepository is a mock implementation of SettingRepository.
type MockSettingRepository struct {
	mu       sync.RWMutex
	settings map[string]*domain.AssetSetting

	CreateFunc    func(ctx context.Context, setting *domain.AssetSetting) error
	GetByUserFunc func(ctx context.Context, userID string) (*domain.AssetSetting, error)
	UpdateFunc    func(ctx context.Context, setting *domain.AssetSetting) error
}

func NewMockSettingRepository() *MockSettingRepository {
	return &MockSettingRepository{
		settings: make(map[string]*domain.AssetSetting),
	}
}

func (m *MockSettingRepository) Create(ctx context.Context, setting *domain.AssetSetting) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, setting)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *setting
	m.settings[setting.UserID] = &copied
	return nil
}

func (m *MockSettingRepository) GetByUser(ctx context.Context, userID string) (*domain.AssetSetting, error) {
	if m.GetByUserFunc != nil {
		return m.GetByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.settings[userID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, domain.ErrSettingNotFound
}

func (m *MockSettingRepository) Update(ctx context.Context, setting *domain.AssetSetting) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, setting)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *setting
	m.settings[setting.UserID] = &copied
	return nil
}

// MockTypeRepository is a mock implementation of TypeRepository.
type MockTypeRepository struct {
	mu    sync.RWMutex
	types map[string]*domain.AssetType

	CreateFunc  func(ctx context.Context, assetType *domain.AssetType) error
	GetByIDFunc func(ctx context.Context, userID, id string) (*domain.AssetType, error)
	ListFunc    func(ctx context.Context, userID string, limit, offset int) ([]*domain.AssetType, error)
	UpdateFunc  func(ctx context.Context, assetType *domain.AssetType) error
}

func NewMockTypeRepository() *MockTypeRepository {
	return &MockTypeRepository{
		types: make(map[string]*domain.AssetType),
	}
}

func (m *MockTypeRepository) Create(ctx context.Context, assetType *domain.AssetType) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, assetType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *assetType
	m.types[assetType.ID] = &copied
	return nil
}

func (m *MockTypeRepository) GetByID(ctx context.Context, userID, id string) (*domain.AssetType, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.types[id]; ok && t.UserID == userID {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTypeNotFound
}

func (m *MockTypeRepository) List(ctx context.Context, userID string, limit, offset int) ([]*domain.AssetType, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var types []*domain.AssetType
	for _, t := range m.types {
		if t.UserID == userID {
			copied := *t
			types = append(types, &copied)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].ID < types[j].ID })
	return types, nil
}

func (m *MockTypeRepository) Update(ctx context.Context, assetType *domain.AssetType) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, assetType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *assetType
	m.types[assetType.ID] = &copied
	return nil
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.AssetAccount

	CreateFunc  func(ctx context.Context, account *domain.AssetAccount) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.AssetAccount, error)
	ListFunc    func(ctx context.Context) ([]*domain.AssetAccount, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.AssetAccount),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.AssetAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.AssetAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.AssetAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.AssetAccount
	for _, a := range m.accounts {
		copied := *a
		accounts = append(accounts, &copied)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) (int64, error)
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *event
	m.events = append(m.events, &copied)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			copied := *e
			events = append(events, &copied)
		}
		if limit > 0 && len(events) == limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) (int64, error) {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	var kept []*domain.OutboxEvent
	for _, e := range m.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return deleted, nil
}

// Events returns every event recorded so far.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]*domain.OutboxEvent, len(m.events))
	copy(events, m.events)
	return events
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockRetrier is a mock implementation of Retrier that runs the
// operation exactly once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
