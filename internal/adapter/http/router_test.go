package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fintrellis/assetbook/internal/adapter/http/handler"
	apimiddleware "github.com/fintrellis/assetbook/internal/adapter/http/middleware"
	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RequiresUserForAPIRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets/counts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected anonymous request to return 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/assets/counts", nil)
	req.Header.Set(apimiddleware.UserIDHeader, "user-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected scoped request to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimit = 1
		cfg.RateBurst = 1
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"asset_ids":["asset-1"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.UserIDHeader, "user-1")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/assets/",
		"GET /api/v1/assets/",
		"POST /api/v1/assets/register",
		"POST /api/v1/assets/draft",
		"GET /api/v1/assets/{id}/entries",
		"POST /api/v1/assets/{id}/dispose",
		"POST /api/v1/assets/{id}/dispose/preview",
		"POST /api/v1/assets/{id}/undispose",
		"POST /api/v1/depreciation/run",
		"POST /api/v1/depreciation/rollback",
		"PUT /api/v1/settings/",
		"POST /api/v1/types/",
		"GET /api/v1/accounts/",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		AssetHandler:        handler.NewAssetHandler(&stubAssetService{}),
		LifecycleHandler:    handler.NewLifecycleHandler(&stubLifecycleService{}),
		DepreciationHandler: handler.NewDepreciationHandler(&stubDepreciationService{}),
		DisposalHandler:     handler.NewDisposalHandler(&stubDisposalService{}, &stubLifecycleService{}),
		SettingHandler:      handler.NewSettingHandler(&stubSettingService{}),
		TypeHandler:         handler.NewTypeHandler(&stubTypeService{}),
		AccountHandler:      handler.NewAccountHandler(&stubAccountService{}),
		HealthHandler:       &handler.HealthHandler{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubAssetService struct{}

func (stubAssetService) CreateAsset(ctx context.Context, input usecase.CreateAssetInput) (*domain.Asset, error) {
	return &domain.Asset{ID: "asset"}, nil
}

func (stubAssetService) GetAsset(ctx context.Context, id string) (*domain.Asset, error) {
	return &domain.Asset{ID: id}, nil
}

func (stubAssetService) ListAssets(ctx context.Context, filter usecase.AssetFilter) ([]*domain.Asset, error) {
	return []*domain.Asset{}, nil
}

func (stubAssetService) DeleteAssets(ctx context.Context, ids []string) error {
	return nil
}

func (stubAssetService) StatusCounts(ctx context.Context) (map[domain.AssetStatus]int, error) {
	return map[domain.AssetStatus]int{}, nil
}

type stubLifecycleService struct{}

func (stubLifecycleService) Register(ctx context.Context, assetIDs []string) (*usecase.BatchResult, error) {
	return &usecase.BatchResult{}, nil
}

func (stubLifecycleService) Draft(ctx context.Context, assetIDs []string) (*usecase.BatchResult, error) {
	return &usecase.BatchResult{}, nil
}

func (stubLifecycleService) Undispose(ctx context.Context, assetID string) (*domain.Asset, error) {
	return &domain.Asset{ID: assetID}, nil
}

type stubDepreciationService struct{}

func (stubDepreciationService) Run(ctx context.Context, toDate time.Time) (*usecase.BatchResult, error) {
	return &usecase.BatchResult{}, nil
}

func (stubDepreciationService) Rollback(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, nil
}

func (stubDepreciationService) Entries(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error) {
	return []*domain.DepreciationEntry{}, nil
}

type stubDisposalService struct{}

func (stubDisposalService) Preview(ctx context.Context, input usecase.PreviewInput) (*domain.DisposalJournal, error) {
	return &domain.DisposalJournal{}, nil
}

func (stubDisposalService) Dispose(ctx context.Context, input usecase.DisposeInput) (*domain.DisposalRecord, error) {
	return &domain.DisposalRecord{ID: "disposal"}, nil
}

func (stubDisposalService) GetDisposal(ctx context.Context, assetID string) (*domain.DisposalRecord, error) {
	return &domain.DisposalRecord{AssetID: assetID}, nil
}

type stubSettingService struct{}

func (stubSettingService) GetSetting(ctx context.Context) (*domain.AssetSetting, error) {
	return &domain.AssetSetting{ID: "setting"}, nil
}

func (stubSettingService) UpsertSetting(ctx context.Context, input usecase.UpsertSettingInput) (*domain.AssetSetting, error) {
	return &domain.AssetSetting{ID: "setting"}, nil
}

type stubTypeService struct{}

func (stubTypeService) CreateType(ctx context.Context, input usecase.TypeInput) (*domain.AssetType, error) {
	return &domain.AssetType{ID: "type"}, nil
}

func (stubTypeService) GetType(ctx context.Context, id string) (*domain.AssetType, error) {
	return &domain.AssetType{ID: id}, nil
}

func (stubTypeService) ListTypes(ctx context.Context, limit, offset int) ([]*domain.AssetType, error) {
	return []*domain.AssetType{}, nil
}

func (stubTypeService) UpdateType(ctx context.Context, id string, input usecase.TypeInput) (*domain.AssetType, error) {
	return &domain.AssetType{ID: id}, nil
}

type stubAccountService struct{}

func (stubAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.AssetAccount, error) {
	return &domain.AssetAccount{ID: "account"}, nil
}

func (stubAccountService) GetAccount(ctx context.Context, id string) (*domain.AssetAccount, error) {
	return &domain.AssetAccount{ID: id}, nil
}

func (stubAccountService) ListAccounts(ctx context.Context) ([]*domain.AssetAccount, error) {
	return []*domain.AssetAccount{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
