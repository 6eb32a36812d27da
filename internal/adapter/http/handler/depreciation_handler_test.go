package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrellis/assetbook/internal/adapter/http/dto"
	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
)

type depreciationServiceStub struct {
	runFn      func(ctx context.Context, toDate time.Time) (*usecase.BatchResult, error)
	rollbackFn func(ctx context.Context, cutoff time.Time) (int, error)
	entriesFn  func(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error)
}

func (s *depreciationServiceStub) Run(ctx context.Context, toDate time.Time) (*usecase.BatchResult, error) {
	return s.runFn(ctx, toDate)
}

func (s *depreciationServiceStub) Rollback(ctx context.Context, cutoff time.Time) (int, error) {
	return s.rollbackFn(ctx, cutoff)
}

func (s *depreciationServiceStub) Entries(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error) {
	return s.entriesFn(ctx, assetID)
}

func TestDepreciationHandler_Run(t *testing.T) {
	var captured time.Time
	handler := NewDepreciationHandler(&depreciationServiceStub{
		runFn: func(ctx context.Context, toDate time.Time) (*usecase.BatchResult, error) {
			captured = toDate
			return &usecase.BatchResult{
				Succeeded: 2,
				Items: []usecase.ItemOutcome{
					{AssetID: "asset-1"},
					{AssetID: "asset-2"},
				},
			}, nil
		},
	})

	body, _ := json.Marshal(dto.RunDepreciationRequest{ToDate: "2024-03-31"})
	req := httptest.NewRequest(http.MethodPost, "/depreciation/run", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Run(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	want := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	if !captured.Equal(want) {
		t.Fatalf("expected run date %v, got %v", want, captured)
	}

	var resp dto.BatchResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Succeeded != 2 {
		t.Fatalf("expected 2 succeeded, got %d", resp.Succeeded)
	}
}

func TestDepreciationHandler_Run_MissingDate(t *testing.T) {
	handler := NewDepreciationHandler(&depreciationServiceStub{
		runFn: func(ctx context.Context, toDate time.Time) (*usecase.BatchResult, error) {
			t.Fatal("Run should not be called without a date")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/depreciation/run", bytes.NewBufferString("{}"))
	rec := httptest.NewRecorder()

	handler.Run(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDepreciationHandler_Rollback(t *testing.T) {
	handler := NewDepreciationHandler(&depreciationServiceStub{
		rollbackFn: func(ctx context.Context, cutoff time.Time) (int, error) {
			return 3, nil
		},
	})

	body, _ := json.Marshal(dto.RollbackDepreciationRequest{Cutoff: "2024-01-31"})
	req := httptest.NewRequest(http.MethodPost, "/depreciation/rollback", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Rollback(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.RollbackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Reversed != 3 {
		t.Fatalf("expected 3 reversed, got %d", resp.Reversed)
	}
}

func TestDepreciationHandler_Entries(t *testing.T) {
	handler := NewDepreciationHandler(&depreciationServiceStub{
		entriesFn: func(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error) {
			if assetID != "asset-1" {
				t.Fatalf("expected asset-1, got %s", assetID)
			}
			return []*domain.DepreciationEntry{
				{
					ID:        "entry-1",
					AssetID:   assetID,
					PeriodEnd: time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
					Amount:    decimal.RequireFromString("100"),
				},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/assets/asset-1/entries", nil)
	req = setChiURLParam(req, "id", "asset-1")
	rec := httptest.NewRecorder()

	handler.Entries(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].PeriodEnd != "2024-01-31" {
		t.Fatalf("unexpected entries: %+v", resp)
	}
}

func TestDepreciationHandler_Entries_NotRegistered(t *testing.T) {
	handler := NewDepreciationHandler(&depreciationServiceStub{
		entriesFn: func(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error) {
			return nil, domain.ErrAssetNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/assets/asset-1/entries", nil)
	req = setChiURLParam(req, "id", "asset-1")
	rec := httptest.NewRecorder()

	handler.Entries(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
