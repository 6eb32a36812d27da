package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
)

func TestAssetFromDomainFormatsDates(t *testing.T) {
	asset := &domain.Asset{
		ID:                    "asset-1",
		Name:                  "Laptop",
		Number:                "FA-0001",
		PurchaseDate:          time.Date(2023, time.November, 8, 0, 0, 0, 0, time.UTC),
		PurchasePrice:         decimal.RequireFromString("6000"),
		DepreciationStartDate: time.Date(2023, time.November, 8, 0, 0, 0, 0, time.UTC),
		Method:                domain.MethodStraightLine,
		Averaging:             domain.AveragingFullMonth,
		Status:                domain.StatusDraft,
		BookValue:             decimal.RequireFromString("6000"),
	}

	resp := AssetFromDomain(asset)

	if resp.PurchaseDate != "2023-11-08" {
		t.Fatalf("unexpected purchase date: %s", resp.PurchaseDate)
	}
	if resp.WarrantyExpiry != "" {
		t.Fatalf("expected empty warranty expiry, got %s", resp.WarrantyExpiry)
	}
	if resp.Status != "draft" {
		t.Fatalf("unexpected status: %s", resp.Status)
	}
}

func TestJournalFromDomainOmitsAbsentLines(t *testing.T) {
	gain := decimal.RequireFromString("200")
	journal := &domain.DisposalJournal{
		Cost:                    decimal.RequireFromString("6000"),
		AccumulatedDepreciation: decimal.RequireFromString("200"),
		SaleProceeds:            decimal.RequireFromString("6000"),
		GainOnDisposal:          &gain,
	}

	encoded, err := json.Marshal(JournalFromDomain(journal))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	body := string(encoded)
	if !strings.Contains(body, "gain_on_disposal") {
		t.Fatalf("expected gain line in %s", body)
	}
	for _, absent := range []string{"loss_on_disposal", "capital_gain", "reversal_of_depreciation", "depreciation_to_be_posted"} {
		if strings.Contains(body, absent) {
			t.Fatalf("expected %s to be omitted in %s", absent, body)
		}
	}
}

func TestBatchResultFromUseCase(t *testing.T) {
	result := &usecase.BatchResult{
		Succeeded: 1,
		Skipped:   1,
		Items: []usecase.ItemOutcome{
			{AssetID: "asset-1"},
			{AssetID: "asset-2", Err: errors.New("boom")},
		},
	}

	resp := BatchResultFromUseCase(result)

	if resp.Succeeded != 1 || resp.Skipped != 1 {
		t.Fatalf("unexpected counters: %+v", resp)
	}
	if resp.Items[0].Error != "" {
		t.Fatalf("expected no error on first item, got %s", resp.Items[0].Error)
	}
	if resp.Items[1].Error != "boom" {
		t.Fatalf("expected error on second item, got %s", resp.Items[1].Error)
	}
}
