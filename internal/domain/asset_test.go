package domain

import (
	"errors"
	"testing"
	"time"
)

func TestAsset_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Asset)
		wantErr error
	}{
		{
			name:   "straight line with rate",
			mutate: func(a *Asset) {},
		},
		{
			name: "straight line with effective life",
			mutate: func(a *Asset) {
				a.Rate = nil
				a.EffectiveLife = decPtr("5")
			},
		},
		{
			name: "straight line without rate or life",
			mutate: func(a *Asset) {
				a.Rate = nil
			},
			wantErr: ErrRateOrLifeRequired,
		},
		{
			name: "diminishing value without effective life",
			mutate: func(a *Asset) {
				a.Method = MethodDiminishing200
			},
			wantErr: ErrEffectiveLifeRequired,
		},
		{
			name: "no depreciation needs no parameters",
			mutate: func(a *Asset) {
				a.Method = MethodNone
				a.Rate = nil
			},
		},
		{
			name: "unknown method",
			mutate: func(a *Asset) {
				a.Method = DepreciationMethod("zz")
			},
			wantErr: ErrInvalidMethod,
		},
		{
			name: "unknown averaging",
			mutate: func(a *Asset) {
				a.Averaging = AveragingMethod("zz")
			},
			wantErr: ErrInvalidAveraging,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := &Asset{
				PurchasePrice:         dec("6000"),
				DepreciationStartDate: Date(2023, time.November, 8),
				Method:                MethodStraightLine,
				Averaging:             AveragingFullMonth,
				Rate:                  decPtr("20"),
			}
			tt.mutate(asset)

			err := asset.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAsset_PeriodStart(t *testing.T) {
	asset := &Asset{DepreciationStartDate: Date(2023, time.November, 8)}

	// The start month keeps the real start date so actual-days proration
	// only covers the owned part of the month.
	got := asset.PeriodStart(Date(2023, time.November, 30))
	if !got.Equal(Date(2023, time.November, 8)) {
		t.Errorf("PeriodStart(start month) = %v, want 2023-11-08", got)
	}

	got = asset.PeriodStart(Date(2023, time.December, 31))
	if !got.Equal(Date(2023, time.December, 1)) {
		t.Errorf("PeriodStart(later month) = %v, want 2023-12-01", got)
	}
}

func TestAsset_DepreciableBase(t *testing.T) {
	asset := &Asset{
		PurchasePrice: dec("6000"),
		CostLimit:     decPtr("4500"),
		ResidualValue: decPtr("600"),
	}
	if got := asset.DepreciableBase(); !got.Equal(dec("3900")) {
		t.Errorf("DepreciableBase() = %s, want 3900", got)
	}
}
