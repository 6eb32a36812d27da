package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
)

var validate = validator.New()

// Dates travel as plain calendar days on the wire.
const dateLayout = time.DateOnly

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func parseDatePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateAssetRequest represents a request to create an asset.
type CreateAssetRequest struct {
	Name         string `json:"name" validate:"required"`
	Number       string `json:"number" validate:"required"`
	SerialNumber string `json:"serial_number"`
	Region       string `json:"region"`
	Description  string `json:"description"`
	TypeID       string `json:"type_id"`

	PurchaseDate   string          `json:"purchase_date" validate:"required,datetime=2006-01-02"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	WarrantyExpiry string          `json:"warranty_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`

	DepreciationStartDate string           `json:"depreciation_start_date" validate:"required,datetime=2006-01-02"`
	CostLimit             *decimal.Decimal `json:"cost_limit,omitempty"`
	ResidualValue         *decimal.Decimal `json:"residual_value,omitempty"`
	Method                string           `json:"method"`
	Averaging             string           `json:"averaging"`
	Rate                  *decimal.Decimal `json:"rate,omitempty"`
	EffectiveLife         *decimal.Decimal `json:"effective_life,omitempty"`

	Register bool `json:"register"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAssetRequest) ToUseCaseInput() (usecase.CreateAssetInput, error) {
	if err := validate.Struct(r); err != nil {
		return usecase.CreateAssetInput{}, err
	}

	purchaseDate, err := parseDate(r.PurchaseDate)
	if err != nil {
		return usecase.CreateAssetInput{}, err
	}

	startDate, err := parseDate(r.DepreciationStartDate)
	if err != nil {
		return usecase.CreateAssetInput{}, err
	}

	warrantyExpiry, err := parseDatePtr(r.WarrantyExpiry)
	if err != nil {
		return usecase.CreateAssetInput{}, err
	}

	return usecase.CreateAssetInput{
		Asset: domain.Asset{
			Name:                  r.Name,
			Number:                r.Number,
			SerialNumber:          r.SerialNumber,
			Region:                r.Region,
			Description:           r.Description,
			TypeID:                r.TypeID,
			PurchaseDate:          purchaseDate,
			PurchasePrice:         r.PurchasePrice,
			WarrantyExpiry:        warrantyExpiry,
			DepreciationStartDate: startDate,
			CostLimit:             r.CostLimit,
			ResidualValue:         r.ResidualValue,
			Method:                domain.DepreciationMethod(r.Method),
			Averaging:             domain.AveragingMethod(r.Averaging),
			Rate:                  r.Rate,
			EffectiveLife:         r.EffectiveLife,
		},
		Register: r.Register,
	}, nil
}

// AssetIDsRequest carries the targets of a batch lifecycle operation.
type AssetIDsRequest struct {
	AssetIDs []string `json:"asset_ids" validate:"required,min=1,dive,required"`
}

// Validate checks the request.
func (r *AssetIDsRequest) Validate() error {
	return validate.Struct(r)
}

// RunDepreciationRequest represents a request to run depreciation.
type RunDepreciationRequest struct {
	ToDate string `json:"to_date" validate:"required,datetime=2006-01-02"`
}

// ParseToDate validates the request and returns the run cutoff.
func (r *RunDepreciationRequest) ParseToDate() (time.Time, error) {
	if err := validate.Struct(r); err != nil {
		return time.Time{}, err
	}

	return parseDate(r.ToDate)
}

// RollbackDepreciationRequest represents a request to roll depreciation back.
type RollbackDepreciationRequest struct {
	Cutoff string `json:"cutoff" validate:"required,datetime=2006-01-02"`
}

// ParseCutoff validates the request and returns the rollback cutoff.
func (r *RollbackDepreciationRequest) ParseCutoff() (time.Time, error) {
	if err := validate.Struct(r); err != nil {
		return time.Time{}, err
	}

	return parseDate(r.Cutoff)
}

// PreviewDisposalRequest represents a request to price out a disposal.
type PreviewDisposalRequest struct {
	DisposedOn   string          `json:"disposed_on" validate:"required,datetime=2006-01-02"`
	SaleProceeds decimal.Decimal `json:"sale_proceeds"`
	Mode         string          `json:"mode" validate:"omitempty,oneof=sold written_off"`
}

// ToUseCaseInput converts to use case input.
func (r *PreviewDisposalRequest) ToUseCaseInput(assetID string) (usecase.PreviewInput, error) {
	if err := validate.Struct(r); err != nil {
		return usecase.PreviewInput{}, err
	}

	disposedOn, err := parseDate(r.DisposedOn)
	if err != nil {
		return usecase.PreviewInput{}, err
	}

	return usecase.PreviewInput{
		AssetID:      assetID,
		DisposedOn:   disposedOn,
		SaleProceeds: r.SaleProceeds,
		Mode:         r.Mode,
	}, nil
}

// DisposeRequest represents a request to record a disposal.
type DisposeRequest struct {
	DisposedOn        string          `json:"disposed_on" validate:"required,datetime=2006-01-02"`
	SaleProceeds      decimal.Decimal `json:"sale_proceeds"`
	ProceedsAccountID string          `json:"proceeds_account_id"`
	Mode              string          `json:"mode" validate:"omitempty,oneof=sold written_off"`
}

// ToUseCaseInput converts to use case input.
func (r *DisposeRequest) ToUseCaseInput(assetID string) (usecase.DisposeInput, error) {
	if err := validate.Struct(r); err != nil {
		return usecase.DisposeInput{}, err
	}

	disposedOn, err := parseDate(r.DisposedOn)
	if err != nil {
		return usecase.DisposeInput{}, err
	}

	return usecase.DisposeInput{
		AssetID:           assetID,
		DisposedOn:        disposedOn,
		SaleProceeds:      r.SaleProceeds,
		ProceedsAccountID: r.ProceedsAccountID,
		Mode:              r.Mode,
	}, nil
}

// UpsertSettingRequest represents a request to write the register setting.
type UpsertSettingRequest struct {
	StartDate            string `json:"start_date" validate:"required,datetime=2006-01-02"`
	CapitalGainAccountID string `json:"capital_gain_account_id"`
	GainAccountID        string `json:"gain_account_id"`
	LossAccountID        string `json:"loss_account_id"`
}

// ToUseCaseInput converts to use case input.
func (r *UpsertSettingRequest) ToUseCaseInput() (usecase.UpsertSettingInput, error) {
	if err := validate.Struct(r); err != nil {
		return usecase.UpsertSettingInput{}, err
	}

	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return usecase.UpsertSettingInput{}, err
	}

	return usecase.UpsertSettingInput{
		StartDate:            startDate,
		CapitalGainAccountID: r.CapitalGainAccountID,
		GainAccountID:        r.GainAccountID,
		LossAccountID:        r.LossAccountID,
	}, nil
}

// TypeRequest represents a request to create or update an asset type.
type TypeRequest struct {
	Name                 string           `json:"name" validate:"required"`
	AssetAccountID       string           `json:"asset_account_id"`
	AccumulatedAccountID string           `json:"accumulated_account_id"`
	ExpenseAccountID     string           `json:"expense_account_id"`
	Method               string           `json:"method" validate:"required"`
	Averaging            string           `json:"averaging" validate:"required"`
	Rate                 *decimal.Decimal `json:"rate,omitempty"`
	EffectiveLife        *decimal.Decimal `json:"effective_life,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TypeRequest) ToUseCaseInput() (usecase.TypeInput, error) {
	if err := validate.Struct(r); err != nil {
		return usecase.TypeInput{}, err
	}

	return usecase.TypeInput{
		Name:                 r.Name,
		AssetAccountID:       r.AssetAccountID,
		AccumulatedAccountID: r.AccumulatedAccountID,
		ExpenseAccountID:     r.ExpenseAccountID,
		Method:               domain.DepreciationMethod(r.Method),
		Averaging:            domain.AveragingMethod(r.Averaging),
		Rate:                 r.Rate,
		EffectiveLife:        r.EffectiveLife,
	}, nil
}

// CreateAccountRequest represents a request to register a posting account.
type CreateAccountRequest struct {
	Name    string `json:"name" validate:"required"`
	Code    string `json:"code" validate:"required"`
	TaxCode string `json:"tax_code"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() (usecase.CreateAccountInput, error) {
	if err := validate.Struct(r); err != nil {
		return usecase.CreateAccountInput{}, err
	}

	return usecase.CreateAccountInput{
		Name:    r.Name,
		Code:    r.Code,
		TaxCode: r.TaxCode,
	}, nil
}
