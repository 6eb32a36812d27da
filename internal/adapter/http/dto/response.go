package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
)

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}

	return formatDate(*t)
}

// AssetResponse represents an asset in API responses.
type AssetResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Number       string `json:"number"`
	SerialNumber string `json:"serial_number,omitempty"`
	Region       string `json:"region,omitempty"`
	Description  string `json:"description,omitempty"`
	TypeID       string `json:"type_id,omitempty"`

	PurchaseDate   string          `json:"purchase_date"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	WarrantyExpiry string          `json:"warranty_expiry,omitempty"`

	DepreciationStartDate string           `json:"depreciation_start_date"`
	CostLimit             *decimal.Decimal `json:"cost_limit,omitempty"`
	ResidualValue         *decimal.Decimal `json:"residual_value,omitempty"`
	Method                string           `json:"method"`
	Averaging             string           `json:"averaging"`
	Rate                  *decimal.Decimal `json:"rate,omitempty"`
	EffectiveLife         *decimal.Decimal `json:"effective_life,omitempty"`

	Status    string          `json:"status"`
	BookValue decimal.Decimal `json:"book_value"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AssetFromDomain converts domain asset to response.
func AssetFromDomain(a *domain.Asset) *AssetResponse {
	return &AssetResponse{
		ID:                    a.ID,
		Name:                  a.Name,
		Number:                a.Number,
		SerialNumber:          a.SerialNumber,
		Region:                a.Region,
		Description:           a.Description,
		TypeID:                a.TypeID,
		PurchaseDate:          formatDate(a.PurchaseDate),
		PurchasePrice:         a.PurchasePrice,
		WarrantyExpiry:        formatDatePtr(a.WarrantyExpiry),
		DepreciationStartDate: formatDate(a.DepreciationStartDate),
		CostLimit:             a.CostLimit,
		ResidualValue:         a.ResidualValue,
		Method:                string(a.Method),
		Averaging:             string(a.Averaging),
		Rate:                  a.Rate,
		EffectiveLife:         a.EffectiveLife,
		Status:                string(a.Status),
		BookValue:             a.BookValue,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

// AssetsFromDomain converts domain assets to responses.
func AssetsFromDomain(assets []*domain.Asset) []*AssetResponse {
	result := make([]*AssetResponse, len(assets))
	for i, a := range assets {
		result[i] = AssetFromDomain(a)
	}
	return result
}

// EntryResponse represents a depreciation entry in API responses.
type EntryResponse struct {
	ID        string          `json:"id"`
	AssetID   string          `json:"asset_id"`
	PeriodEnd string          `json:"period_end"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.DepreciationEntry) *EntryResponse {
	return &EntryResponse{
		ID:        e.ID,
		AssetID:   e.AssetID,
		PeriodEnd: formatDate(e.PeriodEnd),
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.DepreciationEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// JournalResponse represents a disposal journal in API responses.
// Optional lines are omitted when they do not apply.
type JournalResponse struct {
	Cost                    decimal.Decimal `json:"cost"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	SaleProceeds            decimal.Decimal `json:"sale_proceeds"`

	GainOnDisposal *decimal.Decimal `json:"gain_on_disposal,omitempty"`
	LossOnDisposal *decimal.Decimal `json:"loss_on_disposal,omitempty"`
	CapitalGain    *decimal.Decimal `json:"capital_gain,omitempty"`

	DepreciationToBePosted   *decimal.Decimal `json:"depreciation_to_be_posted,omitempty"`
	DepreciationToBePostedOn string           `json:"depreciation_to_be_posted_on,omitempty"`

	ReversalOfDepreciation *decimal.Decimal `json:"reversal_of_depreciation,omitempty"`
	ReversalFrom           string           `json:"reversal_from,omitempty"`
	ReversalTo             string           `json:"reversal_to,omitempty"`
}

// JournalFromDomain converts a domain journal to response.
func JournalFromDomain(j *domain.DisposalJournal) *JournalResponse {
	return &JournalResponse{
		Cost:                     j.Cost,
		AccumulatedDepreciation:  j.AccumulatedDepreciation,
		SaleProceeds:             j.SaleProceeds,
		GainOnDisposal:           j.GainOnDisposal,
		LossOnDisposal:           j.LossOnDisposal,
		CapitalGain:              j.CapitalGain,
		DepreciationToBePosted:   j.DepreciationToBePosted,
		DepreciationToBePostedOn: formatDatePtr(j.DepreciationToBePostedOn),
		ReversalOfDepreciation:   j.ReversalOfDepreciation,
		ReversalFrom:             formatDatePtr(j.ReversalFrom),
		ReversalTo:               formatDatePtr(j.ReversalTo),
	}
}

// DisposalResponse represents a recorded disposal in API responses.
type DisposalResponse struct {
	ID                string           `json:"id"`
	AssetID           string           `json:"asset_id"`
	DisposedOn        string           `json:"disposed_on"`
	SaleProceeds      decimal.Decimal  `json:"sale_proceeds"`
	ProceedsAccountID string           `json:"proceeds_account_id,omitempty"`
	Journal           *JournalResponse `json:"journal"`
	CreatedAt         time.Time        `json:"created_at"`
}

// DisposalFromDomain converts a domain disposal record to response.
func DisposalFromDomain(d *domain.DisposalRecord) *DisposalResponse {
	return &DisposalResponse{
		ID:                d.ID,
		AssetID:           d.AssetID,
		DisposedOn:        formatDate(d.DisposedOn),
		SaleProceeds:      d.SaleProceeds,
		ProceedsAccountID: d.ProceedsAccountID,
		Journal:           JournalFromDomain(&d.Journal),
		CreatedAt:         d.CreatedAt,
	}
}

// BatchItemResponse is the per-asset outcome of a batch operation.
type BatchItemResponse struct {
	AssetID string `json:"asset_id"`
	Error   string `json:"error,omitempty"`
}

// BatchResultResponse represents the outcome of a batch operation.
type BatchResultResponse struct {
	Succeeded int                 `json:"succeeded"`
	Skipped   int                 `json:"skipped"`
	Items     []BatchItemResponse `json:"items"`
}

// BatchResultFromUseCase converts a batch result to response.
func BatchResultFromUseCase(r *usecase.BatchResult) *BatchResultResponse {
	items := make([]BatchItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = BatchItemResponse{AssetID: item.AssetID}
		if item.Err != nil {
			items[i].Error = item.Err.Error()
		}
	}

	return &BatchResultResponse{
		Succeeded: r.Succeeded,
		Skipped:   r.Skipped,
		Items:     items,
	}
}

// RollbackResponse reports how many entries a rollback reversed.
type RollbackResponse struct {
	Reversed int `json:"reversed"`
}

// SettingResponse represents the register setting in API responses.
type SettingResponse struct {
	ID                   string    `json:"id"`
	StartDate            string    `json:"start_date"`
	CapitalGainAccountID string    `json:"capital_gain_account_id,omitempty"`
	GainAccountID        string    `json:"gain_account_id,omitempty"`
	LossAccountID        string    `json:"loss_account_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// SettingFromDomain converts a domain setting to response.
func SettingFromDomain(s *domain.AssetSetting) *SettingResponse {
	return &SettingResponse{
		ID:                   s.ID,
		StartDate:            formatDate(s.StartDate),
		CapitalGainAccountID: s.CapitalGainAccountID,
		GainAccountID:        s.GainAccountID,
		LossAccountID:        s.LossAccountID,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

// TypeResponse represents an asset type in API responses.
type TypeResponse struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	AssetAccountID       string           `json:"asset_account_id,omitempty"`
	AccumulatedAccountID string           `json:"accumulated_account_id,omitempty"`
	ExpenseAccountID     string           `json:"expense_account_id,omitempty"`
	Method               string           `json:"method"`
	Averaging            string           `json:"averaging"`
	Rate                 *decimal.Decimal `json:"rate,omitempty"`
	EffectiveLife        *decimal.Decimal `json:"effective_life,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// TypeFromDomain converts a domain asset type to response.
func TypeFromDomain(t *domain.AssetType) *TypeResponse {
	return &TypeResponse{
		ID:                   t.ID,
		Name:                 t.Name,
		AssetAccountID:       t.AssetAccountID,
		AccumulatedAccountID: t.AccumulatedAccountID,
		ExpenseAccountID:     t.ExpenseAccountID,
		Method:               string(t.Method),
		Averaging:            string(t.Averaging),
		Rate:                 t.Rate,
		EffectiveLife:        t.EffectiveLife,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

// TypesFromDomain converts domain asset types to responses.
func TypesFromDomain(types []*domain.AssetType) []*TypeResponse {
	result := make([]*TypeResponse, len(types))
	for i, t := range types {
		result[i] = TypeFromDomain(t)
	}
	return result
}

// AccountResponse represents a posting account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	TaxCode   string    `json:"tax_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountFromDomain converts a domain account to response.
func AccountFromDomain(a *domain.AssetAccount) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Code:      a.Code,
		TaxCode:   a.TaxCode,
		CreatedAt: a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.AssetAccount) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
