package domain

import "time"

// AssetSetting holds a user's register-wide configuration: the date
// depreciation runs walk forward from, and the accounts disposal journal
// lines post to. One setting exists per user.
type AssetSetting struct {
	ID                   string
	UserID               string
	StartDate            time.Time
	CapitalGainAccountID string
	GainAccountID        string
	LossAccountID        string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AssetAccount is a posting target in the remote bookkeeping service.
type AssetAccount struct {
	ID        string
	Name      string
	Code      string
	TaxCode   string
	CreatedAt time.Time
}
