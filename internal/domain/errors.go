package domain

import "errors"

var (
	// Asset errors
	ErrAssetNotFound    = errors.New("asset not found")
	ErrAssetNumberTaken = errors.New("asset number already in use")
	ErrNotRegistered    = errors.New("asset is not registered")
	ErrNotDisposed      = errors.New("asset is not disposed")
	ErrAlreadyDisposed  = errors.New("asset is already disposed")

	// Depreciation errors
	ErrInvalidMethod         = errors.New("unknown depreciation method")
	ErrInvalidAveraging      = errors.New("unknown averaging method")
	ErrRateOrLifeRequired    = errors.New("depreciation rate or effective life required")
	ErrEffectiveLifeRequired = errors.New("effective life required for diminishing value methods")
	ErrDuplicatePeriod       = errors.New("depreciation already posted for period")
	ErrNoDepreciationHistory = errors.New("asset has no depreciation history")

	// Disposal errors
	ErrDisposalNotFound = errors.New("disposal not found")
	ErrInvalidProceeds  = errors.New("sale proceeds must not be negative")

	// Settings and reference data errors
	ErrSettingNotFound = errors.New("asset setting not found")
	ErrTypeNotFound    = errors.New("asset type not found")
	ErrAccountNotFound = errors.New("asset account not found")
)
