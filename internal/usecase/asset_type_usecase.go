package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrellis/assetbook/internal/domain"
)

// TypeUseCase manages per-user asset type templates.
type TypeUseCase struct {
	typeRepo TypeRepository
	idGen    IDGenerator
}

// NewTypeUseCase creates a new TypeUseCase.
func NewTypeUseCase(typeRepo TypeRepository, idGen IDGenerator) *TypeUseCase {
	return &TypeUseCase{
		typeRepo: typeRepo,
		idGen:    idGen,
	}
}

// TypeInput represents input for creating or updating an asset type.
type TypeInput struct {
	Name                 string
	AssetAccountID       string
	AccumulatedAccountID string
	ExpenseAccountID     string
	Method               domain.DepreciationMethod
	Averaging            domain.AveragingMethod
	Rate                 *decimal.Decimal
	EffectiveLife        *decimal.Decimal
}

// CreateType creates a new asset type for the acting user.
func (uc *TypeUseCase) CreateType(ctx context.Context, input TypeInput) (*domain.AssetType, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()

	assetType := &domain.AssetType{
		ID:                   uc.idGen.Generate(),
		UserID:               user.ID,
		Name:                 input.Name,
		AssetAccountID:       input.AssetAccountID,
		AccumulatedAccountID: input.AccumulatedAccountID,
		ExpenseAccountID:     input.ExpenseAccountID,
		Method:               input.Method,
		Averaging:            input.Averaging,
		Rate:                 input.Rate,
		EffectiveLife:        input.EffectiveLife,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := uc.typeRepo.Create(ctx, assetType); err != nil {
		return nil, err
	}

	return assetType, nil
}

// GetType retrieves one asset type of the acting user.
func (uc *TypeUseCase) GetType(ctx context.Context, id string) (*domain.AssetType, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	return uc.typeRepo.GetByID(ctx, user.ID, id)
}

// ListTypes lists the user's asset types with pagination.
func (uc *TypeUseCase) ListTypes(ctx context.Context, limit, offset int) ([]*domain.AssetType, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return uc.typeRepo.List(ctx, user.ID, limit, offset)
}

// UpdateType rewrites an existing asset type of the acting user.
func (uc *TypeUseCase) UpdateType(ctx context.Context, id string, input TypeInput) (*domain.AssetType, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	assetType, err := uc.typeRepo.GetByID(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}

	assetType.Name = input.Name
	assetType.AssetAccountID = input.AssetAccountID
	assetType.AccumulatedAccountID = input.AccumulatedAccountID
	assetType.ExpenseAccountID = input.ExpenseAccountID
	assetType.Method = input.Method
	assetType.Averaging = input.Averaging
	assetType.Rate = input.Rate
	assetType.EffectiveLife = input.EffectiveLife
	assetType.UpdatedAt = time.Now().UTC()

	if err := uc.typeRepo.Update(ctx, assetType); err != nil {
		return nil, err
	}

	return assetType, nil
}
