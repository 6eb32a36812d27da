package usecase

import (
	"context"
	"time"

	"github.com/fintrellis/assetbook/internal/domain"
)

// AccountUseCase lists and registers the posting accounts disposal
// journal lines target in the remote bookkeeping service.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for registering a posting account.
type CreateAccountInput struct {
	Name    string
	Code    string
	TaxCode string
}

// CreateAccount registers a posting account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.AssetAccount, error) {
	account := &domain.AssetAccount{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Code:      input.Code,
		TaxCode:   input.TaxCode,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves a posting account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.AssetAccount, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists all posting accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context) ([]*domain.AssetAccount, error) {
	return uc.accountRepo.List(ctx)
}
