package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrellis/assetbook/internal/domain"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a posting account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.AssetAccount) error {
	query := `
		INSERT INTO asset_accounts (id, name, code, tax_code, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Name,
		account.Code,
		account.TaxCode,
		account.CreatedAt,
	)

	return err
}

// GetByID retrieves one posting account, or ErrAccountNotFound.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.AssetAccount, error) {
	query := `SELECT id, name, code, tax_code, created_at FROM asset_accounts WHERE id = $1`

	var account domain.AssetAccount
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Name,
		&account.Code,
		&account.TaxCode,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return &account, nil
}

// List lists all posting accounts ordered by code.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.AssetAccount, error) {
	query := `SELECT id, name, code, tax_code, created_at FROM asset_accounts ORDER BY code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.AssetAccount
	for rows.Next() {
		var account domain.AssetAccount
		err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Code,
			&account.TaxCode,
			&account.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, &account)
	}

	return accounts, rows.Err()
}
