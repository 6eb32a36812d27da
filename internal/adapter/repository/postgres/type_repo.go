package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrellis/assetbook/internal/domain"
)

const typeColumns = `id, user_id, name,
	asset_account_id, accumulated_account_id, expense_account_id,
	method, averaging, rate, effective_life,
	created_at, updated_at`

// TypeRepository implements usecase.TypeRepository.
type TypeRepository struct {
	pool *pgxpool.Pool
}

// NewTypeRepository creates a new TypeRepository.
func NewTypeRepository(pool *pgxpool.Pool) *TypeRepository {
	return &TypeRepository{pool: pool}
}

// Create inserts an asset type.
func (r *TypeRepository) Create(ctx context.Context, assetType *domain.AssetType) error {
	query := `
		INSERT INTO asset_types (` + typeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		assetType.ID,
		assetType.UserID,
		assetType.Name,
		nullString(assetType.AssetAccountID),
		nullString(assetType.AccumulatedAccountID),
		nullString(assetType.ExpenseAccountID),
		string(assetType.Method),
		string(assetType.Averaging),
		decimalPtrToNumeric(assetType.Rate),
		decimalPtrToNumeric(assetType.EffectiveLife),
		assetType.CreatedAt,
		assetType.UpdatedAt,
	)

	return err
}

// GetByID retrieves one asset type scoped to its owner.
func (r *TypeRepository) GetByID(ctx context.Context, userID, id string) (*domain.AssetType, error) {
	query := `SELECT ` + typeColumns + ` FROM asset_types WHERE id = $1 AND user_id = $2`

	return scanType(r.pool.QueryRow(ctx, query, id, userID))
}

// List lists a user's asset types ordered by name.
func (r *TypeRepository) List(ctx context.Context, userID string, limit, offset int) ([]*domain.AssetType, error) {
	query := `SELECT ` + typeColumns + ` FROM asset_types WHERE user_id = $1 ORDER BY name`
	args := []any{userID}

	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*domain.AssetType
	for rows.Next() {
		assetType, err := scanType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, assetType)
	}

	return types, rows.Err()
}

// Update rewrites an asset type.
func (r *TypeRepository) Update(ctx context.Context, assetType *domain.AssetType) error {
	query := `
		UPDATE asset_types
		SET name = $2,
			asset_account_id = $3,
			accumulated_account_id = $4,
			expense_account_id = $5,
			method = $6,
			averaging = $7,
			rate = $8,
			effective_life = $9,
			updated_at = $10
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		assetType.ID,
		assetType.Name,
		nullString(assetType.AssetAccountID),
		nullString(assetType.AccumulatedAccountID),
		nullString(assetType.ExpenseAccountID),
		string(assetType.Method),
		string(assetType.Averaging),
		decimalPtrToNumeric(assetType.Rate),
		decimalPtrToNumeric(assetType.EffectiveLife),
		assetType.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTypeNotFound
	}

	return nil
}

func scanType(row pgx.Row) (*domain.AssetType, error) {
	var (
		assetType     domain.AssetType
		assetAcct     pgtype.Text
		accumAcct     pgtype.Text
		expenseAcct   pgtype.Text
		method        string
		averaging     string
		rate          pgtype.Numeric
		effectiveLife pgtype.Numeric
	)

	err := row.Scan(
		&assetType.ID,
		&assetType.UserID,
		&assetType.Name,
		&assetAcct,
		&accumAcct,
		&expenseAcct,
		&method,
		&averaging,
		&rate,
		&effectiveLife,
		&assetType.CreatedAt,
		&assetType.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTypeNotFound
		}

		return nil, err
	}

	assetType.AssetAccountID = assetAcct.String
	assetType.AccumulatedAccountID = accumAcct.String
	assetType.ExpenseAccountID = expenseAcct.String
	assetType.Method = domain.DepreciationMethod(method)
	assetType.Averaging = domain.AveragingMethod(averaging)
	assetType.Rate = numericToDecimalPtr(rate)
	assetType.EffectiveLife = numericToDecimalPtr(effectiveLife)

	return &assetType, nil
}
