package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
)

const pgErrUniqueViolation = "23505"

const assetColumns = `id, user_id, name, number, serial_number, region, description, type_id,
	purchase_date, purchase_price, warranty_expiry,
	depreciation_start_date, cost_limit, residual_value, method, averaging, rate, effective_life,
	status, book_value, created_at, updated_at`

// AssetRepository implements usecase.AssetRepository.
type AssetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

func (r *AssetRepository) db(tx usecase.Transaction) dbtx {
	if tx != nil {
		return tx.(*Tx).PgxTx()
	}

	return r.pool
}

// Create inserts a new asset. A duplicate asset number for the same user
// surfaces as ErrAssetNumberTaken.
func (r *AssetRepository) Create(ctx context.Context, tx usecase.Transaction, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := r.db(tx).Exec(ctx, query,
		asset.ID,
		asset.UserID,
		asset.Name,
		asset.Number,
		asset.SerialNumber,
		asset.Region,
		asset.Description,
		nullString(asset.TypeID),
		timeToPgDate(asset.PurchaseDate),
		decimalToNumeric(asset.PurchasePrice),
		timePtrToPgDate(asset.WarrantyExpiry),
		timeToPgDate(asset.DepreciationStartDate),
		decimalPtrToNumeric(asset.CostLimit),
		decimalPtrToNumeric(asset.ResidualValue),
		string(asset.Method),
		string(asset.Averaging),
		decimalPtrToNumeric(asset.Rate),
		decimalPtrToNumeric(asset.EffectiveLife),
		string(asset.Status),
		decimalToNumeric(asset.BookValue),
		asset.CreatedAt,
		asset.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrAssetNumberTaken
	}

	return err
}

// GetByID retrieves one asset scoped to its owner.
func (r *AssetRepository) GetByID(ctx context.Context, userID, id string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 AND user_id = $2`

	return r.scanAsset(r.pool.QueryRow(ctx, query, id, userID))
}

// GetByIDForUpdate retrieves an asset with a FOR UPDATE lock.
func (r *AssetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 AND user_id = $2 FOR UPDATE`

	return r.scanAsset(r.db(tx).QueryRow(ctx, query, id, userID))
}

var assetOrderColumns = map[string]string{
	"name":          "name",
	"number":        "number",
	"purchase_date": "purchase_date",
	"created_at":    "created_at",
}

// List lists a user's assets with optional status, search and pagination.
func (r *AssetRepository) List(ctx context.Context, userID string, filter usecase.AssetFilter) ([]*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE user_id = $1`
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR number ILIKE $%d)", len(args), len(args))
	}

	orderBy := "created_at DESC"
	if column, ok := assetOrderColumns[filter.OrderBy]; ok {
		orderBy = column
	}
	query += " ORDER BY " + orderBy

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAssets(rows)
}

// ListByStatus lists all of a user's assets in the given state.
func (r *AssetRepository) ListByStatus(ctx context.Context, userID string, status domain.AssetStatus) ([]*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE user_id = $1 AND status = $2 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAssets(rows)
}

// UpdateLifecycle writes the asset's state and book value.
func (r *AssetRepository) UpdateLifecycle(ctx context.Context, tx usecase.Transaction, id string, status domain.AssetStatus, bookValue decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE assets SET status = $2, book_value = $3, updated_at = $4 WHERE id = $1`

	_, err := r.db(tx).Exec(ctx, query, id, string(status), decimalToNumeric(bookValue), updatedAt)

	return err
}

// UpdateBookValue writes the asset's derived book value.
func (r *AssetRepository) UpdateBookValue(ctx context.Context, tx usecase.Transaction, id string, bookValue decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE assets SET book_value = $2, updated_at = $3 WHERE id = $1`

	_, err := r.db(tx).Exec(ctx, query, id, decimalToNumeric(bookValue), updatedAt)

	return err
}

// Delete removes the given assets of a user. Ledger entries and
// disposals cascade on the foreign key.
func (r *AssetRepository) Delete(ctx context.Context, userID string, ids []string) error {
	query := `DELETE FROM assets WHERE user_id = $1 AND id = ANY($2)`

	_, err := r.pool.Exec(ctx, query, userID, ids)

	return err
}

// CountByStatus reports how many assets the user holds in each state.
func (r *AssetRepository) CountByStatus(ctx context.Context, userID string) (map[domain.AssetStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM assets WHERE user_id = $1 GROUP BY status`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.AssetStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[domain.AssetStatus(status)] = count
	}

	return counts, rows.Err()
}

func (r *AssetRepository) scanAssets(rows pgx.Rows) ([]*domain.Asset, error) {
	var assets []*domain.Asset
	for rows.Next() {
		asset, err := r.scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, rows.Err()
}

func (r *AssetRepository) scanAsset(row pgx.Row) (*domain.Asset, error) {
	var (
		asset          domain.Asset
		typeID         pgtype.Text
		purchaseDate   pgtype.Date
		purchasePrice  pgtype.Numeric
		warrantyExpiry pgtype.Date
		startDate      pgtype.Date
		costLimit      pgtype.Numeric
		residualValue  pgtype.Numeric
		method         string
		averaging      string
		rate           pgtype.Numeric
		effectiveLife  pgtype.Numeric
		status         string
		bookValue      pgtype.Numeric
	)

	err := row.Scan(
		&asset.ID,
		&asset.UserID,
		&asset.Name,
		&asset.Number,
		&asset.SerialNumber,
		&asset.Region,
		&asset.Description,
		&typeID,
		&purchaseDate,
		&purchasePrice,
		&warrantyExpiry,
		&startDate,
		&costLimit,
		&residualValue,
		&method,
		&averaging,
		&rate,
		&effectiveLife,
		&status,
		&bookValue,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}

		return nil, err
	}

	asset.TypeID = typeID.String
	asset.PurchaseDate = pgDateToTime(purchaseDate)
	asset.PurchasePrice = numericToDecimal(purchasePrice)
	asset.WarrantyExpiry = pgDateToTimePtr(warrantyExpiry)
	asset.DepreciationStartDate = pgDateToTime(startDate)
	asset.CostLimit = numericToDecimalPtr(costLimit)
	asset.ResidualValue = numericToDecimalPtr(residualValue)
	asset.Method = domain.DepreciationMethod(method)
	asset.Averaging = domain.AveragingMethod(averaging)
	asset.Rate = numericToDecimalPtr(rate)
	asset.EffectiveLife = numericToDecimalPtr(effectiveLife)
	asset.Status = domain.AssetStatus(status)
	asset.BookValue = numericToDecimal(bookValue)

	return &asset, nil
}

func nullString(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
