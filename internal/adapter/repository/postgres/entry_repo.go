package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

func (r *EntryRepository) db(tx usecase.Transaction) dbtx {
	if tx != nil {
		return tx.(*Tx).PgxTx()
	}

	return r.pool
}

// Create inserts one depreciation entry. The unique index on
// (asset_id, period_end) surfaces as ErrDuplicatePeriod.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.DepreciationEntry) error {
	query := `
		INSERT INTO depreciation_entries (id, asset_id, period_end, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db(tx).Exec(ctx, query,
		entry.ID,
		entry.AssetID,
		timeToPgDate(entry.PeriodEnd),
		decimalToNumeric(entry.Amount),
		entry.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrDuplicatePeriod
	}

	return err
}

// ListByAsset returns all entries for an asset ordered by period end.
func (r *EntryRepository) ListByAsset(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error) {
	query := `
		SELECT id, asset_id, period_end, amount, created_at
		FROM depreciation_entries
		WHERE asset_id = $1
		ORDER BY period_end
	`

	rows, err := r.pool.Query(ctx, query, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListAfter returns the entries whose period end falls strictly after the
// given date, ordered by period end.
func (r *EntryRepository) ListAfter(ctx context.Context, assetID string, after time.Time) ([]*domain.DepreciationEntry, error) {
	query := `
		SELECT id, asset_id, period_end, amount, created_at
		FROM depreciation_entries
		WHERE asset_id = $1 AND period_end > $2
		ORDER BY period_end
	`

	rows, err := r.pool.Query(ctx, query, assetID, timeToPgDate(after))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// SumByAsset returns the accumulated depreciation of an asset, or nil
// when the asset has no entries.
func (r *EntryRepository) SumByAsset(ctx context.Context, assetID string) (*decimal.Decimal, error) {
	query := `SELECT SUM(amount) FROM depreciation_entries WHERE asset_id = $1`

	var sum pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, assetID).Scan(&sum); err != nil {
		return nil, err
	}

	return numericToDecimalPtr(sum), nil
}

// Latest returns the most recent entry of an asset, or
// ErrNoDepreciationHistory when none exist.
func (r *EntryRepository) Latest(ctx context.Context, assetID string) (*domain.DepreciationEntry, error) {
	query := `
		SELECT id, asset_id, period_end, amount, created_at
		FROM depreciation_entries
		WHERE asset_id = $1
		ORDER BY period_end DESC
		LIMIT 1
	`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, assetID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNoDepreciationHistory
	}

	return entry, err
}

// DeleteByAsset removes all entries of an asset.
func (r *EntryRepository) DeleteByAsset(ctx context.Context, tx usecase.Transaction, assetID string) error {
	query := `DELETE FROM depreciation_entries WHERE asset_id = $1`

	_, err := r.db(tx).Exec(ctx, query, assetID)

	return err
}

// DeleteAfter removes the entries whose period end falls strictly after
// the given date.
func (r *EntryRepository) DeleteAfter(ctx context.Context, tx usecase.Transaction, assetID string, after time.Time) error {
	query := `DELETE FROM depreciation_entries WHERE asset_id = $1 AND period_end > $2`

	_, err := r.db(tx).Exec(ctx, query, assetID, timeToPgDate(after))

	return err
}

func scanEntries(rows pgx.Rows) ([]*domain.DepreciationEntry, error) {
	var entries []*domain.DepreciationEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.DepreciationEntry, error) {
	var (
		entry     domain.DepreciationEntry
		periodEnd pgtype.Date
		amount    pgtype.Numeric
	)

	err := row.Scan(&entry.ID, &entry.AssetID, &periodEnd, &amount, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	entry.PeriodEnd = pgDateToTime(periodEnd)
	entry.Amount = numericToDecimal(amount)

	return &entry, nil
}
