package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
)

// DisposalRepository implements usecase.DisposalRepository. The computed
// journal is stored flattened; optional lines map to nullable columns.
type DisposalRepository struct {
	pool *pgxpool.Pool
}

// NewDisposalRepository creates a new DisposalRepository.
func NewDisposalRepository(pool *pgxpool.Pool) *DisposalRepository {
	return &DisposalRepository{pool: pool}
}

func (r *DisposalRepository) db(tx usecase.Transaction) dbtx {
	if tx != nil {
		return tx.(*Tx).PgxTx()
	}

	return r.pool
}

// Create inserts a disposal record. The unique index on asset_id keeps a
// single disposal per asset.
func (r *DisposalRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.DisposalRecord) error {
	query := `
		INSERT INTO disposals (
			id, asset_id, disposed_on, sale_proceeds, proceeds_account_id,
			cost, accumulated_depreciation,
			gain_on_disposal, loss_on_disposal, capital_gain,
			depreciation_to_be_posted, depreciation_to_be_posted_on,
			reversal_of_depreciation, reversal_from, reversal_to,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	j := record.Journal

	_, err := r.db(tx).Exec(ctx, query,
		record.ID,
		record.AssetID,
		timeToPgDate(record.DisposedOn),
		decimalToNumeric(record.SaleProceeds),
		nullString(record.ProceedsAccountID),
		decimalToNumeric(j.Cost),
		decimalToNumeric(j.AccumulatedDepreciation),
		decimalPtrToNumeric(j.GainOnDisposal),
		decimalPtrToNumeric(j.LossOnDisposal),
		decimalPtrToNumeric(j.CapitalGain),
		decimalPtrToNumeric(j.DepreciationToBePosted),
		timePtrToPgDate(j.DepreciationToBePostedOn),
		decimalPtrToNumeric(j.ReversalOfDepreciation),
		timePtrToPgDate(j.ReversalFrom),
		timePtrToPgDate(j.ReversalTo),
		record.CreatedAt,
	)

	return err
}

// GetByAsset retrieves the disposal record of an asset, or
// ErrDisposalNotFound when the asset was never disposed.
func (r *DisposalRepository) GetByAsset(ctx context.Context, assetID string) (*domain.DisposalRecord, error) {
	query := `
		SELECT id, asset_id, disposed_on, sale_proceeds, proceeds_account_id,
			cost, accumulated_depreciation,
			gain_on_disposal, loss_on_disposal, capital_gain,
			depreciation_to_be_posted, depreciation_to_be_posted_on,
			reversal_of_depreciation, reversal_from, reversal_to,
			created_at
		FROM disposals
		WHERE asset_id = $1
	`

	var (
		record       domain.DisposalRecord
		disposedOn   pgtype.Date
		proceeds     pgtype.Numeric
		accountID    pgtype.Text
		cost         pgtype.Numeric
		accumulated  pgtype.Numeric
		gain         pgtype.Numeric
		loss         pgtype.Numeric
		capitalGain  pgtype.Numeric
		toBePosted   pgtype.Numeric
		toBePostedOn pgtype.Date
		reversal     pgtype.Numeric
		reversalFrom pgtype.Date
		reversalTo   pgtype.Date
	)

	err := r.pool.QueryRow(ctx, query, assetID).Scan(
		&record.ID,
		&record.AssetID,
		&disposedOn,
		&proceeds,
		&accountID,
		&cost,
		&accumulated,
		&gain,
		&loss,
		&capitalGain,
		&toBePosted,
		&toBePostedOn,
		&reversal,
		&reversalFrom,
		&reversalTo,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDisposalNotFound
		}

		return nil, err
	}

	record.DisposedOn = pgDateToTime(disposedOn)
	record.SaleProceeds = numericToDecimal(proceeds)
	record.ProceedsAccountID = accountID.String
	record.Journal = domain.DisposalJournal{
		Cost:                     numericToDecimal(cost),
		AccumulatedDepreciation:  numericToDecimal(accumulated),
		SaleProceeds:             numericToDecimal(proceeds),
		GainOnDisposal:           numericToDecimalPtr(gain),
		LossOnDisposal:           numericToDecimalPtr(loss),
		CapitalGain:              numericToDecimalPtr(capitalGain),
		DepreciationToBePosted:   numericToDecimalPtr(toBePosted),
		DepreciationToBePostedOn: pgDateToTimePtr(toBePostedOn),
		ReversalOfDepreciation:   numericToDecimalPtr(reversal),
		ReversalFrom:             pgDateToTimePtr(reversalFrom),
		ReversalTo:               pgDateToTimePtr(reversalTo),
	}

	return &record, nil
}

// DeleteByAsset removes the disposal record of an asset, if any.
func (r *DisposalRepository) DeleteByAsset(ctx context.Context, tx usecase.Transaction, assetID string) error {
	query := `DELETE FROM disposals WHERE asset_id = $1`

	_, err := r.db(tx).Exec(ctx, query, assetID)

	return err
}
