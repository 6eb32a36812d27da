package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrellis/assetbook/internal/domain"
)

// SettingRepository implements usecase.SettingRepository. The unique
// index on user_id keeps one setting per user.
type SettingRepository struct {
	pool *pgxpool.Pool
}

// NewSettingRepository creates a new SettingRepository.
func NewSettingRepository(pool *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{pool: pool}
}

// Create inserts a user's setting.
func (r *SettingRepository) Create(ctx context.Context, setting *domain.AssetSetting) error {
	query := `
		INSERT INTO asset_settings (
			id, user_id, start_date,
			capital_gain_account_id, gain_account_id, loss_account_id,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		setting.ID,
		setting.UserID,
		timeToPgDate(setting.StartDate),
		nullString(setting.CapitalGainAccountID),
		nullString(setting.GainAccountID),
		nullString(setting.LossAccountID),
		setting.CreatedAt,
		setting.UpdatedAt,
	)

	return err
}

// GetByUser retrieves a user's setting, or ErrSettingNotFound.
func (r *SettingRepository) GetByUser(ctx context.Context, userID string) (*domain.AssetSetting, error) {
	query := `
		SELECT id, user_id, start_date,
			capital_gain_account_id, gain_account_id, loss_account_id,
			created_at, updated_at
		FROM asset_settings
		WHERE user_id = $1
	`

	var (
		setting       domain.AssetSetting
		startDate     pgtype.Date
		capitalGainID pgtype.Text
		gainID        pgtype.Text
		lossID        pgtype.Text
	)

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&setting.ID,
		&setting.UserID,
		&startDate,
		&capitalGainID,
		&gainID,
		&lossID,
		&setting.CreatedAt,
		&setting.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingNotFound
		}

		return nil, err
	}

	setting.StartDate = pgDateToTime(startDate)
	setting.CapitalGainAccountID = capitalGainID.String
	setting.GainAccountID = gainID.String
	setting.LossAccountID = lossID.String

	return &setting, nil
}

// Update rewrites a user's setting.
func (r *SettingRepository) Update(ctx context.Context, setting *domain.AssetSetting) error {
	query := `
		UPDATE asset_settings
		SET start_date = $2,
			capital_gain_account_id = $3,
			gain_account_id = $4,
			loss_account_id = $5,
			updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		setting.ID,
		timeToPgDate(setting.StartDate),
		nullString(setting.CapitalGainAccountID),
		nullString(setting.GainAccountID),
		nullString(setting.LossAccountID),
		setting.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSettingNotFound
	}

	return nil
}
