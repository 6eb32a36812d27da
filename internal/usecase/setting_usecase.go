package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/fintrellis/assetbook/internal/domain"
)

// SettingUseCase manages the per-user register configuration.
type SettingUseCase struct {
	settingRepo SettingRepository
	idGen       IDGenerator
}

// NewSettingUseCase creates a new SettingUseCase.
func NewSettingUseCase(settingRepo SettingRepository, idGen IDGenerator) *SettingUseCase {
	return &SettingUseCase{
		settingRepo: settingRepo,
		idGen:       idGen,
	}
}

// GetSetting returns the acting user's register setting.
func (uc *SettingUseCase) GetSetting(ctx context.Context) (*domain.AssetSetting, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	return uc.settingRepo.GetByUser(ctx, user.ID)
}

// UpsertSettingInput represents input for writing the register setting.
type UpsertSettingInput struct {
	StartDate            time.Time
	CapitalGainAccountID string
	GainAccountID        string
	LossAccountID        string
}

// UpsertSetting creates the user's setting on first write and updates it
// afterwards. One setting exists per user.
func (uc *SettingUseCase) UpsertSetting(ctx context.Context, input UpsertSettingInput) (*domain.AssetSetting, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()

	setting, err := uc.settingRepo.GetByUser(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingNotFound) {
			return nil, err
		}

		setting = &domain.AssetSetting{
			ID:                   uc.idGen.Generate(),
			UserID:               user.ID,
			StartDate:            input.StartDate,
			CapitalGainAccountID: input.CapitalGainAccountID,
			GainAccountID:        input.GainAccountID,
			LossAccountID:        input.LossAccountID,
			CreatedAt:            now,
			UpdatedAt:            now,
		}

		if err := uc.settingRepo.Create(ctx, setting); err != nil {
			return nil, err
		}

		return setting, nil
	}

	setting.StartDate = input.StartDate
	setting.CapitalGainAccountID = input.CapitalGainAccountID
	setting.GainAccountID = input.GainAccountID
	setting.LossAccountID = input.LossAccountID
	setting.UpdatedAt = now

	if err := uc.settingRepo.Update(ctx, setting); err != nil {
		return nil, err
	}

	return setting, nil
}
