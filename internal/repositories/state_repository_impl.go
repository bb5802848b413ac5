package repositories

import (
	"context"
	"errors"
	"fmt"
	"konnadex/internal/models"

	"gorm.io/gorm"
)

type stateRepository struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) Load(ctx context.Context, contract string) (*models.LedgerState, error) {
	var state models.LedgerState
	if err := r.db.WithContext(ctx).Where("contract = ?", contract).First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to load ledger state: %w", err)
	}
	return &state, nil
}

func (r *stateRepository) Create(ctx context.Context, state *models.LedgerState) error {
	if err := r.db.WithContext(ctx).Create(state).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrStateExists
		}
		return fmt.Errorf("failed to create ledger state: %w", err)
	}
	return nil
}

func (r *stateRepository) Save(ctx context.Context, state *models.LedgerState) error {
	result := r.db.WithContext(ctx).
		Model(&models.LedgerState{}).
		Where("contract = ?", state.Contract).
		Updates(map[string]interface{}{
			"owner":                    state.Owner,
			"gateway_charge":           state.GatewayCharge,
			"gateway_amount_converter": state.GatewayAmountConverter,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save ledger state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStateNotFound
	}
	return nil
}

func (r *stateRepository) FindToken(ctx context.Context, contract, symbol string) (*models.Token, error) {
	var token models.Token
	err := r.db.WithContext(ctx).
		Where("contract = ? AND symbol = ?", contract, symbol).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}

func (r *stateRepository) AddToken(ctx context.Context, token *models.Token) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTokenExists
		}
		return fmt.Errorf("failed to add token: %w", err)
	}
	return nil
}
