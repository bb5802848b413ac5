package repositories

import (
	"context"
	"errors"
	"fmt"
	"konnadex/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetForUpdate(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) Save(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *accountRepository) CreateTransfer(ctx context.Context, record *models.TransferRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to record transfer: %w", err)
	}
	return nil
}

func (r *accountRepository) ListTransfers(ctx context.Context, account string, limit, offset int) ([]models.TransferRecord, error) {
	var records []models.TransferRecord
	err := r.db.WithContext(ctx).
		Where("sender = ? OR recipient = ?", account, account).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	return records, nil
}

func (r *accountRepository) ExecuteInTransaction(ctx context.Context, fn func(AccountRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&accountRepository{db: tx})
	})
}
