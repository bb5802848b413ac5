package repositories

import (
	"context"
	"errors"
	"konnadex/internal/models"
)

var ErrAccountNotFound = errors.New("account not found")

// AccountRepository persists settlement-layer balances and the transfers
// that moved them.
type AccountRepository interface {
	Get(ctx context.Context, id string) (*models.Account, error)
	// GetForUpdate reads an account and locks it for the enclosing transaction.
	GetForUpdate(ctx context.Context, id string) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) error

	CreateTransfer(ctx context.Context, record *models.TransferRecord) error
	ListTransfers(ctx context.Context, account string, limit, offset int) ([]models.TransferRecord, error)

	ExecuteInTransaction(ctx context.Context, fn func(AccountRepository) error) error
}
