package settlement

import (
	"context"
	"konnadex/internal/models"
)

// Service moves native funds between settlement accounts.
type Service interface {
	// Settle applies a batch all-or-nothing and returns the transfers it
	// executed, with drain amounts resolved.
	Settle(ctx context.Context, batch *models.TransferBatch) ([]models.Transfer, error)
	Balance(ctx context.Context, account string) (models.Amount, error)
	Mint(ctx context.Context, account string, amount models.Amount) error
	History(ctx context.Context, account string, limit, offset int) ([]models.TransferRecord, error)
}
