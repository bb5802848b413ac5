package repositories

import (
	"context"
	"errors"
	"konnadex/internal/models"
)

var (
	ErrStateNotFound = errors.New("ledger state not found")
	ErrStateExists   = errors.New("ledger state already exists")
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExists   = errors.New("token already exists")
)

// StateRepository persists the ledger state and token registry of gateway
// contracts, keyed by contract account.
type StateRepository interface {
	Load(ctx context.Context, contract string) (*models.LedgerState, error)
	Create(ctx context.Context, state *models.LedgerState) error
	Save(ctx context.Context, state *models.LedgerState) error

	FindToken(ctx context.Context, contract, symbol string) (*models.Token, error)
	AddToken(ctx context.Context, token *models.Token) error
}
