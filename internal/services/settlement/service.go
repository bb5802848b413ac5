package settlement

import (
	"context"
	"errors"
	"fmt"

	"konnadex/internal/logger"
	"konnadex/internal/models"
	"konnadex/internal/repositories"

	"github.com/google/uuid"
)

const defaultHistoryLimit = 50

type service struct {
	repo repositories.AccountRepository
	log  logger.Logger
}

// NewService creates a settlement service over repo.
func NewService(repo repositories.AccountRepository, log logger.Logger) Service {
	if repo == nil {
		panic("repo is required")
	}
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &service{repo: repo, log: log}
}

func (s *service) Settle(ctx context.Context, batch *models.TransferBatch) ([]models.Transfer, error) {
	if batch == nil || batch.Contract == "" {
		return nil, fmt.Errorf("%w: contract account is required", ErrInvalidBatch)
	}
	if !batch.Deposit.IsZero() && batch.From == "" {
		return nil, fmt.Errorf("%w: deposit without a depositor", ErrInvalidBatch)
	}
	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}

	var executed []models.Transfer
	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.AccountRepository) error {
		executed = executed[:0]

		if !batch.Deposit.IsZero() {
			if err := move(ctx, tx, batch.ID, models.TransferKindDeposit, batch.From, batch.Contract, batch.Deposit); err != nil {
				return err
			}
		}

		for _, t := range batch.Transfers {
			amount := t.Amount
			if t.Drain {
				contract, err := loadForUpdate(ctx, tx, batch.Contract)
				if err != nil {
					return err
				}
				amount = contract.Balance
			}
			if !amount.IsZero() {
				if err := move(ctx, tx, batch.ID, models.TransferKindTransfer, batch.Contract, t.Recipient, amount); err != nil {
					return err
				}
			}
			executed = append(executed, models.Transfer{Recipient: t.Recipient, Amount: amount})
		}
		return nil
	})
	if err != nil {
		s.log.Warn("settlement batch rolled back", map[string]any{
			"batch_id": batch.ID.String(),
			"contract": batch.Contract,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.log.Debug("settlement batch applied", map[string]any{
		"batch_id":  batch.ID.String(),
		"contract":  batch.Contract,
		"deposit":   batch.Deposit.String(),
		"transfers": len(executed),
	})
	return executed, nil
}

func (s *service) Balance(ctx context.Context, account string) (models.Amount, error) {
	acct, err := s.repo.Get(ctx, account)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return models.Amount{}, nil
		}
		return models.Amount{}, fmt.Errorf("failed to get balance: %w", err)
	}
	return acct.Balance, nil
}

func (s *service) Mint(ctx context.Context, account string, amount models.Amount) error {
	if account == "" {
		return fmt.Errorf("%w: account is required", ErrInvalidBatch)
	}
	batchID := uuid.New()
	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.AccountRepository) error {
		if err := credit(ctx, tx, account, amount); err != nil {
			return err
		}
		return tx.CreateTransfer(ctx, &models.TransferRecord{
			BatchID:   batchID,
			Kind:      models.TransferKindMint,
			Recipient: account,
			Amount:    amount,
		})
	})
	if err != nil {
		return err
	}

	s.log.Info("account funded", map[string]any{"account": account, "amount": amount.String()})
	return nil
}

func (s *service) History(ctx context.Context, account string, limit, offset int) ([]models.TransferRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListTransfers(ctx, account, limit, offset)
}

// move debits from and credits to inside an open transaction.
func move(ctx context.Context, tx repositories.AccountRepository, batchID uuid.UUID, kind, from, to string, amount models.Amount) error {
	sender, err := loadForUpdate(ctx, tx, from)
	if err != nil {
		return err
	}
	balance, err := sender.Balance.Sub(amount)
	if err != nil {
		return fmt.Errorf("%w: %s holds %s, needs %s", ErrInsufficientFunds, from, sender.Balance, amount)
	}
	sender.Balance = balance
	if err := tx.Save(ctx, sender); err != nil {
		return err
	}

	if err := credit(ctx, tx, to, amount); err != nil {
		return err
	}

	return tx.CreateTransfer(ctx, &models.TransferRecord{
		BatchID:   batchID,
		Kind:      kind,
		Sender:    from,
		Recipient: to,
		Amount:    amount,
	})
}

func credit(ctx context.Context, tx repositories.AccountRepository, id string, amount models.Amount) error {
	acct, err := loadForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}
	balance, err := acct.Balance.Add(amount)
	if err != nil {
		return fmt.Errorf("%w: crediting %s to %s", ErrBalanceOverflow, amount, id)
	}
	acct.Balance = balance
	return tx.Save(ctx, acct)
}

// loadForUpdate treats a missing account as an empty one.
func loadForUpdate(ctx context.Context, tx repositories.AccountRepository, id string) (*models.Account, error) {
	acct, err := tx.GetForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return &models.Account{ID: id}, nil
		}
		return nil, err
	}
	return acct, nil
}
