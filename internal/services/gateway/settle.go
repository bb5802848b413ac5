package gateway

import (
	"context"
	"errors"
	"fmt"

	"konnadex/internal/models"
	"konnadex/internal/services/settlement"

	"github.com/google/uuid"
)

// NativeTokenPayment settles a payment funded by the attached deposit: the
// fee goes to the owner and the net amount to the receiver. Deposit beyond
// what the payment requires stays with the contract.
func (c *Contract) NativeTokenPayment(ctx context.Context, call Call, req models.PaymentRequest) (*PaymentReceipt, error) {
	var receipt *PaymentReceipt
	err := c.run(OpNativeTokenPayment, call, func() error {
		state, err := c.load(ctx)
		if err != nil {
			return err
		}
		if call.Caller == "" {
			return fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
		}

		plan, err := PlanPayment(state, call, req)
		if err != nil {
			return err
		}

		batch := &models.TransferBatch{
			ID:        uuid.New(),
			Contract:  c.account,
			From:      call.Caller,
			Deposit:   call.AttachedDeposit,
			Transfers: plan.Transfers,
		}
		executed, err := c.settle(ctx, batch)
		if err != nil {
			return err
		}

		receipt = &PaymentReceipt{
			BatchID:    batch.ID,
			Settlement: plan.Settlement,
			Transfers:  executed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, receipt.Settlement)
	c.log.Info("payment settled", map[string]any{
		"contract":  c.account,
		"reference": receipt.Settlement.PaymentReference,
		"receiver":  receipt.Settlement.ReceiverAddress,
		"amount":    receipt.Settlement.Amount.String(),
		"fee":       receipt.Settlement.FeeAmount.String(),
		"batch_id":  receipt.BatchID.String(),
	})
	return receipt, nil
}

// SweepNativeToken drains the contract's whole native balance to recipient.
func (c *Contract) SweepNativeToken(ctx context.Context, call Call, recipient string) (*SweepReceipt, error) {
	var receipt *SweepReceipt
	err := c.run(OpSweepNativeToken, call, func() error {
		state, err := c.load(ctx)
		if err != nil {
			return err
		}
		if err := authorize(state, call.Caller, "sweep the contract"); err != nil {
			return err
		}
		if err := validateAddress("recipient", recipient); err != nil {
			return err
		}

		batch := &models.TransferBatch{
			ID:        uuid.New(),
			Contract:  c.account,
			From:      call.Caller,
			Deposit:   call.AttachedDeposit,
			Transfers: []models.Transfer{{Recipient: recipient, Drain: true}},
		}
		executed, err := c.settle(ctx, batch)
		if err != nil {
			return err
		}

		var swept models.Amount
		if len(executed) > 0 {
			swept = executed[0].Amount
		}
		receipt = &SweepReceipt{
			BatchID: batch.ID,
			Record: models.SweepRecord{
				TokenAddress: models.NativeToken,
				Owner:        state.Owner,
				Recipient:    recipient,
				Amount:       swept,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, receipt.Record)
	c.log.Info("contract swept", map[string]any{
		"contract":  c.account,
		"recipient": receipt.Record.Recipient,
		"amount":    receipt.Record.Amount.String(),
		"batch_id":  receipt.BatchID.String(),
	})
	return receipt, nil
}

// settle maps settlement failures onto call errors.
func (c *Contract) settle(ctx context.Context, batch *models.TransferBatch) ([]models.Transfer, error) {
	executed, err := c.settler.Settle(ctx, batch)
	switch {
	case err == nil:
		return executed, nil
	case errors.Is(err, settlement.ErrInsufficientFunds):
		return nil, fmt.Errorf("%w: %v", ErrInsufficientBalance, err)
	case errors.Is(err, settlement.ErrBalanceOverflow):
		return nil, fmt.Errorf("%w: %v", ErrArithmeticOverflow, err)
	default:
		return nil, fmt.Errorf("settlement failed: %w", err)
	}
}
