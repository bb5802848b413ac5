package gateway

import (
	"errors"
	"fmt"

	"konnadex/internal/models"
)

// PlanPayment validates a native payment against state and the attached
// deposit and returns the transfers that settle it. Nothing is moved here.
func PlanPayment(state *models.LedgerState, call Call, req models.PaymentRequest) (*PaymentPlan, error) {
	amount, err := models.ParseAmount(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	}

	fee, err := Fee(amount, state.GatewayCharge, state.GatewayAmountConverter)
	if err != nil {
		return nil, err
	}

	required, err := Required(amount, fee, req.SenderShouldPayCharge)
	if err != nil {
		return nil, err
	}
	if call.AttachedDeposit.Cmp(required) < 0 {
		return nil, fmt.Errorf("%w: attached %s, required %s", ErrInsufficientBalance, call.AttachedDeposit, required)
	}

	net, err := Net(amount, fee, req.SenderShouldPayCharge)
	if err != nil {
		if errors.Is(err, ErrArithmeticOverflow) {
			return nil, fmt.Errorf("%w: fee %s exceeds amount %s", ErrArithmeticOverflow, fee, amount)
		}
		return nil, err
	}

	if err := validateAddress("receiver", req.ReceiverAddress); err != nil {
		return nil, err
	}

	return &PaymentPlan{
		Fee:      fee,
		Net:      net,
		Required: required,
		Transfers: []models.Transfer{
			{Recipient: state.Owner, Amount: fee},
			{Recipient: req.ReceiverAddress, Amount: net},
		},
		Settlement: models.PaymentSettlement{
			PaymentReference:      req.Reference,
			TokenEventAddress:     models.NativeToken,
			Caller:                call.Caller,
			ReceiverAddress:       req.ReceiverAddress,
			Amount:                amount,
			Amt:                   net,
			FeeAmount:             fee,
			FeeAddress:            state.Owner,
			PublicKey:             req.PublicKey,
			PaymentType:           req.PaymentType,
			SenderShouldPayCharge: req.SenderShouldPayCharge,
			AttachedDeposit:       call.AttachedDeposit,
		},
	}, nil
}
