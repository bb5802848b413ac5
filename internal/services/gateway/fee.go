package gateway

import (
	"konnadex/internal/models"

	"github.com/holiman/uint256"
)

// Fee returns floor(charge*amount/converter). The product must stay within
// the 128-bit ledger range.
func Fee(amount, charge, converter models.Amount) (models.Amount, error) {
	if converter.IsZero() {
		return models.Amount{}, ErrDivisionByZero
	}

	product, overflow := new(uint256.Int).MulOverflow(charge.Uint256(), amount.Uint256())
	if overflow || product.BitLen() > 128 {
		return models.Amount{}, ErrArithmeticOverflow
	}

	return models.AmountFromUint256(product.Div(product, converter.Uint256()))
}

// Required is the deposit a payment needs: amount plus fee when the sender
// pays the charge, the bare amount otherwise.
func Required(amount, fee models.Amount, senderPays bool) (models.Amount, error) {
	if !senderPays {
		return amount, nil
	}
	total, err := amount.Add(fee)
	if err != nil {
		return models.Amount{}, ErrArithmeticOverflow
	}
	return total, nil
}

// Net is what the receiver gets: the full amount when the sender pays the
// charge, amount minus fee otherwise.
func Net(amount, fee models.Amount, senderPays bool) (models.Amount, error) {
	if senderPays {
		return amount, nil
	}
	net, err := amount.Sub(fee)
	if err != nil {
		return models.Amount{}, ErrArithmeticOverflow
	}
	return net, nil
}

// validateFeeRate rejects parameters that would divide by zero or let the
// fee swallow the whole invoice.
func validateFeeRate(charge, converter models.Amount) error {
	if converter.IsZero() {
		return ErrDivisionByZero
	}
	if charge.Cmp(converter) >= 0 {
		return ErrInvalidFeeRate
	}
	return nil
}
