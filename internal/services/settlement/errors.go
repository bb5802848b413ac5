package settlement

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceOverflow   = errors.New("balance overflow")
	ErrInvalidBatch      = errors.New("invalid transfer batch")
)
