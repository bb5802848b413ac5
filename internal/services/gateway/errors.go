package gateway

import "errors"

// Call failures. Every one aborts the call with no state change, no
// transfers and no event.
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrTokenAlreadyExists  = errors.New("token already exists")
	ErrArithmeticOverflow  = errors.New("arithmetic overflow")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrAlreadyInitialized  = errors.New("contract already initialized")

	ErrNotInitialized = errors.New("contract not initialized")
	ErrInvalidFeeRate = errors.New("invalid fee rate")
	ErrInvalidSymbol  = errors.New("invalid token symbol")
)
