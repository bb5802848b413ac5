package handlers

import (
	"errors"

	"konnadex/internal/services/gateway"
	"konnadex/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps a contract failure onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gateway.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, gateway.ErrNotInitialized),
		errors.Is(err, gateway.ErrAlreadyInitialized),
		errors.Is(err, gateway.ErrTokenAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, gateway.ErrInvalidAmount),
		errors.Is(err, gateway.ErrInsufficientBalance),
		errors.Is(err, gateway.ErrInvalidAddress),
		errors.Is(err, gateway.ErrArithmeticOverflow),
		errors.Is(err, gateway.ErrDivisionByZero),
		errors.Is(err, gateway.ErrInvalidFeeRate),
		errors.Is(err, gateway.ErrInvalidSymbol):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func callError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		return response.ServerError(c, "internal error")
	}
	return response.Error(c, status, err.Error())
}
