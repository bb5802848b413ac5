package handlers

import (
	"konnadex/internal/logger"
	"konnadex/internal/services/settlement"
	"konnadex/internal/utils/pagination"
	"konnadex/internal/utils/response"
	"konnadex/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler serves settlement-layer balances and transfer history.
type AccountHandler struct {
	ledger settlement.Service
	log    logger.Logger
}

func NewAccountHandler(ledger settlement.Service, log logger.Logger) *AccountHandler {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &AccountHandler{ledger: ledger, log: log}
}

func (h *AccountHandler) GetBalance(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validation.IsValidAccountID(id) {
		return response.BadRequest(c, "invalid account id")
	}

	balance, err := h.ledger.Balance(c.UserContext(), id)
	if err != nil {
		h.log.Error("failed to get balance", map[string]any{"account": id, "error": err.Error()})
		return response.ServerError(c, "internal error")
	}
	return response.Success(c, "Balance retrieved", fiber.Map{
		"account_id": id,
		"balance":    balance,
		"native":     balance.Native().String(),
	})
}

func (h *AccountHandler) GetTransfers(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validation.IsValidAccountID(id) {
		return response.BadRequest(c, "invalid account id")
	}

	p := pagination.ParseFromRequest(c)
	records, err := h.ledger.History(c.UserContext(), id, p.Limit, p.Offset)
	if err != nil {
		h.log.Error("failed to list transfers", map[string]any{"account": id, "error": err.Error()})
		return response.ServerError(c, "internal error")
	}
	return c.JSON(pagination.Response(p, records, len(records)))
}
