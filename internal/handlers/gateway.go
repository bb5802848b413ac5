package handlers

import (
	"konnadex/internal/logger"
	"konnadex/internal/middleware"
	"konnadex/internal/models"
	"konnadex/internal/repositories"
	"konnadex/internal/services/gateway"
	"konnadex/internal/utils/pagination"
	"konnadex/internal/utils/response"
	"konnadex/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type GatewayHandler struct {
	contract *gateway.Contract
	eventLog repositories.EventLogRepository
	log      logger.Logger
}

// NewGatewayHandler exposes contract over HTTP. eventLog may be nil, which
// disables the event listing.
func NewGatewayHandler(contract *gateway.Contract, eventLog repositories.EventLogRepository, log logger.Logger) *GatewayHandler {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &GatewayHandler{contract: contract, eventLog: eventLog, log: log}
}

type initInput struct {
	Owner                  string `json:"owner" validate:"required,account_id"`
	GatewayCharge          string `json:"gateway_charge" validate:"omitempty,digits"`
	GatewayAmountConverter string `json:"gateway_amount_converter" validate:"omitempty,digits"`
}

type ownerInput struct {
	Owner string `json:"owner" validate:"required,account_id"`
}

type valueInput struct {
	Value string `json:"value" validate:"required,digits"`
}

type tokenInput struct {
	Symbol  string `json:"token_symbol" validate:"required"`
	Address string `json:"token_address" validate:"required,account_id"`
}

type paymentInput struct {
	models.PaymentRequest
	AttachedDeposit string `json:"attached_deposit" validate:"required,digits"`
}

type sweepInput struct {
	Recipient       string `json:"recipient" validate:"required,account_id"`
	AttachedDeposit string `json:"attached_deposit" validate:"omitempty,digits"`
}

// parseBody decodes and validates the request body. A false result means
// the error response has been written.
func parseBody(c *fiber.Ctx, dest interface{}) (bool, error) {
	if err := c.BodyParser(dest); err != nil {
		return false, response.BadRequest(c, "Invalid request format")
	}
	if fields := validation.Struct(dest); fields != nil {
		return false, response.ValidationError(c, fields)
	}
	return true, nil
}

// amountOr parses s, falling back to def when s is empty.
func amountOr(s string, def uint64) (models.Amount, error) {
	if s == "" {
		return models.NewAmount(def), nil
	}
	return models.ParseAmount(s)
}

func (h *GatewayHandler) Init(c *fiber.Ctx) error {
	var input initInput
	if ok, err := parseBody(c, &input); !ok {
		return err
	}

	charge, err := amountOr(input.GatewayCharge, models.DefaultGatewayCharge)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	converter, err := amountOr(input.GatewayAmountConverter, models.DefaultGatewayAmountConverter)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	state, err := h.contract.Init(c.UserContext(), gateway.Call{Caller: middleware.Caller(c)}, gateway.InitParams{
		Owner:                  input.Owner,
		GatewayCharge:          charge,
		GatewayAmountConverter: converter,
	})
	if err != nil {
		return callError(c, err)
	}
	return response.Created(c, "Contract initialized", state)
}

func (h *GatewayHandler) GetOwner(c *fiber.Ctx) error {
	owner, err := h.contract.Owner(c.UserContext())
	if err != nil {
		return callError(c, err)
	}
	return response.Success(c, "Owner retrieved", fiber.Map{"owner": owner})
}

func (h *GatewayHandler) SetOwner(c *fiber.Ctx) error {
	var input ownerInput
	if ok, err := parseBody(c, &input); !ok {
		return err
	}

	if err := h.contract.SetOwner(c.UserContext(), gateway.Call{Caller: middleware.Caller(c)}, input.Owner); err != nil {
		return callError(c, err)
	}
	return response.Success(c, "Owner updated", fiber.Map{"owner": input.Owner})
}

func (h *GatewayHandler) GetGatewayCharge(c *fiber.Ctx) error {
	charge, err := h.contract.GatewayCharge(c.UserContext())
	if err != nil {
		return callError(c, err)
	}
	return response.Success(c, "Gateway charge retrieved", fiber.Map{"gateway_charge": charge})
}

func (h *GatewayHandler) SetGatewayCharge(c *fiber.Ctx) error {
	var input valueInput
	if ok, err := parseBody(c, &input); !ok {
		return err
	}
	charge, err := models.ParseAmount(input.Value)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.contract.SetGatewayCharge(c.UserContext(), gateway.Call{Caller: middleware.Caller(c)}, charge); err != nil {
		return callError(c, err)
	}
	return response.Success(c, "Gateway charge updated", fiber.Map{"gateway_charge": charge})
}

func (h *GatewayHandler) GetGatewayAmountConverter(c *fiber.Ctx) error {
	converter, err := h.contract.GatewayAmountConverter(c.UserContext())
	if err != nil {
		return callError(c, err)
	}
	return response.Success(c, "Gateway amount converter retrieved", fiber.Map{"gateway_amount_converter": converter})
}

func (h *GatewayHandler) SetGatewayAmountConverter(c *fiber.Ctx) error {
	var input valueInput
	if ok, err := parseBody(c, &input); !ok {
		return err
	}
	converter, err := models.ParseAmount(input.Value)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.contract.SetGatewayAmountConverter(c.UserContext(), gateway.Call{Caller: middleware.Caller(c)}, converter); err != nil {
		return callError(c, err)
	}
	return response.Success(c, "Gateway amount converter updated", fiber.Map{"gateway_amount_converter": converter})
}

func (h *GatewayHandler) AddToken(c *fiber.Ctx) error {
	var input tokenInput
	if ok, err := parseBody(c, &input); !ok {
		return err
	}

	if err := h.contract.AddToken(c.UserContext(), gateway.Call{Caller: middleware.Caller(c)}, input.Symbol, input.Address); err != nil {
		return callError(c, err)
	}
	return response.Created(c, "Token added", fiber.Map{
		"token_symbol":  input.Symbol,
		"token_address": input.Address,
	})
}

func (h *GatewayHandler) GetToken(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	address, ok, err := h.contract.Token(c.UserContext(), symbol)
	if err != nil {
		return callError(c, err)
	}
	if !ok {
		return response.Error(c, fiber.StatusNotFound, "token not found")
	}
	return response.Success(c, "Token retrieved", fiber.Map{
		"token_symbol":  symbol,
		"token_address": address,
	})
}

func (h *GatewayHandler) GetTotalBalance(c *fiber.Ctx) error {
	balance, err := h.contract.TotalBalance(c.UserContext())
	if err != nil {
		return callError(c, err)
	}
	return response.Success(c, "Balance retrieved", fiber.Map{
		"contract": h.contract.Account(),
		"balance":  balance,
		"native":   balance.Native().String(),
	})
}

func (h *GatewayHandler) Pay(c *fiber.Ctx) error {
	var input paymentInput
	if ok, err := parseBody(c, &input); !ok {
		return err
	}
	deposit, err := models.ParseAmount(input.AttachedDeposit)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	call := gateway.Call{Caller: middleware.Caller(c), AttachedDeposit: deposit}
	receipt, err := h.contract.NativeTokenPayment(c.UserContext(), call, input.PaymentRequest)
	if err != nil {
		return callError(c, err)
	}
	return response.Success(c, "Payment successful", receipt)
}

func (h *GatewayHandler) Sweep(c *fiber.Ctx) error {
	var input sweepInput
	if ok, err := parseBody(c, &input); !ok {
		return err
	}
	deposit, err := amountOr(input.AttachedDeposit, 0)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	call := gateway.Call{Caller: middleware.Caller(c), AttachedDeposit: deposit}
	receipt, err := h.contract.SweepNativeToken(c.UserContext(), call, input.Recipient)
	if err != nil {
		return callError(c, err)
	}
	return response.Success(c, "Contract swept", receipt)
}

func (h *GatewayHandler) ListEvents(c *fiber.Ctx) error {
	if h.eventLog == nil {
		return response.Error(c, fiber.StatusNotFound, "event log not enabled")
	}

	p := pagination.ParseFromRequest(c)
	entries, err := h.eventLog.List(c.UserContext(), h.contract.Account(), p.Limit, p.Offset)
	if err != nil {
		h.log.Error("failed to list events", map[string]any{"error": err.Error()})
		return response.ServerError(c, "internal error")
	}
	return c.JSON(pagination.Response(p, entries, len(entries)))
}
