package gateway

import (
	"context"
	"konnadex/internal/models"

	"github.com/google/uuid"
)

// Call is the envelope of one external invocation.
type Call struct {
	Caller          string
	AttachedDeposit models.Amount
}

// InitParams are the arguments of init.
type InitParams struct {
	Owner                  string        `json:"owner"`
	GatewayCharge          models.Amount `json:"gateway_charge"`
	GatewayAmountConverter models.Amount `json:"gateway_amount_converter"`
}

// PaymentPlan is a validated payment ready to settle.
type PaymentPlan struct {
	Fee        models.Amount
	Net        models.Amount
	Required   models.Amount
	Transfers  []models.Transfer
	Settlement models.PaymentSettlement
}

type PaymentReceipt struct {
	BatchID    uuid.UUID                `json:"batch_id"`
	Settlement models.PaymentSettlement `json:"settlement"`
	Transfers  []models.Transfer        `json:"transfers"`
}

type SweepReceipt struct {
	BatchID uuid.UUID          `json:"batch_id"`
	Record  models.SweepRecord `json:"record"`
}

// Settler executes transfer batches and reports balances.
type Settler interface {
	Settle(ctx context.Context, batch *models.TransferBatch) ([]models.Transfer, error)
	Balance(ctx context.Context, account string) (models.Amount, error)
}

// EventPublisher hands emitted events to observers.
type EventPublisher interface {
	Publish(ctx context.Context, contract string, e models.Event) error
}
