package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"konnadex/internal/logger"
	"konnadex/internal/metrics"
	"konnadex/internal/models"
	"konnadex/internal/repositories"
)

// Operation names used for metrics and logs
const (
	OpInit                      = "init"
	OpGetOwner                  = "get_owner"
	OpSetOwner                  = "set_owner"
	OpGetGatewayCharge          = "get_gateway_charge"
	OpSetGatewayCharge          = "set_gateway_charge"
	OpGetGatewayAmountConverter = "get_gateway_amount_converter"
	OpSetGatewayAmountConverter = "set_gateway_amount_converter"
	OpAddToken                  = "add_token"
	OpGetToken                  = "get_token"
	OpGetTotalBalance           = "get_total_balance"
	OpNativeTokenPayment        = "native_token_payment"
	OpSweepNativeToken          = "sweep_native_token"
	OpPublishEvent              = "publish_event"
)

// Contract is one gateway instance identified by its own account. Calls
// run one at a time.
type Contract struct {
	mu      sync.Mutex
	account string
	state   repositories.StateRepository
	settler Settler
	events  EventPublisher
	log     logger.Logger
	metrics metrics.Recorder
}

// NewContract creates the runtime for the contract at account. events, log
// and rec may be nil.
func NewContract(
	account string,
	state repositories.StateRepository,
	settler Settler,
	events EventPublisher,
	log logger.Logger,
	rec metrics.Recorder,
) *Contract {
	if state == nil {
		panic("state repository is required")
	}
	if settler == nil {
		panic("settler is required")
	}
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Contract{
		account: account,
		state:   state,
		settler: settler,
		events:  events,
		log:     log,
		metrics: rec,
	}
}

// Account returns the contract's own account id.
func (c *Contract) Account() string {
	return c.account
}

// run serializes fn against every other call and records its outcome.
func (c *Contract) run(op string, call Call, fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	err := fn()

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailure
		c.log.Warn("call failed", map[string]any{
			"contract":  c.account,
			"operation": op,
			"caller":    call.Caller,
			"error":     err.Error(),
		})
	}
	c.metrics.IncCounter(op, map[string]string{"result": result})
	c.metrics.ObserveLatency(op, time.Since(start), nil)
	return err
}

func (c *Contract) load(ctx context.Context) (*models.LedgerState, error) {
	state, err := c.state.Load(ctx, c.account)
	if err != nil {
		if errors.Is(err, repositories.ErrStateNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to load contract state: %w", err)
	}
	return state, nil
}

// publish never fails the call; observers missing a record is logged.
func (c *Contract) publish(ctx context.Context, e models.Event) {
	if c.events == nil {
		return
	}
	if err := c.events.Publish(ctx, c.account, e); err != nil {
		c.metrics.IncCounter(OpPublishEvent, map[string]string{"result": metrics.ResultFailure})
		c.log.Error("failed to publish event", map[string]any{
			"contract": c.account,
			"event":    e.EventName(),
			"error":    err.Error(),
		})
		return
	}
	c.metrics.IncCounter(OpPublishEvent, map[string]string{"result": metrics.ResultSuccess})
}

// Init creates the contract state. It succeeds once and only the contract
// account may call it.
func (c *Contract) Init(ctx context.Context, call Call, params InitParams) (*models.LedgerState, error) {
	var state *models.LedgerState
	err := c.run(OpInit, call, func() error {
		if err := private(c.account, call.Caller, OpInit); err != nil {
			return err
		}
		if err := nonPayable(call, OpInit); err != nil {
			return err
		}
		if _, err := c.load(ctx); err == nil {
			return ErrAlreadyInitialized
		} else if !errors.Is(err, ErrNotInitialized) {
			return err
		}
		if err := validateAddress("owner", params.Owner); err != nil {
			return err
		}
		if err := validateFeeRate(params.GatewayCharge, params.GatewayAmountConverter); err != nil {
			return err
		}

		state = &models.LedgerState{
			Contract:               c.account,
			Owner:                  params.Owner,
			GatewayCharge:          params.GatewayCharge,
			GatewayAmountConverter: params.GatewayAmountConverter,
		}
		if err := c.state.Create(ctx, state); err != nil {
			if errors.Is(err, repositories.ErrStateExists) {
				return ErrAlreadyInitialized
			}
			return fmt.Errorf("failed to create contract state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("contract initialized", map[string]any{
		"contract":  c.account,
		"owner":     state.Owner,
		"charge":    state.GatewayCharge.String(),
		"converter": state.GatewayAmountConverter.String(),
	})
	return state, nil
}

// Owner returns the current owner.
func (c *Contract) Owner(ctx context.Context) (string, error) {
	var owner string
	err := c.run(OpGetOwner, Call{}, func() error {
		state, err := c.load(ctx)
		if err != nil {
			return err
		}
		owner = state.Owner
		return nil
	})
	return owner, err
}

func (c *Contract) GatewayCharge(ctx context.Context) (models.Amount, error) {
	var charge models.Amount
	err := c.run(OpGetGatewayCharge, Call{}, func() error {
		state, err := c.load(ctx)
		if err != nil {
			return err
		}
		charge = state.GatewayCharge
		return nil
	})
	return charge, err
}

func (c *Contract) GatewayAmountConverter(ctx context.Context) (models.Amount, error) {
	var converter models.Amount
	err := c.run(OpGetGatewayAmountConverter, Call{}, func() error {
		state, err := c.load(ctx)
		if err != nil {
			return err
		}
		converter = state.GatewayAmountConverter
		return nil
	})
	return converter, err
}

// Token looks up a registered token address. ok is false for an unknown
// symbol.
func (c *Contract) Token(ctx context.Context, symbol string) (address string, ok bool, err error) {
	err = c.run(OpGetToken, Call{}, func() error {
		if _, err := c.load(ctx); err != nil {
			return err
		}
		token, err := c.state.FindToken(ctx, c.account, symbol)
		if err != nil {
			if errors.Is(err, repositories.ErrTokenNotFound) {
				return nil
			}
			return fmt.Errorf("failed to find token: %w", err)
		}
		address, ok = token.Address, true
		return nil
	})
	return address, ok, err
}

// TotalBalance returns the contract's settled native balance.
func (c *Contract) TotalBalance(ctx context.Context) (models.Amount, error) {
	var balance models.Amount
	err := c.run(OpGetTotalBalance, Call{}, func() error {
		if _, err := c.load(ctx); err != nil {
			return err
		}
		b, err := c.settler.Balance(ctx, c.account)
		if err != nil {
			return err
		}
		balance = b
		return nil
	})
	return balance, err
}
