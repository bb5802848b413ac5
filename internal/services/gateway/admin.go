package gateway

import (
	"context"
	"errors"
	"fmt"

	"konnadex/internal/models"
	"konnadex/internal/repositories"
)

// SetOwner hands the contract to newOwner in a single step.
func (c *Contract) SetOwner(ctx context.Context, call Call, newOwner string) error {
	var previous string
	err := c.run(OpSetOwner, call, func() error {
		state, err := c.load(ctx)
		if err != nil {
			return err
		}
		if err := authorize(state, call.Caller, "change the owner"); err != nil {
			return err
		}
		if err := nonPayable(call, OpSetOwner); err != nil {
			return err
		}
		if err := validateAddress("owner", newOwner); err != nil {
			return err
		}

		previous = state.Owner
		state.Owner = newOwner
		return c.save(ctx, state)
	})
	if err != nil {
		return err
	}

	c.log.Info("owner changed", map[string]any{"contract": c.account, "from": previous, "to": newOwner})
	return nil
}

func (c *Contract) SetGatewayCharge(ctx context.Context, call Call, charge models.Amount) error {
	return c.run(OpSetGatewayCharge, call, func() error {
		state, err := c.load(ctx)
		if err != nil {
			return err
		}
		if err := authorize(state, call.Caller, "set the gateway charge"); err != nil {
			return err
		}
		if err := nonPayable(call, OpSetGatewayCharge); err != nil {
			return err
		}
		if err := validateFeeRate(charge, state.GatewayAmountConverter); err != nil {
			return err
		}

		state.GatewayCharge = charge
		return c.save(ctx, state)
	})
}

func (c *Contract) SetGatewayAmountConverter(ctx context.Context, call Call, converter models.Amount) error {
	return c.run(OpSetGatewayAmountConverter, call, func() error {
		state, err := c.load(ctx)
		if err != nil {
			return err
		}
		if err := authorize(state, call.Caller, "set the gateway amount converter"); err != nil {
			return err
		}
		if err := nonPayable(call, OpSetGatewayAmountConverter); err != nil {
			return err
		}
		if err := validateFeeRate(state.GatewayCharge, converter); err != nil {
			return err
		}

		state.GatewayAmountConverter = converter
		return c.save(ctx, state)
	})
}

// AddToken registers symbol once. An existing symbol keeps its address.
func (c *Contract) AddToken(ctx context.Context, call Call, symbol, address string) error {
	err := c.run(OpAddToken, call, func() error {
		state, err := c.load(ctx)
		if err != nil {
			return err
		}
		if err := authorize(state, call.Caller, "add tokens"); err != nil {
			return err
		}
		if err := nonPayable(call, OpAddToken); err != nil {
			return err
		}
		if symbol == "" {
			return fmt.Errorf("%w: symbol must not be empty", ErrInvalidSymbol)
		}
		if err := validateAddress("token", address); err != nil {
			return err
		}

		if _, err := c.state.FindToken(ctx, c.account, symbol); err == nil {
			return fmt.Errorf("%w: %s", ErrTokenAlreadyExists, symbol)
		} else if !errors.Is(err, repositories.ErrTokenNotFound) {
			return fmt.Errorf("failed to find token: %w", err)
		}

		err = c.state.AddToken(ctx, &models.Token{Contract: c.account, Symbol: symbol, Address: address})
		if err != nil {
			if errors.Is(err, repositories.ErrTokenExists) {
				return fmt.Errorf("%w: %s", ErrTokenAlreadyExists, symbol)
			}
			return fmt.Errorf("failed to add token: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.publish(ctx, models.TokenAdded{TokenSymbol: symbol, TokenAddress: address})
	return nil
}

func (c *Contract) save(ctx context.Context, state *models.LedgerState) error {
	if err := c.state.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to save contract state: %w", err)
	}
	return nil
}
