package gateway

import (
	"fmt"

	"konnadex/internal/models"
	"konnadex/internal/validation"
)

// authorize admits only the current owner.
func authorize(state *models.LedgerState, caller, action string) error {
	if caller == "" || caller != state.Owner {
		return fmt.Errorf("%w: only the contract owner can %s", ErrUnauthorized, action)
	}
	return nil
}

// private admits only the contract account itself.
func private(contract, caller, method string) error {
	if caller == "" || caller != contract {
		return fmt.Errorf("%w: method %s is private to %s", ErrUnauthorized, method, contract)
	}
	return nil
}

// nonPayable rejects value attached to a method that cannot accept it.
func nonPayable(call Call, method string) error {
	if !call.AttachedDeposit.IsZero() {
		return fmt.Errorf("%w: method %s doesn't accept deposit", ErrInvalidAmount, method)
	}
	return nil
}

func validateAddress(field, account string) error {
	if !validation.IsValidAccountID(account) {
		return fmt.Errorf("%w: %s %q is not a valid account id", ErrInvalidAddress, field, account)
	}
	return nil
}
