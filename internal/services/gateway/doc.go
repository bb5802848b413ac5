/*
Package gateway hosts the payment-gateway contract.

The contract keeps an owner, a fee rate expressed as
gateway_charge/gateway_amount_converter and a registry of fungible token
addresses. Its core call is NativeTokenPayment: the caller attaches a
deposit, the fee floor(charge*amount/converter) goes to the owner and the
net amount to the receiver.

Usage:

	contract := gateway.NewContract("gateway.near", stateRepo, ledger, sinks, log, recorder)

	// One-time setup
	_, err := contract.Init(ctx, gateway.Call{Caller: "gateway.near"}, gateway.InitParams{
	    Owner:                  "owner.near",
	    GatewayCharge:          models.NewAmount(1),
	    GatewayAmountConverter: models.NewAmount(1000),
	})

	// Pay an invoice, fee added on top
	receipt, err := contract.NativeTokenPayment(ctx,
	    gateway.Call{Caller: "alice.near", AttachedDeposit: deposit},
	    models.PaymentRequest{ReceiverAddress: "shop.near", Amount: "1000000", SenderShouldPayCharge: true})

	// Drain the contract
	sweep, err := contract.SweepNativeToken(ctx, gateway.Call{Caller: "owner.near"}, "treasury.near")

Fee attribution:

When SenderShouldPayCharge is set the deposit must cover amount+fee and the
receiver gets the full amount. Otherwise the deposit must cover amount and
the receiver gets amount-fee. Deposit beyond the requirement stays with the
contract until the owner sweeps it.

Error Handling:

Every failure aborts the call before any transfer is issued:
- ErrUnauthorized: caller is not the owner
- ErrInvalidAmount: amount is zero or not an integer, or a deposit was sent to a non-payable method
- ErrInsufficientBalance: deposit below the required funds
- ErrInvalidAddress: malformed account id
- ErrTokenAlreadyExists: symbol already registered
- ErrArithmeticOverflow: a value left the 128-bit range
- ErrDivisionByZero: converter is zero
- ErrAlreadyInitialized / ErrNotInitialized: init ordering
- ErrInvalidFeeRate: charge not below converter

Events:

TokenAdded, PaymentSuccessful and SweepContract are handed to the
EventPublisher after the call commits. Publisher failures are logged and
counted but do not fail the call.
*/
package gateway
