package gateway

import (
	"context"
	"testing"

	"konnadex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentRequest(receiver string, amount models.Amount, senderPays bool) models.PaymentRequest {
	return models.PaymentRequest{
		Reference:             "INV-001",
		PublicKey:             "ed25519:6E8sCci9badyRkXb3JoRpBj5p8C6Tw41ELDZoiihKEtp",
		ReceiverAddress:       receiver,
		Amount:                amount.String(),
		SenderShouldPayCharge: senderPays,
		PaymentType:           "invoice",
	}
}

func TestNativeTokenPayment_SenderPaysCharge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	fee := models.MustParseAmount("1000000000000000000000")
	deposit, err := oneNear.Add(fee)
	require.NoError(t, err)
	f.fund(t, "alice.near", deposit)

	receipt, err := f.contract.NativeTokenPayment(ctx,
		Call{Caller: "alice.near", AttachedDeposit: deposit},
		paymentRequest("merchant.near", oneNear, true))
	require.NoError(t, err)

	assert.Equal(t, fee, receipt.Settlement.FeeAmount)
	assert.Equal(t, oneNear, receipt.Settlement.Amt)
	assert.Equal(t, ownerAccount, receipt.Settlement.FeeAddress)
	assert.Equal(t, "alice.near", receipt.Settlement.Caller)
	assert.Equal(t, models.NativeToken, receipt.Settlement.TokenEventAddress)

	assert.Equal(t, oneNear, f.balance(t, "merchant.near"))
	assert.Equal(t, fee, f.balance(t, ownerAccount))
	assert.True(t, f.balance(t, "alice.near").IsZero())
	assert.True(t, f.balance(t, contractAccount).IsZero())

	published := f.sink.Events()
	require.Len(t, published, 1)
	assert.Equal(t, receipt.Settlement, published[0])
}

func TestNativeTokenPayment_ChargeDeductedFromAmount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	// 100 near visible to the call: 99 held plus 1 attached.
	f.fund(t, contractAccount, near(99))
	f.fund(t, "alice.near", oneNear)

	receipt, err := f.contract.NativeTokenPayment(ctx,
		Call{Caller: "alice.near", AttachedDeposit: oneNear},
		paymentRequest("merchant.near", oneNear, false))
	require.NoError(t, err)

	total, err := f.contract.TotalBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, near(99), total)

	assert.Equal(t, "999000000000000000000000", f.balance(t, "merchant.near").String())
	assert.Equal(t, "1000000000000000000000", f.balance(t, ownerAccount).String())
	assert.Equal(t, "999000000000000000000000", receipt.Settlement.Amt.String())
}

func TestNativeTokenPayment_ExcessDepositStaysWithContract(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, contractAccount, near(100))
	f.fund(t, "alice.near", near(2))

	_, err := f.contract.NativeTokenPayment(ctx,
		Call{Caller: "alice.near", AttachedDeposit: near(2)},
		paymentRequest("merchant.near", oneNear, false))
	require.NoError(t, err)

	total, err := f.contract.TotalBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, near(101), total)
}

func TestNativeTokenPayment_Rejections(t *testing.T) {
	fee := models.MustParseAmount("1000000000000000000000")
	required, err := oneNear.Add(fee)
	require.NoError(t, err)
	oneShort, err := required.Sub(models.NewAmount(1))
	require.NoError(t, err)

	tests := []struct {
		name    string
		call    Call
		req     models.PaymentRequest
		wantErr error
	}{
		{
			name:    "zero amount",
			call:    Call{Caller: "alice.near", AttachedDeposit: oneNear},
			req:     paymentRequest("merchant.near", models.NewAmount(0), false),
			wantErr: ErrInvalidAmount,
		},
		{
			name: "non numeric amount",
			call: Call{Caller: "alice.near", AttachedDeposit: oneNear},
			req: models.PaymentRequest{
				Reference:       "INV-002",
				ReceiverAddress: "merchant.near",
				Amount:          "ten",
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount",
			call: Call{Caller: "alice.near", AttachedDeposit: oneNear},
			req: models.PaymentRequest{
				Reference:       "INV-003",
				ReceiverAddress: "merchant.near",
				Amount:          "-5",
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "deposit one below amount plus fee",
			call:    Call{Caller: "alice.near", AttachedDeposit: oneShort},
			req:     paymentRequest("merchant.near", oneNear, true),
			wantErr: ErrInsufficientBalance,
		},
		{
			name:    "deposit one below amount",
			call:    Call{Caller: "alice.near", AttachedDeposit: models.MustParseAmount("999999999999999999999999")},
			req:     paymentRequest("merchant.near", oneNear, false),
			wantErr: ErrInsufficientBalance,
		},
		{
			name:    "malformed receiver",
			call:    Call{Caller: "alice.near", AttachedDeposit: oneNear},
			req:     paymentRequest("Merchant Near!", oneNear, false),
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "anonymous caller",
			call:    Call{AttachedDeposit: oneNear},
			req:     paymentRequest("merchant.near", oneNear, false),
			wantErr: ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			f.fund(t, "alice.near", near(5))

			_, err := f.contract.NativeTokenPayment(ctx, tt.call, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, near(5), f.balance(t, "alice.near"))
			assert.True(t, f.balance(t, contractAccount).IsZero())
			assert.True(t, f.balance(t, ownerAccount).IsZero())
			assert.True(t, f.balance(t, "merchant.near").IsZero())
			assert.Empty(t, f.sink.Events())
		})
	}
}

func TestNativeTokenPayment_DepositNotBackedByCaller(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.contract.NativeTokenPayment(ctx,
		Call{Caller: "alice.near", AttachedDeposit: oneNear},
		paymentRequest("merchant.near", oneNear, false))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.True(t, f.balance(t, "merchant.near").IsZero())
	assert.Empty(t, f.sink.Events())
}

func TestNativeTokenPayment_Conservation(t *testing.T) {
	amounts := []models.Amount{
		models.NewAmount(1),
		models.NewAmount(999),
		models.NewAmount(1000),
		models.NewAmount(123456789),
		oneNear,
		near(42),
	}

	for _, senderPays := range []bool{true, false} {
		for _, amount := range amounts {
			ctx := context.Background()
			f := newFixture(t)
			deposit := near(50)
			f.fund(t, "alice.near", deposit)

			receipt, err := f.contract.NativeTokenPayment(ctx,
				Call{Caller: "alice.near", AttachedDeposit: deposit},
				paymentRequest("merchant.near", amount, senderPays))
			require.NoError(t, err)

			fee := receipt.Settlement.FeeAmount
			net := receipt.Settlement.Amt
			spent, err := fee.Add(net)
			require.NoError(t, err)
			assert.LessOrEqual(t, spent.Cmp(deposit), 0)

			assert.Equal(t, fee, f.balance(t, ownerAccount))
			assert.Equal(t, net, f.balance(t, "merchant.near"))

			retained, err := deposit.Sub(spent)
			require.NoError(t, err)
			assert.Equal(t, retained, f.balance(t, contractAccount))
		}
	}
}

func TestPlanPayment_HazardousPersistedRate(t *testing.T) {
	state := &models.LedgerState{
		Contract:               contractAccount,
		Owner:                  ownerAccount,
		GatewayCharge:          models.NewAmount(2000),
		GatewayAmountConverter: models.NewAmount(1000),
	}

	_, err := PlanPayment(state, Call{Caller: "alice.near", AttachedDeposit: oneNear},
		paymentRequest("merchant.near", oneNear, false))
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	state.GatewayAmountConverter = models.NewAmount(0)
	_, err = PlanPayment(state, Call{Caller: "alice.near", AttachedDeposit: oneNear},
		paymentRequest("merchant.near", oneNear, false))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestPlanPayment_Transfers(t *testing.T) {
	state := &models.LedgerState{
		Owner:                  ownerAccount,
		GatewayCharge:          models.NewAmount(1),
		GatewayAmountConverter: models.NewAmount(1000),
	}

	plan, err := PlanPayment(state, Call{Caller: "alice.near", AttachedDeposit: models.NewAmount(5000)},
		paymentRequest("merchant.near", models.NewAmount(5000), false))
	require.NoError(t, err)

	assert.Equal(t, []models.Transfer{
		{Recipient: ownerAccount, Amount: models.NewAmount(5)},
		{Recipient: "merchant.near", Amount: models.NewAmount(4995)},
	}, plan.Transfers)
	assert.Equal(t, models.NewAmount(5000), plan.Required)
}
