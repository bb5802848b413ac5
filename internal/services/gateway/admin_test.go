package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"konnadex/internal/metrics"
	"konnadex/internal/models"
	"konnadex/internal/repositories"
	"konnadex/internal/services/settlement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) IncCounter(name string, labels map[string]string) {
	m.Called(name, labels)
}

func (m *MockRecorder) ObserveLatency(name string, d time.Duration, labels map[string]string) {
	m.Called(name, d, labels)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, string, models.Event) error {
	return errors.New("redis: connection refused")
}

func TestInit(t *testing.T) {
	ctx := context.Background()

	t.Run("only once", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.contract.Init(ctx, Call{Caller: contractAccount}, InitParams{
			Owner:                  "mallory.near",
			GatewayCharge:          models.NewAmount(1),
			GatewayAmountConverter: models.NewAmount(10),
		})
		assert.ErrorIs(t, err, ErrAlreadyInitialized)

		owner, err := f.contract.Owner(ctx)
		require.NoError(t, err)
		assert.Equal(t, ownerAccount, owner)
	})

	t.Run("only the contract account", func(t *testing.T) {
		for _, caller := range []string{"mallory.near", ownerAccount, ""} {
			f := newUninitializedFixture(t)
			_, err := f.contract.Init(ctx, Call{Caller: caller}, InitParams{
				Owner:                  "mallory.near",
				GatewayCharge:          models.NewAmount(1),
				GatewayAmountConverter: models.NewAmount(1000),
			})
			assert.ErrorIs(t, err, ErrUnauthorized, "caller %q", caller)

			_, err = f.contract.Owner(ctx)
			assert.ErrorIs(t, err, ErrNotInitialized)
		}
	})

	tests := []struct {
		name    string
		call    Call
		params  InitParams
		wantErr error
	}{
		{
			name:    "zero converter",
			call:    Call{Caller: contractAccount},
			params:  InitParams{Owner: ownerAccount, GatewayCharge: models.NewAmount(1)},
			wantErr: ErrDivisionByZero,
		},
		{
			name:    "charge not below converter",
			call:    Call{Caller: contractAccount},
			params:  InitParams{Owner: ownerAccount, GatewayCharge: models.NewAmount(5), GatewayAmountConverter: models.NewAmount(5)},
			wantErr: ErrInvalidFeeRate,
		},
		{
			name:    "malformed owner",
			call:    Call{Caller: contractAccount},
			params:  InitParams{Owner: "", GatewayCharge: models.NewAmount(1), GatewayAmountConverter: models.NewAmount(1000)},
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "deposit attached",
			call:    Call{Caller: contractAccount, AttachedDeposit: models.NewAmount(1)},
			params:  InitParams{Owner: ownerAccount, GatewayCharge: models.NewAmount(1), GatewayAmountConverter: models.NewAmount(1000)},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUninitializedFixture(t)
			_, err := f.contract.Init(ctx, tt.call, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = f.contract.Owner(ctx)
			assert.ErrorIs(t, err, ErrNotInitialized)
		})
	}
}

func TestUninitializedContract(t *testing.T) {
	ctx := context.Background()
	f := newUninitializedFixture(t)

	_, err := f.contract.GatewayCharge(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = f.contract.TotalBalance(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, _, err = f.contract.Token(ctx, "BUSD")
	assert.ErrorIs(t, err, ErrNotInitialized)
	err = f.contract.AddToken(ctx, Call{Caller: ownerAccount}, "BUSD", "busd.near")
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = f.contract.SweepNativeToken(ctx, Call{Caller: ownerAccount}, "treasury.near")
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestAddToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := Call{Caller: ownerAccount}

	require.NoError(t, f.contract.AddToken(ctx, owner, "BUSD", "busd.near"))

	address, ok, err := f.contract.Token(ctx, "BUSD")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "busd.near", address)

	err = f.contract.AddToken(ctx, owner, "BUSD", "other-busd.near")
	assert.ErrorIs(t, err, ErrTokenAlreadyExists)

	address, ok, err = f.contract.Token(ctx, "BUSD")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "busd.near", address)

	_, ok, err = f.contract.Token(ctx, "USDT")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []models.Event{
		models.TokenAdded{TokenSymbol: "BUSD", TokenAddress: "busd.near"},
	}, f.sink.Events())
}

func TestAddToken_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.contract.AddToken(ctx, Call{Caller: "mallory.near"}, "BUSD", "busd.near")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualError(t, err, "unauthorized: only the contract owner can add tokens")

	err = f.contract.AddToken(ctx, Call{Caller: ownerAccount}, "", "busd.near")
	assert.ErrorIs(t, err, ErrInvalidSymbol)

	err = f.contract.AddToken(ctx, Call{Caller: ownerAccount}, "BUSD", "not an account")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, ok, err := f.contract.Token(ctx, "BUSD")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, f.sink.Events())
}

func TestSetOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.contract.SetOwner(ctx, Call{Caller: "mallory.near"}, "mallory.near")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, f.contract.SetOwner(ctx, Call{Caller: ownerAccount}, "new-owner.near"))

	owner, err := f.contract.Owner(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-owner.near", owner)

	err = f.contract.SetGatewayCharge(ctx, Call{Caller: ownerAccount}, models.NewAmount(2))
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = f.contract.SetOwner(ctx, Call{Caller: "new-owner.near"}, "Bad Owner")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestSetFeeParameters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := Call{Caller: ownerAccount}

	require.NoError(t, f.contract.SetGatewayCharge(ctx, owner, models.NewAmount(5)))
	require.NoError(t, f.contract.SetGatewayAmountConverter(ctx, owner, models.NewAmount(100)))

	charge, err := f.contract.GatewayCharge(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.NewAmount(5), charge)

	converter, err := f.contract.GatewayAmountConverter(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.NewAmount(100), converter)

	assert.ErrorIs(t, f.contract.SetGatewayAmountConverter(ctx, owner, models.NewAmount(0)), ErrDivisionByZero)
	assert.ErrorIs(t, f.contract.SetGatewayAmountConverter(ctx, owner, models.NewAmount(5)), ErrInvalidFeeRate)
	assert.ErrorIs(t, f.contract.SetGatewayCharge(ctx, owner, models.NewAmount(100)), ErrInvalidFeeRate)
	assert.ErrorIs(t, f.contract.SetGatewayCharge(ctx, Call{Caller: ownerAccount, AttachedDeposit: models.NewAmount(1)}, models.NewAmount(1)), ErrInvalidAmount)

	charge, err = f.contract.GatewayCharge(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.NewAmount(5), charge)
}

func TestReadsDoNotMutate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, contractAccount, near(3))

	for i := 0; i < 5; i++ {
		owner, err := f.contract.Owner(ctx)
		require.NoError(t, err)
		assert.Equal(t, ownerAccount, owner)

		charge, err := f.contract.GatewayCharge(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.NewAmount(1), charge)

		converter, err := f.contract.GatewayAmountConverter(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.NewAmount(1000), converter)

		total, err := f.contract.TotalBalance(ctx)
		require.NoError(t, err)
		assert.Equal(t, near(3), total)
	}
	assert.Empty(t, f.sink.Events())
}

func TestPublishFailureDoesNotFailCall(t *testing.T) {
	ctx := context.Background()
	rec := new(MockRecorder)
	rec.On("IncCounter", mock.Anything, mock.Anything).Return()
	rec.On("ObserveLatency", mock.Anything, mock.Anything, mock.Anything).Return()

	ledger := settlement.NewService(repositories.NewMemoryAccountRepository(), nil)
	contract := NewContract(contractAccount, repositories.NewMemoryStateRepository(), ledger, failingPublisher{}, nil, rec)
	_, err := contract.Init(ctx, Call{Caller: contractAccount}, InitParams{
		Owner:                  ownerAccount,
		GatewayCharge:          models.NewAmount(1),
		GatewayAmountConverter: models.NewAmount(1000),
	})
	require.NoError(t, err)

	require.NoError(t, contract.AddToken(ctx, Call{Caller: ownerAccount}, "BUSD", "busd.near"))
	assert.Error(t, contract.AddToken(ctx, Call{Caller: "mallory.near"}, "USDT", "usdt.near"))

	rec.AssertCalled(t, "IncCounter", OpAddToken, map[string]string{"result": metrics.ResultSuccess})
	rec.AssertCalled(t, "IncCounter", OpAddToken, map[string]string{"result": metrics.ResultFailure})
	rec.AssertCalled(t, "IncCounter", OpPublishEvent, map[string]string{"result": metrics.ResultFailure})
}
