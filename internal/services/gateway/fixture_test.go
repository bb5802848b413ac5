package gateway

import (
	"context"
	"testing"

	"konnadex/internal/models"
	"konnadex/internal/repositories"
	"konnadex/internal/services/events"
	"konnadex/internal/services/settlement"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

const (
	contractAccount = "gateway.near"
	ownerAccount    = "owner.near"
)

var oneNear = models.MustParseAmount("1000000000000000000000000")

func near(n uint64) models.Amount {
	v := new(uint256.Int).Mul(uint256.NewInt(n), oneNear.Uint256())
	return models.Amount(*v)
}

type fixture struct {
	contract *Contract
	ledger   settlement.Service
	sink     *events.MemorySink
}

func newUninitializedFixture(t *testing.T) *fixture {
	t.Helper()
	ledger := settlement.NewService(repositories.NewMemoryAccountRepository(), nil)
	sink := events.NewMemorySink()
	contract := NewContract(contractAccount, repositories.NewMemoryStateRepository(), ledger, sink, nil, nil)
	return &fixture{contract: contract, ledger: ledger, sink: sink}
}

// newFixture returns a contract owned by owner.near charging 1/1000.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := newUninitializedFixture(t)
	_, err := f.contract.Init(context.Background(), Call{Caller: contractAccount}, InitParams{
		Owner:                  ownerAccount,
		GatewayCharge:          models.NewAmount(models.DefaultGatewayCharge),
		GatewayAmountConverter: models.NewAmount(models.DefaultGatewayAmountConverter),
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) fund(t *testing.T, account string, amount models.Amount) {
	t.Helper()
	require.NoError(t, f.ledger.Mint(context.Background(), account, amount))
}

func (f *fixture) balance(t *testing.T, account string) models.Amount {
	t.Helper()
	b, err := f.ledger.Balance(context.Background(), account)
	require.NoError(t, err)
	return b
}
