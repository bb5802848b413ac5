package repositories

import (
	"context"
	"testing"

	"konnadex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStateRepository()

	_, err := repo.Load(ctx, "gateway.near")
	assert.ErrorIs(t, err, ErrStateNotFound)

	state := &models.LedgerState{Contract: "gateway.near", Owner: "owner.near", GatewayCharge: models.NewAmount(1), GatewayAmountConverter: models.NewAmount(1000)}
	require.NoError(t, repo.Create(ctx, state))
	assert.ErrorIs(t, repo.Create(ctx, &models.LedgerState{Contract: "gateway.near"}), ErrStateExists)

	state.Owner = "next.near"
	require.NoError(t, repo.Save(ctx, state))

	loaded, err := repo.Load(ctx, "gateway.near")
	require.NoError(t, err)
	assert.Equal(t, "next.near", loaded.Owner)
	assert.Equal(t, models.NewAmount(1000), loaded.GatewayAmountConverter)

	assert.ErrorIs(t, repo.Save(ctx, &models.LedgerState{Contract: "other.near"}), ErrStateNotFound)
}

func TestMemoryStateRepository_Tokens(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStateRepository()

	require.NoError(t, repo.AddToken(ctx, &models.Token{Contract: "gateway.near", Symbol: "BUSD", Address: "busd.near"}))
	assert.ErrorIs(t, repo.AddToken(ctx, &models.Token{Contract: "gateway.near", Symbol: "BUSD", Address: "x.near"}), ErrTokenExists)
	require.NoError(t, repo.AddToken(ctx, &models.Token{Contract: "other.near", Symbol: "BUSD", Address: "y.near"}))

	token, err := repo.FindToken(ctx, "gateway.near", "BUSD")
	require.NoError(t, err)
	assert.Equal(t, "busd.near", token.Address)

	_, err = repo.FindToken(ctx, "gateway.near", "USDT")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
