package repositories

import (
	"context"
	"fmt"
	"konnadex/internal/models"
	cachekeys "konnadex/internal/utils/cache"
)

// Cache is the JSON cache consulted by the cached state repository.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}) error
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

type cachedStateRepository struct {
	inner StateRepository
	cache Cache
}

// NewCachedStateRepository serves reads from cache and falls back to inner.
// Writes invalidate the cached entry before touching inner, so a failed
// invalidation leaves both untouched.
func NewCachedStateRepository(inner StateRepository, cache Cache) StateRepository {
	return &cachedStateRepository{inner: inner, cache: cache}
}

func stateKey(contract string) string {
	return cachekeys.GenerateKey(cachekeys.EntityLedgerState, cachekeys.KeyContract, contract)
}

func tokenKey(contract, symbol string) string {
	return cachekeys.GenerateScopedKey(cachekeys.EntityToken, contract, cachekeys.KeySymbol, symbol)
}

func (r *cachedStateRepository) Load(ctx context.Context, contract string) (*models.LedgerState, error) {
	var state models.LedgerState
	if found, err := r.cache.Get(ctx, stateKey(contract), &state); err == nil && found {
		return &state, nil
	}

	loaded, err := r.inner.Load(ctx, contract)
	if err != nil {
		return nil, err
	}
	_ = r.cache.Set(ctx, stateKey(contract), loaded)
	return loaded, nil
}

func (r *cachedStateRepository) Create(ctx context.Context, state *models.LedgerState) error {
	if err := r.cache.Delete(ctx, stateKey(state.Contract)); err != nil {
		return fmt.Errorf("failed to invalidate ledger state cache: %w", err)
	}
	if err := r.inner.Create(ctx, state); err != nil {
		return err
	}
	_ = r.cache.Set(ctx, stateKey(state.Contract), state)
	return nil
}

func (r *cachedStateRepository) Save(ctx context.Context, state *models.LedgerState) error {
	if err := r.cache.Delete(ctx, stateKey(state.Contract)); err != nil {
		return fmt.Errorf("failed to invalidate ledger state cache: %w", err)
	}
	return r.inner.Save(ctx, state)
}

func (r *cachedStateRepository) FindToken(ctx context.Context, contract, symbol string) (*models.Token, error) {
	var token models.Token
	if found, err := r.cache.Get(ctx, tokenKey(contract, symbol), &token); err == nil && found {
		return &token, nil
	}

	loaded, err := r.inner.FindToken(ctx, contract, symbol)
	if err != nil {
		return nil, err
	}
	_ = r.cache.Set(ctx, tokenKey(contract, symbol), loaded)
	return loaded, nil
}

func (r *cachedStateRepository) AddToken(ctx context.Context, token *models.Token) error {
	if err := r.cache.Delete(ctx, tokenKey(token.Contract, token.Symbol)); err != nil {
		return fmt.Errorf("failed to invalidate token cache: %w", err)
	}
	return r.inner.AddToken(ctx, token)
}
