package repositories

import (
	"context"
	"konnadex/internal/models"
	"sync"
	"time"
)

type memoryStateRepository struct {
	mu     sync.RWMutex
	states map[string]models.LedgerState
	tokens map[string]map[string]models.Token
}

// NewMemoryStateRepository returns a process-local StateRepository.
func NewMemoryStateRepository() StateRepository {
	return &memoryStateRepository{
		states: make(map[string]models.LedgerState),
		tokens: make(map[string]map[string]models.Token),
	}
}

func (r *memoryStateRepository) Load(_ context.Context, contract string) (*models.LedgerState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.states[contract]
	if !ok {
		return nil, ErrStateNotFound
	}
	return &state, nil
}

func (r *memoryStateRepository) Create(_ context.Context, state *models.LedgerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.states[state.Contract]; ok {
		return ErrStateExists
	}
	now := time.Now()
	state.ID = uint(len(r.states) + 1)
	state.CreatedAt = now
	state.UpdatedAt = now
	r.states[state.Contract] = *state
	return nil
}

func (r *memoryStateRepository) Save(_ context.Context, state *models.LedgerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.states[state.Contract]
	if !ok {
		return ErrStateNotFound
	}
	current.Owner = state.Owner
	current.GatewayCharge = state.GatewayCharge
	current.GatewayAmountConverter = state.GatewayAmountConverter
	current.UpdatedAt = time.Now()
	r.states[state.Contract] = current
	return nil
}

func (r *memoryStateRepository) FindToken(_ context.Context, contract, symbol string) (*models.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.tokens[contract][symbol]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return &token, nil
}

func (r *memoryStateRepository) AddToken(_ context.Context, token *models.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	registry, ok := r.tokens[token.Contract]
	if !ok {
		registry = make(map[string]models.Token)
		r.tokens[token.Contract] = registry
	}
	if _, exists := registry[token.Symbol]; exists {
		return ErrTokenExists
	}
	token.CreatedAt = time.Now()
	registry[token.Symbol] = *token
	return nil
}
