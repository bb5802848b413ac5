package repositories

import (
	"context"
	"konnadex/internal/models"
	"sync"
	"time"
)

type memoryAccountRepository struct {
	mu    sync.Mutex
	books *memoryBooks
}

type memoryBooks struct {
	accounts  map[string]models.Account
	transfers []models.TransferRecord
}

// NewMemoryAccountRepository returns a process-local AccountRepository whose
// transactions apply all-or-nothing.
func NewMemoryAccountRepository() AccountRepository {
	return &memoryAccountRepository{
		books: &memoryBooks{accounts: make(map[string]models.Account)},
	}
}

func (r *memoryAccountRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.books.get(id)
}

func (r *memoryAccountRepository) GetForUpdate(ctx context.Context, id string) (*models.Account, error) {
	return r.Get(ctx, id)
}

func (r *memoryAccountRepository) Save(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books.save(account)
	return nil
}

func (r *memoryAccountRepository) CreateTransfer(_ context.Context, record *models.TransferRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books.record(record)
	return nil
}

func (r *memoryAccountRepository) ListTransfers(_ context.Context, account string, limit, offset int) ([]models.TransferRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.books.list(account, limit, offset), nil
}

func (r *memoryAccountRepository) ExecuteInTransaction(_ context.Context, fn func(AccountRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memoryAccountTx{books: r.books.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	r.books = tx.books
	return nil
}

// memoryAccountTx works on a private copy of the books; the caller holds the
// repository lock for its whole lifetime.
type memoryAccountTx struct {
	books *memoryBooks
}

func (t *memoryAccountTx) Get(_ context.Context, id string) (*models.Account, error) {
	return t.books.get(id)
}

func (t *memoryAccountTx) GetForUpdate(ctx context.Context, id string) (*models.Account, error) {
	return t.books.get(id)
}

func (t *memoryAccountTx) Save(_ context.Context, account *models.Account) error {
	t.books.save(account)
	return nil
}

func (t *memoryAccountTx) CreateTransfer(_ context.Context, record *models.TransferRecord) error {
	t.books.record(record)
	return nil
}

func (t *memoryAccountTx) ListTransfers(_ context.Context, account string, limit, offset int) ([]models.TransferRecord, error) {
	return t.books.list(account, limit, offset), nil
}

func (t *memoryAccountTx) ExecuteInTransaction(_ context.Context, fn func(AccountRepository) error) error {
	return fn(t)
}

func (b *memoryBooks) get(id string) (*models.Account, error) {
	account, ok := b.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

func (b *memoryBooks) save(account *models.Account) {
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	b.accounts[account.ID] = *account
}

func (b *memoryBooks) record(record *models.TransferRecord) {
	record.ID = uint(len(b.transfers) + 1)
	record.CreatedAt = time.Now()
	b.transfers = append(b.transfers, *record)
}

func (b *memoryBooks) list(account string, limit, offset int) []models.TransferRecord {
	var matched []models.TransferRecord
	for i := len(b.transfers) - 1; i >= 0; i-- {
		rec := b.transfers[i]
		if rec.Sender == account || rec.Recipient == account {
			matched = append(matched, rec)
		}
	}
	if offset >= len(matched) {
		return nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched
}

func (b *memoryBooks) clone() *memoryBooks {
	accounts := make(map[string]models.Account, len(b.accounts))
	for k, v := range b.accounts {
		accounts[k] = v
	}
	transfers := make([]models.TransferRecord, len(b.transfers))
	copy(transfers, b.transfers)
	return &memoryBooks{accounts: accounts, transfers: transfers}
}
