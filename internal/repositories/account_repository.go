package repositories

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"tripplanner/internal/models/db_models"
	"tripplanner/pkg/utils"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	Update(ctx context.Context, account *db_models.Account) error
}

// accountRepository keeps accounts in process memory, keyed by id and by
// lowercased email. Returned accounts are copies.
type accountRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]db_models.Account
	byEmail map[string]uuid.UUID
}

func NewAccountRepository() AccountRepository {
	return &accountRepository{
		byID:    make(map[uuid.UUID]db_models.Account),
		byEmail: make(map[string]uuid.UUID),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *accountRepository) Insert(_ context.Context, account *db_models.Account) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := emailKey(account.Email)
	if _, exists := a.byEmail[key]; exists {
		return utils.ErrEmailAlreadyExists
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	a.byID[account.ID] = *account
	a.byEmail[key] = account.ID
	return nil
}

func (a *accountRepository) FindById(_ context.Context, id uuid.UUID) (*db_models.Account, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	account, ok := a.byID[id]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (a *accountRepository) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	id, ok := a.byEmail[emailKey(email)]
	if !ok {
		return nil, nil
	}
	account := a.byID[id]
	return &account, nil
}

func (a *accountRepository) Update(_ context.Context, account *db_models.Account) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.byID[account.ID]; !ok {
		return utils.ErrAccountNotFound
	}
	a.byID[account.ID] = *account
	return nil
}
