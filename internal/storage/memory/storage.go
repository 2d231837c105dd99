package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dragonspire/sentinel/internal/model"
	"github.com/dragonspire/sentinel/internal/storage"
)

// Storage is an in-memory implementation of the profile store
type Storage struct {
	mu       sync.RWMutex
	accounts map[model.PlayerID]*model.PlayerAccount
}

// New creates a new in-memory profile store
func New() *Storage {
	return &Storage{
		accounts: make(map[model.PlayerID]*model.PlayerAccount),
	}
}

// Ensure Storage implements the interface
var _ storage.ProfileStore = (*Storage)(nil)

func (s *Storage) GetAccount(ctx context.Context, id model.PlayerID) (*model.PlayerAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	cp := *acc
	return &cp, nil
}

func (s *Storage) CreditBalance(ctx context.Context, id model.PlayerID, delta int64) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	created := false
	if !ok {
		acc = model.NewDefaultAccount(id, time.Now())
		s.accounts[id] = acc
		created = true
	}

	if acc.Balance+delta < 0 {
		return acc.Balance, created, model.ErrBalanceUnderflow
	}

	acc.Balance += delta
	return acc.Balance, created, nil
}

func (s *Storage) SetDeviceBinding(ctx context.Context, id model.PlayerID, hwid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return model.ErrAccountNotFound
	}
	acc.RegisteredHWID = hwid
	return nil
}

func (s *Storage) SetStatus(ctx context.Context, id model.PlayerID, status model.AccountStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return model.ErrAccountNotFound
	}
	acc.Status = status
	return nil
}

func (s *Storage) CountAccounts(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.accounts)), nil
}

// Seed installs an account directly, bypassing upsert defaults. Test helper.
func (s *Storage) Seed(acc *model.PlayerAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *acc
	s.accounts[acc.PlayerID] = &cp
}
