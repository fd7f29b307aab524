// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/lotmarket/internal/platform/dberr"
	"github.com/taibuivan/lotmarket/pkg/uuid"
)

// MemoryRepository keeps users in process memory. It backs STORE_DRIVER=memory
// and the unit tests of the packages that depend on a user store.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
	now     func() time.Time
}

// NewMemoryRepository returns an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (repository *MemoryRepository) Create(_ context.Context, u *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.byEmail[u.Email]; taken {
		return dberr.ErrDuplicate
	}

	now := repository.now().UTC()
	u.ID = uuid.New()
	u.CreatedAt = now
	u.UpdatedAt = now

	stored := *u
	repository.byID[u.ID] = &stored
	repository.byEmail[u.Email] = u.ID
	return nil
}

func (repository *MemoryRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	id, ok := repository.byEmail[email]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	found := *repository.byID[id]
	return &found, nil
}

func (repository *MemoryRepository) UpdateRememberMe(_ context.Context, id string, isRememberMe bool) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.byID[id]
	if !ok {
		return dberr.ErrNotFound
	}
	stored.IsRememberMe = isRememberMe
	stored.UpdatedAt = repository.now().UTC()
	return nil
}

func (repository *MemoryRepository) UpdatePassword(_ context.Context, id, expectedHash, newHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.byID[id]
	if !ok {
		return dberr.ErrNotFound
	}
	if stored.Password != expectedHash {
		return ErrStalePassword
	}
	stored.Password = newHash
	stored.UpdatedAt = repository.now().UTC()
	return nil
}
