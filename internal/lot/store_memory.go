// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lot

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/lotmarket/internal/platform/dberr"
	"github.com/taibuivan/lotmarket/pkg/slice"
	"github.com/taibuivan/lotmarket/pkg/uuid"
)

// MemoryRepository keeps lots in process memory in insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	lots  map[string]*Lot
	order []string
	now   func() time.Time
}

// NewMemoryRepository returns an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		lots: make(map[string]*Lot),
		now:  time.Now,
	}
}

func (repository *MemoryRepository) Create(_ context.Context, l *Lot) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := repository.now().UTC()
	l.ID = uuid.New()
	l.CreatedAt = now
	l.UpdatedAt = now

	stored := *l
	repository.lots[l.ID] = &stored
	repository.order = append(repository.order, l.ID)
	return nil
}

func (repository *MemoryRepository) FindAll(_ context.Context, filter Filter) ([]*Lot, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	ids := repository.order
	if filter.Own {
		ids = slice.Filter(ids, func(id string) bool { return repository.lots[id].UserID == filter.UserID })
	}

	lots := slice.Map(ids, func(id string) *Lot {
		found := *repository.lots[id]
		return &found
	})
	if lots == nil {
		lots = []*Lot{}
	}
	return lots, nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Lot, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, ok := repository.lots[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	found := *stored
	return &found, nil
}

func (repository *MemoryRepository) Update(_ context.Context, id string, patch Patch, cond Condition) (*Lot, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.lots[id]
	if !ok || !cond.Matches(stored) {
		return nil, dberr.ErrNotFound
	}

	patch.apply(stored)
	stored.UpdatedAt = repository.now().UTC()

	updated := *stored
	return &updated, nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string, cond Condition) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.lots[id]
	if !ok || !cond.Matches(stored) {
		return dberr.ErrNotFound
	}

	delete(repository.lots, id)
	for i, candidate := range repository.order {
		if candidate == id {
			repository.order = append(repository.order[:i], repository.order[i+1:]...)
			break
		}
	}
	return nil
}
