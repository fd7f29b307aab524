// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lot

import "context"

// Repository defines the persistence operations for lots.
//
// Every method reports a missing or malformed id as [dberr.ErrNotFound].
type Repository interface {
	// Create stores l and fills its ID and timestamps.
	Create(ctx context.Context, l *Lot) error

	// FindAll lists lots in store order, filtered by owner when filter.Own is set.
	FindAll(ctx context.Context, filter Filter) ([]*Lot, error)

	// FindByID fetches a single lot.
	FindByID(ctx context.Context, id string) (*Lot, error)

	// Update merges patch into the lot if cond holds and returns the updated lot.
	Update(ctx context.Context, id string, patch Patch, cond Condition) (*Lot, error)

	// Delete removes exactly one lot if cond holds.
	Delete(ctx context.Context, id string, cond Condition) error
}
