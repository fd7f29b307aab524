// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lot implements the Lot catalogue: auctionable items with pricing,
a time window, an owner and a lifecycle status.

# Architecture

  - Lot, Status and Patch are the domain types (this file).
  - [Repository] is the persistence port, with MongoDB, PostgreSQL and
    in-memory drivers.
  - [Service] applies validation, the ownership [Policy] and the status
    transition table.
  - [Handler] adapts the service to HTTP.

# Not Found

FindOne, Update and Remove all report a missing or malformed id as
[dberr.ErrNotFound]. The HTTP translation happens once, in respond.Error.
*/
package lot

import (
	"time"

	"github.com/taibuivan/lotmarket/pkg/pointer"
	"github.com/taibuivan/lotmarket/pkg/slice"
)

// # Status

// Status is the lifecycle state of a lot.
type Status string

const (
	StatusPending   Status = "pending"
	StatusInProcess Status = "inProcess"
	StatusClosed    Status = "closed"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusPending, StatusInProcess, StatusClosed}

// transitions maps a status to the statuses it may move to.
// Staying in place is always allowed so that a PATCH may repeat the current value.
var transitions = map[Status][]Status{
	StatusPending:   {StatusPending, StatusInProcess, StatusClosed},
	StatusInProcess: {StatusInProcess, StatusClosed},
	StatusClosed:    {StatusClosed},
}

// Valid reports whether s is a member of [Statuses].
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether a lot in status s may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedFrom returns the statuses from which target can be reached.
// Stores use it as a precondition on the current status.
func AllowedFrom(target Status) []Status {
	return slice.Filter(Statuses, func(candidate Status) bool { return candidate.CanTransitionTo(target) })
}

// statusStrings never returns nil; the postgres store binds it as a text[] that must not be NULL.
func statusStrings(statuses []Status) []string {
	values := slice.Map(statuses, func(s Status) string { return string(s) })
	if values == nil {
		values = []string{}
	}
	return values
}

// # Entity

// Lot is an item put up for auction.
type Lot struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Image          string    `json:"image,omitempty"`
	Status         Status    `json:"status"`
	CurrentPrice   float64   `json:"currentPrice"`
	EstimatedPrice float64   `json:"estimatedPrice"`
	LotStartTime   time.Time `json:"lotStartTime"`
	LotEndTime     time.Time `json:"lotEndTime"`
	UserID         string    `json:"userId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title          *string
	Image          *string
	Status         *Status
	CurrentPrice   *float64
	EstimatedPrice *float64
	LotStartTime   *time.Time
	LotEndTime     *time.Time
}

// apply merges the supplied fields of p into l.
func (p Patch) apply(l *Lot) {
	l.Title = pointer.Or(p.Title, l.Title)
	l.Image = pointer.Or(p.Image, l.Image)
	l.Status = pointer.Or(p.Status, l.Status)
	l.CurrentPrice = pointer.Or(p.CurrentPrice, l.CurrentPrice)
	l.EstimatedPrice = pointer.Or(p.EstimatedPrice, l.EstimatedPrice)
	l.LotStartTime = pointer.Or(p.LotStartTime, l.LotStartTime)
	l.LotEndTime = pointer.Or(p.LotEndTime, l.LotEndTime)
}

// Filter selects lots for listing.
type Filter struct {
	// Own restricts the result to lots whose owner is UserID.
	Own    bool
	UserID string
}

// Condition is a precondition a store checks atomically with a mutation.
// A lot that exists but fails the condition is reported as not found;
// the service tells the cases apart afterwards.
type Condition struct {
	// OwnerID, when set, requires lot.UserID to equal it.
	OwnerID string

	// StatusIn, when non-empty, requires the current status to be one of these.
	StatusIn []Status

	// StartNotAfter, when set, requires lot.LotStartTime <= *StartNotAfter.
	StartNotAfter *time.Time

	// EndNotBefore, when set, requires lot.LotEndTime >= *EndNotBefore.
	EndNotBefore *time.Time
}

// IsZero reports whether c imposes no restriction.
func (c Condition) IsZero() bool {
	return c.OwnerID == "" && len(c.StatusIn) == 0 && c.StartNotAfter == nil && c.EndNotBefore == nil
}

// WindowHolds reports whether l satisfies the time bounds of c.
func (c Condition) WindowHolds(l *Lot) bool {
	if c.StartNotAfter != nil && l.LotStartTime.After(*c.StartNotAfter) {
		return false
	}
	if c.EndNotBefore != nil && l.LotEndTime.Before(*c.EndNotBefore) {
		return false
	}
	return true
}

// Matches evaluates c against l in memory.
func (c Condition) Matches(l *Lot) bool {
	if c.OwnerID != "" && l.UserID != c.OwnerID {
		return false
	}
	if !c.WindowHolds(l) {
		return false
	}
	if len(c.StatusIn) == 0 {
		return true
	}
	for _, s := range c.StatusIn {
		if l.Status == s {
			return true
		}
	}
	return false
}
