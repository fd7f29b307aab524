// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer holds small generic helpers for optional values, such as
// the pointer fields of a partial lot update.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Or dereferences p, falling back to def when p is nil.
func Or[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
