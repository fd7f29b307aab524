// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for records that are
not assigned an id by their store (PostgreSQL and in-memory drivers).

Version 7 values sort by creation time, which keeps B-tree inserts append-only
and makes "store order" listings follow insertion order.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
