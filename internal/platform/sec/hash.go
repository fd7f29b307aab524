// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor for stored account passwords.
const passwordCost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt hash of plain. bcrypt rejects inputs
// longer than 72 bytes, so callers validate length first.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", fmt.Errorf("password_hash_failed: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether plain matches hash. A malformed hash never matches.
func CheckPasswordHash(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
