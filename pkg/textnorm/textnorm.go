// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalizes user-supplied text before it is stored or compared.
//
// # Usage
//
// Emails are the credential lookup key, so "Bob@Example.COM" and
// "bob@example.com" must resolve to the same account. Titles are kept as
// typed, only composed to NFC so visually identical strings compare equal.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Email trims surrounding whitespace, composes to NFC and case-folds the address.
func Email(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Title trims surrounding whitespace and composes the string to NFC.
func Title(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
