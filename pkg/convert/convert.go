// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides quick type-conversion utilities.

It wraps standards like [strconv] to provide fault-tolerant conversions
(e.g., returning false instead of an error when parsing fails). This is
useful in API handler contexts parsing query parameters.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"math"
	"strconv"
	"strings"
)

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {
	if s == "" {
		return false
	}

	v, _ := strconv.ParseBool(strings.TrimSpace(s))
	return v
}

// ToFloat64 parses a decimal string, reporting whether it was a finite number.
func ToFloat64(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ToInt64 parses a base-10 integer string, reporting success.
func ToInt64(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
