// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice adds Map and Filter on top of the standard [slices] package.

Both return nil for an empty result, so callers that serialise the output
as a JSON array must substitute an empty slice themselves.
*/
package slice

// Map applies transform to every element of input.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if len(input) == 0 {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter keeps the elements for which keep returns true, preserving order.
func Filter[T any](input []T, keep func(T) bool) []T {
	var result []T
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}
