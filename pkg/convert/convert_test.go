// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/lotmarket/pkg/convert"
)

func TestToBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"1", true},
		{"TRUE", true},
		{"false", false},
		{"", false},
		{"yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.ToBool(tt.in))
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"120.5", 120.5, true},
		{" 42 ", 42, true},
		{"-1", -1, true},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := convert.ToFloat64(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToInt64(t *testing.T) {
	got, ok := convert.ToInt64("1700000000000")
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000000), got)

	_, ok = convert.ToInt64("12.5")
	assert.False(t, ok)
}
