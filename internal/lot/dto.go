// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lot

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/taibuivan/lotmarket/internal/platform/validate"
	"github.com/taibuivan/lotmarket/pkg/convert"
	"github.com/taibuivan/lotmarket/pkg/pointer"
)

// # Lenient Scalars
//
// Clients send prices as numbers or numeric strings and timestamps as
// RFC 3339 strings or epoch milliseconds. Decoding never fails on these
// fields; a bad value is recorded and reported as a field error instead.

var jsonNull = []byte("null")

// flexNumber accepts 12.5 or "12.5".
type flexNumber struct {
	value   float64
	present bool
	valid   bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		return nil
	}

	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		n.value, n.present, n.valid = number, true, true
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		if text == "" {
			return nil
		}
		n.present = true
		n.value, n.valid = convert.ToFloat64(text)
		return nil
	}

	n.present = true
	return nil
}

// flexTime accepts "2026-01-02T15:04:05Z", "2026-01-02", 1767366245000, 1.767366245e12 or "1767366245000".
type flexTime struct {
	value   time.Time
	present bool
	valid   bool
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func (t *flexTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		return nil
	}
	t.present = true

	var millis float64
	if err := json.Unmarshal(data, &millis); err == nil {
		t.value, t.valid = fromEpochMillis(millis)
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return nil
	}

	if millis, ok := convert.ToInt64(text); ok {
		t.value, t.valid = fromEpochMillis(float64(millis))
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			t.value, t.valid = parsed.UTC(), true
			return nil
		}
	}
	return nil
}

// maxEpochMillis is the widest instant a JavaScript Date can represent.
const maxEpochMillis = 8.64e15

// fromEpochMillis truncates fractional milliseconds and rejects instants
// outside the Date range.
func fromEpochMillis(millis float64) (time.Time, bool) {
	if math.Abs(millis) > maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(math.Trunc(millis))).UTC(), true
}

func numberField(validator *validate.Validator, field string, n flexNumber) *float64 {
	if !n.present {
		return nil
	}
	if !n.valid {
		validator.Custom(field, true, MsgMustBeNumber(field))
		return nil
	}
	return pointer.To(n.value)
}

func timeField(validator *validate.Validator, field string, t flexTime) *time.Time {
	if !t.present {
		return nil
	}
	if !t.valid {
		validator.Custom(field, true, MsgMustBeDate(field))
		return nil
	}
	return pointer.To(t.value)
}

// # Requests

type createLotRequest struct {
	Title          string     `json:"title"`
	Image          string     `json:"image"`
	Status         string     `json:"status"`
	CurrentPrice   flexNumber `json:"currentPrice"`
	EstimatedPrice flexNumber `json:"estimatedPrice"`
	LotStartTime   flexTime   `json:"lotStartTime"`
	LotEndTime     flexTime   `json:"lotEndTime"`
}

// toInput converts the request, reporting malformed scalars on validator.
func (req createLotRequest) toInput(validator *validate.Validator) CreateInput {
	return CreateInput{
		Title:          req.Title,
		Image:          req.Image,
		Status:         Status(req.Status),
		CurrentPrice:   numberField(validator, FieldCurrentPrice, req.CurrentPrice),
		EstimatedPrice: numberField(validator, FieldEstimatedPrice, req.EstimatedPrice),
		LotStartTime:   timeField(validator, FieldLotStartTime, req.LotStartTime),
		LotEndTime:     timeField(validator, FieldLotEndTime, req.LotEndTime),
	}
}

type updateLotRequest struct {
	Title          *string    `json:"title"`
	Image          *string    `json:"image"`
	Status         *string    `json:"status"`
	CurrentPrice   flexNumber `json:"currentPrice"`
	EstimatedPrice flexNumber `json:"estimatedPrice"`
	LotStartTime   flexTime   `json:"lotStartTime"`
	LotEndTime     flexTime   `json:"lotEndTime"`
}

func (req updateLotRequest) toPatch(validator *validate.Validator) Patch {
	patch := Patch{
		Title:          req.Title,
		Image:          req.Image,
		CurrentPrice:   numberField(validator, FieldCurrentPrice, req.CurrentPrice),
		EstimatedPrice: numberField(validator, FieldEstimatedPrice, req.EstimatedPrice),
		LotStartTime:   timeField(validator, FieldLotStartTime, req.LotStartTime),
		LotEndTime:     timeField(validator, FieldLotEndTime, req.LotEndTime),
	}
	if req.Status != nil {
		status := Status(*req.Status)
		patch.Status = &status
	}
	return patch
}
