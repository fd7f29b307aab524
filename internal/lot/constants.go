// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lot

// # Fields

const (
	FieldID             = "id"
	FieldTitle          = "title"
	FieldImage          = "image"
	FieldStatus         = "status"
	FieldCurrentPrice   = "currentPrice"
	FieldEstimatedPrice = "estimatedPrice"
	FieldLotStartTime   = "lotStartTime"
	FieldLotEndTime     = "lotEndTime"
	FieldOwn            = "own"
)

// # Messages

const (
	MsgEndBeforeStart = "lotEndTime must not be before lotStartTime"
	MsgImageType      = "image must be an image/* upload"
)

// MsgMustBeDate is the message for a missing or unparsable timestamp.
func MsgMustBeDate(field string) string {
	return field + " must be a Date instance"
}

// MsgMustBeNumber is the message for a price that is not numeric.
func MsgMustBeNumber(field string) string {
	return field + " must be a number conforming to the specified constraints"
}
