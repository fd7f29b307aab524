// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lot

import (
	"fmt"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
)

var (
	// ErrNotOwner is returned when the ownership policy rejects a mutation.
	ErrNotOwner = apperr.Forbidden("Only the owner may modify this lot")

	// ErrConcurrentChange is returned when the lot changed between a rejected write and its diagnosis.
	ErrConcurrentChange = apperr.ConflictCode("LOT_CHANGED", "Lot was modified by another request")

	// ErrImagesDisabled is returned by image uploads when no object storage is configured.
	ErrImagesDisabled = apperr.ServiceUnavailable("Image storage is not configured")
)

// InvalidTransition reports a status change the lifecycle does not allow.
func InvalidTransition(from, to Status) *apperr.AppError {
	return apperr.ConflictCode("INVALID_STATUS_TRANSITION",
		fmt.Sprintf("status cannot change from %s to %s", from, to))
}
