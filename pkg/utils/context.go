package utils

import (
	"context"

	"repair-system/pkg/contextkeys"
	apperrors "repair-system/pkg/errors"
)

func GetStaffIDFromCtx(ctx context.Context) (uint64, error) {
	staffID, ok := ctx.Value(contextkeys.StaffIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrStaffIDNotFoundInContext
	}
	return staffID, nil
}

func GetRequestIDFromCtx(ctx context.Context) string {
	requestID, _ := ctx.Value(contextkeys.RequestIDKey).(string)
	return requestID
}
