package testutil

import (
	"testing"

	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"github.com/stretchr/testify/require"
)

// RequireAppError fails unless err is an AppError with the given code.
func RequireAppError(t *testing.T, err error, code apperrors.ErrorCode) *apperrors.AppError {
	t.Helper()

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected *AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}
