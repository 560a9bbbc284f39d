package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"patient-kiosk-backend/pkg/apperr"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	err := apperr.New(apperr.Conflict, "RFID already registered")
	require.Equal(t, apperr.Conflict, apperr.KindOf(err))
	require.True(t, apperr.IsKind(err, apperr.Conflict))
	require.False(t, apperr.IsKind(err, apperr.NotFound))

	// Wrapped errors still expose their kind.
	wrapped := fmt.Errorf("handling request: %w", err)
	require.Equal(t, apperr.Conflict, apperr.KindOf(wrapped))

	// Anything untyped is a storage failure.
	require.Equal(t, apperr.Storage, apperr.KindOf(errors.New("connection reset")))
}

func TestDetailAndUnwrap(t *testing.T) {
	cause := errors.New("signature invalid")
	err := apperr.Wrap(apperr.Validation, "invalid session token", cause)

	require.Equal(t, "invalid session token", apperr.DetailOf(err))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "validation_error: invalid session token", err.Error())
}
