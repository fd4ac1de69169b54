package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("cbu", "El CBU debe tener 22 dígitos")

	assert.True(t, IsValidation(err))
	assert.Equal(t, "El CBU debe tener 22 dígitos", err.Error())

	wrapped := errors.Join(errors.New("outer"), err)
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		fallback string
		want     string
	}{
		{
			name: "nil error",
			want: "",
		},
		{
			name:     "validation message wins over fallback",
			err:      NewValidationError("amount", "El monto debe ser un número positivo"),
			fallback: "Error al procesar",
			want:     "El monto debe ser un número positivo",
		},
		{
			name:     "user error carries its own message",
			err:      NewUserError("Saldo insuficiente", errors.New("402")),
			fallback: "Error al procesar",
			want:     "Saldo insuficiente",
		},
		{
			name:     "unknown error uses fallback",
			err:      errors.New("dial tcp: connection refused"),
			fallback: "Error de conexión",
			want:     "Error de conexión",
		},
		{
			name: "unknown error without fallback",
			err:  errors.New("boom"),
			want: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err, tt.fallback))
		})
	}
}

func TestWithRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_NonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: errors.New("permanent"), Retryable: false}
	}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Millisecond})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_SessionExpiryIsTerminal(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return ErrSessionExpired
	}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Millisecond})

	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return errors.New("always")
	}, RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond})

	require.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 3, calls)
}
