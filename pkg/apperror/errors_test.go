package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("SEC_001", "Invalid webhook signature", http.StatusUnauthorized),
			expected: "[SEC_001] Invalid webhook signature",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, New("NF_001", "test", http.StatusNotFound).Unwrap())
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidSignature", ErrInvalidSignature(), "SEC_001", 401},
		{"InvalidSecretToken", ErrInvalidSecretToken(), "SEC_002", 401},
		{"MissingCRCToken", ErrMissingCRCToken(), "SEC_003", 400},
		{"InvalidCredentials", ErrInvalidCredentials(), "AUTH_001", 401},
		{"AdminDisabled", ErrAdminDisabled(), "AUTH_002", 403},
		{"InvalidToken", ErrInvalidToken(), "AUTH_003", 401},
		{"MalformedPayload", ErrMalformedPayload(errors.New("eof")), "REQ_001", 400},
		{"UnknownPlatform", ErrUnknownPlatform("discord"), "REQ_002", 400},
		{"Validation", Validation("bad"), "REQ_003", 400},
		{"NotFound", ErrNotFound("Account"), "NF_001", 404},
		{"RateLimit", ErrRateLimitExceeded(), "RATE_001", 429},
		{"Database", ErrDatabaseError(errors.New("x")), "SYS_001", 500},
		{"Wallet", ErrWalletUnavailable(errors.New("x")), "SYS_002", 503},
		{"Internal", InternalError(errors.New("x")), "SYS_001", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestNotFoundEntity(t *testing.T) {
	err := ErrNotFound("Account")
	assert.Contains(t, err.Message, "Account")
}

func TestUnknownPlatformMessage(t *testing.T) {
	assert.Contains(t, ErrUnknownPlatform("discord").Message, `"discord"`)
}
