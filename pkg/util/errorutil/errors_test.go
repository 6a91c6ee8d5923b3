package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatusCodes(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad input", nil), CodeValidationFailed, http.StatusBadRequest},
		{NewUnauthorized("no session"), CodeUnauthorized, http.StatusUnauthorized},
		{NewNotFound("request", nil), CodeNotFound, http.StatusNotFound},
		{NewUpstreamError("object storage", errors.New("boom")), CodeUpstreamError, http.StatusBadGateway},
		{NewInternalError(errors.New("boom")), CodeInternalError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		domainErr := ToDomainError(tc.err)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}

func TestToDomainErrorMapsNoRowsToNotFound(t *testing.T) {
	domainErr := ToDomainError(fmt.Errorf("load request: %w", pgx.ErrNoRows))

	assert.Equal(t, CodeNotFound, domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorCollapsesUnknownErrors(t *testing.T) {
	domainErr := ToDomainError(errors.New("disk on fire"))

	assert.Equal(t, CodeInternalError, domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
}

func TestToDomainErrorPreservesWrappedDomainError(t *testing.T) {
	original := NewValidationError("bad date", map[string]any{"date": "31-12"})
	wrapped := fmt.Errorf("create request: %w", original)

	domainErr := ToDomainError(wrapped)

	assert.Equal(t, CodeValidationFailed, domainErr.Code)
	assert.Equal(t, "31-12", domainErr.Details["date"])
}

func TestUpstreamErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamError("email provider", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "email provider unavailable")
}
