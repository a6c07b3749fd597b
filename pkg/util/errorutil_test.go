package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewValidationError("bad input", map[string]any{"field": "email"})
	mapped := ToDomainError(original)
	require.NotNil(t, mapped)
	assert.Equal(t, "VALIDATION_FAILED", mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	assert.Equal(t, "email", mapped.Details["field"])
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, mapped)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorWrapped(t *testing.T) {
	wrapped := NewUpstreamError(errors.New("connection refused"))
	mapped := ToDomainError(wrapped)
	require.NotNil(t, mapped)
	assert.Equal(t, "UPSTREAM_ERROR", mapped.Code)
	assert.Equal(t, http.StatusBadGateway, mapped.HTTPStatus)
}

func TestToDomainErrorGeneric(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewInternalError(inner)
	assert.True(t, errors.Is(err, inner))
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{name: "unauthorized", err: NewUnauthorized("nope"), code: "UNAUTHORIZED", status: http.StatusUnauthorized},
		{name: "forbidden", err: NewForbidden("nope"), code: "FORBIDDEN", status: http.StatusForbidden},
		{name: "conflict", err: NewConflict("dup", nil), code: "CONFLICT", status: http.StatusConflict},
		{name: "invariant", err: NewInvariantViolation("rule"), code: "INVARIANT_VIOLATION", status: http.StatusBadRequest},
		{name: "not found", err: NewNotFound("user", nil), code: "NOT_FOUND", status: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := ToDomainError(tc.err)
			assert.Equal(t, tc.code, mapped.Code)
			assert.Equal(t, tc.status, mapped.HTTPStatus)
		})
	}
}
