package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, KindUnauthenticated, Unauthenticated().Kind)
	assert.Equal(t, "authentication required", Unauthenticated().Message)

	forbidden := Forbidden("no access")
	assert.Equal(t, KindForbidden, forbidden.Kind)
	assert.Equal(t, "no access", forbidden.Message)

	notFound := NotFound("patient not found")
	assert.Equal(t, KindNotFound, notFound.Kind)

	cause := errors.New("field missing")
	invalid := Validation("bad input", cause)
	assert.Equal(t, KindValidation, invalid.Kind)
	assert.ErrorIs(t, invalid, cause)
}

func TestAsUnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NotFound("gone"))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.Equal(t, "gone", appErr.Message)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)

	_, ok = As(nil)
	assert.False(t, ok)
}

func TestIsKind(t *testing.T) {
	err := Forbidden("denied")
	assert.True(t, IsKind(err, KindForbidden))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindForbidden))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(KindUnauthenticated))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(KindForbidden))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Kind("OTHER")))
}
