package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfAndMessageOf(t *testing.T) {
	tagged := E(KindForbidden, "You do not have permission to perform this action.")
	assert.Equal(t, KindForbidden, KindOf(tagged))
	assert.Equal(t, "You do not have permission to perform this action.", MessageOf(tagged))

	// Tags survive wrapping
	wrapped := fmt.Errorf("service layer: %w", tagged)
	assert.Equal(t, KindForbidden, KindOf(wrapped))
	assert.Equal(t, MessageOf(tagged), MessageOf(wrapped))

	// Untagged errors collapse to INTERNAL with a generic message
	plain := errors.New("pq: connection refused")
	assert.Equal(t, KindInternal, KindOf(plain))
	assert.NotContains(t, MessageOf(plain), "pq:")
}

func TestWrapEKeepsCause(t *testing.T) {
	cause := errors.New("cdn unreachable")
	err := WrapE(KindUpstreamStorage, "File upload failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "File upload failed", MessageOf(err))
}

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindNameRequired, http.StatusBadRequest},
		{KindEmailRequired, http.StatusBadRequest},
		{KindEmailInvalid, http.StatusBadRequest},
		{KindPasswordRequired, http.StatusBadRequest},
		{KindPasswordTooShort, http.StatusBadRequest},
		{KindEmailExists, http.StatusBadRequest},
		{KindMissingFields, http.StatusBadRequest},
		{KindValidationFailed, http.StatusBadRequest},
		{KindInvalidCreds, http.StatusUnauthorized},
		{KindMissingToken, http.StatusUnauthorized},
		{KindInvalidToken, http.StatusForbidden},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindInvalidTransition, http.StatusConflict},
		{KindUpstreamStorage, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatusFromError(E(tt.kind, "msg")), string(tt.kind))
	}

	assert.Equal(t, http.StatusOK, HTTPStatusFromError(nil))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(errors.New("boom")))
}
