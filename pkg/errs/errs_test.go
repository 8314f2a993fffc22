package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "plain kind", err: New(KindNotFound, "product not found"), want: KindNotFound},
		{name: "wrapped kind survives fmt", err: fmt.Errorf("handler: %w", New(KindInvalidArgument, "bad rating")), want: KindInvalidArgument},
		{name: "deadline maps to timeout", err: fmt.Errorf("lookup: %w", context.DeadlineExceeded), want: KindTimeout},
		{name: "unclassified is internal", err: errors.New("boom"), want: KindInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(New(KindInvalidArgument, "x")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(New(KindNotFound, "x")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(New(KindUnauthorized, "x")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(Wrap(KindTimeout, "store", context.DeadlineExceeded)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(KindInternal, "save order", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "save order")
	assert.Contains(t, err.Error(), "refused")
}
