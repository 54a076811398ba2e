package walleterr

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOfWrapped(t *testing.T) {
	err := Wrap(KindTransport, "failed to call contract", io.ErrUnexpectedEOF)
	outer := fmt.Errorf("failed to check balance: %w", err)

	assert.Equal(t, KindTransport, KindOf(outer))
	assert.True(t, Is(outer, KindTransport))
	assert.ErrorIs(t, outer, io.ErrUnexpectedEOF)
	assert.Equal(t, "failed to call contract: unexpected EOF", err.Error())
}

func TestKindOfUntagged(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, Wrap(KindTransport, "x", nil))
}

func TestExitCodeAndStatus(t *testing.T) {
	cases := []struct {
		err    error
		code   int
		status int
	}{
		{New(KindConfiguration, "missing key"), 2, http.StatusServiceUnavailable},
		{New(KindAmountOutOfRange, "too big"), 3, http.StatusBadRequest},
		{New(KindInsufficientBalance, "short"), 4, http.StatusUnprocessableEntity},
		{New(KindCooldown, "wait"), 5, http.StatusTooManyRequests},
		{New(KindTransport, "rpc down"), 6, http.StatusBadGateway},
		{errors.New("other"), 1, http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, ExitCode(c.err), c.err.Error())
		assert.Equal(t, c.status, HTTPStatus(c.err), c.err.Error())
	}
	assert.Equal(t, 0, ExitCode(nil))
}
