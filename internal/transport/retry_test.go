package transport

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedDoer struct {
	calls    int
	statuses []int
	errs     []error
}

func (d *scriptedDoer) Do(ctx context.Context, req *Request) (*Response, error) {
	i := d.calls
	d.calls++
	if i >= len(d.statuses) {
		i = len(d.statuses) - 1
	}
	if d.errs != nil && d.errs[i] != nil {
		return nil, d.errs[i]
	}
	return &Response{Status: d.statuses[i], Data: []byte(`{}`)}, nil
}

func fastRetry(next Doer) Doer {
	return NewRetry(next, RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}, nil)
}

func TestRetryExhaustionIsBounded(t *testing.T) {
	next := &scriptedDoer{statuses: []int{http.StatusInternalServerError}}
	r := fastRetry(next)

	resp, err := r.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/properties/"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, 4, next.calls, "an always-failing transport is called exactly 1+MaxRetries times")
}

func TestRetrySkipsTerminalStatuses(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusUnauthorized, http.StatusNotFound, http.StatusConflict} {
		next := &scriptedDoer{statuses: []int{status}}
		r := fastRetry(next)

		resp, err := r.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/properties/"})
		require.NoError(t, err)
		assert.Equal(t, status, resp.Status)
		assert.Equal(t, 1, next.calls, "status %d must not be retried", status)
	}
}

func TestRetryRecoversAfterTransientFailures(t *testing.T) {
	next := &scriptedDoer{
		statuses: []int{0, http.StatusServiceUnavailable, http.StatusOK},
		errs:     []error{errors.New("connection refused"), nil, nil},
	}
	r := fastRetry(next)

	resp, err := r.Do(context.Background(), &Request{Method: http.MethodPost, Path: "/properties/"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, 3, next.calls)
}

func TestRetryRetriesNetworkErrors(t *testing.T) {
	netErr := errors.New("dial tcp: connection refused")
	next := &scriptedDoer{
		statuses: []int{0},
		errs:     []error{netErr},
	}
	r := fastRetry(next)

	_, err := r.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/agents/"})
	require.ErrorIs(t, err, netErr)
	assert.Equal(t, 4, next.calls)
}

func TestRetryStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	next := &scriptedDoer{statuses: []int{0}, errs: []error{ctx.Err()}}
	r := fastRetry(next)

	_, err := r.Do(ctx, &Request{Method: http.MethodGet, Path: "/agents/"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, next.calls, "cancellation must short-circuit the retry loop")
}
