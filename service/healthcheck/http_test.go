package healthcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(sleeps *int) HTTP {
	return HTTP{
		client: &http.Client{},
		sleep: func(ctx context.Context, d time.Duration) error {
			*sleeps++
			return nil
		},
	}
}

func TestPollHealthyFirstAttempt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	sleeps := 0
	res, err := newTestChecker(&sleeps).Poll(context.Background(), srv.URL, 10, time.Second, time.Second)
	require.NoError(t, err)
	assert.True(t, res.Healthy)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, 0, sleeps)
}

func TestPollHealthyAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 4 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	sleeps := 0
	res, err := newTestChecker(&sleeps).Poll(context.Background(), srv.URL, 10, time.Second, time.Second)
	require.NoError(t, err)
	assert.True(t, res.Healthy)
	assert.Equal(t, 4, res.Attempts)
	assert.Equal(t, 3, sleeps)
}

func TestPollExhaustionSleepsOneLessThanAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	sleeps := 0
	res, err := newTestChecker(&sleeps).Poll(context.Background(), srv.URL, 10, time.Second, time.Second)
	require.NoError(t, err)
	assert.False(t, res.Healthy)
	assert.Equal(t, 10, res.Attempts)
	assert.Equal(t, 9, sleeps)
}

func TestPollNonOKSuccessStatusIsUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()
	sleeps := 0
	res, err := newTestChecker(&sleeps).Poll(context.Background(), srv.URL, 2, time.Second, time.Second)
	require.NoError(t, err)
	assert.False(t, res.Healthy)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, 1, sleeps)
}

func TestPollTransportErrorCountsAsAttempt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	sleeps := 0
	res, err := newTestChecker(&sleeps).Poll(context.Background(), srv.URL, 3, time.Second, time.Second)
	require.NoError(t, err)
	assert.False(t, res.Healthy)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 2, sleeps)
}

func TestPollCancelledDuringPause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	checker := HTTP{client: &http.Client{}, sleep: sleepContext}
	res, err := checker.Poll(ctx, srv.URL, 5, time.Minute, time.Second)
	assert.Error(t, err)
	assert.False(t, res.Healthy)
	assert.Equal(t, 1, res.Attempts)
}
