package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Run(t *testing.T) {
	t.Run("stops every service when one returns", func(t *testing.T) {
		boom := errors.New("boom")
		var cancelled atomic.Bool

		err := NewApp().
			WithService(ServiceFunc(func(ctx context.Context) error {
				<-ctx.Done()
				cancelled.Store(true)
				return ctx.Err()
			})).
			WithService(ServiceFunc(func(context.Context) error {
				return boom
			})).
			Run(t.Context())

		assert.ErrorIs(t, err, boom)
		assert.True(t, cancelled.Load())
	})

	t.Run("interrupter follows the parent context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := NewApp().WithService(Interrupter{}).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHTTPServer_Run(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	srv := NewHTTPServer(&http.Server{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	}, nil)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
