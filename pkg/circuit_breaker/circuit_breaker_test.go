package circuit_breaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_circuitBreaker_Call(t *testing.T) {
	errBroker := errors.New("broker down")
	ok := func() error { return nil }
	fail := func() error { return errBroker }

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := New(Settings{
		RecordLength:     4,
		Timeout:          time.Second,
		Percentile:       0.5,
		RecoveryRequests: 2,
	}).(*circuitBreaker)
	cb.now = func() time.Time { return clock }

	for i := 0; i < 4; i++ {
		require.NoError(t, cb.Call(ok))
	}
	require.Equal(t, Closed, cb.State())

	require.ErrorIs(t, cb.Call(fail), errBroker)
	require.Equal(t, Closed, cb.State())
	require.ErrorIs(t, cb.Call(fail), errBroker)
	require.Equal(t, Open, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	require.ErrorIs(t, err, ErrOpenCB)
	require.False(t, called)

	clock = clock.Add(2 * time.Second)
	require.ErrorIs(t, cb.Call(fail), errBroker)
	require.Equal(t, Open, cb.State(), "failed trial call reopens")

	clock = clock.Add(2 * time.Second)
	require.NoError(t, cb.Call(ok))
	require.Equal(t, HalfOpen, cb.State())
	require.NoError(t, cb.Call(ok))
	require.Equal(t, Closed, cb.State())
}

func Test_circuitBreaker_Reset(t *testing.T) {
	cb := New(Settings{RecordLength: 1, Timeout: time.Hour, Percentile: 1, RecoveryRequests: 1})
	_ = cb.Call(func() error { return errors.New("x") })
	require.Equal(t, Open, cb.State())

	cb.Reset()
	require.Equal(t, Closed, cb.State())
	require.NoError(t, cb.Call(func() error { return nil }))
}

func Test_circuitBreaker_HalfOpenLimit(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := New(Settings{RecordLength: 1, Timeout: time.Second, Percentile: 1, RecoveryRequests: 2}).(*circuitBreaker)
	cb.now = func() time.Time { return clock }

	require.Error(t, cb.Call(func() error { return errors.New("broker down") }))
	require.Equal(t, Open, cb.State())
	clock = clock.Add(2 * time.Second)

	release := make(chan struct{})
	started := make(chan struct{}, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = cb.Call(func() error {
				started <- struct{}{}
				<-release
				return nil
			})
		}()
	}
	<-started
	<-started

	called := false
	require.ErrorIs(t, cb.Call(func() error { called = true; return nil }), ErrOpenCB)
	require.False(t, called, "no more than RecoveryRequests calls while half-open")
	require.Equal(t, HalfOpen, cb.State())

	close(release)
	wg.Wait()
	require.Equal(t, Closed, cb.State())
}

func Test_circuitBreaker_StaleClosedCall(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := New(Settings{RecordLength: 2, Timeout: time.Minute, Percentile: 0.5, RecoveryRequests: 1}).(*circuitBreaker)
	cb.now = func() time.Time { return clock }

	errBroker := errors.New("broker down")
	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- cb.Call(func() error {
			close(started)
			<-release
			return errBroker
		})
	}()
	<-started

	require.ErrorIs(t, cb.Call(func() error { return errBroker }), errBroker)
	require.Equal(t, Open, cb.State())
	openedAt := cb.openedAt

	clock = clock.Add(30 * time.Second)
	close(release)
	require.ErrorIs(t, <-done, errBroker)

	require.Equal(t, openedAt, cb.openedAt, "a call started before the trip does not extend the open period")
	clock = clock.Add(31 * time.Second)
	require.NoError(t, cb.Call(func() error { return nil }))
	require.Equal(t, Closed, cb.State())
}
