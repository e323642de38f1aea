package server

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// blockingService blocks in Start until Stop is called.
type blockingService struct {
	started chan struct{}
	stop    chan struct{}
	once    sync.Once
}

func newBlockingService() *blockingService {
	return &blockingService{
		started: make(chan struct{}),
		stop:    make(chan struct{}),
	}
}

func (s *blockingService) Start() error {
	close(s.started)
	<-s.stop
	return nil
}

func (s *blockingService) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func TestLifecycleStopsOnContextCancel(t *testing.T) {
	l := NewLifecycle(zaptest.NewLogger(t))
	svc := newBlockingService()
	l.Add("ws", svc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	<-svc.started
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down")
	}

	select {
	case <-svc.stop:
	default:
		t.Fatal("service was not stopped")
	}
}

func TestLifecycleStopsOnServiceError(t *testing.T) {
	l := NewLifecycle(zaptest.NewLogger(t))

	var stopped bool
	l.Add("failing", &FuncService{
		StartFn: func() error { return errors.New("bind failed") },
		StopFn:  func() { stopped = true },
	})

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down after service error")
	}
	assert.True(t, stopped)
}

func TestLifecycleStopsInReverseOrder(t *testing.T) {
	l := NewLifecycle(zaptest.NewLogger(t))

	var mu sync.Mutex
	var order []string
	add := func(name string) {
		svc := newBlockingService()
		l.Add(name, &FuncService{
			StartFn: svc.Start,
			StopFn: func() {
				mu.Lock()
				order = append(order, name)
				mu.Unlock()
				svc.Stop()
			},
		})
	}
	add("first")
	add("second")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"second", "first"}, order)
}
