// Package lifecycle coordinates application startup and shutdown hooks.
// Systems register startup work and shutdown waiters with a single
// Coordinator, which owns the root context for the process.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Coordinator sequences startup hooks and shutdown waiters around a shared
// root context. Startup hooks run when WaitForStartup is called; shutdown
// waiters observe Context cancellation and are waited on by Shutdown.
type Coordinator struct {
	ctx      context.Context
	cancel   context.CancelFunc
	ready    atomic.Bool
	mu       sync.Mutex
	startup  []func()
	shutdown sync.WaitGroup
}

// New creates a Coordinator with a fresh root context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the root context, cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// Ready reports whether startup hooks have completed.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// OnStartup registers a hook to run during WaitForStartup.
func (c *Coordinator) OnStartup(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startup = append(c.startup, fn)
}

// WaitForStartup runs all registered startup hooks and marks the
// coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.mu.Lock()
	hooks := c.startup
	c.startup = nil
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	c.ready.Store(true)
}

// OnShutdown registers a shutdown waiter. The function should block on
// Context().Done() and then release its resources; Shutdown waits for every
// registered waiter to return.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdown.Add(1)
	go func() {
		defer c.shutdown.Done()
		fn()
	}()
}

// Shutdown cancels the root context and waits up to timeout for all
// shutdown waiters to finish.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdown.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timed out after %s", timeout)
	}
}
