// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package eventloop

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Continuation is applied on the loop after asynchronous work completes.
// A nil continuation means there is nothing to apply.
type Continuation func()

// Work runs off the loop and returns what should be applied back on it.
type Work func(ctx context.Context) Continuation

// Runner is what domain code needs from the loop.
type Runner interface {
	// Post schedules fn on the loop.
	Post(fn func())
	// Go runs work on its own goroutine and posts the returned continuation.
	Go(work Work)
}

// Loop serialises every state mutation onto one goroutine.
type Loop struct {
	queue chan func()

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup
}

// New creates a loop whose queue holds up to size pending callbacks.
func New(size int) *Loop {
	if size < 1 {
		size = 64
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loop{
		queue:  make(chan func(), size),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Post enqueues fn. Calls after the loop stopped are dropped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()
	if stopped {
		return
	}

	select {
	case l.queue <- fn:
	case <-l.ctx.Done():
	}
}

// Go runs work with the loop's context. Work already started is not aborted
// when the loop stops, but its continuation is dropped.
func (l *Loop) Go(work Work) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if next := work(l.ctx); next != nil {
			l.Post(next)
		}
	}()
}

// Run drains the queue until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.queue:
			l.invoke(fn)
		}
	}
}

// Wait blocks until every goroutine started through Go has returned.
func (l *Loop) Wait() {
	l.wg.Wait()
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("event loop callback panicked: %v", r)
		}
	}()
	fn()
}

func (l *Loop) stop() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()
	l.cancel()
}

// Inline runs everything synchronously on the caller's goroutine.
type Inline struct {
	Ctx context.Context
}

func (i Inline) Post(fn func()) {
	fn()
}

func (i Inline) Go(work Work) {
	ctx := i.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if next := work(ctx); next != nil {
		next()
	}
}
