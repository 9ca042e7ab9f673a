// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package eventloop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoop_PostRunsInOrder(t *testing.T) {
	l := New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	var seen []int
	finished := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		l.Post(func() { seen = append(seen, i) })
	}
	l.Post(func() { close(finished) })

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("loop did not drain in time")
	}

	for i, v := range seen {
		if v != i {
			t.Fatalf("seen = %v, expected ascending order", seen)
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() returned %v, expected nil", err)
	}
}

func TestLoop_GoPostsContinuation(t *testing.T) {
	l := New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	applied := make(chan string, 1)
	l.Go(func(ctx context.Context) Continuation {
		result := "fetched"
		return func() { applied <- result }
	})

	select {
	case got := <-applied:
		if got != "fetched" {
			t.Errorf("continuation applied %q, expected fetched", got)
		}
	case <-time.After(time.Second):
		t.Fatal("continuation never ran")
	}
}

func TestLoop_PanicDoesNotKillLoop(t *testing.T) {
	l := New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	ok := make(chan struct{})
	l.Post(func() { panic("boom") })
	l.Post(func() { close(ok) })

	select {
	case <-ok:
	case <-time.After(time.Second):
		t.Fatal("loop stopped after a panicking callback")
	}
}

func TestLoop_PostAfterStopIsDropped(t *testing.T) {
	l := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	var calls int32
	l.Post(func() { atomic.AddInt32(&calls, 1) })
	l.Post(func() { atomic.AddInt32(&calls, 1) })
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("callbacks should not run after the loop stopped")
	}
}

func TestInline(t *testing.T) {
	var order []string
	r := Inline{}
	r.Go(func(ctx context.Context) Continuation {
		order = append(order, "work")
		return func() { order = append(order, "apply") }
	})
	r.Post(func() { order = append(order, "post") })

	if len(order) != 3 || order[0] != "work" || order[1] != "apply" || order[2] != "post" {
		t.Errorf("order = %v, expected [work apply post]", order)
	}
}
