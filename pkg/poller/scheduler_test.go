// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func countingTask(counter *int32) Task {
	return func(ctx context.Context) error {
		atomic.AddInt32(counter, 1)
		return nil
	}
}

func TestScheduler_RegisterValidation(t *testing.T) {
	s := NewScheduler(context.Background())

	if err := s.Register(Requests, 0, false, nil); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("Register() with zero interval = %v, expected ErrInvalidInterval", err)
	}
	if err := s.Register(Requests, time.Second, false, nil); err != nil {
		t.Fatalf("Register() = %v", err)
	}
	if err := s.Register(Requests, time.Second, false, nil); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("duplicate Register() = %v, expected ErrAlreadyRegistered", err)
	}
	if err := s.Start("missing"); !errors.Is(err, ErrUnknownPoller) {
		t.Errorf("Start(missing) = %v, expected ErrUnknownPoller", err)
	}
}

func TestScheduler_IdempotentStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewScheduler(ctx)

	var calls int32
	if err := s.Register(MatchStatus, 20*time.Millisecond, false, countingTask(&calls)); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := s.Start(MatchStatus); err != nil {
			t.Fatalf("Start() = %v", err)
		}
	}
	if diff := cmp.Diff([]string{MatchStatus}, s.Active()); diff != "" {
		t.Errorf("Active() mismatch (-want +got):\n%s", diff)
	}

	time.Sleep(110 * time.Millisecond)
	s.Stop(MatchStatus)

	// one timer at 20ms over ~110ms fires about 5 times; three timers would fire ~15
	got := atomic.LoadInt32(&calls)
	if got < 2 || got > 7 {
		t.Errorf("task ran %d times, expected a single timer's worth", got)
	}
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := NewScheduler(context.Background())
	var calls int32
	_ = s.Register(Trust, time.Hour, false, countingTask(&calls))

	s.Stop(Trust)
	s.Stop("missing")
	if err := s.Start(Trust); err != nil {
		t.Fatal(err)
	}
	s.Stop(Trust)
	s.Stop(Trust)

	if s.Running(Trust) {
		t.Error("Running() = true after Stop()")
	}
	if err := s.Start(Trust); err != nil {
		t.Errorf("restart after Stop() = %v", err)
	}
	s.StopAll()
	if len(s.Active()) != 0 {
		t.Errorf("Active() = %v after StopAll()", s.Active())
	}
}

func TestScheduler_ImmediateFires(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	s := NewScheduler(ctx)
	_ = s.Register(Notifications, time.Hour, true, func(ctx context.Context) error {
		select {
		case fired <- struct{}{}:
		default:
		}
		return nil
	})
	_ = s.Start(Notifications)
	defer s.StopAll()

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("immediate poller did not fire on start")
	}
}

func TestScheduler_TicksOverlapAndErrorsAreObserved(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var inFlight, maxInFlight, failures int32
	release := make(chan struct{})

	s := NewScheduler(ctx, WithObserver(func(id string, err error) {
		if err != nil {
			atomic.AddInt32(&failures, 1)
		}
	}))
	_ = s.Register(Requests, 10*time.Millisecond, false, func(ctx context.Context) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&maxInFlight)
			if n <= old || atomic.CompareAndSwapInt32(&maxInFlight, old, n) {
				break
			}
		}
		<-release
		atomic.AddInt32(&inFlight, -1)
		return errors.New("network down")
	})
	_ = s.Start(Requests)

	time.Sleep(60 * time.Millisecond)
	s.Stop(Requests)
	close(release)
	time.Sleep(20 * time.Millisecond)

	if atomic.LoadInt32(&maxInFlight) < 2 {
		t.Errorf("max in-flight = %d, expected overlapping ticks", maxInFlight)
	}
	if atomic.LoadInt32(&failures) == 0 {
		t.Error("observer never saw the failed ticks")
	}
}

func TestScheduler_Handles(t *testing.T) {
	s := NewScheduler(context.Background())
	_ = s.Register(Trust, 8*time.Second, false, nil)
	_ = s.Register(Notifications, 7*time.Second, true, nil)

	hs := s.Handles()
	if len(hs) != 2 || hs[0].ID != Notifications || !hs[0].Immediate || hs[1].Interval != 8*time.Second {
		t.Errorf("Handles() = %+v", hs)
	}
	if hs[0].Running() {
		t.Error("registered handle should not be running")
	}
}
