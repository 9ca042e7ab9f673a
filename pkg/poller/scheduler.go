// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package poller

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Poller identifiers.
const (
	Requests      = "requests"
	Trust         = "trust"
	Notifications = "notifications"
	MatchStatus   = "match_status"
)

var (
	ErrUnknownPoller     = errors.New("unknown poller")
	ErrAlreadyRegistered = errors.New("poller already registered")
	ErrInvalidInterval   = errors.New("poller interval must be positive")
)

// Task is one poll. A returned error means "no new information" and is never retried early.
type Task func(ctx context.Context) error

// Observer is told about every completed tick.
type Observer func(id string, err error)

// Handle describes one named poller.
type Handle struct {
	ID        string
	Interval  time.Duration
	Immediate bool

	task    Task
	running bool
	stop    chan struct{}
}

// Running reports whether the handle currently owns a timer.
func (h Handle) Running() bool {
	return h.running
}

// Scheduler owns every poller handle. At most one timer runs per id.
type Scheduler struct {
	ctx      context.Context
	mu       sync.Mutex
	handles  map[string]*Handle
	observer Observer
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithObserver registers fn to receive each tick's outcome.
func WithObserver(fn Observer) Option {
	return func(s *Scheduler) {
		s.observer = fn
	}
}

// NewScheduler creates a scheduler whose tasks run with ctx.
// Stopping a poller does not cancel requests already in flight.
func NewScheduler(ctx context.Context, opts ...Option) *Scheduler {
	s := &Scheduler{
		ctx:     ctx,
		handles: make(map[string]*Handle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register binds a task to id. It does not start the poller.
func (s *Scheduler) Register(id string, interval time.Duration, immediate bool, task Task) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.handles[id]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, id)
	}
	s.handles[id] = &Handle{
		ID:        id,
		Interval:  interval,
		Immediate: immediate,
		task:      task,
	}
	return nil
}

// Start begins polling id. Starting a running poller is a no-op.
func (s *Scheduler) Start(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.handles[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPoller, id)
	}
	if h.running {
		return nil
	}

	h.running = true
	h.stop = make(chan struct{})
	go s.loop(h.ID, h.Interval, h.Immediate, h.task, h.stop)

	logrus.Debugf("poller %s started (interval %s)", id, h.Interval)
	return nil
}

// Stop clears the timer for id. Stopping an idle or unknown poller is a no-op.
func (s *Scheduler) Stop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.handles[id]
	if !ok || !h.running {
		return
	}
	close(h.stop)
	h.running = false
	h.stop = nil

	logrus.Debugf("poller %s stopped", id)
}

// Running reports whether id currently has a timer.
func (s *Scheduler) Running(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.handles[id]
	return ok && h.running
}

// Active returns the ids of running pollers, sorted.
func (s *Scheduler) Active() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for id, h := range s.handles {
		if h.running {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Handles returns a snapshot of every registered poller, sorted by id.
func (s *Scheduler) Handles() []Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Handle, 0, len(s.handles))
	for _, h := range s.handles {
		out = append(out, Handle{
			ID:        h.ID,
			Interval:  h.Interval,
			Immediate: h.Immediate,
			running:   h.running,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// StopAll stops every running poller.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.handles))
	for id := range s.handles {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.Stop(id)
	}
}

func (s *Scheduler) loop(id string, interval time.Duration, immediate bool, task Task, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if immediate {
		go s.fire(id, task)
	}

	for {
		select {
		case <-stop:
			return
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			// ticks never wait for a slow previous round-trip
			go s.fire(id, task)
		}
	}
}

func (s *Scheduler) fire(id string, task Task) {
	err := task(s.ctx)
	if err != nil {
		logrus.Debugf("poller %s tick failed: %v", id, err)
	}
	if s.observer != nil {
		s.observer(id, err)
	}
}
