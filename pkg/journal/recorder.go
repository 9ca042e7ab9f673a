// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package journal

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-spotlight-session/pkg/match"
	"github.com/AccelByte/extend-spotlight-session/pkg/notification"
	"github.com/AccelByte/extend-spotlight-session/pkg/view"
)

// Appender is the write side of a journal.
type Appender interface {
	Append(ctx context.Context, subject string, entry Entry) error
}

// Recorder turns lifecycle events into journal entries. It never blocks the
// event loop: events are queued and dropped when the queue is full.
type Recorder struct {
	store   Appender
	subject string
	events  chan Entry
	now     func() time.Time
}

// NewRecorder creates a recorder writing under subject. A nil store makes
// every method a no-op.
func NewRecorder(store Appender, subject string, buffer int) *Recorder {
	if buffer < 1 {
		buffer = 128
	}
	return &Recorder{
		store:   store,
		subject: subject,
		events:  make(chan Entry, buffer),
		now:     time.Now,
	}
}

func (r *Recorder) enqueue(e Entry) {
	if r.store == nil {
		return
	}
	e.At = r.now()
	select {
	case r.events <- e:
	default:
		logrus.Warnf("journal queue full, dropping %s event", e.Event)
	}
}

func (r *Recorder) ScreenChanged(from, to view.Screen) {
	r.enqueue(Entry{Event: "screen", From: from.String(), To: to.String()})
}

func (r *Recorder) MatchEnded(matchID string, flow match.FlowType) {
	r.enqueue(Entry{Event: "match_ended", MatchID: matchID, Flow: string(flow)})
}

func (r *Recorder) NotificationPushed(n notification.Notification, added bool) {
	r.enqueue(Entry{Event: "notification", Kind: n.Kind.String(), Key: n.DedupeKey, Added: added})
}

// Run writes queued entries until ctx is done, then flushes what is left.
func (r *Recorder) Run(ctx context.Context) error {
	if r.store == nil {
		<-ctx.Done()
		return nil
	}
	for {
		select {
		case e := <-r.events:
			r.write(ctx, e)
		case <-ctx.Done():
			r.flush()
			return nil
		}
	}
}

func (r *Recorder) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		select {
		case e := <-r.events:
			r.write(ctx, e)
		default:
			return
		}
	}
}

func (r *Recorder) write(ctx context.Context, e Entry) {
	if err := r.store.Append(ctx, r.subject, e); err != nil {
		logrus.Debugf("journal write failed: %v", err)
	}
}
