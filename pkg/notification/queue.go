// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package notification

import (
	"github.com/google/uuid"
)

// DefaultCapacity bounds the generic feed. The incoming request slot is not counted.
const DefaultCapacity = 10

// Notification is one bell entry.
type Notification struct {
	ID        string `json:"id"`
	Kind      Kind   `json:"-"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	DedupeKey string `json:"dedupe_key,omitempty"`
}

// IncomingRequest is the pending meetup request sourced from the requests poller.
type IncomingRequest struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	SenderID string `json:"sender_id,omitempty"`
}

// Queue is the newest-first, deduplicated, bounded bell feed.
// It is not safe for concurrent use; the owning event loop serialises access.
type Queue struct {
	capacity int
	items    []Notification
	incoming *IncomingRequest
	newID    func() string
}

// NewQueue creates a queue with the given capacity (DefaultCapacity when < 1).
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Queue{
		capacity: capacity,
		newID:    uuid.NewString,
	}
}

// Push inserts a notification at the head. If dedupeKey is non-empty and
// already present the queue is left untouched and false is returned.
func (q *Queue) Push(kind Kind, title, message, dedupeKey string) (Notification, bool) {
	if dedupeKey != "" {
		for _, n := range q.items {
			if n.DedupeKey == dedupeKey {
				return n, false
			}
		}
	}

	n := Notification{
		ID:        q.newID(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		DedupeKey: dedupeKey,
	}

	q.items = append([]Notification{n}, q.items...)
	if len(q.items) > q.capacity {
		q.items = q.items[:q.capacity]
	}
	return n, true
}

// Dismiss removes the notification with the given id. Unknown ids are ignored.
func (q *Queue) Dismiss(id string) bool {
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of the generic feed, newest first.
func (q *Queue) List() []Notification {
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the size of the generic feed.
func (q *Queue) Len() int {
	return len(q.items)
}

// SetIncoming replaces the incoming request slot. nil clears it.
func (q *Queue) SetIncoming(req *IncomingRequest) {
	if req == nil {
		q.incoming = nil
		return
	}
	r := *req
	q.incoming = &r
}

// Incoming returns the pending incoming request, if any.
func (q *Queue) Incoming() (IncomingRequest, bool) {
	if q.incoming == nil {
		return IncomingRequest{}, false
	}
	return *q.incoming, true
}

// HasUnread reports whether the bell should show its dot.
func (q *Queue) HasUnread() bool {
	return q.incoming != nil || len(q.items) > 0
}

// Feed returns the display order: the incoming request first, then the generic feed.
func (q *Queue) Feed() []Notification {
	out := make([]Notification, 0, len(q.items)+1)
	if q.incoming != nil {
		out = append(out, Notification{
			ID:      q.incoming.ID,
			Kind:    KindIncomingRequest,
			Title:   "Meetup request",
			Message: q.incoming.Username + " wants to meet",
		})
	}
	return append(out, q.items...)
}
