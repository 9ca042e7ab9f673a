// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package notification

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sequentialIDs(q *Queue) {
	next := 0
	q.newID = func() string {
		next++
		return fmt.Sprintf("n%d", next)
	}
}

func titles(items []Notification) []string {
	out := make([]string, 0, len(items))
	for _, n := range items {
		out = append(out, n.Title)
	}
	return out
}

func TestQueue_PushNewestFirst(t *testing.T) {
	q := NewQueue(DefaultCapacity)
	q.Push(Admin, "first", "", "")
	q.Push(Reach, "second", "", "")

	if diff := cmp.Diff([]string{"second", "first"}, titles(q.List())); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestQueue_DedupeKey(t *testing.T) {
	q := NewQueue(DefaultCapacity)

	first, added := q.Push(EndReason, "Sam ended the match", "Reason: late", "end_m1")
	if !added {
		t.Fatal("first Push() should add")
	}
	for i := 0; i < 5; i++ {
		got, added := q.Push(EndReason, "Sam ended the match", "Reason: late", "end_m1")
		if added {
			t.Fatalf("Push() #%d with existing key should be a no-op", i)
		}
		if got.ID != first.ID {
			t.Errorf("Push() returned %s, expected existing %s", got.ID, first.ID)
		}
	}

	count := 0
	for _, n := range q.List() {
		if n.DedupeKey == "end_m1" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("found %d entries with key end_m1, expected 1", count)
	}
}

func TestQueue_DedupeAfterEviction(t *testing.T) {
	q := NewQueue(2)
	q.Push(Admin, "a", "", "admin_1")
	q.Push(Admin, "b", "", "")
	q.Push(Admin, "c", "", "")

	if _, added := q.Push(Admin, "a again", "", "admin_1"); !added {
		t.Error("Push() should accept a key once the earlier entry was evicted")
	}
}

func TestQueue_Bound(t *testing.T) {
	q := NewQueue(DefaultCapacity)
	sequentialIDs(q)

	for i := 1; i <= 25; i++ {
		q.Push(Admin, fmt.Sprintf("t%d", i), "", fmt.Sprintf("admin_%d", i))
		if q.Len() > DefaultCapacity {
			t.Fatalf("Len() = %d after push %d, expected <= %d", q.Len(), i, DefaultCapacity)
		}
	}

	expected := make([]string, 0, DefaultCapacity)
	for i := 25; i > 15; i-- {
		expected = append(expected, fmt.Sprintf("t%d", i))
	}
	if diff := cmp.Diff(expected, titles(q.List())); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestQueue_Dismiss(t *testing.T) {
	q := NewQueue(DefaultCapacity)
	sequentialIDs(q)
	q.Push(Admin, "a", "", "")
	q.Push(Admin, "b", "", "")

	if !q.Dismiss("n1") {
		t.Error("Dismiss(n1) should remove an existing entry")
	}
	if q.Dismiss("missing") {
		t.Error("Dismiss(missing) should be a no-op")
	}
	if diff := cmp.Diff([]string{"b"}, titles(q.List())); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestQueue_IncomingIsOutsideCap(t *testing.T) {
	q := NewQueue(DefaultCapacity)
	for i := 0; i < 12; i++ {
		q.Push(Admin, fmt.Sprintf("t%d", i), "", "")
	}
	q.SetIncoming(&IncomingRequest{ID: "7", Username: "sam"})

	feed := q.Feed()
	if len(feed) != DefaultCapacity+1 {
		t.Fatalf("len(Feed()) = %d, expected %d", len(feed), DefaultCapacity+1)
	}
	if feed[0].Kind != KindIncomingRequest || feed[0].ID != "7" {
		t.Errorf("Feed()[0] = %+v, expected incoming request first", feed[0])
	}

	q.SetIncoming(nil)
	if _, ok := q.Incoming(); ok {
		t.Error("Incoming() should be empty after clearing")
	}
}

func TestQueue_HasUnread(t *testing.T) {
	q := NewQueue(DefaultCapacity)
	if q.HasUnread() {
		t.Error("empty queue should not be unread")
	}
	q.SetIncoming(&IncomingRequest{ID: "1"})
	if !q.HasUnread() {
		t.Error("incoming request should light the bell")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in       string
		expected Kind
	}{
		{"admin_push", Admin},
		{"", Admin},
		{"whatever", Admin},
		{"reach", Reach},
		{"END_REASON", EndReason},
		{"incoming_request", Admin},
		{"incoming", Admin},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.in); got != tt.expected {
			t.Errorf("ParseKind(%q) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}

func TestKind_Presentation(t *testing.T) {
	if got := Reach.Presentation().Avatar; got != "R" {
		t.Errorf("Reach avatar = %q, expected R", got)
	}
	if got := Admin.Presentation().Avatar; got != "A" {
		t.Errorf("Admin avatar = %q, expected A", got)
	}
	if diff := cmp.Diff([]Action{ActionAccept, ActionDecline}, KindIncomingRequest.Presentation().Actions); diff != "" {
		t.Errorf("IncomingRequest actions mismatch (-want +got):\n%s", diff)
	}
}
