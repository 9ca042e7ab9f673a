// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package journal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/AccelByte/extend-spotlight-session/pkg/match"
	"github.com/AccelByte/extend-spotlight-session/pkg/notification"
	"github.com/AccelByte/extend-spotlight-session/pkg/view"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return client, mr
}

func TestStore_AppendTrimsAndExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewStore(client, StoreConfig{TTL: time.Hour, MaxEntries: 3})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Append(ctx, "alice", Entry{Event: fmt.Sprintf("e%d", i)}); err != nil {
			t.Fatalf("Append() = %v", err)
		}
	}

	entries, err := store.List(ctx, "alice", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 || entries[0].Event != "e2" || entries[2].Event != "e4" {
		t.Errorf("List() = %+v, expected e2..e4", entries)
	}

	if ttl := mr.TTL("spotlight:journal:alice"); ttl != time.Hour {
		t.Errorf("TTL = %v, expected 1h", ttl)
	}

	last, _ := store.List(ctx, "alice", 1)
	if len(last) != 1 || last[0].Event != "e4" {
		t.Errorf("List(limit 1) = %+v", last)
	}

	if err := store.Delete(ctx, "alice"); err != nil {
		t.Fatal(err)
	}
	if mr.Exists("spotlight:journal:alice") {
		t.Error("journal still exists after Delete()")
	}
}

func TestStore_SkipsMalformedEntries(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewStore(client, StoreConfig{})
	_, _ = mr.RPush("spotlight:journal:bob", "not json", `{"event":"screen"}`)

	entries, err := store.List(context.Background(), "bob", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Event != "screen" {
		t.Errorf("List() = %+v", entries)
	}
}

func TestRecorder_WritesObservedEvents(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewStore(client, StoreConfig{})
	rec := NewRecorder(store, "session", 16)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	rec.now = func() time.Time { return fixed }

	var _ match.Observer = rec

	rec.ScreenChanged(view.Matched, view.PostMatchOutcome)
	rec.MatchEnded("m1", match.FlowOtherEnded)
	rec.NotificationPushed(notification.Notification{Kind: notification.EndReason, DedupeKey: "end_m1"}, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rec.Run(ctx); err != nil {
		t.Fatal(err)
	}

	entries, err := store.List(context.Background(), "session", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, expected 3", len(entries))
	}
	if entries[0].To != "post_match_outcome" || entries[1].Flow != "other_ended" || entries[2].Key != "end_m1" {
		t.Errorf("entries = %+v", entries)
	}
	if !entries[0].At.Equal(fixed) {
		t.Errorf("At = %v, expected %v", entries[0].At, fixed)
	}
}

func TestRecorder_NilStoreIsNoop(t *testing.T) {
	rec := NewRecorder(nil, "session", 1)
	for i := 0; i < 10; i++ {
		rec.ScreenChanged(view.AppShell, view.Matched)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rec.Run(ctx); err != nil {
		t.Errorf("Run() = %v", err)
	}
}

func TestHealthChecker(t *testing.T) {
	client, mr := setupTestRedis(t)
	checker := NewHealthChecker(client)
	if !checker.IsHealthy(context.Background()) {
		t.Error("miniredis should be healthy")
	}
	mr.Close()
	if checker.IsHealthy(context.Background()) {
		t.Error("closed redis should be unhealthy")
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), mr.Addr(), "", 1)
	if err != nil {
		t.Fatalf("Connect() = %v", err)
	}
	_ = client.Close()
}
