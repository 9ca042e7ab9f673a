// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// defaultTTL keeps a journal for a week after its last write
	defaultTTL = 7 * 24 * time.Hour
	// defaultMaxEntries bounds each journal list
	defaultMaxEntries = 500
	keyPrefix         = "spotlight:journal:"
)

// Entry is one recorded lifecycle event.
type Entry struct {
	At      time.Time `json:"at"`
	Event   string    `json:"event"`
	MatchID string    `json:"match_id,omitempty"`
	Flow    string    `json:"flow,omitempty"`
	From    string    `json:"from,omitempty"`
	To      string    `json:"to,omitempty"`
	Kind    string    `json:"kind,omitempty"`
	Key     string    `json:"key,omitempty"`
	Added   bool      `json:"added,omitempty"`
}

// Store appends entries to a capped Redis list per subject.
type Store struct {
	client *redis.Client
	cfg    StoreConfig
}

type StoreConfig struct {
	TTL        time.Duration
	MaxEntries int64
}

// NewStore creates a Redis-backed journal. Zero config values take the defaults.
func NewStore(client *redis.Client, cfg StoreConfig) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = defaultMaxEntries
	}
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

func makeKey(subject string) string {
	return fmt.Sprintf("%s%s", keyPrefix, subject)
}

// Append adds entry at the tail, trims the list and refreshes its TTL.
func (s *Store) Append(ctx context.Context, subject string, entry Entry) error {
	key := makeKey(subject)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -s.cfg.MaxEntries, -1)
	pipe.Expire(ctx, key, s.cfg.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logrus.Errorf("failed to append journal entry for %s: %v", subject, err)
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

// List returns up to limit most recent entries, oldest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, subject string, limit int64) ([]Entry, error) {
	start := int64(0)
	if limit > 0 {
		start = -limit
	}

	raw, err := s.client.LRange(ctx, makeKey(subject), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			logrus.Warnf("skipping malformed journal entry for %s: %v", subject, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Delete drops the subject's journal.
func (s *Store) Delete(ctx context.Context, subject string) error {
	if err := s.client.Del(ctx, makeKey(subject)).Err(); err != nil {
		return fmt.Errorf("failed to delete journal: %w", err)
	}
	return nil
}
