// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// HealthChecker pings the journal's Redis.
type HealthChecker struct {
	client *redis.Client
}

func NewHealthChecker(client *redis.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// Check performs a bounded ping.
func (h *HealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if _, err := h.client.Ping(ctx).Result(); err != nil {
		logrus.Errorf("journal redis health check failed: %v", err)
		return err
	}
	logrus.Debugf("journal redis health check passed")
	return nil
}

func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}

// Connect opens a client and waits for Redis with exponential backoff.
func Connect(ctx context.Context, addr, password string, maxRetries uint64) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	checker := NewHealthChecker(client)
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	err := backoff.Retry(func() error {
		return checker.Check(ctx)
	}, policy)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("journal redis at %s unreachable: %w", addr, err)
	}

	logrus.Infof("journal connected to redis at %s", addr)
	return client, nil
}
