// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/AccelByte/extend-spotlight-session/pkg/intent"
)

const shutdownTimeout = 10 * time.Second

// Run starts the session and blocks until a shutdown signal is received.
// Intents are read line by line from input; EOF leaves the session running.
func (a *App) Run(ctx context.Context, input io.Reader) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.loop.Run(gctx)
	})
	g.Go(func() error {
		return a.recorder.Run(gctx)
	})
	if a.metricsServer != nil {
		g.Go(func() error {
			return a.metricsServer.Start(gctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return a.metricsServer.Shutdown(shutdownCtx)
		})
	}

	a.loop.Post(a.controller.Start)
	if input != nil {
		// Not part of the group: a blocked read cannot be interrupted.
		go a.readIntents(input)
	}

	logrus.Info("application started successfully")

	err := g.Wait()
	logrus.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(err, a.Shutdown(shutdownCtx))
}

// readIntents posts every parsed line to the event loop.
func (a *App) readIntents(input io.Reader) {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		cmd, err := intent.Parse(scanner.Text())
		if errors.Is(err, intent.ErrEmptyCommand) {
			continue
		}
		a.loop.Post(func() {
			if err := a.intents.Dispatch(cmd); err != nil {
				logrus.Infof("intent %s failed: %v", cmd.Name, err)
			}
		})
	}
	if err := scanner.Err(); err != nil {
		logrus.Warnf("intent input closed: %v", err)
		return
	}
	logrus.Debug("intent input reached EOF")
}

// Shutdown gracefully shuts down all application components.
//
// ============================================================
// DEVELOPER: Shutdown order is critical
// ============================================================
// Components are shut down in reverse dependency order:
// 1. Stop polling and wait for in-flight API calls
// 2. Close external connections (journal Redis)
// 3. Flush telemetry data (OpenTelemetry)
//
// IMPORTANT: Shutdown errors are logged but don't stop the
// shutdown sequence. Each component gets a chance to clean up.
// ============================================================
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	// ============================================================
	// Step 1: Stop polling
	// ============================================================
	if a.scheduler != nil {
		a.scheduler.StopAll()
	}
	if a.cancelPoll != nil {
		a.cancelPoll()
	}
	if a.loop != nil {
		done := make(chan struct{})
		go func() {
			a.loop.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			logrus.Warn("in-flight API calls did not finish before shutdown deadline")
		}
	}

	// ============================================================
	// Step 2: Close external connections
	// ============================================================
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("Redis close error: %v", err)
		}
	}

	// ============================================================
	// Step 3: Flush telemetry data
	// ============================================================
	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
