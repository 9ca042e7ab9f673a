// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-spotlight-session/internal/bootstrap"
	"github.com/AccelByte/extend-spotlight-session/internal/config"
	"github.com/AccelByte/extend-spotlight-session/internal/server"
	"github.com/AccelByte/extend-spotlight-session/pkg/api"
	"github.com/AccelByte/extend-spotlight-session/pkg/eventloop"
	"github.com/AccelByte/extend-spotlight-session/pkg/intent"
	"github.com/AccelByte/extend-spotlight-session/pkg/journal"
	"github.com/AccelByte/extend-spotlight-session/pkg/match"
	"github.com/AccelByte/extend-spotlight-session/pkg/metrics"
	"github.com/AccelByte/extend-spotlight-session/pkg/poller"
	"github.com/AccelByte/extend-spotlight-session/pkg/schedule"
	"github.com/AccelByte/extend-spotlight-session/pkg/view"
)

const loopQueueSize = 256

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	client            *api.Client
	loop              *eventloop.Loop
	scheduler         *poller.Scheduler
	controller        *match.Controller
	intents           *intent.Table
	recorder          *journal.Recorder
	collectors        *metrics.Collectors
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error

	// pollCtx is handed to every poll task and cancelled on shutdown.
	pollCtx    context.Context
	cancelPoll context.CancelFunc
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Spotlight API client + connectivity probe
// 2. Poller schedule (YAML configuration)
// 3. Journal Redis (optional)
// 4. Metrics collectors and server
// 5. Event loop, scheduler, controller, intents
// 6. Telemetry (OpenTelemetry tracing)
//
// If you add new external dependencies, initialize them in
// step 3 and hand them to the bootstrap functions in step 5.
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Spotlight API client
	// ============================================================
	app.client = NewClient(cfg)
	if err := app.waitForServer(ctx); err != nil {
		return nil, fmt.Errorf("spotlight server unreachable: %w", err)
	}

	// ============================================================
	// Step 2: Load poller schedule
	// ============================================================
	scheduleCfg, err := schedule.Load(cfg.SchedulePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule from %s: %w", cfg.SchedulePath, err)
	}

	// ============================================================
	// Step 3: Journal (optional)
	// ============================================================
	if err := app.initJournal(ctx); err != nil {
		return nil, fmt.Errorf("failed to init journal: %w", err)
	}

	// ============================================================
	// Step 4: Metrics
	// ============================================================
	app.collectors = metrics.New()
	if cfg.MetricsPort > 0 {
		app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
		if err := app.collectors.Register(app.metricsServer.Registry()); err != nil {
			return nil, fmt.Errorf("failed to register session metrics: %w", err)
		}
		if err := app.metricsServer.Setup(); err != nil {
			return nil, fmt.Errorf("failed to setup metrics server: %w", err)
		}
	}

	// ============================================================
	// Step 5: Event loop, scheduler, controller and intents
	// ============================================================
	app.pollCtx, app.cancelPoll = context.WithCancel(context.Background())
	app.loop = eventloop.New(loopQueueSize)
	app.scheduler = poller.NewScheduler(app.pollCtx, poller.WithObserver(app.collectors.ObservePoll))

	app.controller, err = bootstrap.InitController(
		app.client,
		app.scheduler,
		scheduleCfg,
		app.loop,
		view.LogRenderer{},
		app.collectors.Observer(),
		app.recorder,
	)
	if err != nil {
		return nil, err
	}

	app.intents, err = bootstrap.InitIntents(app.controller)
	if err != nil {
		return nil, err
	}

	// ============================================================
	// Step 6: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, cfg.ZipkinEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// NewClient builds the Spotlight API client from cfg.
func NewClient(cfg *config.Config) *api.Client {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout()}
	return api.NewClient(httpClient, cfg.BaseURL, cfg.SessionCookie)
}

// waitForServer probes /api/user_info with exponential backoff. Any answer
// below 500, unauthorized included, proves the server is up.
func (a *App) waitForServer(ctx context.Context) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(a.cfg.StartupMaxRetries)),
		ctx,
	)

	return backoff.Retry(func() error {
		_, err := a.client.UserInfo(ctx)
		if err == nil {
			return nil
		}
		if api.IsCode(err, api.CodeUnauthorized) {
			logrus.Warn("spotlight session is not authorized; requests will fail until SPOTLIGHT_SESSION_COOKIE is set")
			return nil
		}
		if status := api.StatusOf(err); status > 0 && status < http.StatusInternalServerError {
			logrus.Warnf("spotlight server answered user_info with %d", status)
			return nil
		}
		logrus.Warnf("spotlight server probe failed: %v, retrying...", err)
		return err
	}, policy)
}

// initJournal connects the transition journal when JOURNAL_REDIS_ADDR is set.
// Without it the recorder accepts events and drops them.
func (a *App) initJournal(ctx context.Context) error {
	if !a.cfg.JournalEnabled() {
		a.recorder = journal.NewRecorder(nil, a.cfg.JournalSubject, 0)
		return nil
	}

	client, err := journal.Connect(ctx, a.cfg.JournalRedisAddr, a.cfg.JournalRedisPassword, uint64(a.cfg.StartupMaxRetries))
	if err != nil {
		return err
	}
	a.redisClient = client

	store := journal.NewStore(client, journal.StoreConfig{})
	a.recorder = journal.NewRecorder(store, a.cfg.JournalSubject, 0)
	return nil
}
