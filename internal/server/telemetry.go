// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/AccelByte/extend-spotlight-session/pkg/common"
)

// SetupTelemetry installs the tracer provider and propagators used by every
// outgoing API call. Returns a shutdown function to flush pending spans.
//
// ============================================================
// DEVELOPER: OpenTelemetry configuration
// ============================================================
// Spans are exported to Zipkin when ZIPKIN_ENDPOINT is set;
// otherwise they are sampled but only feed the trace IDs in logs.
// The tracer provider itself is built in pkg/common/telemetry.go.
// ============================================================
func SetupTelemetry(ctx context.Context, serviceName, environment, zipkinEndpoint string) (func(context.Context) error, error) {
	tracerProvider, err := common.NewTracerProvider(serviceName, environment, zipkinEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}

	otel.SetTracerProvider(tracerProvider)
	logrus.Infof("set tracer provider: (name: %s environment: %s)", serviceName, environment)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			b3.New(),                   // Zipkin B3 propagation
			propagation.TraceContext{}, // W3C Trace Context
			propagation.Baggage{},      // W3C Baggage
		),
	)

	shutdown := func(ctx context.Context) error {
		logrus.Info("shutting down telemetry...")
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
		logrus.Info("telemetry stopped")
		return nil
	}
	return shutdown, nil
}
