// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// startTelemetry installs the process-wide MeterProvider and
// TracerProvider that internal/fpindex's package-level tracer/meter
// record against. Without this, otel.Tracer/otel.Meter fall back to the
// global no-op implementation and every Record/Start call in
// internal/fpindex/metrics.go is silently discarded.
//
// The meter is backed by the OTel-to-Prometheus bridge exporter, which
// registers its collectors with prometheus.DefaultRegisterer; --metrics-
// addr's promhttp.Handler() (reading from prometheus.DefaultGatherer)
// picks up fpindex_* instruments automatically with no separate wiring.
//
// Tracing has no configured backend in this CLI (distributed trace
// export is outside this spec's scope), so the TracerProvider is
// installed without an exporter: spans are still created and can be
// inspected by anything reading span context within the process, but
// nothing ships them off-box.
func startTelemetry(ctx context.Context) (shutdown func(context.Context) error, err error) {
	res := resource.NewSchemaless(
		attribute.String("service.name", "plagscan"),
	)

	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	otel.SetTracerProvider(tp)

	return func(shutdownCtx context.Context) error {
		if err := tp.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("telemetry: tracer provider shutdown: %w", err)
		}
		if err := mp.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("telemetry: meter provider shutdown: %w", err)
		}
		return nil
	}, nil
}
