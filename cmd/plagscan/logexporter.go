// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/classforge/plagiarism/internal/logging"
)

// otelLogExporter bridges internal/logging entries into an OpenTelemetry
// counter, so --metrics-addr's /metrics endpoint reports how many
// warnings and errors a run produced alongside fpindex's own instruments.
// When --metrics-addr is unset no MeterProvider has been installed, so
// counter.Add lands on the global no-op meter and costs nothing: the same
// exporter is wired in either way rather than gated behind a flag check.
type otelLogExporter struct {
	counter otelmetric.Int64Counter
}

func newOtelLogExporter() *otelLogExporter {
	meter := otel.Meter("plagscan.logging")
	counter, _ := meter.Int64Counter("plagscan_log_entries_total",
		otelmetric.WithDescription("Number of log entries emitted by the CLI, by level"))
	return &otelLogExporter{counter: counter}
}

// Export records one occurrence of entry's level. It never fails: a
// nil counter (construction error) makes this a no-op rather than a
// logging-path error.
func (e *otelLogExporter) Export(ctx context.Context, entry logging.LogEntry) error {
	if e.counter == nil {
		return nil
	}
	e.counter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("level", entry.Level.String()),
		attribute.String("service", entry.Service),
	))
	return nil
}

// Flush is a no-op: counter adds are synchronous, there is nothing buffered.
func (e *otelLogExporter) Flush(ctx context.Context) error { return nil }

// Close is a no-op: the exporter owns no resources of its own.
func (e *otelLogExporter) Close() error { return nil }

var _ logging.LogExporter = (*otelLogExporter)(nil)
