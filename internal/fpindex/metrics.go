// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package fpindex

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for fingerprint indexing.
var (
	tracer = otel.Tracer("plagscan.fpindex")
	meter  = otel.Meter("plagscan.fpindex")
)

var (
	ingestLatency      metric.Float64Histogram
	ingestTotal        metric.Int64Counter
	fingerprintsPerFile metric.Int64Histogram
	boilerplateFiltered metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		ingestLatency, err = meter.Float64Histogram(
			"fpindex_ingest_duration_seconds",
			metric.WithDescription("Duration of fingerprint ingestion for one batch"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		ingestTotal, err = meter.Int64Counter(
			"fpindex_ingest_files_total",
			metric.WithDescription("Total number of files ingested into the index"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		fingerprintsPerFile, err = meter.Int64Histogram(
			"fpindex_fingerprints_per_file",
			metric.WithDescription("Number of fingerprints selected per file"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		boilerplateFiltered, err = meter.Int64Counter(
			"fpindex_boilerplate_filtered_total",
			metric.WithDescription("Total number of fingerprints marked as boilerplate"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordIngestMetrics(ctx context.Context, fileCount int, duration time.Duration) {
	if err := initMetrics(); err != nil {
		return
	}
	ingestLatency.Record(ctx, duration.Seconds())
	ingestTotal.Add(ctx, int64(fileCount))
}

func recordFingerprintCount(ctx context.Context, language string, count int) {
	if err := initMetrics(); err != nil {
		return
	}
	fingerprintsPerFile.Record(ctx, int64(count), metric.WithAttributes(attribute.String("language", language)))
}

func recordBoilerplateFiltered(ctx context.Context, count int) {
	if err := initMetrics(); err != nil {
		return
	}
	boilerplateFiltered.Add(ctx, int64(count))
}

func startIngestSpan(ctx context.Context, fileCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Index.AddFiles",
		trace.WithAttributes(attribute.Int("fpindex.file_count", fileCount)),
	)
}
