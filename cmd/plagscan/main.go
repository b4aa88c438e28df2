// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command plagscan is a thin CLI harness around the plagiarism library:
// it reads a directory of submissions from disk, runs them through
// Analyze, and prints a report. Routing, storage, and UI are left to
// whatever system embeds the library directly.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var metricsAddr string

var rootCmd = &cobra.Command{
	Use:   "plagscan",
	Short: "Detect shared code fingerprints across a batch of submissions",
}

func main() {
	var telemetryShutdown func(context.Context) error

	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090) for the duration of the command")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if metricsAddr == "" {
			return
		}
		shutdown, err := startTelemetry(cmd.Context())
		if err != nil {
			log.Printf("telemetry: %v", err)
			return
		}
		telemetryShutdown = shutdown

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("serving metrics on %s", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	err := rootCmd.Execute()

	if telemetryShutdown != nil {
		if shutdownErr := telemetryShutdown(context.Background()); shutdownErr != nil {
			log.Printf("telemetry: %v", shutdownErr)
		}
	}

	if err != nil {
		log.Printf("plagscan: %v", err)
		os.Exit(exitError)
	}
}
