// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

// Package metrics provides Prometheus instrumentation for the pipeline.
//
// The pipeline is a batch job, not a long-lived server, so there is no
// /metrics endpoint: counters accumulate in the default registry during
// the run and can be dumped to a node-exporter textfile at the end via
// WriteTextfile when metrics.textfile_path is configured.
package metrics
