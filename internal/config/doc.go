// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

// Package config loads and validates pipeline configuration.
//
// Configuration is layered via Koanf v2 (highest priority wins):
//
//  1. Environment variables (GOOGLE_MAPS_API_KEY, OUTPUT_DIR, ...)
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Built-in defaults
//
// Credentials are read from /var/secrets/kidsevents.env in production,
// with a local .env fallback for development, before the environment
// layer is applied.
package config
