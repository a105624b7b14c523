// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jopolko/kidsevents/internal/validation"
)

// Validate checks that the configuration is complete and consistent.
// Tag-level constraints run first, then cross-field rules the tags
// cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateSourceURLs(); err != nil {
		return err
	}

	return c.validatePlaces()
}

// validateSourceURLs ensures enabled network adapters point at real
// HTTP(S) endpoints. Disabled adapters are not validated so a broken
// URL can be parked without deleting it.
func (c *Config) validateSourceURLs() error {
	if c.Sources.TPL.Enabled {
		if err := validateHTTPURL(c.Sources.TPL.URL, "sources.tpl.url"); err != nil {
			return err
		}
	}
	if c.Sources.OpenData.Enabled {
		if err := validateHTTPURL(c.Sources.OpenData.URL, "sources.opendata.url"); err != nil {
			return err
		}
	}
	return nil
}

// validatePlaces validates the place lookup configuration. An empty API
// key is allowed (enrichment degrades to cache-only) but a malformed
// endpoint is not.
func (c *Config) validatePlaces() error {
	if err := validateHTTPURL(c.Places.BaseURL, "places.base_url"); err != nil {
		return err
	}
	if c.Places.Timeout <= 0 {
		return fmt.Errorf("places.timeout must be positive, got %s", c.Places.Timeout)
	}
	return nil
}

// validateHTTPURL checks that a value parses as an absolute http(s) URL.
func validateHTTPURL(raw, name string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", name, err)
	}
	if !strings.HasPrefix(u.Scheme, "http") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}
