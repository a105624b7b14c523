// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package places

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/jopolko/kidsevents/internal/logging"
)

// Place is the first ranked candidate returned by a text search.
type Place struct {
	ID      string
	Name    string
	Address string
	Lat     float64
	Lng     float64
}

// Searcher performs a free-text place search biased toward approximate
// coordinates. A nil *Place with a nil error means no candidates.
type Searcher interface {
	TextSearch(ctx context.Context, query string, lat, lng float64) (*Place, error)
}

// ClientConfig configures the Places API (New) client.
type ClientConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	BiasRadius float64
}

// fieldMask limits the response to the fields the cache consumes.
const fieldMask = "places.id,places.displayName,places.formattedAddress,places.location"

// searchTextRequest is the Places API (New) searchText request body.
type searchTextRequest struct {
	TextQuery    string        `json:"textQuery"`
	LanguageCode string        `json:"languageCode"`
	LocationBias *locationBias `json:"locationBias,omitempty"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// searchTextResponse is the subset of the searchText response selected
// by the field mask. An empty Places slice means zero results; the new
// API has no ZERO_RESULTS status.
type searchTextResponse struct {
	Places []struct {
		ID          string `json:"id"`
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		FormattedAddress string `json:"formattedAddress"`
		Location         latLng `json:"location"`
	} `json:"places"`
}

// Client calls the Google Places API (New) text search endpoint. A
// circuit breaker trips after repeated consecutive failures so that a
// dead or misconfigured API degrades to enrichment misses instead of
// burning the whole rate budget on a failing endpoint.
type Client struct {
	http    *resty.Client
	cfg     ClientConfig
	breaker *gobreaker.CircuitBreaker[*Place]
}

// NewClient creates a Places API client.
func NewClient(cfg ClientConfig) *Client {
	settings := gobreaker.Settings{
		Name:    "places-searchtext",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Place search circuit breaker state change")
		},
	}

	return &Client{
		http: resty.New().
			SetTimeout(cfg.Timeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("X-Goog-Api-Key", cfg.APIKey).
			SetHeader("X-Goog-FieldMask", fieldMask),
		cfg:     cfg,
		breaker: gobreaker.NewCircuitBreaker[*Place](settings),
	}
}

// TextSearch issues a single searchText request and returns the first
// ranked candidate, or nil when the API returns no places. Coordinates
// of (0, 0) disable the location bias.
func (c *Client) TextSearch(ctx context.Context, query string, lat, lng float64) (*Place, error) {
	return c.breaker.Execute(func() (*Place, error) {
		return c.searchText(ctx, query, lat, lng)
	})
}

func (c *Client) searchText(ctx context.Context, query string, lat, lng float64) (*Place, error) {
	body := searchTextRequest{
		TextQuery:    query,
		LanguageCode: "en",
	}
	if lat != 0 || lng != 0 {
		body.LocationBias = &locationBias{
			Circle: circle{
				Center: latLng{Latitude: lat, Longitude: lng},
				Radius: c.cfg.BiasRadius,
			},
		}
	}

	result := &searchTextResponse{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		Post(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("place search request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("place search HTTP %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
	}

	if len(result.Places) == 0 {
		return nil, nil
	}

	first := result.Places[0]
	return &Place{
		ID:      first.ID,
		Name:    first.DisplayName.Text,
		Address: first.FormattedAddress,
		Lat:     first.Location.Latitude,
		Lng:     first.Location.Longitude,
	}, nil
}

// truncate bounds error payloads logged from the API.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
