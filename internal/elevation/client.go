package elevation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Ruilesser/HackTheChange2025/internal/core/observability"
)

// Client queries an open-elevation style lookup endpoint:
// GET {base}/api/v1/lookup?locations=lat,lon
type Client struct {
	logger *slog.Logger
	client *http.Client
	base   *url.URL

	startNow func() time.Time // for tests
}

var _ Provider = (*Client)(nil)

func NewClient(logger *slog.Logger, client *http.Client, base string) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse elevation url: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		logger:   logger,
		client:   client,
		base:     u,
		startNow: time.Now,
	}, nil
}

type lookupResponse struct {
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

func (c *Client) Lookup(ctx context.Context, lat, lon float64) (float64, error) {
	u := *c.base
	u.Path = "/api/v1/lookup"
	q := url.Values{}
	q.Set("locations", fmt.Sprintf("%.6f,%.6f", lat, lon))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := c.startNow()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	observability.ObserveUpstreamLatency("elevation", time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return 0, fmt.Errorf("elevation status %d: %s", resp.StatusCode, string(b))
	}

	var out lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Results) == 0 {
		return 0, fmt.Errorf("empty results for %.6f,%.6f", lat, lon)
	}
	return out.Results[0].Elevation, nil
}
