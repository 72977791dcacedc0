// Package upstream fetches raw map data from an Overpass API interpreter.
package upstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
	"github.com/Ruilesser/HackTheChange2025/internal/core/observability"
)

type Interface interface {
	QueryBBox(ctx context.Context, bb model.BBox) ([]byte, error)
}

// tag keys worth querying; anything else never classifies past the
// global fallback anyway
var queryKeys = []string{
	"building",
	"highway",
	"amenity",
	"leisure",
	"natural",
	"landuse",
	"shop",
	"tourism",
	"waterway",
}

type Client struct {
	logger *slog.Logger
	client *http.Client
	api    *url.URL

	startNow func() time.Time // for tests
}

var _ Interface = (*Client)(nil)

func New(logger *slog.Logger, client *http.Client, api string) (*Client, error) {
	u, err := url.Parse(api)
	if err != nil {
		return nil, fmt.Errorf("parse overpass url: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		logger:   logger,
		client:   client,
		api:      u,
		startNow: time.Now,
	}, nil
}

// BuildQuery renders the Overpass QL statement for a bbox: all ways
// carrying one of the queried keys, plus their member nodes.
func BuildQuery(bb model.BBox) string {
	// Overpass bbox order is south,west,north,east
	box := fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", bb.Y1, bb.X1, bb.Y2, bb.X2)

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	for _, key := range queryKeys {
		fmt.Fprintf(&b, `way[%q](%s);`, key, box)
	}
	b.WriteString(");out body;>;out skel qt;")
	return b.String()
}

// QueryBBox posts the rendered query and returns the raw JSON body.
func (c *Client) QueryBBox(ctx context.Context, bb model.BBox) ([]byte, error) {
	form := url.Values{}
	form.Set("data", BuildQuery(bb))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.api.String(),
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := c.startNow()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	dur := time.Since(start)
	observability.ObserveUpstreamLatency("overpass", dur.Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return nil, fmt.Errorf("overpass status %d: %s", resp.StatusCode, string(b))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	c.logger.Debug("overpass query done",
		"bbox", bb.String(), "bytes", len(b), "duration", dur.String())
	return b, nil
}
