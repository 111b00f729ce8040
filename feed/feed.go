// Package feed polls the recommender backend for the home page's numbers:
// the running recommendation total with its hourly increase, and the list of
// trending genres.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Endpoint paths relative to the backend URL.
const (
	StatsPath    = "/t4/total-recommendations"
	TrendingPath = "/t4/trending-genres"
)

// Names under which stats are delivered to a Sink.
const (
	NameTotal  = "total"
	NameHourly = "hourly"
)

// DefaultInterval is the refresh period of the stats poll.
const DefaultInterval = time.Minute

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// ErrBadStatus is returned for non-2xx responses.
var ErrBadStatus = errors.New("feed: unexpected status")

// Sink receives named values. *marquee.Page implements it; Deliver must be
// safe to call from the poller's goroutine.
type Sink interface {
	Deliver(name string, value float64)
}

// Stats is one reading of the stats endpoint.
type Stats struct {
	Total  float64
	Hourly float64
}

// Poller fetches Stats immediately and then every Interval, delivering both
// values to a Sink. Failed fetches are logged and deliver nothing, so the
// page keeps showing the last good values.
type Poller struct {
	URL      string
	Interval time.Duration
	Client   *http.Client
	Logger   *zap.Logger
}

// Run polls until ctx is cancelled. It always returns nil after ctx is done
// so it can run under an errgroup without failing its siblings.
func (p *Poller) Run(ctx context.Context, sink Sink) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p.poll(ctx, sink, logger)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.poll(ctx, sink, logger)
		}
	}
}

func (p *Poller) poll(ctx context.Context, sink Sink, logger *zap.Logger) {
	stats, err := FetchStats(ctx, p.Client, p.URL)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Warn("fetch stats failed", zap.String("url", p.URL), zap.Error(err))
		return
	}
	logger.Debug("stats fetched",
		zap.Float64("total", stats.Total),
		zap.Float64("hourly", stats.Hourly))
	sink.Deliver(NameTotal, stats.Total)
	sink.Deliver(NameHourly, stats.Hourly)
}

// FetchStats reads the `[total, hourly]` pair from the backend at baseURL.
// Elements that are missing or not numbers read as 0.
func FetchStats(ctx context.Context, client *http.Client, baseURL string) (Stats, error) {
	body, err := get(ctx, client, endpoint(baseURL, StatsPath))
	if err != nil {
		return Stats{}, err
	}
	res, err := parseArray(body)
	if err != nil {
		return Stats{}, fmt.Errorf("parse stats: %w", err)
	}
	return Stats{
		Total:  number(res.Get("0")),
		Hourly: number(res.Get("1")),
	}, nil
}

// FetchTrending reads the trending genre names from the backend at baseURL.
// Non-string elements are skipped; an empty result is not an error.
func FetchTrending(ctx context.Context, client *http.Client, baseURL string) ([]string, error) {
	body, err := get(ctx, client, endpoint(baseURL, TrendingPath))
	if err != nil {
		return nil, err
	}
	if gjson.ParseBytes(body).Type == gjson.Null {
		return nil, nil
	}
	res, err := parseArray(body)
	if err != nil {
		return nil, fmt.Errorf("parse trending: %w", err)
	}
	var genres []string
	res.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String && v.Str != "" {
			genres = append(genres, v.Str)
		}
		return true
	})
	return genres, nil
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: %w: %s", url, ErrBadStatus, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

func endpoint(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}

func parseArray(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errors.New("invalid JSON")
	}
	res := gjson.ParseBytes(body)
	if !res.IsArray() {
		return gjson.Result{}, fmt.Errorf("want a JSON array, got %s", res.Type)
	}
	return res, nil
}

func number(r gjson.Result) float64 {
	if r.Type != gjson.Number {
		return 0
	}
	return r.Num
}
