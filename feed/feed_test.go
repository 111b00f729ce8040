package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingSink struct {
	mu     sync.Mutex
	values map[string][]float64
}

func newRecordingSink() *recordingSink {
	return &recordingSink{values: map[string][]float64{}}
}

func (s *recordingSink) Deliver(name string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = append(s.values[name], value)
}

func (s *recordingSink) get(name string) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.values[name]...)
}

func serve(t *testing.T, path, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchStats(t *testing.T) {
	srv := serve(t, StatsPath, `[123456, 42]`, http.StatusOK)

	stats, err := FetchStats(context.Background(), srv.Client(), srv.URL+"/")
	require.NoError(t, err)
	require.Equal(t, Stats{Total: 123456, Hourly: 42}, stats)
}

func TestFetchStatsNonNumeric(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Stats
	}{
		{"strings", `["lots", 7]`, Stats{Total: 0, Hourly: 7}},
		{"nulls", `[null, null]`, Stats{}},
		{"short", `[99]`, Stats{Total: 99}},
		{"empty", `[]`, Stats{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, StatsPath, tt.body, http.StatusOK)
			stats, err := FetchStats(context.Background(), srv.Client(), srv.URL)
			require.NoError(t, err)
			require.Equal(t, tt.want, stats)
		})
	}
}

func TestFetchStatsErrors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		srv := serve(t, StatsPath, `oops`, http.StatusInternalServerError)
		_, err := FetchStats(context.Background(), srv.Client(), srv.URL)
		require.ErrorIs(t, err, ErrBadStatus)
	})
	t.Run("not json", func(t *testing.T) {
		srv := serve(t, StatsPath, `{"total":`, http.StatusOK)
		_, err := FetchStats(context.Background(), srv.Client(), srv.URL)
		require.Error(t, err)
	})
	t.Run("object", func(t *testing.T) {
		srv := serve(t, StatsPath, `{"total": 1}`, http.StatusOK)
		_, err := FetchStats(context.Background(), srv.Client(), srv.URL)
		require.Error(t, err)
	})
}

func TestFetchTrending(t *testing.T) {
	srv := serve(t, TrendingPath, `["House", 3, "", "Jazz"]`, http.StatusOK)
	genres, err := FetchTrending(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, []string{"House", "Jazz"}, genres)
}

func TestFetchTrendingNull(t *testing.T) {
	srv := serve(t, TrendingPath, `null`, http.StatusOK)
	genres, err := FetchTrending(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	require.Empty(t, genres)
}

func TestPollerDeliversImmediatelyAndPeriodically(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		if n == 1 {
			_, _ = w.Write([]byte(`[1000, 10]`))
			return
		}
		_, _ = w.Write([]byte(`[1005, 11]`))
	}))
	defer srv.Close()

	sink := newRecordingSink()
	p := &Poller{URL: srv.URL, Interval: 10 * time.Millisecond, Client: srv.Client()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx, sink) }()

	require.Eventually(t, func() bool {
		return len(sink.get(NameTotal)) >= 2
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	totals := sink.get(NameTotal)
	require.Equal(t, 1000.0, totals[0])
	require.Equal(t, 1005.0, totals[1])
	require.Equal(t, 10.0, sink.get(NameHourly)[0])
}

func TestPollerKeepsValuesOnFailure(t *testing.T) {
	srv := serve(t, StatsPath, `down`, http.StatusServiceUnavailable)
	core, logs := observer.New(zap.WarnLevel)

	sink := newRecordingSink()
	p := &Poller{URL: srv.URL, Interval: time.Hour, Client: srv.Client(), Logger: zap.New(core)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx, sink) }()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("fetch stats failed").Len() == 1
	}, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	require.Empty(t, sink.get(NameTotal))
	require.Empty(t, sink.get(NameHourly))
	entry := logs.FilterMessage("fetch stats failed").All()[0]
	err, ok := entry.ContextMap()["error"].(string)
	require.True(t, ok)
	require.Contains(t, err, "503")
}

func TestPollerStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &Poller{URL: "http://127.0.0.1:0", Interval: time.Millisecond}
	sink := newRecordingSink()
	require.NoError(t, p.Run(ctx, sink))
	require.Empty(t, sink.get(NameTotal))
}

func TestBadStatusIsWrapped(t *testing.T) {
	srv := serve(t, TrendingPath, ``, http.StatusNotFound)
	_, err := FetchTrending(context.Background(), srv.Client(), srv.URL)
	require.True(t, errors.Is(err, ErrBadStatus))
}
