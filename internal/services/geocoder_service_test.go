package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripplanner/internal/infra"
	"tripplanner/pkg/utils"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) (*NominatimGeocoder, *int32) {
	t.Helper()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := infra.NewDefaultConfig().Geocoder
	cfg.BaseURL = srv.URL
	cfg.RequestsPerSecond = 0
	return NewNominatimGeocoder(cfg, NewSuggestionCache(cfg), zap.NewNop()), &calls
}

func TestGeocodeResolvesFirstResult(t *testing.T) {
	g, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Delhi", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "ai-trip-planner/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{"place_id": 42, "display_name": "Delhi, India", "lat": "28.6517", "lon": "77.2219"}]`))
	})

	res := g.Geocode(context.Background(), "Delhi")

	assert.True(t, res.Resolved)
	assert.NoError(t, res.Reason)
	assert.Equal(t, Coordinates{Lat: 28.6517, Lon: 77.2219}, res.Point)
}

func TestGeocodeFailuresDegradeToOrigin(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"empty result", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[]`)) }},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`<html>`)) }},
		{"bad coordinate", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"place_id": 1, "lat": "north", "lon": "1"}]`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, calls := newTestGeocoder(t, tt.handler)

			res := g.Geocode(context.Background(), "Nowhere")

			assert.False(t, res.Resolved)
			assert.Error(t, res.Reason)
			assert.Equal(t, Coordinates{}, res.Point)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls), "geocoding is never retried")
		})
	}
}

func TestGeocodeNetworkErrorDegradesToOrigin(t *testing.T) {
	cfg := infra.NewDefaultConfig().Geocoder
	cfg.BaseURL = "http://127.0.0.1:1"
	cfg.RequestsPerSecond = 0
	g := NewNominatimGeocoder(cfg, NewSuggestionCache(cfg), zap.NewNop())

	res := g.Geocode(context.Background(), "Delhi")

	assert.False(t, res.Resolved)
	assert.ErrorIs(t, res.Reason, utils.ErrTransportFailure)
	assert.Equal(t, Coordinates{}, res.Point)

	plan := SynthesizeFallbackPlan(TripRequest{Destination: "Delhi", Days: 2, Budget: "cheap", Currency: "USD"}, res.Point)
	assert.Len(t, plan.Itinerary, 2)
	assert.NotEmpty(t, plan.Hotels)
}

func TestSuggestLimitsAndCaches(t *testing.T) {
	g, calls := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "8", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[
			{"place_id": 1, "display_name": "Paris, France", "lat": "48.85", "lon": "2.35"},
			{"place_id": 2, "display_name": "Paris, Texas", "lat": "33.66", "lon": "-95.55"},
			{"place_id": 3, "display_name": "broken", "lat": "", "lon": ""},
			{"place_id": 4, "display_name": "Paris, Ontario", "lat": "43.19", "lon": "-80.38"},
			{"place_id": 5, "display_name": "Paris, Tennessee", "lat": "36.30", "lon": "-88.32"},
			{"place_id": 6, "display_name": "Paris, Kentucky", "lat": "38.20", "lon": "-84.25"},
			{"place_id": 7, "display_name": "Paris, Idaho", "lat": "42.22", "lon": "-111.40"}
		]`))
	})

	first, err := g.Suggest(context.Background(), "Paris")
	require.NoError(t, err)
	require.Len(t, first, 5)
	assert.Equal(t, "1", first[0].ID)
	assert.Equal(t, "Paris, France", first[0].Label)
	assert.Equal(t, "4", first[2].ID, "unparseable entries are skipped")

	second, err := g.Suggest(context.Background(), "  paris ")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestSuggestShortQuery(t *testing.T) {
	g, calls := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	got, err := g.Suggest(context.Background(), " a ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestSuggestPropagatesUpstreamErrors(t *testing.T) {
	g, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := g.Suggest(context.Background(), "Rome")
	assert.ErrorIs(t, err, utils.ErrUpstreamRejection)
}

func TestSuggestSurvivesCallerCancellation(t *testing.T) {
	g, calls := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"place_id": 9, "display_name": "Lisbon, Portugal", "lat": "38.72", "lon": "-9.14"}]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := g.Suggest(ctx, "Lisbon")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Lisbon, Portugal", got[0].Label)

	again, err := g.Suggest(context.Background(), "lisbon")
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}
