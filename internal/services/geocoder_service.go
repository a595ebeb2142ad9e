package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"tripplanner/internal/infra"
	"tripplanner/internal/models/response_models"
	mem "tripplanner/pkg/memcache"
	"tripplanner/pkg/utils"
)

// Coordinates is a WGS84 point. The zero value stands for "unresolved".
type Coordinates struct {
	Lat float64
	Lon float64
}

// GeocodeResult always carries a usable point; Resolved and Reason say
// whether it came from the search service.
type GeocodeResult struct {
	Point    Coordinates
	Resolved bool
	Reason   error
}

type GeocoderServiceInterface interface {
	Geocode(ctx context.Context, location string) GeocodeResult
	Suggest(ctx context.Context, query string) ([]response_models.PlaceSuggestion, error)
}

const (
	minSuggestQueryLength = 2
	suggestFetchLimit     = 8
)

type NominatimGeocoder struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	Limit     int

	cache   SuggestionCache
	group   singleflight.Group
	limiter *rate.Limiter
	logger  *zap.Logger
}

// SuggestionCache holds autocomplete results keyed by lowercased query.
type SuggestionCache = mem.BoundedStore[[]response_models.PlaceSuggestion]

func NewSuggestionCache(cfg infra.GeocoderConfig) SuggestionCache {
	return mem.NewBoundedCache[[]response_models.PlaceSuggestion](cfg.CacheCapacity, cfg.CacheTTLDuration())
}

func NewNominatimGeocoder(cfg infra.GeocoderConfig, cache SuggestionCache, logger *zap.Logger) *NominatimGeocoder {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	suggestionLimit := cfg.SuggestionLimit
	if suggestionLimit <= 0 {
		suggestionLimit = 5
	}

	return &NominatimGeocoder{
		HTTP:      &http.Client{Timeout: cfg.TimeoutDuration()},
		BaseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		UserAgent: cfg.UserAgent,
		Limit:     suggestionLimit,
		cache:     cache,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logger.Named("geocoder"),
	}
}

type nominatimPlace struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
}

// Geocode makes a single search call. Every failure degrades to 0,0.
func (g *NominatimGeocoder) Geocode(ctx context.Context, location string) GeocodeResult {
	places, err := g.search(ctx, location, 1)
	if err != nil {
		return GeocodeResult{Reason: err}
	}
	if len(places) == 0 {
		return GeocodeResult{Reason: fmt.Errorf("no match for %q", location)}
	}

	point, err := places[0].coordinates()
	if err != nil {
		return GeocodeResult{Reason: err}
	}
	return GeocodeResult{Point: point, Resolved: true}
}

func (g *NominatimGeocoder) Suggest(ctx context.Context, query string) ([]response_models.PlaceSuggestion, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minSuggestQueryLength {
		return []response_models.PlaceSuggestion{}, nil
	}

	key := strings.ToLower(query)
	if cached, ok := g.cache.Get(key); ok {
		return cached, nil
	}

	// Callers share one lookup, so it must outlive any single caller's cancellation.
	// The HTTP client timeout still bounds it.
	shareCtx := context.WithoutCancel(ctx)
	v, err, shared := g.group.Do(key, func() (interface{}, error) {
		places, err := g.search(shareCtx, query, suggestFetchLimit)
		if err != nil {
			return nil, err
		}

		suggestions := make([]response_models.PlaceSuggestion, 0, g.Limit)
		for _, p := range places {
			if len(suggestions) == g.Limit {
				break
			}
			point, err := p.coordinates()
			if err != nil {
				continue
			}
			suggestions = append(suggestions, response_models.PlaceSuggestion{
				ID:    p.PlaceID.String(),
				Label: p.DisplayName,
				Lat:   point.Lat,
				Lon:   point.Lon,
			})
		}
		g.cache.Set(key, suggestions)
		return suggestions, nil
	})
	if err != nil {
		g.logger.Warn("suggestion lookup failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	if shared {
		g.logger.Debug("suggestion lookup shared", zap.String("query", query))
	}
	return v.([]response_models.PlaceSuggestion), nil
}

func (g *NominatimGeocoder) search(ctx context.Context, query string, limit int) ([]nominatimPlace, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrTransportFailure, err)
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", g.UserAgent)

	start := time.Now()
	resp, err := g.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: nominatim: %v", utils.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: nominatim status %d", utils.ErrUpstreamRejection, resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("%w: nominatim body: %v", utils.ErrParseFailure, err)
	}

	g.logger.Debug("nominatim search",
		zap.String("query", query),
		zap.Int("results", len(places)),
		zap.Duration("took", time.Since(start)))
	return places, nil
}

func (p nominatimPlace) coordinates() (Coordinates, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: lat %q", utils.ErrParseFailure, p.Lat)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: lon %q", utils.ErrParseFailure, p.Lon)
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return Coordinates{}, fmt.Errorf("%w: non-finite point", utils.ErrParseFailure)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}
