package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"transitplanner.dev/internal/logging"
	"transitplanner.dev/internal/utils"
)

const defaultTimeout = 10 * time.Second

// response is the provider contract the client expects: a JSON document with a
// status field, and on success a results[0].geometry.location.{lat,lng}
// pair, the Google Maps Geocoding API's response shape.
type response struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Client is the external geocoding oracle. Downloading, zipping, or
// resolving addresses itself is out of scope; this only talks to a
// provider over HTTPS and normalizes its response.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	cache      *cache
	cacheHits  Counter
	cacheMiss  Counter
	logger     *slog.Logger
}

// Counter is the sliver of a metrics counter the client needs to report
// cache effectiveness; a prometheus.Counter satisfies it directly.
type Counter interface {
	Inc()
}

// Config configures the geocoder client. BaseURL and APIKey are supplied by
// the process environment; the concrete provider URL is outside this
// specification's scope, so both are left to the caller's configuration.
type Config struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration

	// Optional cache-effectiveness counters; nil disables reporting.
	CacheHits   Counter
	CacheMisses Counter

	Logger *slog.Logger
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "transitplanner/1.0"
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		userAgent:  userAgent,
		cache:      newCache(),
		cacheHits:  cfg.CacheHits,
		cacheMiss:  cfg.CacheMisses,
		logger:     cfg.Logger,
	}
}

// Geocode resolves a free-text place name to coordinates, consulting the
// process-local cache first (keyed by lowercased/trimmed place text).
func (c *Client) Geocode(ctx context.Context, place string) (Result, error) {
	if cached, ok := c.cache.get(place); ok {
		if c.cacheHits != nil {
			c.cacheHits.Inc()
		}
		return cached, nil
	}
	if c.cacheMiss != nil {
		c.cacheMiss.Inc()
	}

	params := url.Values{}
	params.Set("address", place)
	params.Set("key", c.apiKey)
	fullURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return Result{}, newError(place, NetworkError, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, newError(place, NetworkError, err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.logger, "geocode_response_body")

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return Result{}, newError(place, AuthDenied, fmt.Errorf("http status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, newError(place, NetworkError, fmt.Errorf("http status %d", resp.StatusCode))
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, newError(place, ParseError, err)
	}

	switch body.Status {
	case "OK":
		// fall through
	case "REQUEST_DENIED", "OVER_QUERY_LIMIT":
		return Result{}, newError(place, AuthDenied, fmt.Errorf("provider status %s", body.Status))
	case "ZERO_RESULTS":
		return Result{}, newError(place, NoResults, nil)
	default:
		if len(body.Results) == 0 {
			return Result{}, newError(place, NoResults, nil)
		}
	}

	if len(body.Results) == 0 {
		return Result{}, newError(place, NoResults, nil)
	}

	top := body.Results[0]
	if err := utils.ValidateLatitude(top.Geometry.Location.Lat); err != nil {
		return Result{}, newError(place, ParseError, err)
	}
	if err := utils.ValidateLongitude(top.Geometry.Location.Lng); err != nil {
		return Result{}, newError(place, ParseError, err)
	}

	result := Result{
		Lat:              top.Geometry.Location.Lat,
		Lon:              top.Geometry.Location.Lng,
		FormattedAddress: top.FormattedAddress,
	}

	c.cache.put(place, result)
	return result, nil
}
