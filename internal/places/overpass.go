package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"waypoint/internal/model"
)

// DefaultEndpoint is the public Overpass interpreter.
const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

// DefaultRadius is the search radius in meters used when none is given.
const DefaultRadius = 15000

// Finder queries an Overpass endpoint for points of interest.
type Finder struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
	sample     func(n, k int) []int
}

// Option configures a Finder.
type Option func(*Finder)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Finder) { f.httpClient = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Finder) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithSampler replaces the random index sampler used by CapForDisplay.
func WithSampler(s func(n, k int) []int) Option {
	return func(f *Finder) { f.sample = s }
}

// NewFinder creates a Finder. An empty endpoint selects DefaultEndpoint.
// A zero timeout leaves the request bounded only by its context.
func NewFinder(endpoint string, timeout time.Duration, opts ...Option) *Finder {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	f := &Finder{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
		sample:     randomSample,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FindNearbyPlaces fetches named places around a coordinate and caps the
// result for display.
func (f *Finder) FindNearbyPlaces(ctx context.Context, lat, lon, radiusMeters float64) ([]model.PlaceRecord, error) {
	elements, err := f.Fetch(ctx, lat, lon, radiusMeters)
	if err != nil {
		return nil, err
	}
	capped := CapForDisplay(elements, f.sample)
	records := ToRecords(capped)

	f.logger.Debug("nearby places resolved",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Float64("radius_m", radiusMeters),
		zap.Int("named", len(elements)),
		zap.Int("returned", len(records)),
	)
	return records, nil
}

// Fetch runs the Overpass query and returns every named element with a
// coordinate, deduplicated by type and id, in upstream order.
func (f *Finder) Fetch(ctx context.Context, lat, lon, radiusMeters float64) ([]Element, error) {
	query := BuildQuery(lat, lon, radiusMeters)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Warn("overpass request failed", zap.String("endpoint", f.endpoint), zap.Error(err))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		f.logger.Warn("overpass returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var result overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("JSON decode error: %w", err)}
	}
	if result.Elements == nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("response has no elements list")}
	}

	f.logger.Debug("overpass query complete",
		zap.Int("elements", len(result.Elements)),
		zap.Duration("took", time.Since(start)),
	)

	return normalize(result.Elements), nil
}

// API response types

type overpassResponse struct {
	Elements []rawElement `json:"elements"`
}

type rawElement struct {
	ID     int64             `json:"id"`
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *rawCenter        `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type rawCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
