package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dispatch/internal/entities"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "geocoder"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 1 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// Geocoder - клиент nominatim-совместимого геокодера. Адрес
// превращается в точку ровно один раз при оформлении заказа.
type Geocoder struct {
	client  httpClient
	baseURL string
	retrier retrier
}

func New(client httpClient, baseURL string) *Geocoder {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryableError,
	}

	return &Geocoder{
		client:  client,
		baseURL: baseURL,
		retrier: backoff_adapter.New(retryConfig),
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("geocoder responded %d", e.code)
}

func (g *Geocoder) Geocode(ctx context.Context, address string) (entities.GeoPoint, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	var results []searchResult

	err := g.executeWithMetrics(ctx, "Search", func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+query.Encode(), nil)
		if err != nil {
			return err
		}

		resp, err := g.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return &statusError{code: resp.StatusCode}
		}
		return json.NewDecoder(resp.Body).Decode(&results)
	})
	if err != nil {
		return entities.GeoPoint{}, fmt.Errorf("gateway geocode, search %q: %w", address, err)
	}

	if len(results) == 0 {
		return entities.GeoPoint{}, fmt.Errorf("%w: %q", ErrAddressNotFound, address)
	}

	latitude, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return entities.GeoPoint{}, fmt.Errorf("gateway geocode, parse lat: %w", err)
	}
	longitude, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return entities.GeoPoint{}, fmt.Errorf("gateway geocode, parse lon: %w", err)
	}

	return entities.GeoPoint{Latitude: latitude, Longitude: longitude}, nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= http.StatusInternalServerError
	}
	// сетевые ошибки ретраим всегда
	return true
}

func (g *Geocoder) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	status := getHTTPStatus(err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, status).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, status).Inc()
	}

	return err
}

func getHTTPStatus(err error) string {
	if err == nil {
		return "200"
	}

	var se *statusError
	if errors.As(err, &se) {
		return strconv.Itoa(se.code)
	}
	return "unknown"
}
