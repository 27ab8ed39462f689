// Package geocode resolves coordinates into a city/country pair via the
// Nominatim reverse-geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/mysolah/solah-bot/internal/errors"
	"github.com/mysolah/solah-bot/internal/location"
	"github.com/mysolah/solah-bot/pkg/config"
	"github.com/mysolah/solah-bot/pkg/metrics"
)

const (
	serviceName = "geocoding"

	unknownCity    = "Unknown City"
	unknownCountry = "Unknown Country"

	// Nominatim's usage policy requires an identifying User-Agent.
	userAgent = "solah-bot/1.0"
)

// Client performs reverse geocoding requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	language   string
	log        *slog.Logger
}

// NewClient builds a Client from configuration with an enforced timeout.
func NewClient(cfg config.GeocodingConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	language := cfg.Language
	if language == "" {
		language = "en"
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		language:   language,
		log:        log,
	}
}

type reverseResponse struct {
	Address struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// ReverseGeocode converts latitude and longitude into a Location. The city
// falls back through city, town, and village before the unknown
// placeholder; the country comes from the country-code field. Coordinates
// are passed through unvalidated, range checking is the remote service's
// job.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (location.Location, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("accept-language", c.language)

	endpoint := fmt.Sprintf("%s/reverse?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return location.Location{}, apperrors.NewTransportError(serviceName, "Could not resolve your location.", err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(serviceName, "transport_error", time.Since(start))
		c.log.Error("reverse geocoding request failed", slog.Float64("lat", lat), slog.Float64("lon", lon), slog.Any("error", err))
		return location.Location{}, apperrors.NewTransportError(serviceName, "Could not resolve your location.", err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordUpstreamRequest(serviceName, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return location.Location{}, apperrors.NewTransportError(serviceName,
			fmt.Sprintf("Could not resolve your location (status %d).", resp.StatusCode), nil)
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return location.Location{}, apperrors.NewTransportError(serviceName, "Could not resolve your location.", err)
	}

	return location.Location{
		City:    pickCity(payload),
		Country: pickCountry(payload),
	}, nil
}

func pickCity(payload reverseResponse) string {
	addr := payload.Address
	for _, candidate := range []string{addr.City, addr.Town, addr.Village} {
		if candidate != "" {
			return candidate
		}
	}
	return unknownCity
}

func pickCountry(payload reverseResponse) string {
	if code := payload.Address.CountryCode; code != "" {
		return strings.ToUpper(code)
	}
	return unknownCountry
}
