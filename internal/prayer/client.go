package prayer

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
	"github.com/mysolah/solah-bot/pkg/config"
	"github.com/mysolah/solah-bot/pkg/metrics"
)

const (
	serviceName = "prayer_times"

	// DateLayout is the DD-MM-YYYY format the upstream API expects.
	DateLayout = "02-01-2006"
)

// Client fetches daily prayer timings from the Al Adhan API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	method     int
	log        *slog.Logger
}

// NewClient builds a Client from configuration. A per-request timeout is
// always enforced so a stalled upstream cannot block a command.
func NewClient(cfg config.PrayerAPIConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		method:     cfg.Method,
		log:        log,
	}
}

type timingsResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Timings map[string]string `json:"timings"`
		Date    struct {
			Readable string `json:"readable"`
		} `json:"date"`
		Meta struct {
			Timezone string `json:"timezone"`
		} `json:"meta"`
	} `json:"data"`
}

// FetchTimings returns one day of prayer timings for the city and country.
// An empty date means the current process-local calendar date formatted as
// DD-MM-YYYY. Validation is two-layered: the HTTP status must be 200 and
// the payload must carry code 200.
func (c *Client) FetchTimings(ctx context.Context, city, country, date string) (*Timings, error) {
	if date == "" {
		date = time.Now().Format(DateLayout)
	}

	params := url.Values{}
	params.Set("city", city)
	params.Set("country", country)
	params.Set("method", strconv.Itoa(c.method))
	params.Set("date", date)

	endpoint := fmt.Sprintf("%s/timingsByCity?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewTransportError(serviceName, "API request failed: "+err.Error(), err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(serviceName, "transport_error", time.Since(start))
		c.log.Error("prayer times request failed", slog.String("city", city), slog.String("country", country), slog.Any("error", err))
		return nil, apperrors.NewTransportError(serviceName, "API request failed: "+err.Error(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordUpstreamRequest(serviceName, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewTransportError(serviceName, fmt.Sprintf("API request failed: %d", resp.StatusCode), nil)
	}

	var payload timingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewTransportError(serviceName, "API request failed: "+err.Error(), err)
	}

	if payload.Code != http.StatusOK {
		return nil, apperrors.NewUpstreamDataError(serviceName, "API returned invalid data.")
	}

	times := make(map[Name]string, len(Order))
	for _, name := range Order {
		raw, ok := payload.Data.Timings[string(name)]
		if !ok {
			return nil, apperrors.NewUpstreamDataError(serviceName, "API returned invalid data.")
		}
		times[name] = normalizeTime(raw)
	}

	return &Timings{
		Date:     payload.Data.Date.Readable,
		Times:    times,
		Location: fmt.Sprintf("%s, %s", city, country),
		Timezone: payload.Data.Meta.Timezone,
	}, nil
}

// normalizeTime strips a trailing timezone annotation such as "05:12 (MSK)".
func normalizeTime(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return raw
	}
	return fields[0]
}
