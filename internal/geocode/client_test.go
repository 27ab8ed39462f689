package geocode

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mysolah/solah-bot/internal/errors"
	"github.com/mysolah/solah-bot/pkg/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(baseURL string) *Client {
	return NewClient(config.GeocodingConfig{
		BaseURL:  baseURL,
		Language: "en",
		Timeout:  2 * time.Second,
	}, testLogger())
}

func addressBody(city, town, village, countryCode string) string {
	return fmt.Sprintf(`{"address": {"city": %q, "town": %q, "village": %q, "country_code": %q}}`,
		city, town, village, countryCode)
}

func TestReverseGeocode_City(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "55.75", r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(addressBody("Moscow", "", "", "ru")))
	}))
	t.Cleanup(srv.Close)

	loc, err := newTestClient(srv.URL).ReverseGeocode(context.Background(), 55.75, 37.62)
	require.NoError(t, err)

	assert.Equal(t, "Moscow", loc.City)
	assert.Equal(t, "RU", loc.Country)
}

func TestReverseGeocode_FallbackChain(t *testing.T) {
	cases := []struct {
		name string
		body string
		city string
	}{
		{"town when city missing", addressBody("", "Pushkino", "", "ru"), "Pushkino"},
		{"village when city and town missing", addressBody("", "", "Vyra", "ru"), "Vyra"},
		{"placeholder when all missing", addressBody("", "", "", "ru"), "Unknown City"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(srv.Close)

			loc, err := newTestClient(srv.URL).ReverseGeocode(context.Background(), 1, 1)
			require.NoError(t, err)
			assert.Equal(t, tc.city, loc.City)
		})
	}
}

func TestReverseGeocode_UnknownCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(addressBody("Moscow", "", "", "")))
	}))
	t.Cleanup(srv.Close)

	loc, err := newTestClient(srv.URL).ReverseGeocode(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, "Unknown Country", loc.Country)
}

func TestReverseGeocode_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(srv.URL).ReverseGeocode(context.Background(), 1, 1)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "E310", appErr.Code)
	assert.True(t, appErr.Retryable)
}

func TestReverseGeocode_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>rate limited</html>`))
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(srv.URL).ReverseGeocode(context.Background(), 1, 1)
	assert.Error(t, err)
}
