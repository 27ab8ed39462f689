package health

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mysolah/solah-bot/pkg/logger"
)

type statusResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// NewHandler builds the HTTP handler: "/" and "/health" answer the liveness
// probe with a JSON status payload, "/metrics" serves Prometheus, and every
// other path is a 404.
func NewHandler(checker *Checker, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	probe := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}

		resp := statusResponse{Status: "ok"}
		if checker != nil {
			resp.Components = checker.Check(r.Context())
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil && log != nil {
			log.Error("failed to write health response", slog.Any("error", err))
		}
	}

	mux.HandleFunc("/", probe)
	mux.HandleFunc("/health", probe)
	mux.Handle("/metrics", promhttp.Handler())

	return logger.Middleware(mux)
}
