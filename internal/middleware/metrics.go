package middleware

import (
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/mysolah/solah-bot/internal/bot/handlers"
	"github.com/mysolah/solah-bot/pkg/metrics"
)

// Metrics measures execution time and status for bot handlers, reporting them to Prometheus.
func Metrics(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		start := time.Now()
		err := next(c)

		command := extractCommandName(c)
		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordCommand(command, status, time.Since(start))

		return err
	}
}

// extractCommandName keeps the label space bounded: commands are reported
// by their first token, everything else collapses into fixed buckets.
func extractCommandName(c telebot.Context) string {
	if c == nil {
		return "unknown"
	}

	if text := c.Text(); strings.HasPrefix(text, "/") {
		name := text
		if idx := strings.IndexAny(name, " \n"); idx >= 0 {
			name = name[:idx]
		}
		if idx := strings.Index(name, "@"); idx >= 0 {
			name = name[:idx]
		}
		return name
	}

	if msg := c.Message(); msg != nil && msg.Location != nil {
		return "location_share"
	}

	return "message"
}
