package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/mysolah/solah-bot/internal/i18n"
	"github.com/mysolah/solah-bot/internal/prayer"
)

// NewTodayHandler returns the /today command handler listing the full
// five-prayer schedule for the user's current day.
func NewTodayHandler(session *prayer.Session, t i18n.Translator, log *slog.Logger) Handler {
	return func(c telebot.Context) error {
		if c == nil || c.Sender() == nil {
			return nil
		}

		schedule, err := session.Today(context.Background(), c.Sender().ID)
		if err != nil {
			if log != nil {
				log.Error("today handler failed", slog.Int64("user_id", c.Sender().ID), slog.Any("error", err))
			}
			return err
		}

		var b strings.Builder
		fmt.Fprintf(&b, t.T("today.header"), schedule.Location.City, schedule.Timings.Date)
		for _, name := range prayer.Order {
			fmt.Fprintf(&b, "\n%s: %s", name, schedule.Timings.Times[name])
		}

		return c.Send(b.String())
	}
}
