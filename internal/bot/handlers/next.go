package handlers

import (
	"context"
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/mysolah/solah-bot/internal/i18n"
	"github.com/mysolah/solah-bot/internal/prayer"
)

// NewNextHandler returns the /next command handler.
func NewNextHandler(session *prayer.Session, t i18n.Translator, log *slog.Logger) Handler {
	return func(c telebot.Context) error {
		if c == nil || c.Sender() == nil {
			return nil
		}

		upcoming, err := session.Next(context.Background(), c.Sender().ID)
		if err != nil {
			if log != nil {
				log.Error("next handler failed", slog.Int64("user_id", c.Sender().ID), slog.Any("error", err))
			}
			return err
		}

		dayLabel := t.T("next.today")
		if upcoming.Next.Tomorrow {
			dayLabel = t.T("next.tomorrow")
		}

		hours := int(upcoming.Next.Until.Hours())
		minutes := int(upcoming.Next.Until.Minutes()) % 60

		message := fmt.Sprintf(t.T("next.summary"),
			upcoming.Next.Name,
			upcoming.Next.At.Format("15:04"),
			dayLabel,
			hours,
			minutes,
			fmt.Sprintf("%s, %s", upcoming.Location.City, upcoming.Location.Country),
		)

		return c.Send(message)
	}
}
