package handlers

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/mysolah/solah-bot/internal/bot/keyboard"
	"github.com/mysolah/solah-bot/internal/i18n"
	"github.com/mysolah/solah-bot/internal/location"
)

// NewStartHandler returns the /start command handler: a welcome message plus
// the user's current location status.
func NewStartHandler(store *location.Store, t i18n.Translator, kb *keyboard.Builder, log *slog.Logger) Handler {
	return func(c telebot.Context) error {
		if c == nil {
			return nil
		}

		sender := c.Sender()
		if sender == nil {
			if log != nil {
				log.Warn("start handler invoked without sender")
			}
			return nil
		}

		loc := store.Get(sender.ID)

		statusKey := "start.location_unknown"
		if store.Has(sender.ID) {
			statusKey = "start.location_known"
		}

		message := t.T("start.welcome") + "\n\n" + fmt.Sprintf(t.T(statusKey), loc.City, loc.Country)

		if kb != nil {
			return c.Send(message, kb.MainMenu())
		}
		return c.Send(message)
	}
}
