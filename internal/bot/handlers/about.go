package handlers

import (
	telebot "gopkg.in/telebot.v3"

	"github.com/mysolah/solah-bot/internal/i18n"
)

// NewAboutHandler returns the /about command handler.
func NewAboutHandler(t i18n.Translator) Handler {
	return func(c telebot.Context) error {
		if c == nil {
			return nil
		}
		return c.Send(t.T("about.text"))
	}
}
