// Package keyboard builds reply keyboards for the bot.
package keyboard

import (
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/mysolah/solah-bot/internal/i18n"
)

// Builder creates reply keyboards.
type Builder struct {
	log *slog.Logger
}

// NewBuilder returns a new Builder instance.
func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{log: log}
}

// MainMenu builds the persistent command keyboard.
func (b *Builder) MainMenu() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: false,
	}

	nextBtn := markup.Text("/next")
	todayBtn := markup.Text("/today")
	setLocationBtn := markup.Text("/setlocation")
	aboutBtn := markup.Text("/about")

	markup.Reply(
		markup.Row(nextBtn, todayBtn),
		markup.Row(setLocationBtn, aboutBtn),
	)

	return markup
}

// LocationRequest builds a one-time keyboard with a share-location button.
func (b *Builder) LocationRequest(t i18n.Translator) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}

	label := "Share location 📍"
	if t != nil {
		label = t.T("setlocation.button")
	}

	markup.Reply(markup.Row(markup.Location(label)))

	return markup
}
