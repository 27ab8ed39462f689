package handlers

import (
	"context"
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/mysolah/solah-bot/internal/bot/keyboard"
	"github.com/mysolah/solah-bot/internal/i18n"
	"github.com/mysolah/solah-bot/internal/location"
)

// Geocoder resolves coordinates into a city/country pair.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (location.Location, error)
}

// NewSetLocationHandler returns the /setlocation command handler, which
// prompts the user with a share-location keyboard.
func NewSetLocationHandler(t i18n.Translator, kb *keyboard.Builder) Handler {
	return func(c telebot.Context) error {
		if c == nil {
			return nil
		}

		if kb != nil {
			return c.Send(t.T("setlocation.prompt"), kb.LocationRequest(t))
		}
		return c.Send(t.T("setlocation.prompt"))
	}
}

// NewSharedLocationHandler handles inbound location-share messages: the
// coordinates are reverse-geocoded and the result is stored for the user.
func NewSharedLocationHandler(geocoder Geocoder, store *location.Store, t i18n.Translator, kb *keyboard.Builder, log *slog.Logger) Handler {
	return func(c telebot.Context) error {
		if c == nil || c.Sender() == nil {
			return nil
		}

		msg := c.Message()
		if msg == nil || msg.Location == nil {
			return nil
		}

		lat := float64(msg.Location.Lat)
		lon := float64(msg.Location.Lng)

		loc, err := geocoder.ReverseGeocode(context.Background(), lat, lon)
		if err != nil {
			if log != nil {
				log.Error("reverse geocoding failed",
					slog.Int64("user_id", c.Sender().ID),
					slog.Float64("lat", lat),
					slog.Float64("lon", lon),
					slog.Any("error", err),
				)
			}
			return err
		}

		store.Save(c.Sender().ID, loc)

		message := fmt.Sprintf(t.T("location.saved"), loc.City, loc.Country)
		if kb != nil {
			return c.Send(message, kb.MainMenu())
		}
		return c.Send(message)
	}
}
