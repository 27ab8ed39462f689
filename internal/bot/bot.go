// Package bot wires the Telegram transport to the prayer-time engine.
package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/mysolah/solah-bot/internal/bot/handlers"
	"github.com/mysolah/solah-bot/internal/bot/keyboard"
	errors "github.com/mysolah/solah-bot/internal/errors"
	"github.com/mysolah/solah-bot/internal/i18n"
	"github.com/mysolah/solah-bot/internal/idempotency"
	"github.com/mysolah/solah-bot/internal/location"
	"github.com/mysolah/solah-bot/internal/middleware"
	"github.com/mysolah/solah-bot/internal/prayer"
	"github.com/mysolah/solah-bot/pkg/config"
)

// Bot wraps telebot.Bot with application dependencies required for handling updates.
type Bot struct {
	telebot            *telebot.Bot
	log                *slog.Logger
	cfg                config.Config
	session            *prayer.Session
	geocoder           handlers.Geocoder
	store              *location.Store
	translator         i18n.Translator
	rateLimitMw        *middleware.RateLimitMiddleware
	router             *Router
	keyboard           *keyboard.Builder
	errHandler         *errors.Handler
	idempotencyManager idempotency.Manager
}

// New builds a telegram bot instance configured according to the application settings.
func New(
	cfg config.Config,
	log *slog.Logger,
	session *prayer.Session,
	geocoder handlers.Geocoder,
	store *location.Store,
	translator i18n.Translator,
	idempotencyManager idempotency.Manager,
	rateLimitMw *middleware.RateLimitMiddleware,
) (*Bot, error) {
	settings := telebot.Settings{
		Token: cfg.Bot.Token,
	}

	if cfg.Bot.Mode == "webhook" {
		listen := cfg.Bot.WebhookListen
		if listen == "" {
			listen = ":5000"
		}
		settings.Poller = &telebot.Webhook{
			Listen: listen,
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: cfg.Bot.WebhookURL,
			},
		}
	} else {
		settings.Poller = &telebot.LongPoller{
			Timeout: cfg.Bot.Timeout,
		}
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	kb := keyboard.NewBuilder(log)
	router := NewRouter(log)
	errHandler := errors.NewHandler(log, cfg.Sentry.Enabled)

	b := &Bot{
		telebot:            tb,
		log:                log,
		cfg:                cfg,
		session:            session,
		geocoder:           geocoder,
		store:              store,
		translator:         translator,
		rateLimitMw:        rateLimitMw,
		router:             router,
		keyboard:           kb,
		errHandler:         errHandler,
		idempotencyManager: idempotencyManager,
	}

	b.setupRouter()

	if b.rateLimitMw != nil {
		b.telebot.Use(b.rateLimitMw.Handle)
	}

	b.registerTelebotHandlers()

	return b, nil
}

// Start runs the telegram bot event loop.
func (b *Bot) Start() {
	if b.telebot != nil {
		b.telebot.Start()
	}
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	if b.log != nil {
		b.log.Info("stopping telegram bot...")
	}

	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance for integrations such as health checks.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}

func (b *Bot) setupRouter() {
	b.router.Use(RecoveryMiddleware(b.log, b.errHandler))
	b.router.Use(middleware.Idempotency(b.idempotencyManager, b.log))
	b.router.Use(ErrorHandlingMiddleware(b.errHandler))
	b.router.Use(LoggingMiddleware(b.log))
	b.router.Use(middleware.Metrics)

	b.router.RegisterCommand(CommandStart, handlers.NewStartHandler(b.store, b.translator, b.keyboard, b.log))
	b.router.RegisterCommand(CommandNext, handlers.NewNextHandler(b.session, b.translator, b.log))
	b.router.RegisterCommand(CommandToday, handlers.NewTodayHandler(b.session, b.translator, b.log))
	b.router.RegisterCommand(CommandSetLocation, handlers.NewSetLocationHandler(b.translator, b.keyboard))
	b.router.RegisterCommand(CommandAbout, handlers.NewAboutHandler(b.translator))
}

func (b *Bot) registerTelebotHandlers() {
	if b.telebot == nil || b.router == nil {
		return
	}

	b.telebot.Handle(telebot.OnText, b.router.Route)
	b.telebot.Handle(telebot.OnLocation, b.router.Wrap(
		handlers.NewSharedLocationHandler(b.geocoder, b.store, b.translator, b.keyboard, b.log),
	))
}
