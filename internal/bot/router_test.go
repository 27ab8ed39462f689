package bot

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	telebot "gopkg.in/telebot.v3"

	"github.com/mysolah/solah-bot/internal/bot/handlers"
)

// fakeContext overrides only the methods the router touches.
type fakeContext struct {
	telebot.Context
	text string
}

func (c *fakeContext) Text() string { return c.text }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCommandName(t *testing.T) {
	cases := map[string]string{
		"/next":                "/next",
		"/next@SolahBot":       "/next",
		"/next extra args":     "/next",
		"/next@SolahBot 12:00": "/next",
		"/today\nsecond line":  "/today",
	}

	for input, want := range cases {
		assert.Equal(t, want, commandName(input), "input %q", input)
	}
}

func TestRouter_RoutesRegisteredCommand(t *testing.T) {
	router := NewRouter(testLogger())

	var handled string
	router.RegisterCommand("/next", func(c telebot.Context) error {
		handled = c.Text()
		return nil
	})

	err := router.Route(&fakeContext{text: "/next@SolahBot"})
	assert.NoError(t, err)
	assert.Equal(t, "/next@SolahBot", handled)
}

func TestRouter_UnknownCommandFallsToDefault(t *testing.T) {
	router := NewRouter(testLogger())

	defaultCalled := false
	router.SetDefault(func(telebot.Context) error {
		defaultCalled = true
		return nil
	})

	err := router.Route(&fakeContext{text: "/bogus"})
	assert.NoError(t, err)
	assert.True(t, defaultCalled)
}

func TestRouter_NoHandlersIsNoop(t *testing.T) {
	router := NewRouter(testLogger())

	assert.NoError(t, router.Route(&fakeContext{text: "hello"}))
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	router := NewRouter(testLogger())

	var order []string
	mw := func(name string) handlers.Middleware {
		return func(next handlers.Handler) handlers.Handler {
			return func(c telebot.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	router.Use(mw("outer"))
	router.Use(mw("inner"))
	router.RegisterCommand("/next", func(telebot.Context) error {
		order = append(order, "handler")
		return nil
	})

	assert.NoError(t, router.Route(&fakeContext{text: "/next"}))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRouter_WrapAppliesMiddlewares(t *testing.T) {
	router := NewRouter(testLogger())

	var order []string
	router.Use(func(next handlers.Handler) handlers.Handler {
		return func(c telebot.Context) error {
			order = append(order, "mw")
			return next(c)
		}
	})

	wrapped := router.Wrap(func(telebot.Context) error {
		order = append(order, "handler")
		return nil
	})

	assert.NoError(t, wrapped(&fakeContext{}))
	assert.Equal(t, []string{"mw", "handler"}, order)
}
