package idempotency

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupManager(t *testing.T) Manager {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return NewManager(NewRedisStore(client, testLogger()), testLogger())
}

func TestManager_ExecutesOnce(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	calls := 0
	fn := func(context.Context) error {
		calls++
		return nil
	}

	result, err := m.Execute(ctx, "msg:1:100", time.Hour, fn)
	require.NoError(t, err)
	assert.False(t, result.FromCache)

	result, err = m.Execute(ctx, "msg:1:100", time.Hour, fn)
	require.NoError(t, err)
	assert.True(t, result.FromCache)

	assert.Equal(t, 1, calls)
}

func TestManager_DistinctKeysRunIndependently(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	calls := 0
	fn := func(context.Context) error {
		calls++
		return nil
	}

	_, err := m.Execute(ctx, "msg:1:100", time.Hour, fn)
	require.NoError(t, err)
	_, err = m.Execute(ctx, "msg:1:101", time.Hour, fn)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestManager_FailedOperationCanRetry(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	opErr := errors.New("send failed")
	_, err := m.Execute(ctx, "msg:1:100", time.Hour, func(context.Context) error {
		return opErr
	})
	assert.ErrorIs(t, err, opErr)

	// the failed run must not leave a completed record behind
	result, err := m.Execute(ctx, "msg:1:100", time.Hour, func(context.Context) error {
		return nil
	})
	require.NoError(t, err)
	assert.False(t, result.FromCache)
}

func TestManager_NilOperationRejected(t *testing.T) {
	m := setupManager(t)

	_, err := m.Execute(context.Background(), "msg:1:100", time.Hour, nil)
	assert.Error(t, err)
}

func TestGenerateKey_Deterministic(t *testing.T) {
	a := GenerateKey("msg", int64(1), 100)
	b := GenerateKey("msg", int64(1), 100)
	c := GenerateKey("msg", int64(1), 101)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
