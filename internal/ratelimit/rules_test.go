package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mysolah/solah-bot/pkg/config"
)

func TestRules_PerUserLimit(t *testing.T) {
	rules := NewRules(config.RateLimitConfig{
		PerUser: config.RateLimitRule{Limit: 20, Window: "1m"},
	})

	limit, window, err := rules.PerUserLimit()
	require.NoError(t, err)
	assert.Equal(t, 20, limit)
	assert.Equal(t, time.Minute, window)
}

func TestRules_PerUserLimit_Invalid(t *testing.T) {
	_, _, err := NewRules(config.RateLimitConfig{
		PerUser: config.RateLimitRule{Limit: 20, Window: "soon"},
	}).PerUserLimit()
	assert.Error(t, err)

	_, _, err = NewRules(config.RateLimitConfig{
		PerUser: config.RateLimitRule{Limit: 20},
	}).PerUserLimit()
	assert.Error(t, err)
}

func TestRules_IsWhitelisted(t *testing.T) {
	rules := NewRules(config.RateLimitConfig{Whitelist: []int64{7, 42}})

	assert.True(t, rules.IsWhitelisted(42))
	assert.False(t, rules.IsWhitelisted(43))
}
