package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(configs []EndpointConfig) *Limiter {
	return NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: configs,
	})
}

func TestAllowWithinBurst(t *testing.T) {
	l := newTestLimiter([]EndpointConfig{
		{Path: "/ai/", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},
	})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/ai/generate", "POST")
		assert.True(t, allowed, "request %d", i)
	}
	allowed, info := l.Allow("1.2.3.4", "/ai/generate", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 30, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestClientsAreIndependent(t *testing.T) {
	l := newTestLimiter([]EndpointConfig{
		{Path: "/ai/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
	})
	defer l.Stop()

	allowed, _ := l.Allow("1.1.1.1", "/ai/improve", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.1.1.1", "/ai/improve", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("2.2.2.2", "/ai/improve", "POST")
	assert.True(t, allowed, "a throttled client must not affect others")
}

func TestHealthIsUnlimited(t *testing.T) {
	l := newTestLimiter(DefaultEndpointConfigs())
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestDisabledLimiter(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/ai/generate", "POST")
		require.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/resumes", Method: "POST", Limit: 100},
		{Path: "/resumes/", Method: "PUT", Limit: 50},
		{Path: "/ai/", Method: "POST", Limit: 30},
	}

	exact := MatchEndpoint("/resumes", "POST", configs)
	require.NotNil(t, exact)
	assert.Equal(t, 100, exact.Limit)

	prefix := MatchEndpoint("/resumes/abc-123", "PUT", configs)
	require.NotNil(t, prefix)
	assert.Equal(t, 50, prefix.Limit)

	ai := MatchEndpoint("/ai/extract/resume", "POST", configs)
	require.NotNil(t, ai)
	assert.Equal(t, 30, ai.Limit)

	assert.Nil(t, MatchEndpoint("/resumes/abc-123", "PATCH", configs))

	health := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, health)
	assert.Equal(t, 0, health.Limit)
}

func TestBucketRefills(t *testing.T) {
	b := newTokenBucket(1, 100) // fast refill for the test
	require.True(t, b.allow())
	require.False(t, b.allow())
	time.Sleep(20 * time.Millisecond)
	assert.True(t, b.allow())
}
