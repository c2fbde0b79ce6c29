package jitter

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialBackoffGrowsStrictly(t *testing.T) {
	base := 1 * time.Second
	max := 30 * time.Second

	prev := time.Duration(0)
	for attempt := 0; attempt < 5; attempt++ {
		// нулевой джиттер, чтобы проверить чистую экспоненту
		got := ExponentialBackoff(base, max, attempt, 0)
		require.Greater(t, got, prev, "attempt %d", attempt)
		prev = got
	}

	assert.Equal(t, 16*time.Second, prev)
}

func TestExponentialBackoffCappedAtMax(t *testing.T) {
	got := ExponentialBackoff(time.Second, 4*time.Second, 10, 0)
	assert.Equal(t, 4*time.Second, got)
}

func TestExponentialBackoffJitterWithinBounds(t *testing.T) {
	base := 2 * time.Second
	for i := 0; i < 100; i++ {
		got := ExponentialBackoff(base, time.Minute, 0, DefaultJitter)
		require.GreaterOrEqual(t, got, base)
		require.LessOrEqual(t, got, base+time.Duration(float64(base)*DefaultJitter))
	}
}

func TestUniformBetweenWithSeed(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	min := 2 * time.Second
	max := 5 * time.Second

	for i := 0; i < 1000; i++ {
		got := UniformBetweenWithSeed(min, max, rng)
		require.GreaterOrEqual(t, got, min)
		require.LessOrEqual(t, got, max)
	}
}

func TestUniformBetweenDegenerateRange(t *testing.T) {
	assert.Equal(t, time.Second, UniformBetween(time.Second, time.Second))
	assert.Equal(t, time.Second, UniformBetween(time.Second, time.Millisecond))
}
