package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimiter(t *testing.T) {
	rl := NewLoginRateLimiter()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "attempt %d", i)
		rl.RecordFailure("10.0.0.1")
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// Other addresses are unaffected.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestLoginRateLimiterWindowReset(t *testing.T) {
	rl := NewLoginRateLimiter()

	for i := 0; i < 5; i++ {
		rl.RecordFailure("10.0.0.1")
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// Age the window out instead of sleeping through it.
	rl.mu.Lock()
	rl.attempts["10.0.0.1"].firstAt = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	assert.True(t, rl.Allow("10.0.0.1"))
}
