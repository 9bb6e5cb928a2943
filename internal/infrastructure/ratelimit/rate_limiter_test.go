package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowConsumesTheActionBucket(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := rl.Allow("user-1", "create_offer")
		assert.True(t, allowed)
	}

	allowed, wait := rl.Allow("user-1", "create_offer")
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))

	// Other users and actions are unaffected.
	allowed, _ = rl.Allow("user-2", "create_offer")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("user-1", "start_chat")
	assert.True(t, allowed)
}

func TestStopIsIdempotentAndLeavesAllowUsable(t *testing.T) {
	rl := NewRateLimiter()

	rl.Stop()
	rl.Stop()

	allowed, _ := rl.Allow("user-1", "send_message")
	assert.True(t, allowed)
}
