package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a simple refilling bucket guarding one (user, action) pair.
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

type actionConfig struct {
	maxTokens  int
	refillRate int
	refillTime time.Duration
}

// Per-action budgets. Anything not listed falls back to a permissive default.
var actionConfigs = map[string]actionConfig{
	"send_message":  {maxTokens: 20, refillRate: 10, refillTime: time.Minute},
	"create_offer":  {maxTokens: 5, refillRate: 5, refillTime: time.Minute},
	"start_chat":    {maxTokens: 10, refillRate: 5, refillTime: time.Minute},
	"ai_request":    {maxTokens: 10, refillRate: 5, refillTime: time.Minute},
}

var defaultConfig = actionConfig{maxTokens: 60, refillRate: 60, refillTime: time.Minute}

// RateLimiter manages buckets keyed by user and action.
type RateLimiter struct {
	buckets  map[string]*TokenBucket
	mutex    sync.RWMutex
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*TokenBucket),
		done:    make(chan struct{}),
	}
	rl.startCleanupRoutine()
	return rl
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func newTokenBucket(cfg actionConfig) *TokenBucket {
	return &TokenBucket{
		tokens:     cfg.maxTokens,
		maxTokens:  cfg.maxTokens,
		refillRate: cfg.refillRate,
		refillTime: cfg.refillTime,
		lastRefill: time.Now(),
	}
}

// Allow checks if an action is allowed and consumes a token if so. The
// returned duration is how long to wait when denied.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	key := userID + ":" + action

	rl.mutex.Lock()
	bucket, ok := rl.buckets[key]
	if !ok {
		cfg, found := actionConfigs[action]
		if !found {
			cfg = defaultConfig
		}
		bucket = newTokenBucket(cfg)
		rl.buckets[key] = bucket
	}
	rl.mutex.Unlock()

	return bucket.take()
}

func (tb *TokenBucket) take() (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int(elapsed/tb.refillTime) * tb.refillRate
	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	nextRefill := tb.lastRefill.Add(tb.refillTime)
	return false, nextRefill.Sub(now)
}

// startCleanupRoutine drops buckets that have been idle long enough to be
// fully refilled anyway. The goroutine runs until Stop is called.
func (rl *RateLimiter) startCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-rl.done:
				return
			case <-ticker.C:
			}
			cutoff := time.Now().Add(-30 * time.Minute)
			rl.mutex.Lock()
			for key, bucket := range rl.buckets {
				bucket.mutex.Lock()
				idle := bucket.lastRefill.Before(cutoff)
				bucket.mutex.Unlock()
				if idle {
					delete(rl.buckets, key)
				}
			}
			rl.mutex.Unlock()
		}
	}()
}
