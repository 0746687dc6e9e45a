package redisserver

import (
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := newRateLimiter(3)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("allow() #%d = false within burst", i)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("allow() = true after burst exhausted")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("limit for one IP affected another")
	}

	now = now.Add(time.Second)
	if !rl.allow("10.0.0.1") {
		t.Error("allow() = false after refill")
	}
}

func TestRateLimiter_Prune(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := newRateLimiter(10)
	rl.now = func() time.Time { return now }

	rl.allow("old")
	now = now.Add(10 * time.Minute)
	rl.allow("new")

	if n := rl.prune(clientIdleTTL); n != 1 {
		t.Errorf("prune() = %d, want 1", n)
	}
	if rl.clients.Has("old") || !rl.clients.Has("new") {
		t.Error("prune() removed the wrong client")
	}
}
