package services

import (
	"math"
	"sync"
	"time"
)

const ThrottleCooldownCapSeconds = 30

// throttleForgetAfter is how long past its cooldown an entry is kept before
// its fail count is dropped.
const throttleForgetAfter = 15 * time.Minute

type throttleEntry struct {
	failCount     int
	lastFailedAt  time.Time
	cooldownUntil time.Time
}

// LoginThrottle tracks failed logins per key in memory.
type LoginThrottle struct {
	mu      sync.Mutex
	entries map[string]*throttleEntry
	now     func() time.Time
}

func NewLoginThrottle() *LoginThrottle {
	return &LoginThrottle{entries: make(map[string]*throttleEntry), now: time.Now}
}

// WaitSeconds returns how many seconds key must wait before trying again (0 if no cooldown).
func (t *LoginThrottle) WaitSeconds(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[key]
	if !ok {
		return 0
	}
	now := t.now()
	if now.Before(e.cooldownUntil) {
		return int(math.Ceil(e.cooldownUntil.Sub(now).Seconds()))
	}
	return 0
}

// RecordFailed increments fail_count and sets cooldown to now + min(30, 2^fail_count) seconds.
func (t *LoginThrottle) RecordFailed(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.pruneLocked(now)
	e, ok := t.entries[key]
	if !ok {
		e = &throttleEntry{}
		t.entries[key] = e
	}
	e.failCount++
	e.lastFailedAt = now
	e.cooldownUntil = e.lastFailedAt.Add(time.Duration(CooldownSecondsForFailCount(e.failCount)) * time.Second)
}

// pruneLocked drops entries idle for longer than throttleForgetAfter.
func (t *LoginThrottle) pruneLocked(now time.Time) {
	for key, e := range t.entries {
		if now.Sub(e.cooldownUntil) > throttleForgetAfter {
			delete(t.entries, key)
		}
	}
}

// RecordSuccess resets the fail count and cooldown for key.
func (t *LoginThrottle) RecordSuccess(key string) {
	t.mu.Lock()
	delete(t.entries, key)
	t.mu.Unlock()
}

// CooldownSecondsForFailCount returns min(30, 2^failCount).
func CooldownSecondsForFailCount(failCount int) int {
	s := int(math.Pow(2, float64(failCount)))
	if s > ThrottleCooldownCapSeconds {
		return ThrottleCooldownCapSeconds
	}
	return s
}
