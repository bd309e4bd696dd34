// Package ratelimit provides rate limiting for login attempts.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config holds login rate limit configuration.
type Config struct {
	// Attempts per minute allowed per username and per client IP.
	PerIdentifier rate.Limit
	PerIP         rate.Limit
	Burst         int

	// Idle entries older than this are dropped by cleanup.
	EntryTTL time.Duration
}

// DefaultConfig returns production-ready defaults: 5 attempts/minute
// per username, 20 per IP.
func DefaultConfig() *Config {
	return &Config{
		PerIdentifier: rate.Every(12 * time.Second),
		PerIP:         rate.Every(3 * time.Second),
		Burst:         5,
		EntryTTL:      time.Hour,
	}
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter throttles login attempts keyed by identifier and by
// client IP. Both buckets must allow an attempt for it to proceed.
type LoginLimiter struct {
	config *Config

	mu          sync.Mutex
	identifiers map[string]*entry
	ips         map[string]*entry
	lastCleanup time.Time
}

func NewLoginLimiter(config *Config) *LoginLimiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &LoginLimiter{
		config:      config,
		identifiers: make(map[string]*entry),
		ips:         make(map[string]*entry),
		lastCleanup: time.Now(),
	}
}

// Allow reports whether a login attempt for identifier from the
// request's client IP may proceed.
func (l *LoginLimiter) Allow(r *http.Request, identifier string) bool {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	ip := clientIP(r)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.cleanupLocked()

	allowed := l.takeLocked(l.identifiers, identifier, l.config.PerIdentifier)
	// Charge the IP bucket regardless so rotating usernames does not
	// reset the budget.
	if !l.takeLocked(l.ips, ip, l.config.PerIP) {
		allowed = false
	}
	return allowed
}

func (l *LoginLimiter) takeLocked(bucket map[string]*entry, key string, limit rate.Limit) bool {
	if key == "" {
		return true
	}
	e, ok := bucket[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(limit, l.config.Burst)}
		bucket[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

func (l *LoginLimiter) cleanupLocked() {
	now := time.Now()
	if now.Sub(l.lastCleanup) < l.config.EntryTTL {
		return
	}
	l.lastCleanup = now
	for key, e := range l.identifiers {
		if now.Sub(e.lastSeen) > l.config.EntryTTL {
			delete(l.identifiers, key)
		}
	}
	for key, e := range l.ips {
		if now.Sub(e.lastSeen) > l.config.EntryTTL {
			delete(l.ips, key)
		}
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
