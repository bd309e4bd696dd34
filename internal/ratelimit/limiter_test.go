package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func loginRequest(remoteAddr string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	r.RemoteAddr = remoteAddr
	return r
}

func TestAllowBurstThenThrottle(t *testing.T) {
	limiter := NewLoginLimiter(&Config{
		PerIdentifier: rate.Every(time.Hour),
		PerIP:         rate.Every(time.Hour),
		Burst:         3,
		EntryTTL:      time.Hour,
	})

	r := loginRequest("10.0.0.1:4444")
	for i := 0; i < 3; i++ {
		if !limiter.Allow(r, "admin") {
			t.Fatalf("attempt %d should be within burst", i+1)
		}
	}
	if limiter.Allow(r, "admin") {
		t.Fatal("attempt past burst should be denied")
	}
}

func TestAllowIdentifierIsCaseInsensitive(t *testing.T) {
	limiter := NewLoginLimiter(&Config{
		PerIdentifier: rate.Every(time.Hour),
		PerIP:         rate.Every(time.Hour),
		Burst:         1,
		EntryTTL:      time.Hour,
	})

	if !limiter.Allow(loginRequest("10.0.0.1:1"), "Admin") {
		t.Fatal("first attempt should pass")
	}
	// Same account from another IP, different casing.
	if limiter.Allow(loginRequest("10.0.0.2:1"), "ADMIN") {
		t.Fatal("identifier bucket should be shared across casings")
	}
}

func TestAllowIPBucketSpansIdentifiers(t *testing.T) {
	limiter := NewLoginLimiter(&Config{
		PerIdentifier: rate.Every(time.Hour),
		PerIP:         rate.Every(time.Hour),
		Burst:         2,
		EntryTTL:      time.Hour,
	})

	r := loginRequest("10.0.0.9:1234")
	if !limiter.Allow(r, "alice") {
		t.Fatal("first attempt should pass")
	}
	if !limiter.Allow(r, "bob") {
		t.Fatal("second attempt should pass")
	}
	// Third distinct username, same IP: the IP budget is spent.
	if limiter.Allow(r, "carol") {
		t.Fatal("rotating usernames should not evade the IP bucket")
	}
}

func TestClientIPPrefersForwardedHeader(t *testing.T) {
	r := loginRequest("127.0.0.1:9999")
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := clientIP(r); got != "203.0.113.7" {
		t.Fatalf("clientIP = %q", got)
	}

	if got := clientIP(loginRequest("192.168.1.5:8080")); got != "192.168.1.5" {
		t.Fatalf("clientIP = %q", got)
	}
}
