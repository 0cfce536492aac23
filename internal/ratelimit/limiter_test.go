package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestHostLimiter_BurstThenThrottle(t *testing.T) {
	hl := NewHostLimiter(1, 2)
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	if !hl.Allow(url) {
		t.Error("first navigation should pass within burst")
	}
	if !hl.Allow(url) {
		t.Error("second navigation should pass within burst")
	}
	if hl.Allow(url) {
		t.Error("third immediate navigation should be throttled")
	}
}

func TestHostLimiter_PerHostIsolation(t *testing.T) {
	hl := NewHostLimiter(1, 1)

	if !hl.Allow("https://www.youtube.com/watch?v=aaaaaaaaaaa") {
		t.Fatal("first host should pass")
	}
	if hl.Allow("https://www.youtube.com/watch?v=bbbbbbbbbbb") {
		t.Error("same host should share the bucket")
	}
	if !hl.Allow("https://consent.youtube.com/") {
		t.Error("a different host should have its own bucket")
	}
}

func TestHostLimiter_UnparseableURL(t *testing.T) {
	hl := NewHostLimiter(1, 1)
	if !hl.Allow("::not a url::") {
		t.Error("unparseable URLs must pass through")
	}
	if err := hl.Wait(context.Background(), "::not a url::"); err != nil {
		t.Errorf("Wait on unparseable URL: %v", err)
	}
}

func TestHostLimiter_WaitHonorsContext(t *testing.T) {
	hl := NewHostLimiter(0.001, 1)
	url := "https://www.youtube.com/"
	if err := hl.Wait(context.Background(), url); err != nil {
		t.Fatalf("burst token: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := hl.Wait(ctx, url); err == nil {
		t.Error("Wait should fail once the context expires before a token is due")
	}
}

func TestNewHostLimiter_SanitizesArguments(t *testing.T) {
	hl := NewHostLimiter(-1, 0)
	if !hl.Allow("https://www.youtube.com/") {
		t.Error("sanitized limiter should still grant its single burst token")
	}
}
