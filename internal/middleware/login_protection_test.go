// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"testing"
	"time"
)

func newTestProtection() *LoginProtection {
	return NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       100, // effectively unlimited for tests
		IPBurst:           100,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
}

func TestLoginProtection_AccountLockout(t *testing.T) {
	lp := newTestProtection()
	email := "user@example.com"

	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatal("account locked before any attempts")
	}

	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("locked after 1 attempt")
	}
	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("locked after 2 attempts")
	}

	locked, duration := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("not locked after 3 attempts")
	}
	if duration != time.Minute {
		t.Errorf("lock duration = %v, want %v", duration, time.Minute)
	}

	locked, remaining := lp.IsAccountLocked(email)
	if !locked {
		t.Error("IsAccountLocked = false after lockout")
	}
	if remaining <= 0 || remaining > time.Minute {
		t.Errorf("remaining = %v, want within (0, 1m]", remaining)
	}
}

func TestLoginProtection_ExponentialBackoff(t *testing.T) {
	lp := newTestProtection()
	email := "repeat@example.com"

	// First lockout: base duration
	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	_, first := lp.RecordFailedAttempt(email)

	// Second lockout: doubled
	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	_, second := lp.RecordFailedAttempt(email)

	if second != 2*first {
		t.Errorf("second lockout = %v, want %v", second, 2*first)
	}
}

func TestLoginProtection_SuccessClearsAttempts(t *testing.T) {
	lp := newTestProtection()
	email := "user@example.com"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	if got := lp.GetRemainingAttempts(email); got != 1 {
		t.Errorf("remaining = %d, want 1", got)
	}

	lp.RecordSuccessfulLogin(email)
	if got := lp.GetRemainingAttempts(email); got != 3 {
		t.Errorf("remaining after success = %d, want 3", got)
	}
	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Error("account still locked after successful login")
	}
}

func TestLoginProtection_IPRateLimit(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit: 0.001, // practically never refills during the test
		IPBurst:     2,
	})

	ip := "203.0.113.9"
	if !lp.CheckIPRateLimit(ip) {
		t.Fatal("first request should be allowed")
	}
	if !lp.CheckIPRateLimit(ip) {
		t.Fatal("second request should be allowed")
	}
	if lp.CheckIPRateLimit(ip) {
		t.Error("third request should be rate limited")
	}

	// A different IP has its own bucket
	if !lp.CheckIPRateLimit("198.51.100.3") {
		t.Error("different IP should not be limited")
	}
}

func TestLimiterCache_ClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a")
	lc.get("b")

	if lc.clearIfExceeds(10) {
		t.Error("cache cleared below threshold")
	}
	if !lc.clearIfExceeds(1) {
		t.Error("cache not cleared above threshold")
	}
	if len(lc.limiters) != 0 {
		t.Errorf("len = %d after clear, want 0", len(lc.limiters))
	}
}
