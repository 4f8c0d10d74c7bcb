package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	l := New(Config{RequestsPerMinute: 3})
	defer l.Stop()

	const chatID = int64(42)

	for i := 0; i < 3; i++ {
		if !l.Allow(chatID) {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}

	if l.Allow(chatID) {
		t.Error("request over the limit allowed, want denied")
	}
}

func TestLimiter_IndependentChats(t *testing.T) {
	l := New(Config{RequestsPerMinute: 1})
	defer l.Stop()

	if !l.Allow(1) {
		t.Fatal("first chat denied")
	}
	if !l.Allow(2) {
		t.Error("second chat denied by first chat's usage")
	}
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l := New(Config{})
	defer l.Stop()

	if l.limit != 20 {
		t.Errorf("default limit = %d, want 20", l.limit)
	}
}

func TestLimiter_ResetTime(t *testing.T) {
	l := New(Config{RequestsPerMinute: 1})
	defer l.Stop()

	const chatID = int64(7)

	before := time.Now()
	l.Allow(chatID)
	reset := l.ResetTime(chatID)

	if reset.Before(before) {
		t.Errorf("ResetTime = %v, want after the request time", reset)
	}
	if reset.After(before.Add(2 * time.Minute)) {
		t.Errorf("ResetTime = %v, want within the window", reset)
	}
}

func TestLimiter_Stop(t *testing.T) {
	l := New(Config{RequestsPerMinute: 1})

	if l.Stopped() {
		t.Fatal("fresh limiter reports stopped")
	}

	l.Stop()
	l.Stop() // must stay safe to call again

	if !l.Stopped() {
		t.Error("limiter still reports running after Stop")
	}
}

func TestLimiter_ResetTimeEmpty(t *testing.T) {
	l := New(Config{RequestsPerMinute: 1})
	defer l.Stop()

	reset := l.ResetTime(999)
	if reset.After(time.Now().Add(time.Second)) {
		t.Errorf("ResetTime for unused chat = %v, want about now", reset)
	}
}
