package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a per-chat sliding window limiter. It exists to keep one
// chat from hammering the public search API through the bot.
type Limiter struct {
	mu       sync.Mutex
	requests map[int64][]time.Time
	limit    int
	window   time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

type Config struct {
	RequestsPerMinute int
}

func New(cfg Config) *Limiter {
	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 20
	}

	l := &Limiter{
		requests: make(map[int64][]time.Time),
		limit:    limit,
		window:   time.Minute,
		stopChan: make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *Limiter) Allow(chatID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	old := l.requests[chatID]
	fresh := old[:0] // reuse underlying array
	for _, t := range old {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= l.limit {
		l.requests[chatID] = fresh
		return false
	}

	l.requests[chatID] = append(fresh, now)
	return true
}

// ResetTime reports approximately when the chat's window frees up.
func (l *Limiter) ResetTime(chatID int64) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.requests[chatID]
	if len(ts) == 0 {
		return time.Now()
	}

	oldest := ts[0]
	for _, t := range ts[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}
	return oldest.Add(l.window)
}

func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

// Stopped reports whether the background cleanup has been told to exit.
func (l *Limiter) Stopped() bool {
	select {
	case <-l.stopChan:
		return true
	default:
		return false
	}
}

func (l *Limiter) cleanup() {
	tick := time.NewTicker(5 * time.Minute)
	defer tick.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-tick.C:
			cutoff := time.Now().Add(-l.window)
			l.mu.Lock()
			for chatID, ts := range l.requests {
				var fresh []time.Time
				for _, t := range ts {
					if t.After(cutoff) {
						fresh = append(fresh, t)
					}
				}
				if len(fresh) == 0 {
					delete(l.requests, chatID)
				} else {
					l.requests[chatID] = fresh
				}
			}
			l.mu.Unlock()
		}
	}
}
