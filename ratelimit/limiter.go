// Package ratelimit spaces out page requests so a scrape stays under the
// site's tolerance. A sliding window tracks recent requests per minute and
// per hour, and a cooldown kicks in when the site signals throttling.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Config sets the request budget. Zero values disable the corresponding
// limit.
type Config struct {
	PerMinute int           `mapstructure:"per_minute"`
	PerHour   int           `mapstructure:"per_hour"`
	Cooldown  time.Duration `mapstructure:"cooldown"`
}

// Limiter is a sliding-window rate limiter. Safe for concurrent use.
type Limiter struct {
	mu           sync.Mutex
	cfg          Config
	events       []time.Time
	blockedUntil time.Time

	// now is replaced in tests
	now func() time.Time
}

// New builds a limiter. A zero Cooldown defaults to five minutes.
func New(cfg Config) *Limiter {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 5 * time.Minute
	}
	return &Limiter{cfg: cfg, now: time.Now}
}

// Allow reports whether a request may go out now without recording one.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.retryAtLocked().IsZero()
}

// Record counts one outgoing request against the window.
func (l *Limiter) Record() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pruneLocked()
	l.events = append(l.events, l.now())
}

// RecordThrottled enters the cooldown period. Call it when the site served
// a captcha, an empty shell page, or an explicit rate-limit response.
func (l *Limiter) RecordThrottled() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.blockedUntil = l.now().Add(l.cfg.Cooldown)
	log.Warn().Time("until", l.blockedUntil).Msg("Throttling detected, entering cooldown")
}

// Wait blocks until a request slot is available, records it, and returns.
// It unblocks early if the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		l.mu.Lock()
		retryAt := l.retryAtLocked()
		if retryAt.IsZero() {
			l.pruneLocked()
			l.events = append(l.events, l.now())
			l.mu.Unlock()
			return nil
		}
		delay := retryAt.Sub(l.now())
		l.mu.Unlock()

		log.Debug().Dur("delay", delay).Msg("Rate limit reached, waiting")
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// retryAtLocked returns the zero time when a request may go out now, or the
// earliest time one may.
func (l *Limiter) retryAtLocked() time.Time {
	now := l.now()
	if now.Before(l.blockedUntil) {
		return l.blockedUntil
	}
	l.pruneLocked()

	if l.cfg.PerMinute > 0 {
		if recent := l.countSinceLocked(now.Add(-time.Minute)); recent >= l.cfg.PerMinute {
			return l.events[len(l.events)-recent].Add(time.Minute)
		}
	}
	if l.cfg.PerHour > 0 && len(l.events) >= l.cfg.PerHour {
		return l.events[len(l.events)-l.cfg.PerHour].Add(time.Hour)
	}
	return time.Time{}
}

// pruneLocked drops events older than the hour window.
func (l *Limiter) pruneLocked() {
	cutoff := l.now().Add(-time.Hour)
	i := 0
	for i < len(l.events) && l.events[i].Before(cutoff) {
		i++
	}
	l.events = l.events[i:]
}

// countSinceLocked counts events at or after the cutoff. Events are in
// chronological order, so scan from the tail.
func (l *Limiter) countSinceLocked(cutoff time.Time) int {
	n := 0
	for i := len(l.events) - 1; i >= 0; i-- {
		if l.events[i].Before(cutoff) {
			break
		}
		n++
	}
	return n
}
