package ratelimit

import (
	"math"
	"time"
)

// Key identifies one budget: a caller performing one operation.
type Key struct {
	Caller    string
	Operation string
}

// Decision is the governor's answer for one call.
type Decision struct {
	Allowed           bool
	Remaining         int
	RetryAfterSeconds int
}

// Window is the fixed-window counter for one key. The zero value is an
// unseen key.
type Window struct {
	Count       int
	WindowStart time.Time
	LastSeen    time.Time
}

// Admit applies one call at now under p and reports the decision. A window
// that has run its full length is reopened, so bursts straddling a window
// edge can reach twice MaxRequests.
func (w *Window) Admit(now time.Time, p Policy) Decision {
	w.LastSeen = now

	if w.Count == 0 || w.Expired(now, p) {
		w.Count = 1
		w.WindowStart = now
		return Decision{Allowed: true, Remaining: remaining(p, w.Count)}
	}

	if w.Count >= p.MaxRequests {
		return Decision{
			Allowed:           false,
			Remaining:         0,
			RetryAfterSeconds: retryAfterSeconds(w.WindowStart.Add(p.Window).Sub(now)),
		}
	}

	w.Count++
	return Decision{Allowed: true, Remaining: remaining(p, w.Count)}
}

// Expired reports whether the window opened at WindowStart has run its course.
func (w *Window) Expired(now time.Time, p Policy) bool {
	return now.Sub(w.WindowStart) >= p.Window
}

// Peek reports the budget left without consuming it.
func (w *Window) Peek(now time.Time, p Policy) (left int, resetIn time.Duration) {
	if w.Count == 0 || w.Expired(now, p) {
		return p.MaxRequests, 0
	}
	return remaining(p, w.Count), w.WindowStart.Add(p.Window).Sub(now)
}

func remaining(p Policy, count int) int {
	return max(0, p.MaxRequests-count)
}

func retryAfterSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

// RetryAfterSeconds rounds a wait up to whole seconds.
func RetryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return retryAfterSeconds(d)
}
