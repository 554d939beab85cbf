package throttle

import "time"

// DefaultInterval is used whenever a non-positive interval is configured.
const DefaultInterval = 1000 * time.Millisecond

// Throttler admits at most one reading per interval and drops the rest.
// The first call to Admit always admits.
//
// Throttler is not safe for concurrent use; the owner serializes access.
type Throttler struct {
	interval time.Duration
	last     time.Time
	admitted bool
}

// New creates a throttler with the given interval.
func New(interval time.Duration) *Throttler {
	t := &Throttler{}
	t.SetInterval(interval)
	return t
}

// Admit reports whether a reading arriving at now passes the throttle.
// On admission now becomes the last admitted time.
func (t *Throttler) Admit(now time.Time) bool {
	if t.admitted && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	t.admitted = true
	return true
}

// SetInterval changes the interval. The last admitted time is kept, so the new
// interval is measured from the previous admission.
func (t *Throttler) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t.interval = interval
}

// Interval returns the current interval.
func (t *Throttler) Interval() time.Duration {
	return t.interval
}

// LastAdmitted returns the time of the last admission; ok is false before the first one.
func (t *Throttler) LastAdmitted() (last time.Time, ok bool) {
	return t.last, t.admitted
}
