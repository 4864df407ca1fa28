//go:build !tinygo

package hal

import (
	"sync"
	"time"

	"walkclock/rtc"
)

// hostRTC is the wall clock plus a settable offset, so a Set from GNSS
// discipline behaves like writing a real calendar register.
type hostRTC struct {
	mu     sync.Mutex
	offset time.Duration

	calp uint8
	calm uint16
}

func (r *hostRTC) Read() rtc.DateTime {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rtc.FromTime(time.Now().UTC().Add(r.offset))
}

func (r *hostRTC) Set(t rtc.DateTime) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offset = t.Time().Sub(time.Now().UTC().Truncate(time.Second))
}

func (r *hostRTC) SetCalibration(calp uint8, calm uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calp = calp
	r.calm = calm
}

// hostFreqRef reports a perfectly nominal crystal: one capture pair per
// second with the LSE counter exactly on frequency.
type hostFreqRef struct {
	mu   sync.Mutex
	last time.Time
}

func (f *hostFreqRef) Readings() (lse, gps uint32, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	if now.Sub(f.last) < time.Second {
		return 0, 0, false
	}
	f.last = now
	return 75_000_000, 3_000_000, true
}
