// Package rtc holds the clock-discipline arithmetic shared by all targets:
// the two-second datetime comparison that decides when a GNSS fix should
// reset the hardware RTC, and the LSE-against-GPS calibrator.
package rtc

import (
	"fmt"
	"time"

	"walkclock/ublox"
)

// DateTime is a calendar time as the hardware RTC stores it. Year counts
// from 2000.
type DateTime struct {
	Year   uint8
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// FromPVT converts a GNSS solution to RTC form.
func FromPVT(p ublox.PVT) DateTime {
	return DateTime{
		Year:   uint8(p.Year - 2000),
		Month:  p.Month,
		Day:    p.Day,
		Hour:   p.Hour,
		Minute: p.Minute,
		Second: p.Second,
	}
}

// FromTime converts a wall-clock time to RTC form. Years outside the
// RTC's 2000..2255 range are clamped.
func FromTime(t time.Time) DateTime {
	y := t.Year() - 2000
	if y < 0 {
		y = 0
	} else if y > 255 {
		y = 255
	}
	return DateTime{
		Year:   uint8(y),
		Month:  uint8(t.Month()),
		Day:    uint8(t.Day()),
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
		Second: uint8(t.Second()),
	}
}

// Time converts d back to a wall-clock time in UTC.
func (d DateTime) Time() time.Time {
	return time.Date(2000+int(d.Year), time.Month(d.Month), int(d.Day),
		int(d.Hour), int(d.Minute), int(d.Second), 0, time.UTC)
}

func (d DateTime) String() string {
	return fmt.Sprintf("%02d/%02d/%02d %02d:%02d:%02d",
		d.Day, d.Month, d.Year, d.Hour, d.Minute, d.Second)
}

// Different reports whether a and b are more than two seconds apart. To
// avoid rollover comparisons, two times are never considered different when
// either is within two seconds of a minute boundary.
func Different(a, b DateTime) bool {
	if a.nearNewMinute() || b.nearNewMinute() {
		return false
	}
	secs := int8(a.Second) - int8(b.Second)
	if secs < 0 {
		secs = -secs
	}
	return a.Year != b.Year || a.Month != b.Month || a.Day != b.Day ||
		a.Hour != b.Hour || a.Minute != b.Minute || secs > 2
}

func (d DateTime) nearNewMinute() bool {
	return d.Second > 57 || d.Second < 2
}

// ShouldSet reports whether the RTC, currently reading now, should be reset
// from p. Partial solutions never set the clock.
func ShouldSet(now DateTime, p ublox.PVT) bool {
	if !p.Usable() {
		return false
	}
	return Different(now, FromPVT(p))
}

// Calibrator derives RTC smooth-calibration factors from two frequency
// measurements: the 32 kHz LSE crystal counted against the core clock, and
// the GNSS timepulse counted against a 3 MHz timer.
type Calibrator struct {
	lse    uint32
	gps    uint32
	hasLSE bool
	hasGPS bool
}

// LSEReading feeds a measurement of 150 MHz timer cycles elapsed over 16384
// LSE periods (nominally half a second, 75e6 cycles).
func (c *Calibrator) LSEReading(v uint32) {
	c.lse = v
	c.hasLSE = true
}

// GPSReading feeds a measurement of 3 MHz timer cycles elapsed over one GPS
// second (nominally 3e6 cycles).
func (c *Calibrator) GPSReading(v uint32) {
	c.gps = v
	c.hasGPS = true
}

// Clear drops any saved readings.
func (c *Calibrator) Clear() {
	c.hasLSE = false
	c.hasGPS = false
}

// Cal consumes the two readings and returns the calibration pair, with calp
// 0 or 1 and calm in 0..512. ok is false when a reading is missing or the
// computed factor is outside the register range.
func (c *Calibrator) Cal() (calp uint8, calm uint16, ok bool) {
	if !c.hasLSE || !c.hasGPS {
		return 0, 0, false
	}
	lse, gps := c.lse, c.gps
	c.hasLSE = false
	c.hasGPS = false

	// Both counters run from the same core clock, so their ratio cancels
	// the core clock error and measures the LSE against GPS time. The
	// calibration adds or masks LSE pulses in 2^-20 steps.
	n := int64(lse) << 20
	m := int64(gps) * 25
	cal := n/m - (1 << 20)
	if cal < -511 || cal > 512 {
		return 0, 0, false
	}
	if cal > 0 {
		return 1, uint16(512 - cal), true
	}
	return 0, uint16(-cal), true
}
