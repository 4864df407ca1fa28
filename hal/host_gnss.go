//go:build !tinygo

package hal

import (
	"sync"
	"time"

	"walkclock/ublox"
)

// hostGNSS synthesizes one NAV-PVT frame per wall-clock second, as if a
// configured receiver with a solid fix were attached.
type hostGNSS struct {
	mu         sync.Mutex
	configured bool
	lastSecond time.Time
}

func newHostGNSS() *hostGNSS {
	return &hostGNSS{}
}

func (g *hostGNSS) Configure() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.configured = true
	return nil
}

func (g *hostGNSS) Poll() []byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.configured {
		return nil
	}
	now := time.Now().UTC()
	sec := now.Truncate(time.Second)
	if sec.Equal(g.lastSecond) {
		return nil
	}
	g.lastSecond = sec

	pvt := ublox.PVT{
		ITOW:          towMillis(sec),
		Year:          uint16(sec.Year()),
		Month:         uint8(sec.Month()),
		Day:           uint8(sec.Day()),
		Hour:          uint8(sec.Hour()),
		Minute:        uint8(sec.Minute()),
		Second:        uint8(sec.Second()),
		ValidDate:     true,
		ValidTime:     true,
		FullyResolved: true,
		Fix:           true,
		NumSV:         9,
	}
	return ublox.EncodePVT(pvt)
}

// towMillis returns the GPS time of week in milliseconds. The GPS week
// starts at midnight Sunday.
func towMillis(t time.Time) uint32 {
	day := uint32(t.Weekday())
	return ((day*24+uint32(t.Hour()))*60+uint32(t.Minute()))*60*1000 +
		uint32(t.Second())*1000
}
