//go:build !tinygo

package hal

import (
	"testing"
	"time"

	"walkclock/ublox"
)

func TestGNSSPollSilentUntilConfigured(t *testing.T) {
	g := newHostGNSS()
	if data := g.Poll(); data != nil {
		t.Fatalf("unconfigured Poll returned %d bytes", len(data))
	}
}

func TestGNSSSynthesizesUsablePVT(t *testing.T) {
	g := newHostGNSS()
	if err := g.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	data := g.Poll()
	if len(data) != ublox.FrameLen {
		t.Fatalf("Poll returned %d bytes, want %d", len(data), ublox.FrameLen)
	}

	pvt, err := ublox.ParsePVT(data)
	if err != nil {
		t.Fatalf("ParsePVT: %v", err)
	}
	if !pvt.Usable() {
		t.Error("synthesized solution not usable")
	}

	now := time.Now().UTC()
	if pvt.Year != uint16(now.Year()) {
		t.Errorf("year = %d, want %d", pvt.Year, now.Year())
	}

	// Same wall-clock second produces no second frame.
	if data := g.Poll(); data != nil {
		t.Errorf("repeat Poll within a second returned %d bytes", len(data))
	}
}

func TestTOWMillisRange(t *testing.T) {
	end := time.Date(2026, 1, 3, 23, 59, 59, 0, time.UTC) // Saturday
	if got := towMillis(end); got != (7*24*60*60-1)*1000 {
		t.Errorf("towMillis(end of week) = %d", got)
	}
	start := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC) // Sunday
	if got := towMillis(start); got != 0 {
		t.Errorf("towMillis(start of week) = %d", got)
	}
}
