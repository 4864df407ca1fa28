package app

import (
	"testing"

	"walkclock/ublox"
)

func testFrame(itow uint32) []byte {
	return ublox.EncodePVT(ublox.PVT{
		ITOW: itow, Year: 2026, Month: 8, Day: 30,
		Hour: 12, Minute: 0, Second: 0,
		ValidDate: true, ValidTime: true, FullyResolved: true,
		Fix: true, NumSV: 8,
	})
}

func TestFramerReassembles(t *testing.T) {
	frame := testFrame(1000)

	var got [][]byte
	emit := func(b []byte) {
		cp := make([]byte, len(b))
		copy(cp, b)
		got = append(got, cp)
	}

	var f framer
	// Leading noise, including a lone sync byte.
	f.Feed([]byte{0x00, 0xB5, 0x17, 0x42}, emit)
	// The frame itself, split awkwardly.
	f.Feed(frame[:1], emit)
	f.Feed(frame[1:57], emit)
	f.Feed(frame[57:], emit)

	if len(got) != 1 {
		t.Fatalf("emitted %d frames, want 1", len(got))
	}
	pvt, err := ublox.ParsePVT(got[0])
	if err != nil {
		t.Fatalf("ParsePVT: %v", err)
	}
	if pvt.ITOW != 1000 {
		t.Errorf("iTOW = %d, want 1000", pvt.ITOW)
	}
}

func TestFramerBackToBackFrames(t *testing.T) {
	stream := append(testFrame(1000), testFrame(2000)...)

	var itows []uint32
	var f framer
	f.Feed(stream, func(b []byte) {
		pvt, err := ublox.ParsePVT(b)
		if err != nil {
			t.Fatalf("ParsePVT: %v", err)
		}
		itows = append(itows, pvt.ITOW)
	})

	if len(itows) != 2 || itows[0] != 1000 || itows[1] != 2000 {
		t.Fatalf("itows = %v, want [1000 2000]", itows)
	}
}

func TestFramerResyncsAfterRepeatedSync(t *testing.T) {
	frame := testFrame(3000)
	// 0xB5 0xB5 0x62 ... must still lock on.
	stream := append([]byte{0xB5}, frame...)

	var count int
	var f framer
	f.Feed(stream, func(b []byte) { count++ })
	if count != 1 {
		t.Fatalf("emitted %d frames, want 1", count)
	}
}
