package ublox

import (
	"errors"
	"testing"
)

func testPVT(itow uint32) PVT {
	return PVT{
		ITOW:          itow,
		Year:          2026,
		Month:         8,
		Day:           30,
		Hour:          12,
		Minute:        34,
		Second:        56,
		ValidDate:     true,
		ValidTime:     true,
		FullyResolved: true,
		Fix:           true,
		NumSV:         9,
	}
}

func TestParsePVTRoundTrip(t *testing.T) {
	want := testPVT(123456789)
	got, err := ParsePVT(EncodePVT(want))
	if err != nil {
		t.Fatalf("ParsePVT: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestParsePVTRejectsBadFrames(t *testing.T) {
	good := EncodePVT(testPVT(1000))

	tests := []struct {
		name   string
		mangle func([]byte)
		want   error
	}{
		{"sync", func(b []byte) { b[0] = 0x00 }, ErrBadSync},
		{"class", func(b []byte) { b[2] = 0x02 }, ErrBadClassID},
		{"id", func(b []byte) { b[3] = 0x06 }, ErrBadClassID},
		{"length", func(b []byte) { b[4] = 91 }, ErrBadLength},
		{"payload", func(b []byte) { b[10]++ }, ErrBadChecksum},
		{"checksum", func(b []byte) { b[99]++ }, ErrBadChecksum},
	}
	for _, tt := range tests {
		buf := make([]byte, len(good))
		copy(buf, good)
		tt.mangle(buf)
		if _, err := ParsePVT(buf); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}

	if _, err := ParsePVT(good[:50]); !errors.Is(err, ErrBadLength) {
		t.Errorf("short frame: err = %v, want %v", err, ErrBadLength)
	}
}

func TestParsePVTValidityBits(t *testing.T) {
	p := testPVT(2000)
	p.ValidDate = false
	p.FullyResolved = false
	p.Fix = false
	got, err := ParsePVT(EncodePVT(p))
	if err != nil {
		t.Fatalf("ParsePVT: %v", err)
	}
	if got.ValidDate || got.FullyResolved || got.Fix || !got.ValidTime {
		t.Fatalf("validity bits wrong: %+v", got)
	}
	if got.Usable() {
		t.Fatal("partial solution reported usable")
	}
	if full, _ := ParsePVT(EncodePVT(testPVT(2001))); !full.Usable() {
		t.Fatal("full solution not usable")
	}
}

func TestReceiverDedupAndTake(t *testing.T) {
	r := NewReceiver()

	// No frame yet: NoPVT with an incrementing count.
	for want := uint8(0); want < 3; want++ {
		_, err := r.PVT()
		var nerr *NoPVTError
		if !errors.As(err, &nerr) || nerr.N != want {
			t.Fatalf("poll %d: err = %v", want, err)
		}
	}

	r.Frame(EncodePVT(testPVT(5000)))
	pvt, err := r.PVT()
	if err != nil || pvt.ITOW != 5000 {
		t.Fatalf("take: %v %+v", err, pvt)
	}

	// Taken: back to NoPVT starting at 0.
	if _, err := r.PVT(); err == nil {
		t.Fatal("second take returned a fix")
	}

	// Same iTOW again is a duplicate, not a new second.
	r.Frame(EncodePVT(testPVT(5000)))
	if _, err := r.PVT(); !errors.Is(err, ErrSameTOW) {
		t.Fatalf("duplicate: err = %v, want ErrSameTOW", err)
	}

	r.Frame(EncodePVT(testPVT(6000)))
	if pvt, err := r.PVT(); err != nil || pvt.ITOW != 6000 {
		t.Fatalf("new iTOW: %v %+v", err, pvt)
	}
}

func TestReceiverKeepsParseError(t *testing.T) {
	r := NewReceiver()
	bad := EncodePVT(testPVT(1))
	bad[98] ^= 0xFF
	r.Frame(bad)
	if _, err := r.PVT(); !errors.Is(err, ErrBadChecksum) {
		t.Fatalf("err = %v, want ErrBadChecksum", err)
	}
}

func TestConfigFrames(t *testing.T) {
	frames := ConfigFrames()
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	wantLens := []int{28, 44, 40, 11}
	for i, f := range frames {
		if len(f) != wantLens[i] {
			t.Errorf("frame %d length %d, want %d", i, len(f), wantLens[i])
		}
		if f[0] != 0xB5 || f[1] != 0x62 || f[2] != 0x06 {
			t.Errorf("frame %d header %x", i, f[:4])
		}
		a, b := Checksum(f[:len(f)-2])
		if f[len(f)-2] != a || f[len(f)-1] != b {
			t.Errorf("frame %d checksum mismatch", i)
		}
		if wantLen := int(f[4]) | int(f[5])<<8; wantLen != len(f)-8 {
			t.Errorf("frame %d declared payload %d, actual %d", i, wantLen, len(f)-8)
		}
	}
}
