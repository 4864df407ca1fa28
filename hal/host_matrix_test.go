//go:build !tinygo

package hal

import (
	"testing"

	"walkclock/framebuf"
	"walkclock/hub75"
)

func newScanEngine(t *testing.T, m *hostMatrix) *hub75.Engine {
	t.Helper()
	bufs := &[2]hub75.LineBuf{}
	e, err := hub75.New(hub75.Config{
		Transfer:  m.Transfer(),
		Clock:     m.Clock(),
		Pulse:     m.Pulse(),
		Row:       m.Row(),
		Buffers:   bufs,
		PulseBase: 10,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Bind(e.TransferComplete, e.PulseComplete)
	return e
}

// reconstructed is what a channel value should read back as after one
// pass through the gamma table and pulse integration.
func reconstructed(v uint8) uint8 {
	return uint8(uint32(hub75.Gamma[v]) * 255 / 1023)
}

func TestScanReconstructsFrame(t *testing.T) {
	m := newHostMatrix()
	e := newScanEngine(t, m)

	fb := &framebuf.Frame{}
	fb.Set(5, 9, 255, 128, 0)
	fb.Set(40, 50, 64, 200, 255)
	e.SetFramebuffer(fb)
	e.Start()

	// The first refresh carries the startup pulse artifact; judge the
	// second.
	m.Scan()
	m.Scan()

	var img framebuf.Frame
	m.Image(&img)

	checks := []struct {
		x, y int
		want [3]uint8
	}{
		{5, 9, [3]uint8{reconstructed(255), reconstructed(128), 0}},
		{40, 50, [3]uint8{reconstructed(64), reconstructed(200), reconstructed(255)}},
		{0, 0, [3]uint8{0, 0, 0}},
		{63, 63, [3]uint8{0, 0, 0}},
	}
	for _, c := range checks {
		if got := img[c.y][c.x]; got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestScanFullSkipIsDark(t *testing.T) {
	m := newHostMatrix()
	e := newScanEngine(t, m)

	fb := &framebuf.Frame{}
	fb.Clear(255, 255, 255)
	e.SetFramebuffer(fb)
	e.Start()
	e.SetBrightnessSkip(10)

	m.Scan()
	m.Scan()

	var img framebuf.Frame
	m.Image(&img)
	for y := range img {
		for x := range img[y] {
			if img[y][x] != [3]uint8{0, 0, 0} {
				t.Fatalf("pixel (%d,%d) lit at full skip: %v", x, y, img[y][x])
			}
		}
	}
}

func TestScanWithoutBindDoesNothing(t *testing.T) {
	m := newHostMatrix()
	m.Scan()
	var img framebuf.Frame
	m.Image(&img)
	if img != (framebuf.Frame{}) {
		t.Fatal("unbound scan produced pixels")
	}
}
