//go:build !tinygo

package hal

import (
	"sync"

	"walkclock/framebuf"
)

// newPlatformLCD, when non-nil, opens a real panel for the host to mirror
// frames to. The linux backend installs it.
var newPlatformLCD func() (LCD, error)

type hostLCD struct {
	mu    sync.Mutex
	frame framebuf.SubFrame
	shown bool
	hw    LCD
}

func (l *hostLCD) Present(f *framebuf.SubFrame) error {
	l.mu.Lock()
	l.frame = *f
	l.shown = true
	hw := l.hw
	l.mu.Unlock()
	if hw != nil {
		return hw.Present(f)
	}
	return nil
}

func (l *hostLCD) snapshot(dst *framebuf.SubFrame) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	*dst = l.frame
	return l.shown
}
