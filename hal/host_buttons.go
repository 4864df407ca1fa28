//go:build !tinygo

package hal

import (
	"sync"

	"walkclock/switches"
)

// hostButtons holds the switch states the window poller feeds in. In
// headless mode nothing writes them, so every button reads released.
type hostButtons struct {
	mu    sync.Mutex
	state [switches.NumButtons]bool
}

func (b *hostButtons) Read() [switches.NumButtons]bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *hostButtons) set(state [switches.NumButtons]bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = state
}
