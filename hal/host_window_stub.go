//go:build !tinygo && !cgo

package hal

import "errors"

// RunWindow needs cgo for the display backend. Without it the clock can
// still run with -headless.
func RunWindow(_ func(h HAL) func() error) error {
	return errors.New("panel window needs cgo (rebuild with CGO_ENABLED=1, or pass -headless)")
}
