// Package framebuf holds the RGB888 pixel buffers shared between the
// application and the display pipelines.
package framebuf

import "image/color"

// Main LED panel dimensions.
const (
	Width  = 64
	Height = 64
)

// Sub (LCD status) display dimensions.
const (
	SubWidth  = 160
	SubHeight = 80
)

// Frame is one 64x64 RGB888 image for the LED panel, indexed [row][col].
type Frame [Height][Width][3]uint8

// SubFrame is one 160x80 RGB888 image for the status LCD, indexed [row][col].
type SubFrame [SubHeight][SubWidth][3]uint8

// Clear fills the frame with a solid colour.
func (f *Frame) Clear(r, g, b uint8) {
	for y := range f {
		for x := range f[y] {
			f[y][x] = [3]uint8{r, g, b}
		}
	}
}

// Set writes one pixel, ignoring out-of-range coordinates.
func (f *Frame) Set(x, y int, r, g, b uint8) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	f[y][x] = [3]uint8{r, g, b}
}

// Clear fills the subframe with a solid colour.
func (f *SubFrame) Clear(r, g, b uint8) {
	for y := range f {
		for x := range f[y] {
			f[y][x] = [3]uint8{r, g, b}
		}
	}
}

// Set writes one pixel, ignoring out-of-range coordinates.
func (f *SubFrame) Set(x, y int, r, g, b uint8) {
	if x < 0 || x >= SubWidth || y < 0 || y >= SubHeight {
		return
	}
	f[y][x] = [3]uint8{r, g, b}
}

// Buffer serialises the subframe as packed RGB888 rows, appending into dst.
// LCD transports push this straight to the panel RAM window.
func (f *SubFrame) Buffer(dst []byte) []byte {
	for y := range f {
		for x := range f[y] {
			p := &f[y][x]
			dst = append(dst, p[0], p[1], p[2])
		}
	}
	return dst
}

// Displayer adapts a Frame to the tinygo drivers displayer contract so that
// tinyfont can draw straight into it.
type Displayer struct {
	Frame *Frame
}

func (d *Displayer) Size() (x, y int16) { return Width, Height }

func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	if d.Frame == nil {
		return
	}
	d.Frame.Set(int(x), int(y), c.R, c.G, c.B)
}

func (d *Displayer) Display() error { return nil }

func (d *Displayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.Frame == nil {
		return nil
	}
	for yy := y; yy < y+height; yy++ {
		for xx := x; xx < x+width; xx++ {
			d.Frame.Set(int(xx), int(yy), c.R, c.G, c.B)
		}
	}
	return nil
}

// SubDisplayer is the same adapter for the status LCD subframe.
type SubDisplayer struct {
	Frame *SubFrame
}

func (d *SubDisplayer) Size() (x, y int16) { return SubWidth, SubHeight }

func (d *SubDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.Frame == nil {
		return
	}
	d.Frame.Set(int(x), int(y), c.R, c.G, c.B)
}

func (d *SubDisplayer) Display() error { return nil }

func (d *SubDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.Frame == nil {
		return nil
	}
	for yy := y; yy < y+height; yy++ {
		for xx := x; xx < x+width; xx++ {
			d.Frame.Set(int(xx), int(yy), c.R, c.G, c.B)
		}
	}
	return nil
}
