package clock

import (
	qrcode "github.com/skip2/go-qrcode"

	"walkclock/framebuf"
)

// renderQR draws the configured URL as a version-3 QR symbol with its quiet
// border, black on white, centred-ish on the panel. The symbol plus border
// is 37 modules, one panel pixel each.
func (c *Clock) renderQR(fb *framebuf.Frame) {
	bitmap := c.qr()
	if bitmap == nil {
		return
	}
	const off = 13
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				fb.Set(off+x, off+y, 0, 0, 0)
			} else {
				fb.Set(off+x, off+y, 255, 255, 255)
			}
		}
	}
}

func (c *Clock) qr() [][]bool {
	if c.qrBitmap != nil {
		return c.qrBitmap
	}
	// Version 3 is fixed so the symbol size never changes with the URL;
	// a URL too long for version 3 at low ECC simply renders nothing.
	q, err := qrcode.NewWithForcedVersion(c.url, 3, qrcode.Low)
	if err != nil {
		return nil
	}
	c.qrBitmap = q.Bitmap()
	return c.qrBitmap
}
