package app

import (
	"fmt"
	"image/color"
	"strings"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"walkclock/framebuf"
	"walkclock/hal"
)

// reportPanic logs a recovered panic and leaves it on the status LCD,
// which is all the feedback a wall-mounted clock can give.
func reportPanic(h hal.HAL, v any) {
	msg := fmt.Sprintf("panic: %v", v)
	if l := h.Logger(); l != nil {
		for _, line := range strings.Split(msg, "\n") {
			if line != "" {
				l.WriteLineString(line)
			}
		}
	}

	var sub framebuf.SubFrame
	sub.Clear(0, 0, 0)
	d := &framebuf.SubDisplayer{Frame: &sub}
	red := color.RGBA{R: 255, A: 255}
	tinyfont.WriteLine(d, &proggy.TinySZ8pt7b, 4, 12, "Clock stopped", red)
	line := msg
	if len(line) > 26 {
		line = line[:26]
	}
	tinyfont.WriteLine(d, &proggy.TinySZ8pt7b, 4, 32, line, red)
	_ = h.LCD().Present(&sub)
}
