//go:build !tinygo && cgo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"walkclock/framebuf"
	"walkclock/internal/buildinfo"
	"walkclock/switches"
)

// Window layout: the LED panel scaled up on top, the status LCD below it.
const (
	windowPanelScale = 5
	windowLCDScale   = 2
	windowWidth      = framebuf.Width * windowPanelScale
	windowHeight     = framebuf.Height*windowPanelScale + framebuf.SubHeight*windowLCDScale
)

// RunWindow opens a desktop window showing the LED panel and status LCD
// and forwards keyboard input as button presses. It blocks until the
// window closes.
func RunWindow(newApp func(HAL) func() error) error {
	h := New().(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("walkclock (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(windowWidth, windowHeight)
	// One update per firmware tick.
	ebiten.SetTPS(20)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h    *hostHAL
	step func() error

	panel    framebuf.Frame
	sub      framebuf.SubFrame
	panelPix *image.RGBA
	subPix   *image.RGBA
	panelImg *ebiten.Image
	subImg   *ebiten.Image
}

func (g *hostGame) Update() error {
	g.h.buttons.set(pollButtons())
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	g.h.matrix.Scan()
	return nil
}

func pollButtons() [switches.NumButtons]bool {
	var s [switches.NumButtons]bool
	s[switches.Enter] = ebiten.IsKeyPressed(ebiten.KeyEnter)
	s[switches.Back] = ebiten.IsKeyPressed(ebiten.KeyBackspace)
	s[switches.QR] = ebiten.IsKeyPressed(ebiten.KeyQ)
	s[switches.Display] = ebiten.IsKeyPressed(ebiten.KeyD)
	s[switches.Left] = ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	s[switches.Right] = ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	return s
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.panelImg == nil {
		g.panelPix = image.NewRGBA(image.Rect(0, 0, framebuf.Width, framebuf.Height))
		g.subPix = image.NewRGBA(image.Rect(0, 0, framebuf.SubWidth, framebuf.SubHeight))
		g.panelImg = ebiten.NewImage(framebuf.Width, framebuf.Height)
		g.subImg = ebiten.NewImage(framebuf.SubWidth, framebuf.SubHeight)
	}

	g.h.matrix.Image(&g.panel)
	for y := 0; y < framebuf.Height; y++ {
		for x := 0; x < framebuf.Width; x++ {
			p := &g.panel[y][x]
			j := (y*framebuf.Width + x) * 4
			g.panelPix.Pix[j+0] = p[0]
			g.panelPix.Pix[j+1] = p[1]
			g.panelPix.Pix[j+2] = p[2]
			g.panelPix.Pix[j+3] = 0xFF
		}
	}
	g.panelImg.ReplacePixels(g.panelPix.Pix)

	g.h.lcd.snapshot(&g.sub)
	for y := 0; y < framebuf.SubHeight; y++ {
		for x := 0; x < framebuf.SubWidth; x++ {
			p := &g.sub[y][x]
			j := (y*framebuf.SubWidth + x) * 4
			g.subPix.Pix[j+0] = p[0]
			g.subPix.Pix[j+1] = p[1]
			g.subPix.Pix[j+2] = p[2]
			g.subPix.Pix[j+3] = 0xFF
		}
	}
	g.subImg.ReplacePixels(g.subPix.Pix)

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(windowPanelScale, windowPanelScale)
	screen.DrawImage(g.panelImg, &op)

	op.GeoM.Reset()
	op.GeoM.Scale(windowLCDScale, windowLCDScale)
	op.GeoM.Translate(0, framebuf.Height*windowPanelScale)
	screen.DrawImage(g.subImg, &op)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}
