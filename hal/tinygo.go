//go:build tinygo

package hal

import (
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/st7735"

	"walkclock/framebuf"
	"walkclock/switches"
	"walkclock/ublox"
)

type tinygoHAL struct {
	logger  *tinygoLogger
	matrix  MatrixPort
	lcd     *tinygoLCD
	buttons *tinygoButtons
	gnss    *tinygoGNSS
	rtc     *stubRTC
	backup  *stubBackup
	freq    *stubFreqRef
}

// New returns the on-device HAL. The matrix port, RTC, backup domain and
// frequency reference come from board support; until a board file installs
// them this HAL stubs those out.
func New() HAL {
	machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 16_000_000,
		Mode:      0,
	})
	lcd := newTinygoLCD(machine.SPI0)

	uart := machine.UART1
	uart.Configure(machine.UARTConfig{BaudRate: 9600})

	return &tinygoHAL{
		logger:  &tinygoLogger{},
		matrix:  stubMatrix{},
		lcd:     lcd,
		buttons: newTinygoButtons(),
		gnss:    &tinygoGNSS{uart: uart},
		rtc:     &stubRTC{},
		backup:  &stubBackup{},
		freq:    &stubFreqRef{},
	}
}

func (h *tinygoHAL) Logger() Logger     { return h.logger }
func (h *tinygoHAL) Matrix() MatrixPort { return h.matrix }
func (h *tinygoHAL) LCD() LCD           { return h.lcd }
func (h *tinygoHAL) Buttons() Buttons   { return h.buttons }
func (h *tinygoHAL) GNSS() GNSS         { return h.gnss }
func (h *tinygoHAL) RTC() RTC           { return h.rtc }
func (h *tinygoHAL) Backup() Backup     { return h.backup }
func (h *tinygoHAL) FreqRef() FreqRef   { return h.freq }

type tinygoLogger struct{}

func (l *tinygoLogger) WriteLineString(s string) {
	machine.Serial.Write([]byte(s))
	machine.Serial.Write([]byte("\r\n"))
}

func (l *tinygoLogger) WriteLineBytes(b []byte) {
	machine.Serial.Write(b)
	machine.Serial.Write([]byte("\r\n"))
}

type tinygoLCD struct {
	dev st7735.Device
	buf []byte
}

func newTinygoLCD(spi *machine.SPI) *tinygoLCD {
	dev := st7735.New(spi,
		machine.GPIO12, // reset
		machine.GPIO13, // dc
		machine.GPIO14, // cs
		machine.GPIO15) // backlight
	dev.Configure(st7735.Config{
		Model:    st7735.MINI80x160,
		Rotation: drivers.Rotation90,
	})
	return &tinygoLCD{dev: dev}
}

func (l *tinygoLCD) Present(f *framebuf.SubFrame) error {
	if l.buf == nil {
		l.buf = make([]byte, framebuf.SubWidth*framebuf.SubHeight*2)
	}
	i := 0
	for y := 0; y < framebuf.SubHeight; y++ {
		for x := 0; x < framebuf.SubWidth; x++ {
			p := &f[y][x]
			v := uint16(p[0])>>3<<11 | uint16(p[1])>>2<<5 | uint16(p[2])>>3
			l.buf[i] = byte(v >> 8)
			l.buf[i+1] = byte(v)
			i += 2
		}
	}
	return l.dev.DrawRGBBitmap8(0, 0, l.buf, framebuf.SubWidth, framebuf.SubHeight)
}

type tinygoButtons struct {
	pins [switches.NumButtons]machine.Pin
}

func newTinygoButtons() *tinygoButtons {
	b := &tinygoButtons{pins: [switches.NumButtons]machine.Pin{
		switches.Enter:   machine.GPIO2,
		switches.Back:    machine.GPIO3,
		switches.QR:      machine.GPIO4,
		switches.Display: machine.GPIO5,
		switches.Left:    machine.GPIO6,
		switches.Right:   machine.GPIO7,
	}}
	for _, p := range b.pins {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	return b
}

func (b *tinygoButtons) Read() [switches.NumButtons]bool {
	var s [switches.NumButtons]bool
	for i, p := range b.pins {
		// Active low.
		s[i] = !p.Get()
	}
	return s
}

type tinygoGNSS struct {
	uart *machine.UART
	buf  [256]byte
}

func (g *tinygoGNSS) Configure() error {
	for _, frame := range ublox.ConfigFrames() {
		if _, err := g.uart.Write(frame); err != nil {
			return err
		}
	}
	return nil
}

func (g *tinygoGNSS) Poll() []byte {
	n := 0
	for g.uart.Buffered() > 0 && n < len(g.buf) {
		c, err := g.uart.ReadByte()
		if err != nil {
			break
		}
		g.buf[n] = c
		n++
	}
	if n == 0 {
		return nil
	}
	return g.buf[:n]
}
