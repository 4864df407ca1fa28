//go:build linux && !tinygo

package hal

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"walkclock/framebuf"
)

// ST7735 command set, as much of it as the status LCD needs.
const (
	st7735SWRESET = 0x01
	st7735SLPOUT  = 0x11
	st7735NORON   = 0x13
	st7735INVON   = 0x21
	st7735DISPON  = 0x29
	st7735CASET   = 0x2A
	st7735RASET   = 0x2B
	st7735RAMWR   = 0x2C
	st7735MADCTL  = 0x36
	st7735COLMOD  = 0x3A
)

// Panel RAM window offsets for the 0.96 inch 80x160 module in landscape.
const (
	st7735ColOffset = 1
	st7735RowOffset = 26
)

func init() {
	newPlatformLCD = func() (LCD, error) {
		return NewLinuxLCD(DefaultLinuxLCDConfig())
	}
}

// LinuxLCDConfig names the SPI port and control pins for a board-attached
// ST7735 status LCD.
type LinuxLCDConfig struct {
	SPIPort   string
	DCPin     string
	ResetPin  string
	Backlight string
}

// DefaultLinuxLCDConfig wires the LCD the way the reference Pi hat does.
func DefaultLinuxLCDConfig() LinuxLCDConfig {
	return LinuxLCDConfig{
		SPIPort:   "",
		DCPin:     "GPIO25",
		ResetPin:  "GPIO27",
		Backlight: "GPIO24",
	}
}

// LinuxLCD drives the ST7735 over spidev via periph.io.
type LinuxLCD struct {
	conn  spi.Conn
	dc    gpio.PinOut
	reset gpio.PinOut
	bl    gpio.PinOut
	buf   []byte
}

// NewLinuxLCD opens the SPI port, resets the panel, and runs the init
// sequence. The returned LCD is ready for Present.
func NewLinuxLCD(cfg LinuxLCDConfig) (*LinuxLCD, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("lcd: periph host init: %w", err)
	}

	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("lcd: open spi port: %w", err)
	}
	conn, err := port.Connect(16*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("lcd: connect spi: %w", err)
	}

	pin := func(name string) (gpio.PinOut, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("lcd: gpio %s not found", name)
		}
		if err := p.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("lcd: gpio %s: %w", name, err)
		}
		return p, nil
	}

	d := &LinuxLCD{conn: conn}
	if d.dc, err = pin(cfg.DCPin); err != nil {
		return nil, err
	}
	if d.reset, err = pin(cfg.ResetPin); err != nil {
		return nil, err
	}
	if d.bl, err = pin(cfg.Backlight); err != nil {
		return nil, err
	}

	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *LinuxLCD) init() error {
	_ = d.reset.Out(gpio.Low)
	time.Sleep(20 * time.Millisecond)
	_ = d.reset.Out(gpio.High)
	time.Sleep(120 * time.Millisecond)

	steps := []struct {
		cmd   byte
		data  []byte
		delay time.Duration
	}{
		{cmd: st7735SWRESET, delay: 150 * time.Millisecond},
		{cmd: st7735SLPOUT, delay: 120 * time.Millisecond},
		{cmd: st7735COLMOD, data: []byte{0x05}},
		// Landscape, RGB order swapped to BGR on this module.
		{cmd: st7735MADCTL, data: []byte{0x68}},
		{cmd: st7735INVON},
		{cmd: st7735NORON, delay: 10 * time.Millisecond},
		{cmd: st7735DISPON, delay: 100 * time.Millisecond},
	}
	for _, s := range steps {
		if err := d.command(s.cmd, s.data); err != nil {
			return err
		}
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
	}
	return d.bl.Out(gpio.High)
}

func (d *LinuxLCD) command(cmd byte, data []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.conn.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("lcd: command %#02x: %w", cmd, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	if err := d.conn.Tx(data, nil); err != nil {
		return fmt.Errorf("lcd: command %#02x data: %w", cmd, err)
	}
	return nil
}

// Present converts the subframe to RGB565 and pushes it into the panel RAM
// window. spidev caps single transfers, so the pixel data goes out in
// chunks.
func (d *LinuxLCD) Present(f *framebuf.SubFrame) error {
	x0 := uint16(st7735RowOffset)
	x1 := x0 + framebuf.SubWidth - 1
	y0 := uint16(st7735ColOffset)
	y1 := y0 + framebuf.SubHeight - 1
	if err := d.command(st7735CASET, []byte{byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)}); err != nil {
		return err
	}
	if err := d.command(st7735RASET, []byte{byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)}); err != nil {
		return err
	}

	if d.buf == nil {
		d.buf = make([]byte, framebuf.SubWidth*framebuf.SubHeight*2)
	}
	i := 0
	for y := 0; y < framebuf.SubHeight; y++ {
		for x := 0; x < framebuf.SubWidth; x++ {
			p := &f[y][x]
			v := uint16(p[0])>>3<<11 | uint16(p[1])>>2<<5 | uint16(p[2])>>3
			d.buf[i] = byte(v >> 8)
			d.buf[i+1] = byte(v)
			i += 2
		}
	}

	if err := d.command(st7735RAMWR, nil); err != nil {
		return err
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	const chunk = 4096
	for off := 0; off < len(d.buf); off += chunk {
		end := off + chunk
		if end > len(d.buf) {
			end = len(d.buf)
		}
		if err := d.conn.Tx(d.buf[off:end], nil); err != nil {
			return fmt.Errorf("lcd: pixel data: %w", err)
		}
	}
	return nil
}
