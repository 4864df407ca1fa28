// Package app wires the peripherals to the clock: one constructor builds
// the render engine, restores saved settings, and returns the step
// function the platform runners drive at the tick rate.
package app

import (
	"errors"
	"fmt"
	"time"

	"walkclock/clock"
	"walkclock/framebuf"
	"walkclock/hal"
	"walkclock/hub75"
	"walkclock/rtc"
	"walkclock/switches"
	"walkclock/ublox"
)

// TickHz is the rate the platform runners call the step function at.
const TickHz = 20

// Button hold-repeat conditioning in ticks.
const (
	keyFirstRepeat = 20
	keyNextRepeat  = 5
)

// pulseBase is the phase-0 output-enable width in pulse timer ticks.
const pulseBase = 10

// noPVTGrace is how many quiet seconds the receiver gets before its
// silence counts as an error. One solution per second is expected.
const noPVTGrace = 3

type Config struct {
	URL   string
	Image *framebuf.Frame
}

type App struct {
	h      hal.HAL
	engine *hub75.Engine
	lbufs  [2]hub75.LineBuf
	frames [2]framebuf.Frame
	fbIdx  uint8
	sub    framebuf.SubFrame

	clk      *clock.Clock
	keys     *switches.Set
	receiver *ublox.Receiver
	framer   framer
	cal      rtc.Calibrator

	noFixSeconds uint32
	lastSecond   uint8
	haveSecond   bool
}

// New initializes the clock with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	a, err := newApp(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return a.step
}

// Run starts the clock and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	defer func() {
		if v := recover(); v != nil {
			reportPanic(h, v)
			select {}
		}
	}()
	step := New(h)
	for {
		if err := step(); err != nil {
			h.Logger().WriteLineString("app: " + err.Error())
			return
		}
		time.Sleep(time.Second / TickHz)
	}
}

func newApp(h hal.HAL, cfg Config) (*App, error) {
	a := &App{
		h:        h,
		clk:      clock.New(cfg.URL),
		keys:     switches.NewSet(keyFirstRepeat, keyNextRepeat),
		receiver: ublox.NewReceiver(),
	}
	a.clk.SetImage(cfg.Image)

	port := h.Matrix()
	engine, err := hub75.New(hub75.Config{
		Transfer:  port.Transfer(),
		Clock:     port.Clock(),
		Pulse:     port.Pulse(),
		Row:       port.Row(),
		Buffers:   &a.lbufs,
		PulseBase: pulseBase,
	})
	if err != nil {
		return nil, err
	}
	a.engine = engine

	a.restoreSettings()

	now := h.RTC().Read()
	a.clk.SetTime(2000+uint16(now.Year), now.Month, now.Day,
		now.Hour, now.Minute, now.Second)

	if err := h.GNSS().Configure(); err != nil {
		h.Logger().WriteLineString("gnss: configure: " + err.Error())
		a.clk.SetGPSError()
	}

	a.engine.SetFramebuffer(&a.frames[0])
	a.engine.SetBrightnessSkip(a.clk.BrightnessSkip())
	port.Bind(a.engine.TransferComplete, a.engine.PulseComplete)
	a.engine.Start()
	return a, nil
}

// step runs one tick: buttons, GNSS, timekeeping, rendering, persistence.
func (a *App) step() error {
	a.handleKeys()
	a.handleGNSS()

	now := a.h.RTC().Read()
	newSecond := !a.haveSecond || now.Second != a.lastSecond
	a.lastSecond = now.Second
	a.haveSecond = true

	if newSecond {
		a.discipline(now)
		a.calibrate(now)
	}
	a.clk.SetTime(2000+uint16(now.Year), now.Month, now.Day,
		now.Hour, now.Minute, now.Second)

	a.render()
	a.saveSettings()
	return nil
}

func (a *App) handleKeys() {
	a.keys.Update(a.h.Buttons().Read())
	if a.keys.Active(switches.Enter) {
		a.clk.KeyEnter()
	}
	if a.keys.Active(switches.Back) {
		a.clk.KeyBack()
	}
	if a.keys.Active(switches.QR) {
		a.clk.KeyQR()
	}
	if a.keys.Active(switches.Display) {
		a.clk.KeyDisplay()
	}
	if a.keys.Active(switches.Left) {
		a.clk.KeyLeft()
	}
	if a.keys.Active(switches.Right) {
		a.clk.KeyRight()
	}

	if !a.clk.UseGPSTime() && a.clk.TimeChanged() {
		mt := a.clk.MenuTime()
		set := rtc.DateTime{
			Year:   uint8(mt.Year - 2000),
			Month:  mt.Month,
			Day:    mt.Day,
			Hour:   mt.Hour,
			Minute: mt.Minute,
			Second: mt.Second,
		}
		a.h.RTC().Set(set)
		a.h.Logger().WriteLineString("rtc: set from menu " + set.String())
		a.clk.SetTime(mt.Year, mt.Month, mt.Day, mt.Hour, mt.Minute, mt.Second)
	}
}

func (a *App) handleGNSS() {
	data := a.h.GNSS().Poll()
	if len(data) == 0 {
		return
	}
	a.framer.Feed(data, a.receiver.Frame)
}

// discipline compares the RTC against the latest GNSS solution once per
// second and resets the RTC when they drift apart. It also keeps the LCD
// status current: a solution without a fix feeds an age counter, a
// receiver quiet past the grace period (or any framing error) reads as an
// error.
func (a *App) discipline(now rtc.DateTime) {
	if !a.clk.UseGPSTime() {
		a.clk.SetGPSUnused()
		return
	}

	pvt, err := a.receiver.PVT()
	if err != nil {
		var noPVT *ublox.NoPVTError
		if !errors.As(err, &noPVT) || noPVT.N > noPVTGrace {
			a.clk.SetGPSError()
		}
		return
	}

	if !pvt.Fix {
		a.noFixSeconds++
		a.clk.SetGPSNoLock(a.noFixSeconds)
		return
	}
	a.noFixSeconds = 0
	if !pvt.Usable() {
		a.clk.SetGPSLockInvalid(pvt.NumSV)
		return
	}
	a.clk.SetGPSLockValid(pvt.NumSV)

	if rtc.ShouldSet(now, pvt) {
		set := rtc.FromPVT(pvt)
		a.h.RTC().Set(set)
		a.h.Logger().WriteLineString(fmt.Sprintf("rtc: set from gps %s (was %s)", set, now))
	}
}

// calibrate trims the LSE against GPS time once an hour: readings are
// cleared on the half hour and the correction applied a few seconds later,
// once fresh captures are in.
func (a *App) calibrate(now rtc.DateTime) {
	if lse, gps, ok := a.h.FreqRef().Readings(); ok {
		a.cal.LSEReading(lse)
		a.cal.GPSReading(gps)
	}
	if now.Minute != 30 {
		return
	}
	switch now.Second {
	case 0:
		a.cal.Clear()
	case 6:
		calp, calm, ok := a.cal.Cal()
		if !ok {
			return
		}
		a.h.RTC().SetCalibration(calp, calm)
		a.h.Logger().WriteLineString(fmt.Sprintf("rtc: calibration calp=%d calm=%d", calp, calm))
	}
}

func (a *App) render() {
	next := a.fbIdx ^ 1
	a.clk.RenderMain(&a.frames[next])
	a.engine.SetFramebuffer(&a.frames[next])
	a.engine.SetBrightnessSkip(a.clk.BrightnessSkip())
	a.fbIdx = next

	a.clk.RenderSub(&a.sub)
	if err := a.h.LCD().Present(&a.sub); err != nil {
		a.h.Logger().WriteLineString("lcd: " + err.Error())
	}
}

func (a *App) restoreSettings() {
	words := make([]uint32, clock.SerialisedWords)
	if err := a.h.Backup().Read(words); err != nil {
		a.h.Logger().WriteLineString("backup: read: " + err.Error())
		return
	}
	a.clk.Deserialise(words)
}

func (a *App) saveSettings() {
	if !a.clk.NeedsSaving() {
		return
	}
	words := make([]uint32, clock.SerialisedWords)
	a.clk.Serialise(words)
	if err := a.h.Backup().Write(words); err != nil {
		a.h.Logger().WriteLineString("backup: write: " + err.Error())
	}
}
