// Package hal is the only contact point between the clock firmware and the
// hardware. Each target (host simulator, STM32 board) supplies one HAL
// implementation; everything above this package is portable.
package hal

import (
	"walkclock/framebuf"
	"walkclock/hub75"
	"walkclock/rtc"
	"walkclock/switches"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// MatrixPort exposes the peripherals the BCM engine drives: the line DMA
// channel, its pixel clock, the one-shot OE pulse timer, and the row
// address lines. Bind registers the two interrupt callbacks; they are
// invoked from the platform's interrupt (or simulation) context.
type MatrixPort interface {
	Transfer() hub75.Transfer
	Clock() hub75.PixelClock
	Pulse() hub75.PulseTimer
	Row() hub75.RowSelect
	Bind(onTransferComplete, onPulseComplete func())
}

// LCD is the small status display under the matrix.
type LCD interface {
	Present(f *framebuf.SubFrame) error
}

// Buttons samples the front-panel switches. Index by switches.Button.
type Buttons interface {
	Read() [switches.NumButtons]bool
}

// GNSS is the u-blox receiver serial link. Poll returns whatever bytes
// have arrived since the last call, or nil.
type GNSS interface {
	Configure() error
	Poll() []byte
}

// RTC is the battery-backed calendar clock.
type RTC interface {
	Read() rtc.DateTime
	Set(t rtc.DateTime)
	SetCalibration(calp uint8, calm uint16)
}

// Backup is the small battery-backed register file that survives power
// loss. Reads and writes move whole words.
type Backup interface {
	Read(words []uint32) error
	Write(words []uint32) error
}

// FreqRef exposes the timer that counts the 32 kHz crystal against the
// GNSS timepulse. Readings reports the latest capture pair, if one has
// completed since the last call.
type FreqRef interface {
	Readings() (lse, gps uint32, ok bool)
}

// HAL aggregates every peripheral the firmware touches.
type HAL interface {
	Logger() Logger
	Matrix() MatrixPort
	LCD() LCD
	Buttons() Buttons
	GNSS() GNSS
	RTC() RTC
	Backup() Backup
	FreqRef() FreqRef
}
