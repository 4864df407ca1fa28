//go:build tinygo

package hal

import (
	"walkclock/hub75"
	"walkclock/rtc"
)

// The matrix DMA pipeline, calendar RTC, backup registers and LSE capture
// timers are chip peripherals the generic machine package does not model.
// Board support packages replace these stubs with real drivers.

type stubMatrix struct{}

func (stubMatrix) Transfer() hub75.Transfer { return stubTransfer{} }
func (stubMatrix) Clock() hub75.PixelClock  { return stubClock{} }
func (stubMatrix) Pulse() hub75.PulseTimer  { return stubPulse{} }
func (stubMatrix) Row() hub75.RowSelect     { return stubRow{} }
func (stubMatrix) Bind(_, _ func())         {}

type stubTransfer struct{}

func (stubTransfer) StartTransfer(_ []byte) {}
func (stubTransfer) Stop()                  {}
func (stubTransfer) AckComplete()           {}

type stubClock struct{}

func (stubClock) Start() {}
func (stubClock) Stop()  {}

type stubPulse struct{}

func (stubPulse) StartOneshot(_ uint32) {}
func (stubPulse) AckComplete()          {}

type stubRow struct{}

func (stubRow) SetRow(_ uint8) {}

type stubRTC struct {
	now rtc.DateTime
}

func (r *stubRTC) Read() rtc.DateTime               { return r.now }
func (r *stubRTC) Set(t rtc.DateTime)               { r.now = t }
func (r *stubRTC) SetCalibration(_ uint8, _ uint16) {}

type stubBackup struct {
	words [32]uint32
}

func (b *stubBackup) Read(words []uint32) error {
	copy(words, b.words[:])
	return nil
}

func (b *stubBackup) Write(words []uint32) error {
	copy(b.words[:], words)
	return nil
}

type stubFreqRef struct{}

func (stubFreqRef) Readings() (lse, gps uint32, ok bool) { return 0, 0, false }
