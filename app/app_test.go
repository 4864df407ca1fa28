package app

import (
	"testing"

	"walkclock/clock"
	"walkclock/framebuf"
	"walkclock/hal"
	"walkclock/hub75"
	"walkclock/rtc"
	"walkclock/switches"
	"walkclock/ublox"
)

type fakeHAL struct {
	logger  nopLogger
	matrix  nopMatrix
	lcd     fakeLCD
	buttons fakeButtons
	gnss    fakeGNSS
	rtc     fakeRTC
	backup  fakeBackup
	freq    fakeFreq
}

func (h *fakeHAL) Logger() hal.Logger     { return &h.logger }
func (h *fakeHAL) Matrix() hal.MatrixPort { return &h.matrix }
func (h *fakeHAL) LCD() hal.LCD           { return &h.lcd }
func (h *fakeHAL) Buttons() hal.Buttons   { return &h.buttons }
func (h *fakeHAL) GNSS() hal.GNSS         { return &h.gnss }
func (h *fakeHAL) RTC() hal.RTC           { return &h.rtc }
func (h *fakeHAL) Backup() hal.Backup     { return &h.backup }
func (h *fakeHAL) FreqRef() hal.FreqRef   { return &h.freq }

type nopLogger struct{}

func (nopLogger) WriteLineString(string) {}
func (nopLogger) WriteLineBytes([]byte)  {}

type nopMatrix struct{}

func (*nopMatrix) Transfer() hub75.Transfer { return nopTransfer{} }
func (*nopMatrix) Clock() hub75.PixelClock  { return nopClock{} }
func (*nopMatrix) Pulse() hub75.PulseTimer  { return nopPulse{} }
func (*nopMatrix) Row() hub75.RowSelect     { return nopRow{} }
func (*nopMatrix) Bind(_, _ func())         {}

type nopTransfer struct{}

func (nopTransfer) StartTransfer([]byte) {}
func (nopTransfer) Stop()                {}
func (nopTransfer) AckComplete()         {}

type nopClock struct{}

func (nopClock) Start() {}
func (nopClock) Stop()  {}

type nopPulse struct{}

func (nopPulse) StartOneshot(uint32) {}
func (nopPulse) AckComplete()        {}

type nopRow struct{}

func (nopRow) SetRow(uint8) {}

type fakeLCD struct {
	presents int
	last     framebuf.SubFrame
}

func (l *fakeLCD) Present(f *framebuf.SubFrame) error {
	l.presents++
	l.last = *f
	return nil
}

type fakeButtons struct {
	next [switches.NumButtons]bool
}

func (b *fakeButtons) Read() [switches.NumButtons]bool { return b.next }

type fakeGNSS struct {
	queue [][]byte
}

func (g *fakeGNSS) Configure() error { return nil }

func (g *fakeGNSS) Poll() []byte {
	if len(g.queue) == 0 {
		return nil
	}
	data := g.queue[0]
	g.queue = g.queue[1:]
	return data
}

type fakeRTC struct {
	now  rtc.DateTime
	sets []rtc.DateTime
}

func (r *fakeRTC) Read() rtc.DateTime { return r.now }

func (r *fakeRTC) Set(t rtc.DateTime) {
	r.now = t
	r.sets = append(r.sets, t)
}

func (r *fakeRTC) SetCalibration(uint8, uint16) {}

type fakeBackup struct {
	words  [clock.SerialisedWords]uint32
	writes int
}

func (b *fakeBackup) Read(words []uint32) error {
	copy(words, b.words[:])
	return nil
}

func (b *fakeBackup) Write(words []uint32) error {
	copy(b.words[:], words)
	b.writes++
	return nil
}

type fakeFreq struct{}

func (fakeFreq) Readings() (uint32, uint32, bool) { return 0, 0, false }

func newTestApp(t *testing.T, h *fakeHAL) *App {
	t.Helper()
	a, err := newApp(h, Config{})
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return a
}

// press holds one button for a tick, then releases it for a tick.
func press(t *testing.T, a *App, h *fakeHAL, b switches.Button) {
	t.Helper()
	h.buttons.next[b] = true
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	h.buttons.next[b] = false
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func TestStepSetsRTCFromGNSS(t *testing.T) {
	h := &fakeHAL{}
	h.rtc.now = rtc.DateTime{Year: 26, Month: 8, Day: 30, Hour: 12, Minute: 0, Second: 20}
	h.gnss.queue = [][]byte{ublox.EncodePVT(ublox.PVT{
		ITOW: 1000, Year: 2026, Month: 8, Day: 30,
		Hour: 12, Minute: 0, Second: 30,
		ValidDate: true, ValidTime: true, FullyResolved: true,
		Fix: true, NumSV: 11,
	})}

	a := newTestApp(t, h)
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	if len(h.rtc.sets) != 1 {
		t.Fatalf("RTC set %d times, want 1", len(h.rtc.sets))
	}
	want := rtc.DateTime{Year: 26, Month: 8, Day: 30, Hour: 12, Minute: 0, Second: 30}
	if h.rtc.sets[0] != want {
		t.Errorf("RTC set to %v, want %v", h.rtc.sets[0], want)
	}
	if h.lcd.presents == 0 {
		t.Error("no LCD frame presented")
	}
}

// tickSecond advances the fake RTC one second and runs one step.
func tickSecond(t *testing.T, a *App, h *fakeHAL) {
	t.Helper()
	h.rtc.now.Second++
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func TestSilentReceiverBecomesError(t *testing.T) {
	h := &fakeHAL{}
	h.rtc.now = rtc.DateTime{Year: 26, Month: 8, Day: 30, Hour: 12, Minute: 0, Second: 20}
	a := newTestApp(t, h)

	// The first missed solutions are within the grace period.
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	for i := 0; i < noPVTGrace; i++ {
		tickSecond(t, a, h)
	}
	if got := a.clk.GPSStatus(); got == "GPS: Error" {
		t.Fatalf("error declared during grace period")
	}

	// One more quiet second crosses it.
	tickSecond(t, a, h)
	if got := a.clk.GPSStatus(); got != "GPS: Error" {
		t.Errorf("status after prolonged silence = %q, want %q", got, "GPS: Error")
	}
}

func TestNoFixSolutionsFeedAgeCounter(t *testing.T) {
	h := &fakeHAL{}
	h.rtc.now = rtc.DateTime{Year: 26, Month: 8, Day: 30, Hour: 12, Minute: 0, Second: 20}
	a := newTestApp(t, h)

	noFix := func(i int) []byte {
		return ublox.EncodePVT(ublox.PVT{
			ITOW: uint32(i) * 1000, Year: 2026, Month: 8, Day: 30,
			Hour: 12, Minute: 0, Second: uint8(20 + i),
			ValidDate: true, ValidTime: true, FullyResolved: true,
			Fix: false, NumSV: 2,
		})
	}

	h.gnss.queue = [][]byte{noFix(1)}
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if got := a.clk.GPSStatus(); got != "GPS: No lock 1s" {
		t.Fatalf("status = %q, want %q", got, "GPS: No lock 1s")
	}

	h.gnss.queue = [][]byte{noFix(2)}
	tickSecond(t, a, h)
	h.gnss.queue = [][]byte{noFix(3)}
	tickSecond(t, a, h)
	if got := a.clk.GPSStatus(); got != "GPS: No lock 3s" {
		t.Errorf("status = %q, want %q", got, "GPS: No lock 3s")
	}

	// A fix resets the age counter.
	h.gnss.queue = [][]byte{ublox.EncodePVT(ublox.PVT{
		ITOW: 9000, Year: 2026, Month: 8, Day: 30,
		Hour: 12, Minute: 0, Second: 24,
		ValidDate: true, ValidTime: true, FullyResolved: true,
		Fix: true, NumSV: 7,
	})}
	tickSecond(t, a, h)
	if got := a.clk.GPSStatus(); got != "GPS: Good, 7 SVs" {
		t.Errorf("status = %q, want %q", got, "GPS: Good, 7 SVs")
	}

	h.gnss.queue = [][]byte{noFix(5)}
	tickSecond(t, a, h)
	if got := a.clk.GPSStatus(); got != "GPS: No lock 1s" {
		t.Errorf("status after counter reset = %q, want %q", got, "GPS: No lock 1s")
	}
}

func TestStepIgnoresUnusableSolution(t *testing.T) {
	h := &fakeHAL{}
	h.rtc.now = rtc.DateTime{Year: 26, Month: 8, Day: 30, Hour: 12, Minute: 0, Second: 20}
	h.gnss.queue = [][]byte{ublox.EncodePVT(ublox.PVT{
		ITOW: 1000, Year: 2026, Month: 8, Day: 30,
		Hour: 12, Minute: 0, Second: 30,
		ValidDate: true, ValidTime: true, FullyResolved: false,
		Fix: true, NumSV: 3,
	})}

	a := newTestApp(t, h)
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(h.rtc.sets) != 0 {
		t.Fatalf("RTC set %d times from unusable solution", len(h.rtc.sets))
	}
}

func TestMenuEditPersistsToBackup(t *testing.T) {
	h := &fakeHAL{}
	h.rtc.now = rtc.DateTime{Year: 26, Month: 8, Day: 30, Hour: 12, Minute: 0, Second: 20}
	a := newTestApp(t, h)

	// Open the menu, descend into Date/Time, select GPS time, toggle it.
	press(t, a, h, switches.Enter)
	press(t, a, h, switches.Enter)
	press(t, a, h, switches.Enter)
	press(t, a, h, switches.Right)

	if h.backup.writes == 0 {
		t.Fatal("no backup write after menu edit")
	}
	if a.clk.NeedsSaving() {
		t.Error("needsSaving still set after save")
	}

	restored := clock.New("")
	restored.Deserialise(h.backup.words[:])
	if restored.UseGPSTime() {
		t.Error("restored settings lost the GPS time toggle")
	}
}

func TestSettingsRestoredAtStartup(t *testing.T) {
	donor := clock.New("")
	donor.Menu().Category("Display").SetNumeric("Brightness", 4)
	var words [clock.SerialisedWords]uint32
	donor.Serialise(words[:])

	h := &fakeHAL{}
	h.rtc.now = rtc.DateTime{Year: 26, Month: 8, Day: 30, Hour: 12, Minute: 0, Second: 20}
	h.backup.words = words

	a := newTestApp(t, h)
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if got := a.clk.Brightness(); got != 4 {
		t.Errorf("restored brightness = %d, want 4", got)
	}
	if h.backup.writes != 0 {
		t.Errorf("restore triggered %d backup writes, want 0", h.backup.writes)
	}
}
