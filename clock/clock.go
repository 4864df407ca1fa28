// Package clock is the clock application model: current time with UK DST
// handling, GNSS status, display modes, brightness policy, the settings
// menu, and rendering for both the LED panel and the status LCD.
package clock

import (
	"fmt"
	"image/color"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"

	"walkclock/framebuf"
)

// DefaultURL is encoded in the QR display mode when no URL is configured.
// Uppercase keeps the QR symbol in alphanumeric mode.
const DefaultURL = "HTTPS://EXAMPLE.COM"

// menuVersion guards saved settings. Bump it whenever the menu layout
// changes so stale words are never applied to the wrong settings.
const menuVersion uint16 = 2

// DateTime is a full calendar time, year as-is (not offset from 2000).
type DateTime struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// Time converts to a stdlib time in UTC.
func (d DateTime) Time() time.Time {
	return time.Date(int(d.Year), time.Month(d.Month), int(d.Day),
		int(d.Hour), int(d.Minute), int(d.Second), 0, time.UTC)
}

func fromTime(t time.Time) DateTime {
	return DateTime{
		Year:   uint16(t.Year()),
		Month:  uint8(t.Month()),
		Day:    uint8(t.Day()),
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
		Second: uint8(t.Second()),
	}
}

// MonthShort is the three-letter month name used on the big display.
func (d DateTime) MonthShort() string {
	names := [...]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
		"JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	return names[d.Month-1]
}

// Mode is what the LED panel is showing.
type Mode uint8

const (
	ModeOff Mode = iota
	ModeClock
	ModeQR
	ModeImage
)

// Clock is the application model. It is not safe for concurrent use; the
// tick loop owns it.
type Clock struct {
	utc   DateTime
	local DateTime

	gpsStatus   string
	frame       uint16
	mode        Mode
	needsSaving bool
	menu        *Menu

	url   string
	image *framebuf.Frame

	qrBitmap [][]bool
}

// New returns a clock in Clock mode showing the zero time, encoding url in
// QR mode (DefaultURL when empty).
func New(url string) *Clock {
	if url == "" {
		url = DefaultURL
	}
	c := &Clock{
		mode: ModeClock,
		url:  url,
		menu: newMenu(),
	}
	return c
}

func newMenu() *Menu {
	return NewMenu(
		NewCategory(nameDateTime,
			NewOnOff(nameGPSTime, true, true),
			NewNumeric(nameYear, false, 2000, 2099, 2000),
			NewNumeric(nameMonth, false, 1, 12, 1),
			NewNumeric(nameDay, false, 1, 31, 1),
			NewNumeric(nameHour, false, 0, 23, 0),
			NewNumeric(nameMinute, false, 0, 59, 0),
			NewNumeric(nameSecond, false, 0, 59, 0),
			NewOnOff(nameAutoDST, true, true),
			NewNumeric(nameUTCOffset, false, -12, 12, 0),
		),
		NewCategory(nameDisplay,
			NewNumeric(nameBrightness, true, 0, 10, 10),
			NewOnOff(nameDimAtNight, true, true),
			NewNumeric(nameDimBrightness, true, 0, 10, 8),
			NewNumeric(nameDimStartHour, true, 0, 23, 23),
			NewNumeric(nameDimEndHour, true, 0, 23, 7),
		),
	)
}

// Menu exposes the settings menu, mainly for tests.
func (c *Clock) Menu() *Menu { return c.menu }

// Mode reports what the panel is showing.
func (c *Clock) Mode() Mode { return c.mode }

// Local reports the current local time.
func (c *Clock) Local() DateTime { return c.local }

// SetImage installs the picture shown in image mode, or nil for none.
func (c *Clock) SetImage(img *framebuf.Frame) { c.image = img }

// SetTime sets the current UTC time and refreshes the derived local time
// and the menu's date/time entries.
func (c *Clock) SetTime(year uint16, month, day, hour, minute, second uint8) {
	now := DateTime{Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second}
	if now == c.utc {
		return
	}
	c.utc = now
	c.local = c.localTime()

	date := c.menu.Category(nameDateTime)
	date.SetNumeric(nameYear, int16(year))
	date.SetNumeric(nameMonth, int16(month))
	date.SetNumeric(nameDay, int16(day))
	date.SetNumeric(nameHour, int16(hour))
	date.SetNumeric(nameMinute, int16(minute))
	date.SetNumeric(nameSecond, int16(second))
}

// GPS status strings for the LCD.

// GPSStatus is the receiver status line shown on the LCD.
func (c *Clock) GPSStatus() string { return c.gpsStatus }

func (c *Clock) SetGPSError() { c.gpsStatus = "GPS: Error" }

func (c *Clock) SetGPSUnused() { c.gpsStatus = "GPS: Unused" }

func (c *Clock) SetGPSLockValid(numSV uint8) {
	c.gpsStatus = fmt.Sprintf("GPS: Good, %d SVs", numSV)
}

func (c *Clock) SetGPSLockInvalid(numSV uint8) {
	c.gpsStatus = fmt.Sprintf("GPS: Wait, %d SVs", numSV)
}

// SetGPSNoLock formats the seconds since the last good lock into a short
// age.
func (c *Clock) SetGPSNoLock(sinceSeconds uint32) {
	var count uint32
	var unit string
	switch {
	case sinceSeconds < 60:
		count, unit = sinceSeconds, "s"
	case sinceSeconds < 60*60:
		count, unit = sinceSeconds/60, "m"
	case sinceSeconds < 24*60*60:
		count, unit = sinceSeconds/(60*60), "h"
	default:
		count, unit = sinceSeconds/(24*60*60), "d"
	}
	c.gpsStatus = fmt.Sprintf("GPS: No lock %d%s", count, unit)
}

// Key handlers, called once per conditioned button activation.

func (c *Clock) KeyEnter() { c.menu.Enter() }

func (c *Clock) KeyBack() { c.menu.Back() }

// KeyQR toggles between the clock face and the QR code. Image mode jumps
// to QR; an off panel stays off.
func (c *Clock) KeyQR() {
	switch c.mode {
	case ModeClock, ModeImage:
		c.mode = ModeQR
	case ModeQR:
		c.mode = ModeClock
	}
}

// KeyDisplay cycles clock, image, off.
func (c *Clock) KeyDisplay() {
	switch c.mode {
	case ModeOff:
		c.mode = ModeClock
	case ModeClock:
		c.mode = ModeImage
	default:
		c.mode = ModeOff
	}
}

func (c *Clock) KeyLeft() {
	if c.menu.Active() && c.menu.Dec() {
		c.processMenuUpdate()
	}
}

func (c *Clock) KeyRight() {
	if c.menu.Active() && c.menu.Inc() {
		c.processMenuUpdate()
	}
}

// UseGPSTime reports whether the time should come from GNSS rather than
// the menu.
func (c *Clock) UseGPSTime() bool {
	return c.menu.Category(nameDateTime).OnOff(nameGPSTime)
}

// MenuTime is the UTC time currently entered in the menu.
func (c *Clock) MenuTime() DateTime {
	date := c.menu.Category(nameDateTime)
	return DateTime{
		Year:   uint16(date.Numeric(nameYear)),
		Month:  uint8(date.Numeric(nameMonth)),
		Day:    uint8(date.Numeric(nameDay)),
		Hour:   uint8(date.Numeric(nameHour)),
		Minute: uint8(date.Numeric(nameMinute)),
		Second: uint8(date.Numeric(nameSecond)),
	}
}

// TimeChanged reports whether the menu time differs from the clock's, which
// happens when the user edits it. Check between key handling and SetTime.
func (c *Clock) TimeChanged() bool {
	return c.utc != c.MenuTime()
}

// Brightness is the 0..10 panel brightness for right now: 0 when the panel
// is off, the dim level during configured night hours, the menu brightness
// otherwise.
func (c *Clock) Brightness() uint8 {
	if c.mode == ModeOff {
		return 0
	}
	disp := c.menu.Category(nameDisplay)
	brightness := uint8(disp.Numeric(nameBrightness))
	if disp.OnOff(nameDimAtNight) {
		start := uint8(disp.Numeric(nameDimStartHour))
		end := uint8(disp.Numeric(nameDimEndHour))
		if c.local.Hour >= start || c.local.Hour < end {
			return uint8(disp.Numeric(nameDimBrightness))
		}
	}
	return brightness
}

// BrightnessSkip converts the brightness to the render pipeline's
// skipped-phase count.
func (c *Clock) BrightnessSkip() uint8 {
	return 10 - c.Brightness()
}

// NeedsSaving reports whether settings changed since the last Serialise.
func (c *Clock) NeedsSaving() bool { return c.needsSaving }

// localTime derives local time from UTC and the offset settings.
func (c *Clock) localTime() DateTime {
	return fromTime(c.utc.Time().Add(c.utcOffset()))
}

func (c *Clock) utcOffset() time.Duration {
	date := c.menu.Category(nameDateTime)
	if date.OnOff(nameAutoDST) {
		return ukDSTOffset(c.utc.Time())
	}
	return time.Duration(date.Numeric(nameUTCOffset)) * time.Hour
}

// ukDSTOffset is UTC+1 between 01:00 UTC on the last Sunday of March and
// 01:00 UTC on the last Sunday of October, UTC otherwise.
func ukDSTOffset(utc time.Time) time.Duration {
	start := lastSunday(utc.Year(), time.March).Add(time.Hour)
	end := lastSunday(utc.Year(), time.October).Add(time.Hour)
	if !utc.Before(start) && !utc.After(end) {
		return time.Hour
	}
	return 0
}

func lastSunday(year int, month time.Month) time.Time {
	end := time.Date(year, month, 31, 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, 0, -int(end.Weekday()))
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// processMenuUpdate re-derives dependent menu state after a value change.
func (c *Clock) processMenuUpdate() {
	date := c.menu.Category(nameDateTime)
	gps := date.OnOff(nameGPSTime)
	for _, name := range []string{nameYear, nameMonth, nameDay,
		nameHour, nameMinute, nameSecond} {
		date.SetEnabled(name, !gps)
	}
	dst := date.OnOff(nameAutoDST)
	date.SetEnabled(nameUTCOffset, !dst)

	year := int(date.Numeric(nameYear))
	month := time.Month(date.Numeric(nameMonth))
	date.SetMax(nameDay, int16(daysInMonth(year, month)))

	if !dst {
		c.local = c.localTime()
	}

	disp := c.menu.Category(nameDisplay)
	dim := disp.OnOff(nameDimAtNight)
	disp.SetEnabled(nameDimBrightness, dim)
	disp.SetEnabled(nameDimStartHour, dim)
	disp.SetEnabled(nameDimEndHour, dim)

	c.needsSaving = true
}

var (
	white   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	magenta = color.RGBA{R: 255, B: 255, A: 255}
)

// RenderMain draws the LED panel frame for this tick.
func (c *Clock) RenderMain(fb *framebuf.Frame) {
	c.frame++
	switch c.mode {
	case ModeOff:
		fb.Clear(0, 0, 0)
	case ModeClock:
		fb.Clear(0, 0, 0)
		c.renderBigDateTime(fb)
		c.renderGreetings(fb)
	case ModeQR:
		fb.Clear(0, 0, 0)
		c.renderQR(fb)
	case ModeImage:
		if c.image != nil {
			*fb = *c.image
		} else {
			fb.Clear(0, 0, 0)
		}
		c.renderSmallDateTime(fb)
		c.renderGreetings(fb)
	}
}

// renderBigDateTime draws the date and time large and centred.
func (c *Clock) renderBigDateTime(fb *framebuf.Frame) {
	d := &framebuf.Displayer{Frame: fb}

	date := fmt.Sprintf("%d %s", c.local.Day, c.local.MonthShort())
	writeCentered(d, &proggy.TinySZ8pt7b, framebuf.Width, 18, date, white)

	sep := ":"
	if c.local.Second%2 == 1 {
		sep = " "
	}
	t := fmt.Sprintf("%02d%s%02d", c.local.Hour, sep, c.local.Minute)
	writeCentered(d, &freemono.Regular9pt7b, framebuf.Width, 44, t, white)
}

// renderSmallDateTime draws a compact date and time along the top edge, for
// use over an image.
func (c *Clock) renderSmallDateTime(fb *framebuf.Frame) {
	d := &framebuf.Displayer{Frame: fb}
	font := &proggy.TinySZ8pt7b

	date := fmt.Sprintf("%d/%d", c.local.Day, c.local.Month)
	tinyfont.WriteLine(d, font, 0, 7, date, white)

	sep := ":"
	if c.local.Second%2 == 1 {
		sep = " "
	}
	t := fmt.Sprintf("%02d%s%02d", c.local.Hour, sep, c.local.Minute)
	w, _ := tinyfont.LineWidth(font, t)
	tinyfont.WriteLine(d, font, int16(framebuf.Width-int(w)), 7, t, white)
}

// renderGreetings draws seasonal extras.
func (c *Clock) renderGreetings(fb *framebuf.Frame) {
	if c.local.Month != 12 || c.local.Day != 31 {
		return
	}
	d := &framebuf.Displayer{Frame: fb}
	font := &proggy.TinySZ8pt7b
	tinyfont.WriteLine(d, font, 0, 60, "Happy", magenta)
	w, _ := tinyfont.LineWidth(font, "NYE!")
	tinyfont.WriteLine(d, font, int16(framebuf.Width-int(w)), 60, "NYE!", magenta)
}

// RenderSub draws the status LCD frame for this tick.
func (c *Clock) RenderSub(sub *framebuf.SubFrame) {
	sub.Clear(0, 0, 0)
	if c.menu.Active() {
		c.renderMenu(sub)
	} else {
		c.renderStatus(sub)
	}
}

func (c *Clock) renderStatus(sub *framebuf.SubFrame) {
	d := &framebuf.SubDisplayer{Frame: sub}
	font := &proggy.TinySZ8pt7b

	s := fmt.Sprintf("%02d/%02d/%02d %02d:%02d:%02d",
		c.local.Day, c.local.Month, c.local.Year%100,
		c.local.Hour, c.local.Minute, c.local.Second)
	tinyfont.WriteLine(d, font, 0, 12, s, white)
	tinyfont.WriteLine(d, font, 0, 32, c.gpsStatus, white)
	tinyfont.WriteLine(d, font, 18, 52, "Press ENTER", white)
	tinyfont.WriteLine(d, font, 18, 70, "to open menu", white)
}

func (c *Clock) renderMenu(sub *framebuf.SubFrame) {
	d := &framebuf.SubDisplayer{Frame: sub}
	font := &proggy.TinySZ8pt7b

	writeCentered(d, font, framebuf.SubWidth, 12, "MENU", white)

	category := c.menu.CategoryName()
	if !c.menu.CategorySelected() {
		category = "< " + category + " >"
	}
	writeCentered(d, font, framebuf.SubWidth, 32, category, white)

	setting := c.menu.SettingName()
	if c.menu.CategorySelected() && !c.menu.SettingSelected() {
		setting = "< " + setting + " >"
	}
	writeCentered(d, font, framebuf.SubWidth, 52, setting, white)

	value := c.menu.RenderValue()
	if c.menu.CategorySelected() && c.menu.SettingSelected() {
		value = "< " + value + " >"
	}
	writeCentered(d, font, framebuf.SubWidth, 70, value, white)
}

func writeCentered(d drivers.Displayer, font tinyfont.Fonter, width int, y int16, s string, c color.RGBA) {
	w, _ := tinyfont.LineWidth(font, s)
	x := (width - int(w)) / 2
	if x < 0 {
		x = 0
	}
	tinyfont.WriteLine(d, font, int16(x), y, s, c)
}
