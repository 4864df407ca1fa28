// Package switches turns raw button levels sampled at the tick rate into
// press and hold-repeat events.
package switches

// Button identifies one of the six front buttons.
type Button uint8

const (
	Enter Button = iota
	Back
	QR
	Display
	Left
	Right
	NumButtons
)

func (b Button) String() string {
	switch b {
	case Enter:
		return "enter"
	case Back:
		return "back"
	case QR:
		return "qr"
	case Display:
		return "display"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "?"
}

// Switch debounces one button. It reads active on the first tick the button
// is held, again at firstRepeat ticks, then every nextRepeat ticks after.
type Switch struct {
	onTime      uint16
	firstRepeat uint16
	nextRepeat  uint16
}

func NewSwitch(firstRepeat, nextRepeat uint16) Switch {
	return Switch{firstRepeat: firstRepeat, nextRepeat: nextRepeat}
}

// Update feeds the sampled level for this tick, true when pressed.
func (s *Switch) Update(pressed bool) {
	if pressed {
		if s.onTime < 0xFFFF {
			s.onTime++
		}
	} else {
		s.onTime = 0
	}
}

// Poll reports whether the button counts as activated this tick.
func (s *Switch) Poll() bool {
	if s.onTime == 1 {
		return true
	}
	if s.onTime >= s.firstRepeat {
		return (s.onTime-s.firstRepeat)%s.nextRepeat == 0
	}
	return false
}

// Set conditions the full button set.
type Set struct {
	sw [NumButtons]Switch
}

func NewSet(firstRepeat, nextRepeat uint16) *Set {
	s := &Set{}
	for i := range s.sw {
		s.sw[i] = NewSwitch(firstRepeat, nextRepeat)
	}
	return s
}

// Update feeds one tick's levels, indexed by Button.
func (s *Set) Update(pressed [NumButtons]bool) {
	for i := range s.sw {
		s.sw[i].Update(pressed[i])
	}
}

// Active reports whether b is activated this tick.
func (s *Set) Active(b Button) bool {
	return s.sw[b].Poll()
}
