package clock

import "strconv"

// Setting names. These appear on the LCD, so they are kept short enough for
// one menu line.
const (
	nameDateTime  = "Date/Time"
	nameGPSTime   = "GPS time"
	nameYear      = "Year"
	nameMonth     = "Month"
	nameDay       = "Day"
	nameHour      = "Hour"
	nameMinute    = "Minute"
	nameSecond    = "Second"
	nameAutoDST   = "Auto DST"
	nameUTCOffset = "UTC offset"

	nameDisplay       = "Display"
	nameBrightness    = "Brightness"
	nameDimAtNight    = "Dim at night"
	nameDimBrightness = "Dim brightness"
	nameDimStartHour  = "Dim start hour"
	nameDimEndHour    = "Dim end hour"
)

type valueKind uint8

const (
	valueOnOff valueKind = iota
	valueNumeric
	valueChoice
)

// Setting is one adjustable menu entry: an on/off switch, a bounded
// numeric, or a choice from a fixed list.
type Setting struct {
	Name    string
	Enabled bool

	kind    valueKind
	on      bool
	min     int16
	max     int16
	val     int16
	index   int
	choices []string
}

func NewOnOff(name string, enabled, value bool) *Setting {
	return &Setting{Name: name, Enabled: enabled, kind: valueOnOff, on: value}
}

func NewNumeric(name string, enabled bool, min, max, val int16) *Setting {
	return &Setting{Name: name, Enabled: enabled, kind: valueNumeric, min: min, max: max, val: val}
}

func NewChoice(name string, enabled bool, index int, choices []string) *Setting {
	return &Setting{Name: name, Enabled: enabled, kind: valueChoice, index: index, choices: choices}
}

func (s *Setting) OnOff() bool { return s.kind == valueOnOff && s.on }

func (s *Setting) Numeric() int16 { return s.val }

// SetNumeric stores v if it is in range, reporting whether it was stored.
func (s *Setting) SetNumeric(v int16) bool {
	if s.kind != valueNumeric || v < s.min || v > s.max {
		return false
	}
	s.val = v
	return true
}

func (s *Setting) SetOnOff(v bool) {
	if s.kind == valueOnOff {
		s.on = v
	}
}

func (s *Setting) Choice() string {
	if s.kind != valueChoice || s.index >= len(s.choices) {
		return ""
	}
	return s.choices[s.index]
}

// SetMax moves the numeric upper bound, clamping the value to it.
func (s *Setting) SetMax(max int16) {
	if s.kind != valueNumeric {
		return
	}
	s.max = max
	if s.val > max {
		s.val = max
	}
}

// Inc steps the value forward, wrapping at the end of its range.
func (s *Setting) Inc() {
	switch s.kind {
	case valueOnOff:
		s.on = !s.on
	case valueNumeric:
		if s.val == s.max {
			s.val = s.min
		} else {
			s.val++
		}
	case valueChoice:
		if s.index == len(s.choices)-1 {
			s.index = 0
		} else {
			s.index++
		}
	}
}

// Dec steps the value backward, wrapping at the start of its range.
func (s *Setting) Dec() {
	switch s.kind {
	case valueOnOff:
		s.on = !s.on
	case valueNumeric:
		if s.val == s.min {
			s.val = s.max
		} else {
			s.val--
		}
	case valueChoice:
		if s.index == 0 {
			s.index = len(s.choices) - 1
		} else {
			s.index--
		}
	}
}

// Render formats the value for the menu's value line.
func (s *Setting) Render() string {
	switch s.kind {
	case valueOnOff:
		if s.on {
			return "On"
		}
		return "Off"
	case valueNumeric:
		return strconv.Itoa(int(s.val))
	case valueChoice:
		return s.Choice()
	}
	return ""
}

func (s *Setting) serialise() uint16 {
	switch s.kind {
	case valueOnOff:
		if s.on {
			return 1
		}
		return 0
	case valueNumeric:
		return uint16(s.val)
	case valueChoice:
		return uint16(s.index)
	}
	return 0
}

func (s *Setting) deserialise(word uint16) {
	switch s.kind {
	case valueOnOff:
		s.on = word != 0
	case valueNumeric:
		s.val = int16(word)
	case valueChoice:
		if int(word) < len(s.choices) {
			s.index = int(word)
		}
	}
}

// Category groups related settings under one menu heading.
type Category struct {
	Name     string
	Settings []*Setting

	index    int
	selected bool
}

func NewCategory(name string, settings ...*Setting) *Category {
	return &Category{Name: name, Settings: settings}
}

// Setting finds a setting by name, or nil.
func (c *Category) Setting(name string) *Setting {
	for _, s := range c.Settings {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (c *Category) OnOff(name string) bool {
	if s := c.Setting(name); s != nil {
		return s.OnOff()
	}
	return false
}

func (c *Category) Numeric(name string) int16 {
	if s := c.Setting(name); s != nil {
		return s.Numeric()
	}
	return 0
}

func (c *Category) SetNumeric(name string, v int16) bool {
	if s := c.Setting(name); s != nil {
		return s.SetNumeric(v)
	}
	return false
}

func (c *Category) SetEnabled(name string, enabled bool) {
	if s := c.Setting(name); s != nil {
		s.Enabled = enabled
	}
}

func (c *Category) SetMax(name string, max int16) {
	if s := c.Setting(name); s != nil {
		s.SetMax(max)
	}
}

func (c *Category) settingName() string { return c.Settings[c.index].Name }

func (c *Category) renderValue() string { return c.Settings[c.index].Render() }

// inc moves to the next enabled setting, or steps the selected setting's
// value. Reports whether a value changed.
func (c *Category) inc() bool {
	if c.selected {
		c.Settings[c.index].Inc()
		return true
	}
	for {
		if c.index == len(c.Settings)-1 {
			c.index = 0
		} else {
			c.index++
		}
		if c.Settings[c.index].Enabled {
			return false
		}
	}
}

func (c *Category) dec() bool {
	if c.selected {
		c.Settings[c.index].Dec()
		return true
	}
	for {
		if c.index == 0 {
			c.index = len(c.Settings) - 1
		} else {
			c.index--
		}
		if c.Settings[c.index].Enabled {
			return false
		}
	}
}

// Menu is the two-level settings menu: pick a category, pick a setting,
// adjust the value.
type Menu struct {
	Categories []*Category

	index    int
	active   bool
	selected bool
}

func NewMenu(categories ...*Category) *Menu {
	return &Menu{Categories: categories}
}

// Active reports whether the menu is open.
func (m *Menu) Active() bool { return m.active }

// Category finds a category by name, or nil.
func (m *Menu) Category(name string) *Category {
	for _, c := range m.Categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// CategoryName is the name of the highlighted category.
func (m *Menu) CategoryName() string { return m.Categories[m.index].Name }

// CategorySelected reports whether navigation has descended into the
// highlighted category.
func (m *Menu) CategorySelected() bool { return m.selected }

// SettingName is the name of the highlighted setting in the current category.
func (m *Menu) SettingName() string { return m.Categories[m.index].settingName() }

// SettingSelected reports whether the highlighted setting's value is being
// adjusted.
func (m *Menu) SettingSelected() bool { return m.Categories[m.index].selected }

// RenderValue formats the highlighted setting's value.
func (m *Menu) RenderValue() string { return m.Categories[m.index].renderValue() }

// Enter opens the menu, descends into the category, then toggles value
// adjustment.
func (m *Menu) Enter() {
	if !m.active {
		m.active = true
		m.selected = false
		return
	}
	if m.selected {
		c := m.Categories[m.index]
		c.selected = !c.selected
	} else {
		m.selected = true
	}
}

// Back ascends one level, closing the menu from the top.
func (m *Menu) Back() {
	if !m.selected {
		m.active = false
		return
	}
	c := m.Categories[m.index]
	if c.selected {
		c.selected = false
	} else {
		m.selected = false
	}
}

// Inc handles the RIGHT key, reporting whether a value changed.
func (m *Menu) Inc() bool {
	if m.selected {
		return m.Categories[m.index].inc()
	}
	if m.index == len(m.Categories)-1 {
		m.index = 0
	} else {
		m.index++
	}
	return false
}

// Dec handles the LEFT key, reporting whether a value changed.
func (m *Menu) Dec() bool {
	if m.selected {
		return m.Categories[m.index].dec()
	}
	if m.index == 0 {
		m.index = len(m.Categories) - 1
	} else {
		m.index--
	}
	return false
}

// Serialise appends one word per setting, in declaration order.
func (m *Menu) Serialise(data []uint16) int {
	n := 0
	for _, c := range m.Categories {
		for _, s := range c.Settings {
			if n < len(data) {
				data[n] = s.serialise()
				n++
			}
		}
	}
	return n
}

// Deserialise applies one word per setting, in declaration order.
func (m *Menu) Deserialise(data []uint16) {
	n := 0
	for _, c := range m.Categories {
		for _, s := range c.Settings {
			if n < len(data) {
				s.deserialise(data[n])
				n++
			}
		}
	}
}

// NumSettings counts the serialised words the menu occupies.
func (m *Menu) NumSettings() int {
	n := 0
	for _, c := range m.Categories {
		n += len(c.Settings)
	}
	return n
}
