package clock

import "testing"

func TestMenuNavigation(t *testing.T) {
	m := newMenu()
	if m.Active() {
		t.Fatal("menu starts open")
	}

	m.Enter()
	if !m.Active() || m.CategorySelected() {
		t.Fatal("Enter did not open at category level")
	}
	if m.CategoryName() != nameDateTime {
		t.Fatalf("first category %q", m.CategoryName())
	}

	// Categories wrap in both directions.
	m.Inc()
	if m.CategoryName() != nameDisplay {
		t.Fatalf("after Inc: %q", m.CategoryName())
	}
	m.Inc()
	if m.CategoryName() != nameDateTime {
		t.Fatalf("category wrap: %q", m.CategoryName())
	}
	m.Dec()
	if m.CategoryName() != nameDisplay {
		t.Fatalf("after Dec: %q", m.CategoryName())
	}
	m.Dec()

	m.Enter()
	if !m.CategorySelected() || m.SettingSelected() {
		t.Fatal("Enter did not descend into category")
	}
	if m.SettingName() != nameGPSTime {
		t.Fatalf("first setting %q", m.SettingName())
	}

	// Disabled settings are skipped: with GPS time on only GPS time and
	// auto DST are enabled in the date/time category.
	m.Inc()
	if m.SettingName() != nameAutoDST {
		t.Fatalf("Inc did not skip disabled settings: %q", m.SettingName())
	}
	m.Inc()
	if m.SettingName() != nameGPSTime {
		t.Fatalf("setting wrap with skip: %q", m.SettingName())
	}
	m.Dec()
	if m.SettingName() != nameAutoDST {
		t.Fatalf("Dec did not skip disabled settings: %q", m.SettingName())
	}

	// Enter selects the value; Inc now changes it and reports so.
	m.Enter()
	if !m.SettingSelected() {
		t.Fatal("Enter did not select setting")
	}
	if m.RenderValue() != "On" {
		t.Fatalf("value %q", m.RenderValue())
	}
	if !m.Inc() {
		t.Fatal("value change not reported")
	}
	if m.RenderValue() != "Off" {
		t.Fatalf("value after Inc %q", m.RenderValue())
	}

	// Back unwinds one level at a time.
	m.Back()
	if m.SettingSelected() {
		t.Fatal("Back did not deselect setting")
	}
	m.Back()
	if m.CategorySelected() {
		t.Fatal("Back did not leave category")
	}
	m.Back()
	if m.Active() {
		t.Fatal("Back did not close menu")
	}
}

func TestNumericWrap(t *testing.T) {
	s := NewNumeric("n", true, -2, 3, 3)
	s.Inc()
	if s.Numeric() != -2 {
		t.Fatalf("wrap up: %d", s.Numeric())
	}
	s.Dec()
	if s.Numeric() != 3 {
		t.Fatalf("wrap down: %d", s.Numeric())
	}
	if s.SetNumeric(4) {
		t.Fatal("out-of-range value accepted")
	}
	if !s.SetNumeric(0) || s.Numeric() != 0 {
		t.Fatal("in-range value rejected")
	}
	if s.Render() != "0" {
		t.Fatalf("render %q", s.Render())
	}
}

func TestChoiceWrap(t *testing.T) {
	s := NewChoice("c", true, 0, []string{"a", "b", "c"})
	s.Dec()
	if s.Choice() != "c" {
		t.Fatalf("wrap down: %q", s.Choice())
	}
	s.Inc()
	if s.Choice() != "a" {
		t.Fatalf("wrap up: %q", s.Choice())
	}
}

func TestSettingSerialiseNegative(t *testing.T) {
	s := NewNumeric("offset", true, -12, 12, -5)
	word := s.serialise()
	s2 := NewNumeric("offset", true, -12, 12, 0)
	s2.deserialise(word)
	if s2.Numeric() != -5 {
		t.Fatalf("negative round trip: %d", s2.Numeric())
	}
}

func TestSetMaxClamps(t *testing.T) {
	s := NewNumeric("day", true, 1, 31, 31)
	s.SetMax(30)
	if s.Numeric() != 30 {
		t.Fatalf("clamp: %d", s.Numeric())
	}
	s.SetMax(31)
	if s.Numeric() != 30 {
		t.Fatalf("raising max moved value: %d", s.Numeric())
	}
}
