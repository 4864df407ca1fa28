package switches

import "testing"

func TestSwitchPressAndRepeat(t *testing.T) {
	// 20 Hz tick rate: repeat after one second held, then 4 Hz.
	s := NewSwitch(20, 5)

	var active []int
	for tick := 0; tick < 50; tick++ {
		s.Update(true)
		if s.Poll() {
			active = append(active, tick)
		}
	}

	want := []int{0, 19, 24, 29, 34, 39, 44, 49}
	if len(active) != len(want) {
		t.Fatalf("active ticks %v, want %v", active, want)
	}
	for i := range want {
		if active[i] != want[i] {
			t.Fatalf("active ticks %v, want %v", active, want)
		}
	}
}

func TestSwitchReleaseResets(t *testing.T) {
	s := NewSwitch(20, 5)

	s.Update(true)
	if !s.Poll() {
		t.Fatal("no activation on first pressed tick")
	}
	s.Update(true)
	if s.Poll() {
		t.Fatal("activation on second pressed tick")
	}
	s.Update(false)
	if s.Poll() {
		t.Fatal("activation while released")
	}
	s.Update(true)
	if !s.Poll() {
		t.Fatal("no activation on re-press")
	}
}

func TestSetIndependence(t *testing.T) {
	set := NewSet(20, 5)

	var levels [NumButtons]bool
	levels[Enter] = true
	levels[Left] = true
	set.Update(levels)

	if !set.Active(Enter) || !set.Active(Left) {
		t.Fatal("pressed buttons not active")
	}
	if set.Active(Back) || set.Active(QR) || set.Active(Display) || set.Active(Right) {
		t.Fatal("released button active")
	}

	levels[Enter] = false
	set.Update(levels)
	if set.Active(Enter) {
		t.Fatal("released button still active")
	}
	if set.Active(Left) {
		t.Fatal("held button active before first repeat")
	}
}
