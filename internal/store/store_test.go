package store

import (
	"fmt"
	"testing"

	"pinboard/internal/catalog"
	"pinboard/internal/domain"
)

// newTestStore creates a store with sequential IDs
func newTestStore(t *testing.T) *Store {
	t.Helper()
	n := 0
	return New(catalog.Default(), WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("c%d", n)
	}))
}

func place(t *testing.T, s *Store, typ domain.ComponentType) domain.Component {
	t.Helper()
	c, ok := s.Place(typ, domain.Position{X: 10, Y: 20})
	if !ok {
		t.Fatalf("Place(%s) failed", typ)
	}
	return c
}

func TestPlace(t *testing.T) {
	t.Run("assigns id and selects", func(t *testing.T) {
		s := newTestStore(t)
		c := place(t, s, domain.TypeServo)
		if c.ID != "c1" {
			t.Errorf("expected id c1, got %s", c.ID)
		}
		sel, ok := s.Selected()
		if !ok || sel.ID != c.ID {
			t.Errorf("expected %s selected, got %v", c.ID, sel)
		}
		if c.Pin != "" {
			t.Errorf("servo should not be bound, got pin %q", c.Pin)
		}
	})

	t.Run("unknown type is a no-op", func(t *testing.T) {
		s := newTestStore(t)
		if _, ok := s.Place("flux-capacitor", domain.Position{}); ok {
			t.Error("expected unknown type to be rejected")
		}
		if s.Len() != 0 {
			t.Errorf("expected empty store, got %d", s.Len())
		}
	})

	t.Run("second controller is a no-op", func(t *testing.T) {
		s := newTestStore(t)
		first := place(t, s, domain.ControllerType)
		for i := 0; i < 3; i++ {
			if _, ok := s.Place(domain.ControllerType, domain.Position{}); ok {
				t.Fatal("expected second controller to be rejected")
			}
		}
		if len(domain.OfType(s.Components(), domain.ControllerType)) != 1 {
			t.Error("expected exactly one controller")
		}
		sel, _ := s.Selected()
		if sel.ID != first.ID {
			t.Error("rejected placement should not change selection")
		}
	})

	t.Run("other boards are not limited", func(t *testing.T) {
		s := newTestStore(t)
		place(t, s, domain.ControllerType)
		place(t, s, domain.TypeArduinoMega)
		place(t, s, domain.TypeArduinoMega)
		if s.Len() != 3 {
			t.Errorf("expected 3 components, got %d", s.Len())
		}
	})

	t.Run("negative position is clamped", func(t *testing.T) {
		s := newTestStore(t)
		c, _ := s.Place(domain.TypeLED, domain.Position{X: -5, Y: 7})
		if c.Position.X != 0 || c.Position.Y != 7 {
			t.Errorf("expected (0,7), got %+v", c.Position)
		}
	})
}

func TestPlacePinDefaults(t *testing.T) {
	s := newTestStore(t)
	place(t, s, domain.ControllerType)

	led1 := place(t, s, domain.TypeLED)
	if led1.Pin != "10" {
		t.Errorf("first LED pin = %q, want 10", led1.Pin)
	}
	led2 := place(t, s, domain.TypeLED)
	if led2.Pin != "2" {
		t.Errorf("second LED pin = %q, want 2", led2.Pin)
	}
	btn := place(t, s, domain.TypePushbutton)
	if btn.Pin != "3" {
		t.Errorf("button pin = %q, want 3 (2 taken)", btn.Pin)
	}
}

func TestPlaceButtonFirst(t *testing.T) {
	s := newTestStore(t)
	btn := place(t, s, domain.TypePushbutton)
	led := place(t, s, domain.TypeLED)
	led2 := place(t, s, domain.TypeLED)
	if btn.Pin != "2" || led.Pin != "10" || led2.Pin != "3" {
		t.Errorf("got button=%s led=%s led2=%s, want 2 10 3", btn.Pin, led.Pin, led2.Pin)
	}
}

func TestPlaceExhaustsPins(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 12; i++ {
		place(t, s, domain.TypeLED)
	}
	extra := place(t, s, domain.TypeLED)
	if extra.Pin != "" {
		t.Errorf("expected unbound LED when pins are exhausted, got %q", extra.Pin)
	}
	if len(s.UsedPins()) != 12 {
		t.Errorf("expected 12 used pins, got %d", len(s.UsedPins()))
	}
}

func TestMove(t *testing.T) {
	s := newTestStore(t)
	c := place(t, s, domain.TypeLED)

	if !s.Move(c.ID, domain.Position{X: 100, Y: -3}) {
		t.Fatal("expected move to succeed")
	}
	got, _ := s.Get(c.ID)
	if got.Position != (domain.Position{X: 100, Y: 0}) {
		t.Errorf("unexpected position %+v", got.Position)
	}
	if s.Move("missing", domain.Position{}) {
		t.Error("expected move of absent id to be a no-op")
	}
}

func TestSetPin(t *testing.T) {
	s := newTestStore(t)
	a := place(t, s, domain.TypeLED)
	b := place(t, s, domain.TypeLED)

	// No uniqueness enforcement on manual reassignment
	if !s.SetPin(b.ID, a.Pin) {
		t.Fatal("expected SetPin to succeed")
	}
	got, _ := s.Get(b.ID)
	if got.Pin != a.Pin {
		t.Errorf("expected pin %s, got %s", a.Pin, got.Pin)
	}

	s.SetPin(b.ID, "")
	got, _ = s.Get(b.ID)
	if got.HasPin() {
		t.Error("expected empty pin to unbind")
	}
	if s.SetPin("missing", "4") {
		t.Error("expected SetPin on absent id to be a no-op")
	}
}

func TestRemove(t *testing.T) {
	t.Run("selected component clears selection", func(t *testing.T) {
		s := newTestStore(t)
		place(t, s, domain.TypeLED)
		c := place(t, s, domain.TypeServo)

		if !s.Remove(c.ID) {
			t.Fatal("expected remove to succeed")
		}
		if s.Len() != 1 {
			t.Errorf("expected 1 component, got %d", s.Len())
		}
		if _, ok := s.Selected(); ok {
			t.Error("expected selection to be cleared")
		}
	})

	t.Run("non-selected component keeps selection", func(t *testing.T) {
		s := newTestStore(t)
		a := place(t, s, domain.TypeLED)
		b := place(t, s, domain.TypeServo)

		s.Remove(a.ID)
		sel, ok := s.Selected()
		if !ok || sel.ID != b.ID {
			t.Error("expected selection to survive")
		}
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		s := newTestStore(t)
		place(t, s, domain.TypeLED)
		before := s.Snapshot()

		if s.Remove("missing") {
			t.Error("expected no-op")
		}
		after := s.Snapshot()
		if len(after.Components) != len(before.Components) || after.SelectedID != before.SelectedID {
			t.Error("state changed on no-op remove")
		}
	})

	t.Run("freed pin is reused", func(t *testing.T) {
		s := newTestStore(t)
		led := place(t, s, domain.TypeLED)
		s.Remove(led.ID)
		again := place(t, s, domain.TypeLED)
		if again.Pin != "10" {
			t.Errorf("expected pin 10 after removal, got %s", again.Pin)
		}
	})
}

func TestSelect(t *testing.T) {
	s := newTestStore(t)
	a := place(t, s, domain.TypeLED)
	place(t, s, domain.TypeServo)

	s.Select(a.ID)
	if sel, _ := s.Selected(); sel.ID != a.ID {
		t.Error("expected a selected")
	}
	s.Select("missing")
	if _, ok := s.Selected(); ok {
		t.Error("expected selection cleared for unknown id")
	}
}

func TestSetButtonHeld(t *testing.T) {
	s := newTestStore(t)
	btn := place(t, s, domain.TypePushbutton)
	led := place(t, s, domain.TypeLED)

	if !s.SetButtonHeld(btn.ID, true) {
		t.Fatal("expected button state to be recorded")
	}
	if s.SetButtonHeld(led.ID, true) {
		t.Error("only pushbuttons can be held")
	}
	if !s.Snapshot().Buttons[btn.ID] {
		t.Error("expected button held in snapshot")
	}

	s.Remove(btn.ID)
	if _, ok := s.Snapshot().Buttons[btn.ID]; ok {
		t.Error("expected button state dropped with component")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := newTestStore(t)
	c := place(t, s, domain.TypeLED)
	snap := s.Snapshot()
	snap.Components[0].Pin = "7"
	snap.Buttons["x"] = true

	got, _ := s.Get(c.ID)
	if got.Pin != "10" {
		t.Error("snapshot mutation leaked into store")
	}
	if len(s.Snapshot().Buttons) != 0 {
		t.Error("button map mutation leaked into store")
	}
}

func TestReplace(t *testing.T) {
	s := newTestStore(t)
	place(t, s, domain.TypeLED)

	n := s.Replace([]domain.Component{
		{ID: "u1", Type: domain.ControllerType},
		{ID: "u2", Type: domain.ControllerType},
		{Type: domain.TypeLED, Pin: "4"},
		{ID: "u3", Type: "nope"},
		{ID: "u4", Type: domain.TypeServo, Position: domain.Position{X: -1, Y: -1}},
	})
	if n != 3 {
		t.Fatalf("expected 3 kept, got %d", n)
	}
	comps := s.Components()
	if comps[0].ID != "u1" || comps[1].ID == "" || comps[2].Position != (domain.Position{}) {
		t.Errorf("unexpected components %+v", comps)
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection should be reset")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Error("expected empty store after Clear")
	}
}

func TestReplaceClearsInvalidPins(t *testing.T) {
	s := newTestStore(t)

	s.Replace([]domain.Component{
		{ID: "l1", Type: domain.TypeLED, Pin: "99"},
		{ID: "b1", Type: domain.TypePushbutton, Pin: "D3; evil()"},
		{ID: "l2", Type: domain.TypeLED, Pin: "13"},
		{ID: "p1", Type: domain.TypePotentiometer, Pin: "A0"},
		{ID: "l3", Type: domain.TypeLED},
	})

	want := map[string]string{"l1": "", "b1": "", "l2": "13", "p1": "A0", "l3": ""}
	for _, c := range s.Components() {
		if c.Pin != want[c.ID] {
			t.Errorf("%s: pin = %q, want %q", c.ID, c.Pin, want[c.ID])
		}
	}
	if used := s.UsedPins(); len(used) != 2 {
		t.Errorf("expected 2 used pins, got %v", used)
	}
}
