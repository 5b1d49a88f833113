package fidget

import (
	"errors"
	"testing"
	"time"

	"github.com/Faultbox/squeeze/internal/engine/input"
)

// fakeFidget records its lifecycle calls.
type fakeFidget struct {
	name     string
	calls    []string
	actions  []input.Action
	enterErr error
}

func (f *fakeFidget) Name() string { return f.name }

func (f *fakeFidget) Enter() error {
	f.calls = append(f.calls, "enter")
	return f.enterErr
}

func (f *fakeFidget) Exit() error {
	f.calls = append(f.calls, "exit")
	return nil
}

func (f *fakeFidget) Update(time.Time, float64) error {
	f.calls = append(f.calls, "update")
	return nil
}

func (f *fakeFidget) Render() error {
	f.calls = append(f.calls, "render")
	return nil
}

func (f *fakeFidget) HandleAction(a input.Action, _ time.Time) error {
	f.actions = append(f.actions, a)
	return nil
}

func equalCalls(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestManagerTransitions(t *testing.T) {
	m := NewManager()
	now := time.Now()

	if err := m.Update(now, 0.016); err != nil {
		t.Fatalf("Update with no fidget: %v", err)
	}
	if err := m.Render(); err != nil {
		t.Fatalf("Render with no fidget: %v", err)
	}

	a := &fakeFidget{name: "a"}
	b := &fakeFidget{name: "b"}

	m.Change(a)
	if m.Current() != nil {
		t.Fatal("Change should not switch before Update")
	}
	if err := m.Update(now, 0.016); err != nil {
		t.Fatal(err)
	}
	if m.Current() != Fidget(a) {
		t.Fatal("expected a to be current")
	}

	m.Change(b)
	if err := m.Update(now, 0.016); err != nil {
		t.Fatal(err)
	}

	if want := []string{"enter", "update", "exit"}; !equalCalls(a.calls, want) {
		t.Errorf("a calls = %v, want %v", a.calls, want)
	}
	if want := []string{"enter", "update"}; !equalCalls(b.calls, want) {
		t.Errorf("b calls = %v, want %v", b.calls, want)
	}
}

func TestManagerForwardsActions(t *testing.T) {
	m := NewManager()
	f := &fakeFidget{name: "f"}
	m.Change(f)
	if err := m.Update(time.Now(), 0); err != nil {
		t.Fatal(err)
	}

	act := input.Action{Type: input.ActionPressStart, X: 1, Y: 2}
	if err := m.HandleAction(act, time.Now()); err != nil {
		t.Fatal(err)
	}
	if len(f.actions) != 1 || f.actions[0] != act {
		t.Errorf("actions = %v", f.actions)
	}
}

func TestManagerEnterError(t *testing.T) {
	m := NewManager()
	boom := errors.New("boom")
	m.Change(&fakeFidget{name: "bad", enterErr: boom})

	if err := m.Update(time.Now(), 0); !errors.Is(err, boom) {
		t.Errorf("Update = %v, want %v", err, boom)
	}
}

func TestManagerClose(t *testing.T) {
	m := NewManager()
	f := &fakeFidget{name: "f"}
	m.Change(f)
	if err := m.Update(time.Now(), 0); err != nil {
		t.Fatal(err)
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	exits := 0
	for _, c := range f.calls {
		if c == "exit" {
			exits++
		}
	}
	if exits != 1 {
		t.Errorf("exit called %d times, want 1", exits)
	}
	if m.Current() != nil {
		t.Error("Current should be nil after Close")
	}
}
