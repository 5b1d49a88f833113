// Package fidget implements fidget lifecycle management.
package fidget

import (
	"time"

	"github.com/Faultbox/squeeze/internal/engine/input"
)

// Fidget is an interactive toy hosted by the app.
type Fidget interface {
	// Name identifies the fidget in logs.
	Name() string

	// Enter is called when the fidget becomes active.
	Enter() error

	// Exit is called when the fidget is deactivated or the app shuts down.
	Exit() error

	// Update is called every frame.
	Update(now time.Time, dt float64) error

	// Render is called every frame to draw the fidget.
	Render() error

	// HandleAction processes one input action.
	HandleAction(a input.Action, now time.Time) error
}

// Manager manages fidget transitions.
type Manager struct {
	current Fidget
	next    Fidget
}

// NewManager creates a new fidget manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the active fidget.
func (m *Manager) Current() Fidget {
	return m.current
}

// Change schedules a switch to next on the following Update.
func (m *Manager) Change(next Fidget) {
	m.next = next
}

// Update processes pending changes and updates the active fidget.
func (m *Manager) Update(now time.Time, dt float64) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(now, dt)
	}
	return nil
}

// HandleAction forwards an action to the active fidget.
func (m *Manager) HandleAction(a input.Action, now time.Time) error {
	if m.current != nil {
		return m.current.HandleAction(a, now)
	}
	return nil
}

// Render renders the active fidget.
func (m *Manager) Render() error {
	if m.current != nil {
		return m.current.Render()
	}
	return nil
}

// Close exits the active fidget and drops any pending change. Safe to call
// more than once.
func (m *Manager) Close() error {
	m.next = nil
	if m.current == nil {
		return nil
	}
	f := m.current
	m.current = nil
	return f.Exit()
}
