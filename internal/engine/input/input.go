// Package input turns SDL2 events into pointer and command actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// ActionType identifies an Action.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionQuit
	ActionResize
	ActionPressStart
	ActionMove
	ActionRelease
	ActionToggleSound
	ActionToggleVibration
	ActionReset
)

func (t ActionType) String() string {
	switch t {
	case ActionNone:
		return "none"
	case ActionQuit:
		return "quit"
	case ActionResize:
		return "resize"
	case ActionPressStart:
		return "press"
	case ActionMove:
		return "move"
	case ActionRelease:
		return "release"
	case ActionToggleSound:
		return "toggle-sound"
	case ActionToggleVibration:
		return "toggle-vibration"
	case ActionReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Action is a processed input event. X and Y are window coordinates.
// AtCenter marks keyboard presses, which have no pointer position.
type Action struct {
	Type     ActionType
	X, Y     float32
	AtCenter bool
	Width    int
	Height   int
}

// touchMouseID marks mouse events SDL synthesized from touch.
const touchMouseID = ^uint32(0)

// Input handles all input processing.
type Input struct {
	actions []Action

	width, height int

	finger       sdl.FingerID
	fingerActive bool
}

// New creates a new input handler for a window of the given size.
func New(width, height int) *Input {
	return &Input{
		actions: make([]Action, 0, 16),
		width:   width,
		height:  height,
	}
}

// SetSize updates the window size used to scale touch coordinates.
func (i *Input) SetSize(width, height int) {
	i.width, i.height = width, height
}

// Update polls SDL events and converts them to actions.
// Returns true if the app should quit.
func (i *Input) Update() bool {
	i.actions = i.actions[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if a, ok := i.translate(event); ok {
			i.actions = append(i.actions, a)
			if a.Type == ActionQuit {
				quit = true
			}
		}
	}
	return quit
}

// Actions returns the actions from the last Update.
func (i *Input) Actions() []Action {
	return i.actions
}

func (i *Input) translate(event sdl.Event) (Action, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Action{Type: ActionQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			i.SetSize(int(e.Data1), int(e.Data2))
			return Action{Type: ActionResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_LEAVE:
			return Action{Type: ActionRelease}, true
		}

	case *sdl.MouseButtonEvent:
		if e.Which == touchMouseID || e.Button != sdl.BUTTON_LEFT {
			return Action{}, false
		}
		t := ActionPressStart
		if e.Type == sdl.MOUSEBUTTONUP {
			t = ActionRelease
		}
		return Action{Type: t, X: float32(e.X), Y: float32(e.Y)}, true

	case *sdl.MouseMotionEvent:
		if e.Which == touchMouseID {
			return Action{}, false
		}
		return Action{Type: ActionMove, X: float32(e.X), Y: float32(e.Y)}, true

	case *sdl.TouchFingerEvent:
		return i.translateFinger(e)

	case *sdl.KeyboardEvent:
		return translateKey(e)
	}

	return Action{}, false
}

// translateFinger follows the first finger down and ignores the rest.
func (i *Input) translateFinger(e *sdl.TouchFingerEvent) (Action, bool) {
	x := e.X * float32(i.width)
	y := e.Y * float32(i.height)

	switch e.Type {
	case sdl.FINGERDOWN:
		if i.fingerActive {
			return Action{}, false
		}
		i.finger, i.fingerActive = e.FingerID, true
		return Action{Type: ActionPressStart, X: x, Y: y}, true
	case sdl.FINGERMOTION:
		if !i.fingerActive || e.FingerID != i.finger {
			return Action{}, false
		}
		return Action{Type: ActionMove, X: x, Y: y}, true
	case sdl.FINGERUP:
		if !i.fingerActive || e.FingerID != i.finger {
			return Action{}, false
		}
		i.fingerActive = false
		return Action{Type: ActionRelease, X: x, Y: y}, true
	}
	return Action{}, false
}

func translateKey(e *sdl.KeyboardEvent) (Action, bool) {
	if e.Repeat != 0 {
		return Action{}, false
	}
	down := e.Type == sdl.KEYDOWN

	switch e.Keysym.Scancode {
	case sdl.SCANCODE_SPACE, sdl.SCANCODE_RETURN, sdl.SCANCODE_KP_ENTER:
		if down {
			return Action{Type: ActionPressStart, AtCenter: true}, true
		}
		return Action{Type: ActionRelease, AtCenter: true}, true
	}

	if !down {
		return Action{}, false
	}
	switch e.Keysym.Scancode {
	case sdl.SCANCODE_S:
		return Action{Type: ActionToggleSound}, true
	case sdl.SCANCODE_V:
		return Action{Type: ActionToggleVibration}, true
	case sdl.SCANCODE_R:
		return Action{Type: ActionReset}, true
	case sdl.SCANCODE_ESCAPE:
		return Action{Type: ActionQuit}, true
	}
	return Action{}, false
}
