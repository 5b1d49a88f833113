package ball

import (
	"time"

	"github.com/Faultbox/squeeze/pkg/math"
)

// State is the interaction state of the ball.
type State int

const (
	// Idle means the pointer is up.
	Idle State = iota
	// Pressing means the pointer went down and has not moved yet.
	Pressing
	// Dragging means the pointer is down and has moved.
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressing:
		return "pressing"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Feedback receives the cosmetic side effects of interaction. Implementations
// must return immediately.
type Feedback interface {
	Tone(freq float64, dur time.Duration)
	Haptic(intensity float32)
}

type nopFeedback struct{}

func (nopFeedback) Tone(float64, time.Duration) {}
func (nopFeedback) Haptic(float32)              {}

// Interaction tuning.
const (
	HoldDelay = 300 * time.Millisecond

	pressPressure = 0.6
	holdPressure  = 0.9
	highPressure  = 0.7

	pressTone      = 200
	pressToneDur   = 60 * time.Millisecond
	releaseTone    = 150
	releaseToneDur = 40 * time.Millisecond

	pressHaptic   = 0.3
	holdHaptic    = 0.4
	dragHaptic    = 0.15
	releaseHaptic = 0.2
)

// Controller is the press/drag/release state machine. It owns the live press
// dent and the pressure value, and inserts dents into the deformation set.
type Controller struct {
	mapper   *Mapper
	set      *DeformationSet
	feedback Feedback

	state    State
	pressure float32
	press    Deformation
	hasPress bool

	holding      bool
	holdArmed    bool
	holdDeadline time.Time

	light    LightPose
	throttle LightThrottle
}

// NewController creates an idle controller. feedback may be nil.
func NewController(mapper *Mapper, set *DeformationSet, feedback Feedback) *Controller {
	if feedback == nil {
		feedback = nopFeedback{}
	}
	return &Controller{
		mapper:   mapper,
		set:      set,
		feedback: feedback,
		light:    DefaultLightPose(),
		throttle: LightThrottle{Interval: DefaultLightInterval},
	}
}

// State returns the current interaction state.
func (c *Controller) State() State {
	return c.state
}

// Pressed reports whether the pointer is down.
func (c *Controller) Pressed() bool {
	return c.state != Idle
}

// Pressure returns the current pressure in [0, 1].
func (c *Controller) Pressure() float32 {
	return c.pressure
}

// Holding reports whether the current press has lasted past HoldDelay.
func (c *Controller) Holding() bool {
	return c.holding
}

// Press returns the live press dent, if the press hit the ball.
func (c *Controller) Press() (Deformation, bool) {
	return c.press, c.hasPress
}

// Light returns the latest light pose.
func (c *Controller) Light() LightPose {
	return c.light
}

// PressStart handles pointer-down. A press that misses the ball still
// enters Pressing and still gives feedback, it just makes no dent. A second
// pointer-down while already pressed is ignored.
func (c *Controller) PressStart(p Pointer, bounds Rect, now time.Time) {
	if c.state != Idle {
		return
	}
	c.state = Pressing
	c.holding = false
	c.pressure = pressPressure

	c.hasPress = false
	if hit, ok := c.mapper.ScreenToWorld(p, bounds); ok {
		c.press = Deformation{
			Center:    hit,
			Intensity: PressIntensity,
			Radius:    PressRadius,
			CreatedAt: now,
		}
		c.hasPress = true
	}

	c.holdArmed = true
	c.holdDeadline = now.Add(HoldDelay)

	c.feedback.Haptic(pressHaptic)
	c.feedback.Tone(pressTone, pressToneDur)
}

// Move handles pointer motion: the light always follows the pointer, and a
// held pointer drags.
func (c *Controller) Move(p Pointer, bounds Rect, now time.Time) {
	if c.throttle.Allow(now) {
		c.light = c.mapper.ScreenToLight(p, bounds)
	}
	c.Drag(p, bounds, now)
}

// Drag handles motion while pressed. Each sample that hits the ball moves
// the press dent there and leaves a trail dent behind it.
func (c *Controller) Drag(p Pointer, bounds Rect, now time.Time) {
	if c.state == Idle {
		return
	}
	c.state = Dragging

	hit, ok := c.mapper.ScreenToWorld(p, bounds)
	if !ok {
		return
	}

	c.pressure = pressureAt(hit)

	c.press = Deformation{
		Center:    hit,
		Intensity: PressIntensity + c.pressure*0.2,
		Radius:    PressRadius,
		CreatedAt: now,
	}
	c.hasPress = true

	c.set.Add(Deformation{
		Center:    hit,
		Intensity: 0.6 + c.pressure*0.1,
		Radius:    TrailRadius,
		CreatedAt: now,
	})

	if c.pressure > highPressure {
		c.feedback.Haptic(dragHaptic)
	}
}

// Release handles pointer-up, pointer-leave and touch-end. The press dent
// is handed to the deformation set so it fades like any other dent.
func (c *Controller) Release(now time.Time) {
	if c.state == Idle {
		return
	}
	c.promote()
	c.reset()

	c.feedback.Haptic(releaseHaptic)
	c.feedback.Tone(releaseTone, releaseToneDur)
}

// Cancel drops back to Idle without feedback. The press dent still fades
// out. Used on teardown.
func (c *Controller) Cancel() {
	if c.state == Idle {
		return
	}
	c.promote()
	c.reset()
}

// Update fires the hold signal once the press has lasted HoldDelay.
func (c *Controller) Update(now time.Time) {
	if c.state == Idle || !c.holdArmed || now.Before(c.holdDeadline) {
		return
	}
	c.holdArmed = false
	c.holding = true
	c.pressure = holdPressure
	c.feedback.Haptic(holdHaptic)
}

func (c *Controller) promote() {
	if c.hasPress {
		c.set.Add(c.press)
	}
	c.press = Deformation{}
	c.hasPress = false
}

func (c *Controller) reset() {
	c.state = Idle
	c.pressure = 0
	c.holding = false
	c.holdArmed = false
}

// pressureAt derives pressure from the hit's distance to the ball center.
func pressureAt(hit math.Vec3) float32 {
	p := 0.6 + hit.Length()*0.3
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
