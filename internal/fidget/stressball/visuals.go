package stressball

import (
	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Spring presets. Gentle settles without overshoot to speak of, wobbly
// bounces a few times.
const (
	gentleFrequency = 11.0
	gentleDamping   = 0.64
	wobblyFrequency = 13.4
	wobblyDamping   = 0.45

	pressedScale   = 0.98
	ringOpacityOn  = 0.6
	ringThreshold  = 0.3
	ringScaleRange = 1.5
	fadeSeconds    = 0.25
)

// Visuals animates the cosmetic state around the ball: the container
// squeeze, the pressure ring scale and the ring opacity.
type Visuals struct {
	containerScale float64
	containerVel   float64

	ringScale float64
	ringVel   float64

	ringOpacity float32
	ringTarget  float32
	ringTween   *gween.Tween
}

// NewVisuals returns visuals at rest.
func NewVisuals() *Visuals {
	return &Visuals{
		containerScale: 1,
		ringScale:      1,
	}
}

// Update advances the animations by dt seconds.
func (v *Visuals) Update(dt float64, pressed bool, pressure float32) {
	if dt <= 0 {
		return
	}

	target := 1.0
	if pressed {
		target = pressedScale
	}
	gentle := harmonica.NewSpring(dt, gentleFrequency, gentleDamping)
	v.containerScale, v.containerVel = gentle.Update(v.containerScale, v.containerVel, target)

	wobbly := harmonica.NewSpring(dt, wobblyFrequency, wobblyDamping)
	v.ringScale, v.ringVel = wobbly.Update(v.ringScale, v.ringVel, 1+float64(pressure)*ringScaleRange)

	opacity := float32(0)
	if pressed && pressure > ringThreshold {
		opacity = ringOpacityOn
	}
	if opacity != v.ringTarget {
		v.ringTarget = opacity
		v.ringTween = gween.New(v.ringOpacity, opacity, fadeSeconds, ease.OutCubic)
	}
	if v.ringTween != nil {
		val, done := v.ringTween.Update(float32(dt))
		v.ringOpacity = val
		if done {
			v.ringOpacity = v.ringTarget
			v.ringTween = nil
		}
	}
}

// ContainerScale is the scale applied to the whole ball element.
func (v *Visuals) ContainerScale() float32 {
	return float32(v.containerScale)
}

// RingScale is the scale of the pressure rings.
func (v *Visuals) RingScale() float32 {
	return float32(v.ringScale)
}

// RingOpacity is the alpha of the pressure rings.
func (v *Visuals) RingOpacity() float32 {
	return v.ringOpacity
}
