// Package lighting describes the light rig the ball is lit by. Distance and
// cone falloff are evaluated in the ball shader.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/squeeze/pkg/math"
)

// White is the color of every light in the rig.
var White = [3]float32{1, 1, 1}

// SpotLight is a cone light aimed at Target.
type SpotLight struct {
	Position  math.Vec3
	Target    math.Vec3
	Color     [3]float32
	Intensity float32
	Range     float32 // zero means unlimited
	Angle     float32 // cone half-angle in radians
	Penumbra  float32 // fraction of the cone that is softened
	Decay     float32
}

// Direction returns the unit vector from the light toward its target.
func (s SpotLight) Direction() math.Vec3 {
	return s.Target.Sub(s.Position).Normalize()
}

// ConeCos returns the cosines of the inner and outer cone edges.
func (s SpotLight) ConeCos() (inner, outer float32) {
	outer = float32(gomath.Cos(float64(s.Angle)))
	inner = float32(gomath.Cos(float64(s.Angle * (1 - s.Penumbra))))
	return inner, outer
}

// PointLight radiates in all directions.
type PointLight struct {
	Position  math.Vec3
	Color     [3]float32
	Intensity float32
	Range     float32
	Decay     float32
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Position  math.Vec3
	Color     [3]float32
	Intensity float32
}

// Direction returns the unit vector from a surface toward the light.
func (d DirectionalLight) Direction() math.Vec3 {
	return d.Position.Normalize()
}

// Rig is the full set of lights.
type Rig struct {
	AmbientColor     [3]float32
	AmbientIntensity float32
	Spot             SpotLight
	Point            PointLight
	Fill             DirectionalLight
}

// DefaultRig returns the rig with the pointer at the element center.
func DefaultRig() Rig {
	return Rig{
		AmbientColor:     [3]float32{0.25, 0.25, 0.25},
		AmbientIntensity: 0.2,
		Spot: SpotLight{
			Position:  math.Vec3{Z: 4},
			Color:     White,
			Intensity: 6,
			Range:     20,
			Angle:     gomath.Pi / 4,
			Penumbra:  0.5,
			Decay:     1,
		},
		Point: PointLight{
			Position:  math.Vec3{Z: 1.5},
			Color:     White,
			Intensity: 2,
			Range:     8,
			Decay:     2,
		},
		Fill: DirectionalLight{
			Position:  math.Vec3{X: -3, Y: 3, Z: 5},
			Color:     White,
			Intensity: 0.15,
		},
	}
}

// Follow moves the pointer-driven lights.
func (r *Rig) Follow(spotPos, spotTarget, pointPos math.Vec3) {
	r.Spot.Position = spotPos
	r.Spot.Target = spotTarget
	r.Point.Position = pointPos
}

// Ambient returns the premultiplied ambient color.
func (r *Rig) Ambient() [3]float32 {
	return [3]float32{
		r.AmbientColor[0] * r.AmbientIntensity,
		r.AmbientColor[1] * r.AmbientIntensity,
		r.AmbientColor[2] * r.AmbientIntensity,
	}
}
