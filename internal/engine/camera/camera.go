// Package camera provides the fixed orthographic camera that frames the ball.
package camera

import (
	"github.com/Faultbox/squeeze/pkg/math"
)

// OrthoCamera is a square orthographic camera on the +Z axis looking at the
// origin. A square frustum keeps a sphere a perfect circle on screen no
// matter how the surface is dented.
type OrthoCamera struct {
	HalfExtent float32 // half width/height of the view box in world units
	Near, Far  float32
	Eye        math.Vec3
	Target     math.Vec3
	Up         math.Vec3
}

// NewOrthoCamera creates a camera framing a box of +/- halfExtent.
func NewOrthoCamera(halfExtent float32) *OrthoCamera {
	return &OrthoCamera{
		HalfExtent: halfExtent,
		Near:       0.1,
		Far:        1000,
		Eye:        math.Vec3{X: 0, Y: 0, Z: 5},
		Target:     math.Vec3{},
		Up:         math.Vec3{X: 0, Y: 1, Z: 0},
	}
}

// ViewMatrix returns the world-to-view transform.
func (c *OrthoCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Target, c.Up)
}

// ProjectionMatrix returns the orthographic projection.
func (c *OrthoCamera) ProjectionMatrix() math.Mat4 {
	h := c.HalfExtent
	return math.Ortho(-h, h, -h, h, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrthoCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// InverseViewProjection returns the inverse of ViewProjection, used to
// unproject normalized device coordinates back into world space.
func (c *OrthoCamera) InverseViewProjection() math.Mat4 {
	return c.ViewProjection().Inverse()
}

// ViewDir returns the unit vector from the target toward the eye.
func (c *OrthoCamera) ViewDir() math.Vec3 {
	return c.Eye.Sub(c.Target).Normalize()
}
