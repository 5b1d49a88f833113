package ball

import (
	"time"

	"github.com/Faultbox/squeeze/internal/engine/camera"
	"github.com/Faultbox/squeeze/internal/engine/picking"
	"github.com/Faultbox/squeeze/pkg/math"
)

// Pointer is a pointer position in window pixels.
type Pointer struct {
	X, Y float32
}

// Rect is the on-screen bounds of the element the ball is drawn into, in
// the same pixel space as Pointer.
type Rect struct {
	X, Y, W, H float32
}

// Center returns the middle of the rectangle.
func (r Rect) Center() Pointer {
	return Pointer{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// NDC maps a pointer to normalized device coordinates of the rectangle.
// Pointers outside the rectangle map outside [-1, 1].
func (r Rect) NDC(p Pointer) (x, y float32) {
	return picking.NDC(p.X-r.X, p.Y-r.Y, r.W, r.H)
}

// LightPose positions the pointer-following lights.
type LightPose struct {
	SpotPosition  math.Vec3
	SpotTarget    math.Vec3
	PointPosition math.Vec3
}

// DefaultLightPose is the pose for a pointer at the element center.
func DefaultLightPose() LightPose {
	return LightPose{
		SpotPosition:  math.Vec3{Z: 4},
		SpotTarget:    math.Vec3{},
		PointPosition: math.Vec3{Z: 1.5},
	}
}

// Mapper converts pointer positions into surface hits on the mesh and into
// light poses.
type Mapper struct {
	camera *camera.OrthoCamera
	mesh   *Mesh
	invVP  math.Mat4
}

// NewMapper creates a mapper for a fixed camera.
func NewMapper(cam *camera.OrthoCamera, mesh *Mesh) *Mapper {
	return &Mapper{
		camera: cam,
		mesh:   mesh,
		invVP:  cam.InverseViewProjection(),
	}
}

// ScreenToWorld casts a ray through the pointer and returns the first point
// where it meets the displaced mesh. ok is false when the ray misses.
func (m *Mapper) ScreenToWorld(p Pointer, bounds Rect) (hit math.Vec3, ok bool) {
	if bounds.Empty() {
		return math.Vec3{}, false
	}
	ray := picking.ScreenToRay(p.X-bounds.X, p.Y-bounds.Y, bounds.W, bounds.H, m.invVP)

	// Dents only move vertices inward, so the rest sphere bounds the mesh.
	if _, ok := ray.IntersectSphere(math.Vec3{}, m.mesh.Radius()*1.001); !ok {
		return math.Vec3{}, false
	}

	hit, _, ok = ray.IntersectMesh(m.mesh.Displaced(), m.mesh.Indices())
	return hit, ok
}

// ScreenToLight maps a pointer to the light pose. It works anywhere on the
// screen, on or off the ball.
func (m *Mapper) ScreenToLight(p Pointer, bounds Rect) LightPose {
	if bounds.Empty() {
		return DefaultLightPose()
	}
	x, y := bounds.NDC(p)
	return LightPose{
		SpotPosition:  math.Vec3{X: x * 2.5, Y: y * 2.5, Z: 4},
		SpotTarget:    math.Vec3{X: x * 2.0, Y: y * 2.0, Z: 0},
		PointPosition: math.Vec3{X: x * 1.5, Y: y * 1.5, Z: 1.5},
	}
}

// LightThrottle limits how often the light pose is recomputed.
type LightThrottle struct {
	Interval time.Duration
	last     time.Time
}

// DefaultLightInterval samples the pointer at about 60 Hz.
const DefaultLightInterval = 16 * time.Millisecond

// Allow reports whether an update at now is due, and records it if so.
func (t *LightThrottle) Allow(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.Interval {
		return false
	}
	t.last = now
	return true
}
