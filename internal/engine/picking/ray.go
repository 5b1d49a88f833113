// Package picking provides ray casting against triangle meshes.
package picking

import (
	gomath "math"

	"github.com/Faultbox/squeeze/pkg/math"
)

// epsilon rejects rays parallel to a triangle and self-hits at t=0.
const epsilon = 1e-6

// baryEpsilon widens triangles slightly so rays through shared edges and
// vertices still hit.
const baryEpsilon = 1e-5

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // normalized
}

// NDC converts pixel coordinates inside a viewport of the given size to
// normalized device coordinates. Points outside the viewport map outside
// [-1, 1]; nothing is clamped.
func NDC(screenX, screenY, viewportW, viewportH float32) (x, y float32) {
	x = 2.0*screenX/viewportW - 1.0
	y = 1.0 - 2.0*screenY/viewportH // flip Y
	return x, y
}

// NDCToRay unprojects a normalized device coordinate into a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func NDCToRay(ndcX, ndcY float32, invViewProj math.Mat4) Ray {
	nearPoint := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	farPoint := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{Origin: nearPoint, Direction: farPoint.Sub(nearPoint).Normalize()}
}

// ScreenToRay converts pixel coordinates to a world-space ray.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	x, y := NDC(screenX, screenY, viewportW, viewportH)
	return NDCToRay(x, y, invViewProj)
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectTriangle tests the ray against triangle (a, b, c) using the
// Moller-Trumbore algorithm. Both windings hit.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (t float32, hit bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)

	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if gomath.Abs(float64(det)) < epsilon {
		return 0, false // parallel
	}
	invDet := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * invDet
	if u < -baryEpsilon || u > 1+baryEpsilon {
		return 0, false
	}

	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * invDet
	if v < -baryEpsilon || u+v > 1+baryEpsilon {
		return 0, false
	}

	t = edge2.Dot(q) * invDet
	if t <= epsilon {
		return 0, false // behind origin
	}
	return t, true
}

// IntersectMesh returns the nearest intersection of the ray with an indexed
// triangle list. positions is indexed by indices, three per triangle.
func (r Ray) IntersectMesh(positions []math.Vec3, indices []uint32) (point math.Vec3, t float32, hit bool) {
	best := float32(gomath.MaxFloat32)
	for i := 0; i+2 < len(indices); i += 3 {
		ti, ok := r.IntersectTriangle(positions[indices[i]], positions[indices[i+1]], positions[indices[i+2]])
		if ok && ti < best {
			best = ti
			hit = true
		}
	}
	if !hit {
		return math.Vec3{}, 0, false
	}
	return r.At(best), best, true
}

// IntersectSphere tests the ray against a sphere and returns the entry
// distance. Used as a broad-phase before the per-triangle test.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (t float32, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(gomath.Sqrt(float64(disc)))
	t = -b - sq
	if t < 0 {
		t = -b + sq // origin inside the sphere
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
