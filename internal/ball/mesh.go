package ball

import (
	gomath "math"

	"github.com/Faultbox/squeeze/pkg/math"
)

// Mesh is a sphere with a fixed rest configuration and a displaced
// configuration the simulation rewrites every frame. All three vertex
// buffers have the same length for the lifetime of the mesh.
type Mesh struct {
	radius  float32
	rest    []math.Vec3
	disp    []math.Vec3
	normals []math.Vec3
	inward  []math.Vec3 // unit direction from each rest vertex toward the center
	indices []uint32
}

// NewSphereMesh builds a latitude/longitude sphere centered on the origin.
// It produces (widthSegments+1)*(heightSegments+1) vertices; the seam and
// pole vertices are duplicated so that every grid cell is addressable.
func NewSphereMesh(radius float32, widthSegments, heightSegments int) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	count := (widthSegments + 1) * (heightSegments + 1)
	m := &Mesh{
		radius:  radius,
		rest:    make([]math.Vec3, 0, count),
		disp:    make([]math.Vec3, count),
		normals: make([]math.Vec3, count),
		inward:  make([]math.Vec3, count),
	}

	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * gomath.Pi
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * gomath.Pi

			p := math.Vec3{
				X: float32(-float64(radius) * gomath.Cos(phi) * gomath.Sin(theta)),
				Y: float32(float64(radius) * gomath.Cos(theta)),
				Z: float32(float64(radius) * gomath.Sin(phi) * gomath.Sin(theta)),
			}
			row[ix] = uint32(len(m.rest))
			m.rest = append(m.rest, p)
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			// The first and last rows collapse to a point at the poles.
			if iy != 0 {
				m.indices = append(m.indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.indices = append(m.indices, b, c, d)
			}
		}
	}

	for i, p := range m.rest {
		m.inward[i] = p.Normalize().Scale(-1)
	}

	m.ResetToRest()
	return m
}

// Len returns the number of vertices.
func (m *Mesh) Len() int {
	return len(m.rest)
}

// Radius returns the rest radius of the sphere.
func (m *Mesh) Radius() float32 {
	return m.radius
}

// Rest returns the rest configuration. Callers must not modify it.
func (m *Mesh) Rest() []math.Vec3 {
	return m.rest
}

// Displaced returns the working configuration. Only the Simulator writes it.
func (m *Mesh) Displaced() []math.Vec3 {
	return m.disp
}

// Normals returns the per-vertex normals of the displaced configuration.
func (m *Mesh) Normals() []math.Vec3 {
	return m.normals
}

// Indices returns the triangle list, three indices per triangle.
func (m *Mesh) Indices() []uint32 {
	return m.indices
}

// Inward returns the unit direction from rest vertex i toward the center.
func (m *Mesh) Inward(i int) math.Vec3 {
	return m.inward[i]
}

// ResetToRest copies the rest configuration into the displaced buffer and
// recomputes normals.
func (m *Mesh) ResetToRest() {
	copy(m.disp, m.rest)
	m.ComputeNormals()
}

// ComputeNormals recomputes area-weighted vertex normals from the displaced
// positions.
func (m *Mesh) ComputeNormals() {
	for i := range m.normals {
		m.normals[i] = math.Vec3{}
	}

	for i := 0; i+2 < len(m.indices); i += 3 {
		ia, ib, ic := m.indices[i], m.indices[i+1], m.indices[i+2]
		a, b, c := m.disp[ia], m.disp[ib], m.disp[ic]
		face := b.Sub(a).Cross(c.Sub(a))
		m.normals[ia] = m.normals[ia].Add(face)
		m.normals[ib] = m.normals[ib].Add(face)
		m.normals[ic] = m.normals[ic].Add(face)
	}

	for i, n := range m.normals {
		if n.LengthSq() == 0 {
			// Pole duplicates can end up without a face of their own.
			m.normals[i] = m.inward[i].Scale(-1)
			continue
		}
		m.normals[i] = n.Normalize()
	}
}
