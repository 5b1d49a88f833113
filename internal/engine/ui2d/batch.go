package ui2d

import "math"

// floatsPerVertex is x, y, z, r, g, b, a.
const floatsPerVertex = 7

// ringSegments is how many quads approximate a ring.
const ringSegments = 64

// Batch accumulates solid-color triangles in screen pixels.
type Batch struct {
	vertices []float32
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{vertices: make([]float32, 0, 4096)}
}

// Reset empties the batch, keeping its storage.
func (b *Batch) Reset() {
	b.vertices = b.vertices[:0]
}

// Vertices returns the packed vertex data.
func (b *Batch) Vertices() []float32 {
	return b.vertices
}

// VertexCount returns the number of vertices queued.
func (b *Batch) VertexCount() int {
	return len(b.vertices) / floatsPerVertex
}

// AddRect queues a filled rectangle. Zero or negative sizes are skipped.
func (b *Batch) AddRect(x, y, w, h float32, c Color) {
	if w <= 0 || h <= 0 || c.A <= 0 {
		return
	}
	b.vertices = append(b.vertices,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,

		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y+h, 0, c.R, c.G, c.B, c.A,
	)
}

// AddRing queues a circular band centered at (cx, cy). radius is the
// middle of the band.
func (b *Batch) AddRing(cx, cy, radius, thickness float32, c Color) {
	if radius <= 0 || thickness <= 0 || c.A <= 0 {
		return
	}
	inner := radius - thickness/2
	if inner < 0 {
		inner = 0
	}
	outer := radius + thickness/2

	for i := 0; i < ringSegments; i++ {
		a0 := 2 * math.Pi * float64(i) / ringSegments
		a1 := 2 * math.Pi * float64(i+1) / ringSegments
		c0, s0 := float32(math.Cos(a0)), float32(math.Sin(a0))
		c1, s1 := float32(math.Cos(a1)), float32(math.Sin(a1))

		ix0, iy0 := cx+c0*inner, cy+s0*inner
		ox0, oy0 := cx+c0*outer, cy+s0*outer
		ix1, iy1 := cx+c1*inner, cy+s1*inner
		ox1, oy1 := cx+c1*outer, cy+s1*outer

		b.vertices = append(b.vertices,
			ix0, iy0, 0, c.R, c.G, c.B, c.A,
			ox0, oy0, 0, c.R, c.G, c.B, c.A,
			ox1, oy1, 0, c.R, c.G, c.B, c.A,

			ix0, iy0, 0, c.R, c.G, c.B, c.A,
			ox1, oy1, 0, c.R, c.G, c.B, c.A,
			ix1, iy1, 0, c.R, c.G, c.B, c.A,
		)
	}
}
