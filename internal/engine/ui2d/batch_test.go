package ui2d

import (
	"math"
	"testing"
)

func TestAddRect(t *testing.T) {
	b := NewBatch()
	b.AddRect(10, 20, 30, 40, ColorWhite)

	if b.VertexCount() != 6 {
		t.Fatalf("VertexCount = %d, want 6", b.VertexCount())
	}
	v := b.Vertices()
	// third vertex is the bottom-right corner
	if v[2*floatsPerVertex] != 40 || v[2*floatsPerVertex+1] != 60 {
		t.Errorf("corner = (%v, %v), want (40, 60)", v[2*floatsPerVertex], v[2*floatsPerVertex+1])
	}
}

func TestAddRectSkipsEmpty(t *testing.T) {
	tests := []struct {
		name string
		w, h float32
		c    Color
	}{
		{"zero width", 0, 10, ColorWhite},
		{"negative height", 10, -1, ColorWhite},
		{"transparent", 10, 10, ColorTransparent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBatch()
			b.AddRect(0, 0, tt.w, tt.h, tt.c)
			if b.VertexCount() != 0 {
				t.Errorf("VertexCount = %d, want 0", b.VertexCount())
			}
		})
	}
}

func TestAddRing(t *testing.T) {
	b := NewBatch()
	b.AddRing(200, 200, 100, 4, ColorWhite.WithAlpha(0.6))

	if b.VertexCount() != ringSegments*6 {
		t.Fatalf("VertexCount = %d, want %d", b.VertexCount(), ringSegments*6)
	}

	v := b.Vertices()
	for i := 0; i < b.VertexCount(); i++ {
		x := float64(v[i*floatsPerVertex] - 200)
		y := float64(v[i*floatsPerVertex+1] - 200)
		d := math.Hypot(x, y)
		if d < 98-1e-3 || d > 102+1e-3 {
			t.Fatalf("vertex %d is %v from the center, want within [98, 102]", i, d)
		}
		if a := v[i*floatsPerVertex+6]; a != 0.6 {
			t.Fatalf("vertex %d alpha = %v, want 0.6", i, a)
		}
	}
}

func TestAddRingSkipsInvisible(t *testing.T) {
	b := NewBatch()
	b.AddRing(0, 0, 0, 4, ColorWhite)
	b.AddRing(0, 0, 10, 4, ColorTransparent)
	if b.VertexCount() != 0 {
		t.Errorf("VertexCount = %d, want 0", b.VertexCount())
	}
}

func TestReset(t *testing.T) {
	b := NewBatch()
	b.AddRect(0, 0, 1, 1, ColorWhite)
	b.Reset()
	if b.VertexCount() != 0 {
		t.Errorf("VertexCount after Reset = %d", b.VertexCount())
	}
}

func TestColors(t *testing.T) {
	if c := FromFloat3([3]float32{1, 0, 0}); c != (Color{1, 0, 0, 1}) {
		t.Errorf("FromFloat3 = %v", c)
	}
	if c := ColorWhite.WithAlpha(0); c.A != 0 {
		t.Errorf("WithAlpha(0) = %v", c)
	}
	if c := FromFloat3([3]float32{0.5, 0.5, 0.5}).Lighten(1); c != ColorWhite {
		t.Errorf("Lighten(1) = %v", c)
	}
}
