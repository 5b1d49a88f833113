package renderer

import (
	"math"
	"testing"
)

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial([3]float32{0.42, 0.71, 1}, 0.95)

	if m.Shininess != 40 {
		t.Errorf("shininess = %v, want 40", m.Shininess)
	}
	if m.Opacity != 0.95 {
		t.Errorf("opacity = %v, want 0.95", m.Opacity)
	}

	e := m.EmissiveTerm()
	if e[0] != 0 || math.Abs(float64(e[2])-0.1*0x22/255.0) > 1e-6 {
		t.Errorf("emissive term = %v", e)
	}
}

func TestOpacityClamped(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-1, 0},
		{0.5, 0.5},
		{3, 1},
	}
	for _, tt := range tests {
		if got := DefaultMaterial([3]float32{}, tt.in).Opacity; got != tt.want {
			t.Errorf("opacity(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVec3Size(t *testing.T) {
	if vec3Size != 12 {
		t.Errorf("vec3Size = %d, want 12 bytes for tightly packed uploads", vec3Size)
	}
}
