package math

import (
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Scale(1, 2, 3)
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I should equal M, got %v", result)
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"identity", Identity(), Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"scale twice", Scale(2, 1, 1).Mul(Scale(0.5, 0.5, 0.5)), Vec3{2, 2, 2}, Vec3{2, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			if got != tt.want {
				t.Errorf("TransformPoint = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrthoMapsBoxToClipSpace(t *testing.T) {
	m := Ortho(-2.6, 2.6, -2.6, 2.6, 0.1, 1000)

	corner := m.TransformPoint(Vec3{2.6, 2.6, -0.1})
	if abs(corner.X-1) > 1e-5 || abs(corner.Y-1) > 1e-5 || abs(corner.Z+1) > 1e-5 {
		t.Errorf("near top-right corner = %v, want (1, 1, -1)", corner)
	}

	far := m.TransformPoint(Vec3{-2.6, -2.6, -1000})
	if abs(far.X+1) > 1e-5 || abs(far.Y+1) > 1e-5 || abs(far.Z-1) > 1e-4 {
		t.Errorf("far bottom-left corner = %v, want (-1, -1, 1)", far)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})

	eye := m.TransformPoint(Vec3{0, 0, 5})
	if eye.Length() > 1e-5 {
		t.Errorf("eye in view space = %v, want origin", eye)
	}

	origin := m.TransformPoint(Vec3{})
	if abs(origin.Z+5) > 1e-5 {
		t.Errorf("target in view space = %v, want z=-5", origin)
	}
}

func TestInverse(t *testing.T) {
	m := Ortho(-2.6, 2.6, -2.6, 2.6, 0.1, 1000).Mul(LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0}))
	got := m.Mul(m.Inverse())
	if !approxEqual(got, Identity(), 1e-4) {
		t.Errorf("M * M^-1 = %v, want identity", got)
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if zero.Inverse() != Identity() {
		t.Error("inverse of a singular matrix should fall back to identity")
	}
}

func approxEqual(a, b Mat4, eps float32) bool {
	for i := range a {
		if abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
