package lighting

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/squeeze/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

func TestDefaultRig(t *testing.T) {
	r := DefaultRig()

	amb := r.Ambient()
	if !approx(amb[0], 0.05) {
		t.Errorf("ambient = %v, want 0.05", amb)
	}
	if r.Spot.Intensity != 6 || r.Spot.Range != 20 {
		t.Errorf("spot = %+v", r.Spot)
	}
	if r.Point.Intensity != 2 || r.Point.Range != 8 {
		t.Errorf("point = %+v", r.Point)
	}
	if r.Fill.Intensity != 0.15 {
		t.Errorf("fill = %+v", r.Fill)
	}

	dir := r.Spot.Direction()
	if !approx(dir.Z, -1) {
		t.Errorf("spot direction = %v, want (0,0,-1)", dir)
	}
}

func TestFollow(t *testing.T) {
	r := DefaultRig()
	r.Follow(math.Vec3{X: 2.5, Z: 4}, math.Vec3{X: 2}, math.Vec3{X: 1.5, Z: 1.5})

	if r.Spot.Position.X != 2.5 || r.Spot.Target.X != 2 || r.Point.Position.X != 1.5 {
		t.Errorf("Follow did not move the lights: %+v %+v", r.Spot, r.Point)
	}
	if r.Fill.Position.X != -3 {
		t.Error("Follow moved the fill light")
	}
}

func TestConeCos(t *testing.T) {
	s := DefaultRig().Spot
	inner, outer := s.ConeCos()

	if !approx(outer, float32(gomath.Cos(gomath.Pi/4))) {
		t.Errorf("outer = %v", outer)
	}
	if !approx(inner, float32(gomath.Cos(gomath.Pi/8))) {
		t.Errorf("inner = %v", inner)
	}
}
