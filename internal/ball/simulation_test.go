package ball

import (
	"testing"
	"time"

	"github.com/Faultbox/squeeze/pkg/math"
)

// defaultParams mirrors the shipped simulation defaults: a 2.0 radius ball
// dents about 7.5% of its radius and springs back over roughly a second.
func defaultParams() Params {
	return Params{
		Smoothing:      0.05,
		Depth:          0.15,
		FadeRate:       0.98,
		RadiusFadeRate: 0.999,
		MinIntensity:   0.005,
		IdleHalfRate:   true,
	}
}

func fullRateParams() Params {
	p := defaultParams()
	p.IdleHalfRate = false
	return p
}

func newTestSimulator(params Params) (*Mesh, *DeformationSet, *Simulator) {
	mesh := NewSphereMesh(2, 32, 16)
	set := NewDeformationSet(DefaultMaxDeformations, DefaultTrimDeformations)
	return mesh, set, NewSimulator(mesh, set, params)
}

func TestRelaxationMonotonic(t *testing.T) {
	mesh, _, sim := newTestSimulator(fullRateParams())

	// Scramble the displaced buffer.
	for i := range mesh.disp {
		k := float32(0.7) + float32(i%7)*0.1
		mesh.disp[i] = mesh.disp[i].Scale(k).Add(math.Vec3{X: 0.05 * float32(i%3)})
	}

	prev := make([]float32, mesh.Len())
	for i := range prev {
		prev[i] = offset(mesh, i)
	}

	for frame := 0; frame < 60; frame++ {
		sim.Step(nil, false)
		for i := range prev {
			off := offset(mesh, i)
			if off > prev[i]+1e-6 {
				t.Fatalf("frame %d: vertex %d offset grew %v -> %v", frame, i, prev[i], off)
			}
			prev[i] = off
		}
	}

	for i, off := range prev {
		if off > 0.05 {
			t.Fatalf("vertex %d still %v from rest after 60 frames", i, off)
		}
	}
}

func TestPressDentsFrontCenter(t *testing.T) {
	mesh, _, sim := newTestSimulator(fullRateParams())
	front := nearestVertex(mesh, math.Vec3{Z: 2})
	back := nearestVertex(mesh, math.Vec3{Z: -2})

	press := Deformation{Center: mesh.Rest()[front], Intensity: PressIntensity, Radius: PressRadius}
	sim.Step(&press, true)

	got := mesh.Displaced()[front]
	if got.Length() >= mesh.Rest()[front].Length() {
		t.Fatalf("front vertex did not move inward: %v", got)
	}
	wantDepth := Falloff(0, PressRadius, PressIntensity) * defaultParams().Depth
	if abs32(2-got.Length()-wantDepth) > 1e-4 {
		t.Errorf("front vertex depth = %v, want %v", 2-got.Length(), wantDepth)
	}

	if mesh.Displaced()[back] != mesh.Rest()[back] {
		t.Errorf("vertex outside the radius moved: %v", mesh.Displaced()[back])
	}

	for i, p := range mesh.Rest() {
		if p.Distance(press.Center) >= press.Radius && mesh.Displaced()[i] != p {
			t.Fatalf("vertex %d at distance %v outside the press moved", i, p.Distance(press.Center))
		}
	}
}

func TestHeldPressKeepsSteadyDepth(t *testing.T) {
	mesh, _, sim := newTestSimulator(fullRateParams())
	front := nearestVertex(mesh, math.Vec3{Z: 2})
	press := Deformation{Center: mesh.Rest()[front], Intensity: PressIntensity, Radius: PressRadius}

	sim.Step(&press, true)
	first := mesh.Displaced()[front]
	for i := 0; i < 30; i++ {
		sim.Step(&press, true)
	}
	if mesh.Displaced()[front].Distance(first) > 1e-5 {
		t.Errorf("held press drifted from %v to %v", first, mesh.Displaced()[front])
	}
}

func TestFadingDeformationsAreAdditive(t *testing.T) {
	mesh, set, sim := newTestSimulator(fullRateParams())
	front := nearestVertex(mesh, math.Vec3{Z: 2})
	center := mesh.Rest()[front]

	set.Add(Deformation{Center: center, Intensity: PressIntensity, Radius: PressRadius})
	sim.Step(nil, false)
	one := 2 - mesh.Displaced()[front].Length()

	mesh.ResetToRest()
	set.Clear()
	set.Add(Deformation{Center: center, Intensity: PressIntensity, Radius: PressRadius})
	set.Add(Deformation{Center: center, Intensity: PressIntensity, Radius: PressRadius})
	sim.Step(nil, false)
	two := 2 - mesh.Displaced()[front].Length()

	if abs32(two-2*one) > 1e-4 {
		t.Errorf("two stacked dents depth = %v, want twice %v", two, one)
	}
}

func TestStepDecaysAndPrunes(t *testing.T) {
	_, set, sim := newTestSimulator(fullRateParams())
	set.Add(Deformation{Center: math.Vec3{Z: 2}, Intensity: 0.0051, Radius: 0.25, CreatedAt: time.Now()})
	set.Add(Deformation{Center: math.Vec3{Z: 2}, Intensity: 0.5, Radius: 0.25, CreatedAt: time.Now()})

	sim.Step(nil, false)

	if set.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after the faint dent expires", set.Len())
	}
	if got := set.Records()[0].Intensity; abs32(got-0.49) > 1e-6 {
		t.Errorf("surviving intensity = %v, want 0.49", got)
	}
}

func TestIdleHalfRate(t *testing.T) {
	_, _, sim := newTestSimulator(defaultParams())

	want := []bool{true, false, true, false}
	for i, w := range want {
		if got := sim.Step(nil, false); got != w {
			t.Errorf("idle frame %d ran = %v, want %v", i+1, got, w)
		}
	}

	for i := 0; i < 4; i++ {
		if !sim.Step(nil, true) {
			t.Errorf("pressed frame %d was skipped", i+1)
		}
	}

	if sim.frame != 8 {
		t.Errorf("frame = %d, want 8", sim.frame)
	}
}

func TestSimulatorReset(t *testing.T) {
	mesh, set, sim := newTestSimulator(fullRateParams())
	front := nearestVertex(mesh, math.Vec3{Z: 2})
	set.Add(Deformation{Center: mesh.Rest()[front], Intensity: 1, Radius: 0.5})
	sim.Step(nil, false)

	sim.Reset()
	if set.Len() != 0 {
		t.Errorf("set not cleared: %d", set.Len())
	}
	if offset(mesh, front) != 0 {
		t.Errorf("mesh not at rest after reset")
	}
}
