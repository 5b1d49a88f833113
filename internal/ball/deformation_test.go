package ball

import (
	gomath "math"
	"testing"
	"time"
)

func TestFalloff(t *testing.T) {
	tests := []struct {
		name    string
		d, r, i float32
		want    float32
	}{
		{"center full", 0, 1, 1, 1},
		{"center press", 0, 0.35, 0.8, 0.802816},
		{"rim", 1, 1, 1, 0},
		{"outside", 2, 1, 1, 0},
		{"zero radius", 0, 0, 1, 0},
		{"zero intensity", 0, 1, 0, 0},
		{"half way", 0.5, 1, 1, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Falloff(tt.d, tt.r, tt.i)
			if abs32(got-tt.want) > 1e-5 {
				t.Errorf("Falloff(%v, %v, %v) = %v, want %v", tt.d, tt.r, tt.i, got, tt.want)
			}
		})
	}
}

func TestFalloffMonotonic(t *testing.T) {
	prev := Falloff(0, 0.35, 0.8)
	for d := float32(0.01); d < 0.4; d += 0.01 {
		f := Falloff(d, 0.35, 0.8)
		if f > prev {
			t.Fatalf("falloff increased at d=%v: %v > %v", d, f, prev)
		}
		if f < 0 {
			t.Fatalf("falloff negative at d=%v", d)
		}
		prev = f
	}
}

func TestDeformationSetCapAndFloor(t *testing.T) {
	s := NewDeformationSet(DefaultMaxDeformations, DefaultTrimDeformations)
	base := time.Unix(0, 0)

	for i := 0; i < 100; i++ {
		s.Add(Deformation{Intensity: 0.5, Radius: 0.25, CreatedAt: base.Add(time.Duration(i) * time.Second)})

		if s.Len() > DefaultMaxDeformations {
			t.Fatalf("after insertion %d size %d exceeds cap", i, s.Len())
		}
		if i == DefaultMaxDeformations {
			// The 31st insertion trims back to the floor.
			if s.Len() != DefaultTrimDeformations {
				t.Fatalf("after exceeding the cap size = %d, want %d", s.Len(), DefaultTrimDeformations)
			}
			oldest := s.Records()[0].CreatedAt
			if want := base.Add(6 * time.Second); !oldest.Equal(want) {
				t.Errorf("oldest kept record created at %v, want %v", oldest, want)
			}
		}
	}

	records := s.Records()
	for i := 1; i < len(records); i++ {
		if !records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Fatal("records are not in insertion order")
		}
	}
}

func TestNewDeformationSetClampsFloor(t *testing.T) {
	s := NewDeformationSet(5, 10)
	for i := 0; i < 6; i++ {
		s.Add(Deformation{Intensity: 1, Radius: 1})
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5 when the floor is clamped to the cap", s.Len())
	}
	if s.Cap() != 5 {
		t.Errorf("Cap() = %d, want 5", s.Cap())
	}
}

func TestDecayAllFollowsGeometricLaw(t *testing.T) {
	const (
		fade       = 0.98
		radiusFade = 0.999
		minimum    = 0.005
	)

	s := NewDeformationSet(30, 25)
	s.Add(Deformation{Intensity: PressIntensity, Radius: PressRadius})

	// Expected step of removal, using the same float32 arithmetic.
	removeAt := 0
	for x := float32(PressIntensity); x > minimum; {
		x *= fade
		removeAt++
	}

	for n := 1; n < removeAt; n++ {
		s.DecayAll(fade, radiusFade, minimum)
		if s.Len() != 1 {
			t.Fatalf("record removed early at step %d", n)
		}

		d := s.Records()[0]
		want := PressIntensity * gomath.Pow(fade, float64(n))
		if gomath.Abs(float64(d.Intensity)-want) > want*1e-4 {
			t.Fatalf("step %d: intensity %v, want %v", n, d.Intensity, want)
		}
		wantR := PressRadius * gomath.Pow(radiusFade, float64(n))
		if gomath.Abs(float64(d.Radius)-wantR) > wantR*1e-4 {
			t.Fatalf("step %d: radius %v, want %v", n, d.Radius, wantR)
		}
	}

	s.DecayAll(fade, radiusFade, minimum)
	if s.Len() != 0 {
		t.Errorf("record should be removed at step %d", removeAt)
	}
}

func TestDecayAllKeepsOrder(t *testing.T) {
	s := NewDeformationSet(30, 25)
	s.Add(Deformation{Intensity: 0.9, Radius: 1, CreatedAt: time.Unix(1, 0)})
	s.Add(Deformation{Intensity: 0.005, Radius: 1, CreatedAt: time.Unix(2, 0)})
	s.Add(Deformation{Intensity: 0.7, Radius: 1, CreatedAt: time.Unix(3, 0)})

	s.DecayAll(0.98, 0.999, 0.005)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s.Records()[0].CreatedAt.Unix() != 1 || s.Records()[1].CreatedAt.Unix() != 3 {
		t.Errorf("unexpected survivors: %+v", s.Records())
	}
}

func TestDeformationSetClear(t *testing.T) {
	s := NewDeformationSet(30, 25)
	s.Add(Deformation{Intensity: 1, Radius: 1})
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d", s.Len())
	}
}
