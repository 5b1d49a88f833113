package haptic

import (
	"errors"
	"testing"
	"time"
)

func TestClampStrength(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := clampStrength(tt.in); got != tt.want {
			t.Errorf("clampStrength(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDurationMillis(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want uint32
	}{
		{-time.Millisecond, 0},
		{0, 0},
		{500 * time.Microsecond, 1},
		{15 * time.Millisecond, 15},
		{50 * time.Millisecond, 50},
	}
	for _, tt := range tests {
		if got := durationMillis(tt.in); got != tt.want {
			t.Errorf("durationMillis(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClosedDevice(t *testing.T) {
	d := &Device{}
	if err := d.Vibrate(0.5, 10*time.Millisecond); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Vibrate on an empty device = %v, want ErrUnavailable", err)
	}
}

type fakeRumbler struct {
	plays []pulse
	err   error
}

func (f *fakeRumbler) RumblePlay(strength float32, length uint32) error {
	f.plays = append(f.plays, pulse{strength: strength, ms: length})
	return f.err
}

func (f *fakeRumbler) RumbleStop() error { return nil }
func (f *fakeRumbler) Close()            {}

func TestVibrateWaitsForFlush(t *testing.T) {
	r := &fakeRumbler{}
	d := &Device{haptic: r}

	if err := d.Vibrate(0.3, 15*time.Millisecond); err != nil {
		t.Fatalf("Vibrate: %v", err)
	}
	if len(r.plays) != 0 {
		t.Fatalf("rumble played before Flush: %+v", r.plays)
	}

	if err := d.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(r.plays) != 1 || r.plays[0] != (pulse{strength: 0.3, ms: 15}) {
		t.Errorf("plays = %+v, want one 0.3/15ms pulse", r.plays)
	}

	if err := d.Flush(); err != nil || len(r.plays) != 1 {
		t.Errorf("second Flush replayed: plays=%d err=%v", len(r.plays), err)
	}
}

func TestPendingPulsesMerge(t *testing.T) {
	r := &fakeRumbler{}
	d := &Device{haptic: r}

	d.Vibrate(0.15, 7500*time.Microsecond)
	d.Vibrate(0.4, 20*time.Millisecond)
	d.Vibrate(0.2, 10*time.Millisecond)
	d.Flush()

	if len(r.plays) != 1 || r.plays[0] != (pulse{strength: 0.4, ms: 20}) {
		t.Errorf("plays = %+v, want one merged 0.4/20ms pulse", r.plays)
	}
}

func TestFlushReportsRumbleError(t *testing.T) {
	r := &fakeRumbler{err: errors.New("device lost")}
	d := &Device{haptic: r}

	d.Vibrate(1, 50*time.Millisecond)
	if err := d.Flush(); err == nil {
		t.Error("expected the rumble error from Flush")
	}
}
