// Package haptic drives rumble feedback through SDL. Vibrate may be called
// from any goroutine; the SDL calls happen in Flush, which the frame loop
// runs on the main thread.
package haptic

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// ErrUnavailable is returned when no rumble-capable device exists.
var ErrUnavailable = errors.New("haptic: no rumble device")

// rumbler is the part of *sdl.Haptic the device drives.
type rumbler interface {
	RumblePlay(strength float32, length uint32) error
	RumbleStop() error
	Close()
}

// pulse is a rumble request waiting for the next Flush.
type pulse struct {
	strength float32
	ms       uint32
}

// Device is an opened rumble device.
type Device struct {
	mu      sync.Mutex
	haptic  rumbler
	name    string
	pending *pulse
	once    sync.Once
}

// Open initializes the SDL haptic subsystem and opens the first device
// that supports rumble.
func Open() (*Device, error) {
	if err := sdl.InitSubSystem(sdl.INIT_HAPTIC); err != nil {
		return nil, fmt.Errorf("init haptic: %w", err)
	}

	n, err := sdl.NumHaptics()
	if err != nil || n < 1 {
		sdl.QuitSubSystem(sdl.INIT_HAPTIC)
		return nil, ErrUnavailable
	}

	for i := 0; i < n; i++ {
		h, err := sdl.HapticOpen(i)
		if err != nil {
			continue
		}
		if ok, _ := h.RumbleSupported(); !ok {
			h.Close()
			continue
		}
		if err := h.RumbleInit(); err != nil {
			h.Close()
			continue
		}
		name, _ := sdl.HapticName(i)
		return &Device{haptic: h, name: name}, nil
	}

	sdl.QuitSubSystem(sdl.INIT_HAPTIC)
	return nil, ErrUnavailable
}

// Name returns the device name reported by SDL.
func (d *Device) Name() string {
	return d.name
}

// Vibrate queues a rumble pulse for the next Flush. strength is clamped to
// [0, 1]. Pulses queued between flushes merge into the strongest and
// longest of them.
func (d *Device) Vibrate(strength float32, dur time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.haptic == nil {
		return ErrUnavailable
	}
	ms := durationMillis(dur)
	if ms == 0 {
		return nil
	}
	p := pulse{strength: clampStrength(strength), ms: ms}
	if d.pending != nil {
		p.strength = max(p.strength, d.pending.strength)
		p.ms = max(p.ms, d.pending.ms)
	}
	d.pending = &p
	return nil
}

// Flush plays the pending pulse, if any. Call it from the thread that owns
// SDL.
func (d *Device) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.haptic == nil || d.pending == nil {
		return nil
	}
	p := *d.pending
	d.pending = nil
	if err := d.haptic.RumblePlay(p.strength, p.ms); err != nil {
		return fmt.Errorf("rumble: %w", err)
	}
	return nil
}

// Close releases the device. Safe to call more than once.
func (d *Device) Close() {
	d.once.Do(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.haptic != nil {
			d.haptic.RumbleStop()
			d.haptic.Close()
			d.haptic = nil
			d.pending = nil
		}
		sdl.QuitSubSystem(sdl.INIT_HAPTIC)
	})
}

func clampStrength(s float32) float32 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

func durationMillis(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	ms := d.Milliseconds()
	if ms == 0 {
		ms = 1
	}
	return uint32(ms)
}
