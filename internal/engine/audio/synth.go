// Package audio synthesizes the short feedback tones.
package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Envelope gain at the start and end of a tone.
const (
	startGain = 0.1
	endGain   = 0.01
)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Synth plays sine tones through a shared mixer.
type Synth struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	mixer       *beep.Mixer

	// 0.0 to 1.0
	volume float64
}

// NewSynth creates a synth at the given master volume.
func NewSynth(volume float64) *Synth {
	return &Synth{
		sampleRate: DefaultSampleRate,
		mixer:      &beep.Mixer{},
		volume:     clamp(volume, 0, 1),
	}
}

// Init opens the speaker and starts the mixer.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s.mixer)

	s.initialized = true
	return nil
}

// Close stops playback and releases the speaker. Safe to call twice.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// PlayTone queues a sine tone. It returns as soon as the tone is mixed in.
func (s *Synth) PlayTone(freq float64, dur time.Duration) error {
	s.mu.RLock()
	initialized := s.initialized
	vol := s.volume
	s.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if vol <= 0 {
		return nil
	}

	tone, err := newTone(s.sampleRate, freq, dur, vol)
	if err != nil {
		return err
	}

	speaker.Lock()
	s.mixer.Add(tone)
	speaker.Unlock()
	return nil
}

// newTone builds a finite sine tone with the decay envelope and volume
// applied.
func newTone(sr beep.SampleRate, freq float64, dur time.Duration, vol float64) (beep.Streamer, error) {
	n := sr.N(dur)
	if n <= 0 {
		return nil, fmt.Errorf("tone duration %v too short", dur)
	}

	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("sine %v Hz: %w", freq, err)
	}

	return &effects.Volume{
		Streamer: &decay{streamer: beep.Take(n, sine), total: n},
		Base:     2,
		Volume:   volumeToExp(vol),
		Silent:   vol <= 0,
	}, nil
}

// decay ramps gain exponentially from startGain to endGain over total
// samples.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := envelopeGain(d.position, d.total)
		samples[i][0] *= g
		samples[i][1] *= g
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error {
	return d.streamer.Err()
}

// envelopeGain is the gain at sample pos of a tone total samples long.
func envelopeGain(pos, total int) float64 {
	if total <= 1 {
		return startGain
	}
	t := float64(pos) / float64(total-1)
	if t > 1 {
		t = 1
	}
	return startGain * math.Pow(endGain/startGain, t)
}

// volumeToExp converts a 0-1 volume into the exponent effects.Volume
// expects with Base 2.
func volumeToExp(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
