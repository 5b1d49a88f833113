// Package feedback turns interaction events into tones and vibration
// pulses without blocking the caller.
package feedback

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/squeeze/internal/logger"
)

// ToneSink plays a short tone.
type ToneSink interface {
	PlayTone(freq float64, dur time.Duration) error
}

// Vibrator plays a vibration pulse.
type Vibrator interface {
	Vibrate(strength float32, dur time.Duration) error
}

const (
	// DefaultQueueSize bounds pending requests.
	DefaultQueueSize = 32

	pulsePerIntensity = 50 * time.Millisecond
	fallbackBase      = 150.0
	fallbackRange     = 100.0
	fallbackDuration  = 30 * time.Millisecond
)

// Options configures an Emitter.
type Options struct {
	Sound     bool
	Vibration bool
	QueueSize int
}

// DefaultOptions enables both channels.
func DefaultOptions() Options {
	return Options{
		Sound:     true,
		Vibration: true,
		QueueSize: DefaultQueueSize,
	}
}

type requestKind int

const (
	toneRequest requestKind = iota
	vibrateRequest
)

type request struct {
	kind     requestKind
	freq     float64
	strength float32
	dur      time.Duration
}

// Emitter dispatches feedback on a worker goroutine. Tone and Haptic never
// block; when the queue is full the request is dropped.
type Emitter struct {
	tones ToneSink
	vib   Vibrator
	log   *zap.Logger

	sound     atomic.Bool
	vibration atomic.Bool

	queue   chan request
	dropped atomic.Uint64

	startOnce sync.Once
	closeOnce sync.Once
	closed    atomic.Bool
	done      chan struct{}
	wg        sync.WaitGroup
}

// New creates an Emitter. Either channel may be nil.
func New(tones ToneSink, vib Vibrator, opts Options) *Emitter {
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	e := &Emitter{
		tones: tones,
		vib:   vib,
		log:   logger.Named("feedback"),
		queue: make(chan request, opts.QueueSize),
		done:  make(chan struct{}),
	}
	e.sound.Store(opts.Sound)
	e.vibration.Store(opts.Vibration)
	return e
}

// Start runs the worker until ctx is done or Close is called. Calls after
// the first are ignored.
func (e *Emitter) Start(ctx context.Context) {
	e.startOnce.Do(func() {
		e.wg.Add(1)
		go e.run(ctx)
	})
}

// Close stops the worker and waits for it. Pending requests are discarded.
func (e *Emitter) Close() {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		close(e.done)
		e.wg.Wait()
	})
}

// SetSound enables or disables tones.
func (e *Emitter) SetSound(on bool) { e.sound.Store(on) }

// Sound reports whether tones are enabled.
func (e *Emitter) Sound() bool { return e.sound.Load() }

// SetVibration enables or disables vibration.
func (e *Emitter) SetVibration(on bool) { e.vibration.Store(on) }

// Vibration reports whether vibration is enabled.
func (e *Emitter) Vibration() bool { return e.vibration.Load() }

// Dropped returns how many requests were discarded because the queue was
// full.
func (e *Emitter) Dropped() uint64 { return e.dropped.Load() }

// Tone requests a sine tone.
func (e *Emitter) Tone(freq float64, dur time.Duration) {
	if !e.sound.Load() || e.tones == nil {
		return
	}
	e.enqueue(request{kind: toneRequest, freq: freq, dur: dur})
}

// Haptic requests a vibration pulse of intensity*50ms. Without a vibrator
// it plays a short tone instead, if sound is on.
func (e *Emitter) Haptic(intensity float32) {
	if !e.vibration.Load() {
		return
	}
	if e.vib == nil {
		e.Tone(fallbackBase+float64(intensity)*fallbackRange, fallbackDuration)
		return
	}
	e.enqueue(request{
		kind:     vibrateRequest,
		strength: intensity,
		dur:      time.Duration(float64(intensity) * float64(pulsePerIntensity)),
	})
}

func (e *Emitter) enqueue(r request) {
	if e.closed.Load() {
		return
	}
	select {
	case e.queue <- r:
	default:
		e.dropped.Add(1)
	}
}

func (e *Emitter) run(ctx context.Context) {
	defer e.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.done:
			return
		case r := <-e.queue:
			e.dispatch(r)
		}
	}
}

func (e *Emitter) dispatch(r request) {
	switch r.kind {
	case toneRequest:
		if err := e.tones.PlayTone(r.freq, r.dur); err != nil {
			e.log.Debug("tone failed", zap.Float64("freq", r.freq), zap.Error(err))
		}
	case vibrateRequest:
		if err := e.vib.Vibrate(r.strength, r.dur); err != nil {
			e.log.Debug("vibrate failed", zap.Float32("strength", r.strength), zap.Error(err))
		}
	}
}
