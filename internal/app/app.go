// Package app implements the main loop that hosts the fidgets.
package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/squeeze/internal/config"
	"github.com/Faultbox/squeeze/internal/engine/audio"
	"github.com/Faultbox/squeeze/internal/engine/haptic"
	"github.com/Faultbox/squeeze/internal/engine/input"
	"github.com/Faultbox/squeeze/internal/engine/renderer"
	"github.com/Faultbox/squeeze/internal/engine/ui2d"
	"github.com/Faultbox/squeeze/internal/engine/window"
	"github.com/Faultbox/squeeze/internal/feedback"
	"github.com/Faultbox/squeeze/internal/fidget"
	"github.com/Faultbox/squeeze/internal/fidget/stressball"
	"github.com/Faultbox/squeeze/internal/logger"
)

// Title is the window title prefix.
const Title = "Squeeze"

// background matches the dark page the ball is drawn on.
var background = [4]float32{0.07, 0.08, 0.11, 1}

// App is the main application instance.
type App struct {
	cfg *config.Config
	log *zap.Logger

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc

	window   *window.Window
	renderer *renderer.Renderer
	overlay  *ui2d.Renderer
	input    *input.Input
	synth    *audio.Synth
	haptic   *haptic.Device
	emitter  *feedback.Emitter
	prefs    *preferences
	fidgets  *fidget.Manager

	closeOnce sync.Once
}

// New creates the window, renderer, audio and haptic devices and the
// stress-ball fidget.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	a.log.Info("initializing",
		zap.Int("size", cfg.Graphics.Width),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Size:       cfg.Graphics.Width,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	})
	if err != nil {
		a.cancel()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	color, err := cfg.Ball.RGB()
	if err != nil {
		a.Close()
		return nil, err
	}

	// Renderer must come after the window: it needs the GL context.
	fbW, fbH := a.window.DrawableSize()
	a.renderer, err = renderer.New(
		renderer.Config{Width: fbW, Height: fbH, Background: background},
		renderer.DefaultMaterial(color, cfg.Ball.Opacity),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	w, h := a.window.GetSize()
	a.overlay, err = ui2d.New(w, h)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}

	a.input = input.New(w, h)
	a.emitter = a.openFeedback()
	a.prefs = newPreferences(cfg, a.emitter, cfg.UpdateFile)

	ball, err := stressball.New(stressball.Options{
		Ball:       cfg.Ball,
		Simulation: cfg.Simulation,
		Title:      Title,
		Host:       a.window,
		Feedback:   a.emitter,
		Renderer:   a.renderer,
		Overlay:    a.overlay,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create stress ball: %w", err)
	}
	a.fidgets = fidget.NewManager()
	a.fidgets.Change(ball)

	a.log.Info("initialized successfully")
	return a, nil
}

// openFeedback opens whatever audio and haptic devices exist. Missing
// devices only disable their channel.
func (a *App) openFeedback() *feedback.Emitter {
	var tones feedback.ToneSink
	a.synth = audio.NewSynth(a.cfg.Feedback.Volume)
	if err := a.synth.Init(); err != nil {
		a.log.Warn("audio unavailable, tones disabled", zap.Error(err))
		a.synth = nil
	} else {
		tones = a.synth
	}

	var vib feedback.Vibrator
	if dev, err := haptic.Open(); err != nil {
		a.log.Info("no rumble device, using fallback tones", zap.Error(err))
	} else {
		a.haptic = dev
		vib = dev
		a.log.Info("rumble device opened", zap.String("name", dev.Name()))
	}

	opts := feedback.DefaultOptions()
	opts.Sound = a.cfg.Feedback.Sound
	opts.Vibration = a.cfg.Feedback.Vibration
	e := feedback.New(tones, vib, opts)
	e.Start(a.ctx)
	return e
}

// Run starts the main loop. It returns when Stop is called, the window is
// closed or a fidget fails.
func (a *App) Run() error {
	a.running.Store(true)

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	a.log.Info("starting main loop")

	for a.running.Load() {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running.Store(false)
		}
		for _, act := range a.input.Actions() {
			if err := a.handle(act, now); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
		}
		if !a.running.Load() {
			break
		}

		// 2. Update
		if err := a.fidgets.Update(now, dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Rumble requested since the last frame
		if a.haptic != nil {
			if err := a.haptic.Flush(); err != nil {
				a.log.Debug("rumble failed", zap.Error(err))
			}
		}

		// 4. Render
		if err := a.fidgets.Render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// 5. Present
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	a.log.Info("main loop stopped")
	return nil
}

// handle applies app-level actions and forwards the rest to the fidget.
func (a *App) handle(act input.Action, now time.Time) error {
	switch act.Type {
	case input.ActionQuit:
		a.Stop()
		return nil
	case input.ActionResize:
		a.input.SetSize(act.Width, act.Height)
		fbW, fbH := a.window.DrawableSize()
		a.renderer.Resize(fbW, fbH)
		a.overlay.Resize(act.Width, act.Height)
		return nil
	case input.ActionToggleSound:
		a.prefs.toggleSound()
		return nil
	case input.ActionToggleVibration:
		a.prefs.toggleVibration()
		return nil
	}
	return a.fidgets.HandleAction(act, now)
}

// Stop ends the main loop after the current frame.
func (a *App) Stop() {
	a.running.Store(false)
}

// Close releases everything New created, newest first. Safe to call more
// than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.log.Info("closing")
		a.Stop()

		if a.fidgets != nil {
			if f := a.fidgets.Current(); f != nil {
				a.log.Debug("exiting fidget", zap.String("name", f.Name()))
			}
			if err := a.fidgets.Close(); err != nil {
				a.log.Warn("fidget exit failed", zap.Error(err))
			}
		}
		if a.emitter != nil {
			a.emitter.Close()
			if n := a.emitter.Dropped(); n > 0 {
				a.log.Info("feedback requests dropped", zap.Uint64("count", n))
			}
		}
		a.cancel()

		if a.overlay != nil {
			a.overlay.Close()
		}
		if a.renderer != nil {
			a.renderer.Close()
		}
		if a.synth != nil {
			a.synth.Close()
		}
		if a.haptic != nil {
			a.haptic.Close()
		}
		if a.window != nil {
			a.window.Close()
		}
	})
}
