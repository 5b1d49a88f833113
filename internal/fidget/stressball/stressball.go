// Package stressball is the deformable stress-ball fidget: it wires the
// deformation engine to input, rendering and feedback.
package stressball

import (
	"errors"
	"fmt"
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/squeeze/internal/ball"
	"github.com/Faultbox/squeeze/internal/config"
	"github.com/Faultbox/squeeze/internal/engine/camera"
	"github.com/Faultbox/squeeze/internal/engine/input"
	"github.com/Faultbox/squeeze/internal/engine/lighting"
	"github.com/Faultbox/squeeze/internal/engine/renderer"
	"github.com/Faultbox/squeeze/internal/engine/ui2d"
	"github.com/Faultbox/squeeze/internal/logger"
	"github.com/Faultbox/squeeze/pkg/math"
)

// CameraHalfExtent frames a radius-2 ball with a margin.
const CameraHalfExtent = 2.6

// Host is the window the fidget lives in.
type Host interface {
	GetSize() (int, int)
	DrawableSize() (int, int)
	CaptureMouse(on bool)
	SetTitle(title string)
}

// BallRenderer draws the mesh.
type BallRenderer interface {
	SetMesh(m renderer.Mesh) error
	UpdateMesh(m renderer.Mesh)
	SetViewport(x, y, width, height int)
	Begin()
	DrawBall(cam *camera.OrthoCamera, model math.Mat4, rig *lighting.Rig)
	End()
}

// OverlayRenderer draws the rings and pressure bar.
type OverlayRenderer interface {
	Resize(width, height int)
	SetFramebufferSize(width, height int)
	Draw(b *ui2d.Batch)
}

// Options configures a StressBall. Renderer and Overlay may be nil; Render
// then skips that layer.
type Options struct {
	Ball       config.BallConfig
	Simulation config.SimulationConfig
	Title      string

	Host     Host
	Feedback ball.Feedback
	Renderer BallRenderer
	Overlay  OverlayRenderer
}

// StressBall is the stress-ball fidget.
type StressBall struct {
	title string
	color [3]float32
	log   *zap.Logger

	host     Host
	renderer BallRenderer
	overlay  OverlayRenderer

	mesh       *ball.Mesh
	set        *ball.DeformationSet
	sim        *ball.Simulator
	mapper     *ball.Mapper
	controller *ball.Controller
	camera     *camera.OrthoCamera
	rig        lighting.Rig
	visuals    *Visuals
	batch      *ui2d.Batch

	dirty     bool
	holding   bool
	lastTitle string
}

// New builds the fidget and its deformation engine.
func New(opts Options) (*StressBall, error) {
	if opts.Host == nil {
		return nil, errors.New("stressball: host is required")
	}
	color, err := opts.Ball.RGB()
	if err != nil {
		return nil, err
	}

	mesh := ball.NewSphereMesh(opts.Ball.Radius, opts.Ball.WidthSegments, opts.Ball.HeightSegments)
	set := ball.NewDeformationSet(opts.Simulation.MaxDeformations, opts.Simulation.TrimDeformations)
	cam := camera.NewOrthoCamera(CameraHalfExtent)
	mapper := ball.NewMapper(cam, mesh)

	sc := opts.Simulation
	params := ball.Params{
		Smoothing:      sc.Smoothing,
		Depth:          sc.Depth,
		FadeRate:       sc.FadeRate,
		RadiusFadeRate: sc.RadiusFadeRate,
		MinIntensity:   sc.MinIntensity,
		IdleHalfRate:   sc.IdleHalfRate,
	}

	return &StressBall{
		title:      opts.Title,
		color:      color,
		log:        logger.Named("stressball"),
		host:       opts.Host,
		renderer:   opts.Renderer,
		overlay:    opts.Overlay,
		mesh:       mesh,
		set:        set,
		sim:        ball.NewSimulator(mesh, set, params),
		mapper:     mapper,
		controller: ball.NewController(mapper, set, opts.Feedback),
		camera:     cam,
		rig:        lighting.DefaultRig(),
		visuals:    NewVisuals(),
		batch:      ui2d.NewBatch(),
		dirty:      true,
	}, nil
}

// Name identifies the fidget.
func (s *StressBall) Name() string {
	return "stress-ball"
}

// Enter uploads the mesh and shows the initial title.
func (s *StressBall) Enter() error {
	if s.renderer != nil {
		if err := s.renderer.SetMesh(s.mesh); err != nil {
			return fmt.Errorf("upload ball mesh: %w", err)
		}
	}
	s.updateTitle()
	s.log.Debug("entered",
		zap.Int("vertices", s.mesh.Len()),
		zap.Int("max_deformations", s.set.Cap()),
	)
	return nil
}

// Exit drops any live press without feedback and releases the mouse.
func (s *StressBall) Exit() error {
	s.controller.Cancel()
	s.host.CaptureMouse(false)
	s.log.Debug("exited", zap.Int("deformations", s.set.Len()))
	return nil
}

// HandleAction feeds pointer and keyboard actions to the controller.
func (s *StressBall) HandleAction(a input.Action, now time.Time) error {
	bounds := s.Bounds()
	p := ball.Pointer{X: a.X, Y: a.Y}
	if a.AtCenter {
		p = bounds.Center()
	}

	switch a.Type {
	case input.ActionPressStart:
		if s.controller.Pressed() {
			return nil
		}
		s.controller.PressStart(p, bounds, now)
		s.host.CaptureMouse(true)
	case input.ActionMove:
		s.controller.Move(p, bounds, now)
	case input.ActionRelease:
		if !s.controller.Pressed() {
			return nil
		}
		s.controller.Release(now)
		s.host.CaptureMouse(false)
	case input.ActionReset:
		s.Reset()
	}
	return nil
}

// Reset drops every dent and restores the sphere.
func (s *StressBall) Reset() {
	s.controller.Cancel()
	s.host.CaptureMouse(false)
	s.sim.Reset()
	s.dirty = true
	s.log.Debug("reset")
}

// Update advances the hold timer, the simulation and the animations.
func (s *StressBall) Update(now time.Time, dt float64) error {
	s.controller.Update(now)

	if h := s.controller.Holding(); h != s.holding {
		s.holding = h
		s.log.Debug("hold", zap.Bool("on", h), zap.Stringer("state", s.controller.State()))
	}

	var press *ball.Deformation
	if d, ok := s.controller.Press(); ok {
		press = &d
	}
	if s.sim.Step(press, s.controller.Pressed()) {
		s.dirty = true
	}

	pose := s.controller.Light()
	s.rig.Follow(pose.SpotPosition, pose.SpotTarget, pose.PointPosition)

	s.visuals.Update(dt, s.controller.Pressed(), s.controller.Pressure())
	s.updateTitle()
	return nil
}

// Render draws the ball and the overlay.
func (s *StressBall) Render() error {
	if s.renderer != nil {
		if s.dirty {
			s.renderer.UpdateMesh(s.mesh)
			s.dirty = false
		}
		x, y, size := s.viewport()
		cs := s.visuals.ContainerScale()

		s.renderer.Begin()
		s.renderer.SetViewport(x, y, size, size)
		s.renderer.DrawBall(s.camera, math.Scale(cs, cs, cs), &s.rig)
		s.renderer.End()
	}

	if s.overlay != nil {
		w, h := s.host.GetSize()
		fbW, fbH := s.host.DrawableSize()
		s.overlay.Resize(w, h)
		s.overlay.SetFramebufferSize(fbW, fbH)

		s.batch.Reset()
		buildOverlay(s.batch, s.square(), w, h, s.visuals, s.controller.Pressure(), s.color)
		s.overlay.Draw(s.batch)
	}
	return nil
}

// Bounds returns the on-screen rectangle the ball element occupies, in
// window coordinates, including the container squeeze.
func (s *StressBall) Bounds() ball.Rect {
	sq := s.square()
	cs := s.visuals.ContainerScale()
	c := sq.Center()
	side := sq.W * cs
	return ball.Rect{X: c.X - side/2, Y: c.Y - side/2, W: side, H: side}
}

// square is the largest centered square in the window.
func (s *StressBall) square() ball.Rect {
	w, h := s.host.GetSize()
	side := w
	if h < side {
		side = h
	}
	return ball.Rect{
		X: float32(w-side) / 2,
		Y: float32(h-side) / 2,
		W: float32(side),
		H: float32(side),
	}
}

// viewport is square() in framebuffer pixels.
func (s *StressBall) viewport() (x, y, size int) {
	w, h := s.host.GetSize()
	fbW, fbH := s.host.DrawableSize()
	if w <= 0 || h <= 0 {
		return 0, 0, 0
	}
	side := fbW
	if fbH < side {
		side = fbH
	}
	return (fbW - side) / 2, (fbH - side) / 2, side
}

func (s *StressBall) updateTitle() {
	title := PressureTitle(s.title, s.controller.Pressure())
	if title == s.lastTitle {
		return
	}
	s.lastTitle = title
	s.host.SetTitle(title)
}

// PressureTitle formats the window title with the pressure percentage.
func PressureTitle(base string, pressure float32) string {
	pct := int(gomath.Round(float64(pressure) * 100))
	if base == "" {
		return fmt.Sprintf("Pressure: %d%%", pct)
	}
	return fmt.Sprintf("%s - Pressure: %d%%", base, pct)
}
