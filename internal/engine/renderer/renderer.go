// Package renderer draws the deformable ball with OpenGL.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/squeeze/internal/engine/camera"
	"github.com/Faultbox/squeeze/internal/engine/lighting"
	"github.com/Faultbox/squeeze/internal/engine/renderer/shaders"
	"github.com/Faultbox/squeeze/internal/engine/shader"
	"github.com/Faultbox/squeeze/internal/logger"
	"github.com/Faultbox/squeeze/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [4]float32
}

// Mesh is the geometry the renderer uploads. Positions and normals must
// keep their length between updates.
type Mesh interface {
	Displaced() []math.Vec3
	Normals() []math.Vec3
	Indices() []uint32
}

// vec3Size is the byte size of a math.Vec3.
const vec3Size = int(unsafe.Sizeof(math.Vec3{}))

// Renderer handles all OpenGL rendering of the ball.
type Renderer struct {
	config   Config
	material Material
	log      *zap.Logger

	program *shader.Program

	vao        uint32
	posVBO     uint32
	normalVBO  uint32
	ebo        uint32
	vertCount  int
	indexCount int32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, material Material) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		material: material,
		log:      logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])

	var err error
	r.program, err = shader.New(shaders.BallVertexShader, shaders.BallFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("ball shader: %w", err)
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// SetMesh allocates GPU buffers for a mesh and uploads it.
func (r *Renderer) SetMesh(m Mesh) error {
	pos, normals, indices := m.Displaced(), m.Normals(), m.Indices()
	if len(pos) == 0 || len(indices) == 0 {
		return errors.New("empty mesh")
	}
	if len(normals) != len(pos) {
		return fmt.Errorf("mesh has %d positions but %d normals", len(pos), len(normals))
	}

	r.deleteBuffers()

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(pos)*vec3Size, unsafe.Pointer(&pos[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vec3Size), 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &r.normalVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.normalVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(normals)*vec3Size, unsafe.Pointer(&normals[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vec3Size), 0)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.vertCount = len(pos)
	r.indexCount = int32(len(indices))

	r.log.Debug("mesh uploaded",
		zap.Int("vertices", r.vertCount),
		zap.Int32("indices", r.indexCount),
	)
	return nil
}

// UpdateMesh re-uploads positions and normals after a simulation step.
func (r *Renderer) UpdateMesh(m Mesh) {
	pos, normals := m.Displaced(), m.Normals()
	if r.vao == 0 || len(pos) != r.vertCount || len(normals) != r.vertCount {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.posVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(pos)*vec3Size, unsafe.Pointer(&pos[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, r.normalVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(normals)*vec3Size, unsafe.Pointer(&normals[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Resize sets the viewport to the framebuffer size in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetViewport restricts drawing to a pixel rectangle of the framebuffer.
func (r *Renderer) SetViewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawBall draws the uploaded mesh lit by rig. model scales the ball
// within the frame.
func (r *Renderer) DrawBall(cam *camera.OrthoCamera, model math.Mat4, rig *lighting.Rig) {
	if r.vao == 0 {
		return
	}

	p := r.program
	p.Use()
	p.SetMat4("uModel", model)
	p.SetMat4("uView", cam.ViewMatrix())
	p.SetMat4("uProjection", cam.ProjectionMatrix())
	p.SetVec3("uViewDir", cam.ViewDir())

	m := r.material
	p.SetColor("uColor", m.Color)
	p.SetColor("uEmissive", m.EmissiveTerm())
	p.SetColor("uSpecular", m.Specular)
	p.SetFloat("uShininess", m.Shininess)
	p.SetFloat("uOpacity", m.Opacity)

	p.SetColor("uAmbient", rig.Ambient())

	inner, outer := rig.Spot.ConeCos()
	p.SetVec3("uSpotPos", rig.Spot.Position)
	p.SetVec3("uSpotDir", rig.Spot.Direction())
	p.SetColor("uSpotColor", rig.Spot.Color)
	p.SetFloat("uSpotIntensity", rig.Spot.Intensity)
	p.SetFloat("uSpotRange", rig.Spot.Range)
	p.SetFloat("uSpotDecay", rig.Spot.Decay)
	p.SetFloat("uSpotCosInner", inner)
	p.SetFloat("uSpotCosOuter", outer)

	p.SetVec3("uPointPos", rig.Point.Position)
	p.SetColor("uPointColor", rig.Point.Color)
	p.SetFloat("uPointIntensity", rig.Point.Intensity)
	p.SetFloat("uPointRange", rig.Point.Range)
	p.SetFloat("uPointDecay", rig.Point.Decay)

	p.SetVec3("uFillDir", rig.Fill.Direction())
	p.SetColor("uFillColor", rig.Fill.Color)
	p.SetFloat("uFillIntensity", rig.Fill.Intensity)

	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}

func (r *Renderer) deleteBuffers() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	for _, b := range []*uint32{&r.posVBO, &r.normalVBO, &r.ebo} {
		if *b != 0 {
			gl.DeleteBuffers(1, b)
			*b = 0
		}
	}
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.deleteBuffers()
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}
