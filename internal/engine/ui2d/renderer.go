// Package ui2d draws flat overlays (pressure rings and bar) over the 3D
// scene using OpenGL.
package ui2d

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/squeeze/internal/engine/shader"
	"github.com/Faultbox/squeeze/pkg/math"
)

const solidVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;

out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const solidFragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

// Renderer handles 2D overlay rendering with OpenGL.
type Renderer struct {
	screenWidth  int
	screenHeight int
	fbWidth      int
	fbHeight     int

	solid *shader.Program
	vao   uint32
	vbo   uint32
}

// New creates a new 2D overlay renderer. Must be called after the OpenGL
// context exists.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		screenWidth:  width,
		screenHeight: height,
	}

	var err error
	r.solid, err = shader.New(solidVertexShader, solidFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return r, nil
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
}

// SetFramebufferSize sets the pixel size the overlay covers. Zero keeps
// the current viewport.
func (r *Renderer) SetFramebufferSize(width, height int) {
	r.fbWidth = width
	r.fbHeight = height
}

// Draw renders a batch on top of the current frame.
func (r *Renderer) Draw(b *Batch) {
	if b.VertexCount() == 0 {
		return
	}

	var prevBlend, prevDepth int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	if r.fbWidth > 0 && r.fbHeight > 0 {
		gl.Viewport(0, 0, int32(r.fbWidth), int32(r.fbHeight))
	}

	r.solid.Use()
	r.solid.SetMat4("uProjection", math.Ortho(0, float32(r.screenWidth), float32(r.screenHeight), 0, -1, 1))

	verts := b.Vertices()
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(b.VertexCount()))

	gl.BindVertexArray(0)
	gl.UseProgram(0)

	if prevBlend == gl.FALSE {
		gl.Disable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.solid != nil {
		r.solid.Delete()
	}
}
