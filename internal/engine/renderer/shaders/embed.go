// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// BallVertexShader is the vertex shader for the deformable ball.
//
//go:embed ball.vert
var BallVertexShader string

// BallFragmentShader is the Phong fragment shader for the deformable ball.
//
//go:embed ball.frag
var BallFragmentShader string
