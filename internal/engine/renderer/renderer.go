// Package renderer draws the viewer's debug line lists with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/camrig/internal/engine/debug"
	"github.com/Faultbox/camrig/internal/engine/shader"
	"github.com/Faultbox/camrig/internal/logger"
	"github.com/Faultbox/camrig/pkg/math"
)

const (
	vertexFloats = 7 // x, y, z, r, g, b, a
	vertexStride = vertexFloats * 4

	nearPlane = 5
	farPlane  = 50000
)

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uMVP;

out vec4 vColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const lineFragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	lines    *shader.Program
	lineVAO  uint32
	lineVBO  uint32
	capacity int // VBO size in vertices

	viewProj math.Mat4
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		viewProj: math.Identity(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background

	var err error
	r.lines, err = shader.New(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.lines != nil {
		r.lines.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetView sets the camera for subsequent draws. fovDeg is horizontal.
func (r *Renderer) SetView(location math.Vec3, rot math.Rotator, fovDeg float32) {
	proj := math.Perspective(math.VerticalFOV(fovDeg, r.Aspect()), r.Aspect(), nearPlane, farPlane)
	r.viewProj = proj.Mul(math.ViewMatrix(location, rot))
}

// SetViewMatrix sets the camera from a prebuilt view matrix.
func (r *Renderer) SetViewMatrix(view math.Mat4, fovDeg float32) {
	proj := math.Perspective(math.VerticalFOV(fovDeg, r.Aspect()), r.Aspect(), nearPlane, farPlane)
	r.viewProj = proj.Mul(view)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {}

// DrawLines streams a line list and draws it with the current view.
func (r *Renderer) DrawLines(vertices []debug.LineVertex) {
	if len(vertices) == 0 {
		return
	}

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)

	size := len(vertices) * vertexStride
	if len(vertices) > r.capacity {
		// Grow by doubling.
		c := max(r.capacity, 1024)
		for c < len(vertices) {
			c *= 2
		}
		r.capacity = c
		gl.BufferData(gl.ARRAY_BUFFER, c*vertexStride, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&vertices[0]))

	r.lines.Use()
	r.lines.SetMat4("uMVP", r.viewProj.Ptr())
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}
