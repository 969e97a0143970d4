// Package renderer draws tessellated Bezier meshes with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/bezier-teapot/internal/engine/camera"
	"github.com/Faultbox/bezier-teapot/internal/engine/lighting"
	"github.com/Faultbox/bezier-teapot/internal/engine/renderer/shaders"
	"github.com/Faultbox/bezier-teapot/internal/engine/shader"
	"github.com/Faultbox/bezier-teapot/internal/logger"
	"github.com/Faultbox/bezier-teapot/pkg/bezier"
	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// Color is the surface albedo.
	Color math.Vec3
	// LightDir is the view-space direction towards the light.
	LightDir math.Vec3
	// Background is the clear color.
	Background math.Vec3
}

// DefaultConfig returns a porcelain-ish material lit from the upper left.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:      width,
		Height:     height,
		Color:      math.Vec3{X: 0.85, Y: 0.82, Z: 0.75},
		LightDir:   lighting.Direction(-22, 30),
		Background: math.Vec3{X: 0.1, Y: 0.1, Z: 0.15},
	}
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program

	vao        uint32
	positions  uint32
	normals    uint32
	indices    uint32
	indexCount int32

	wireframe bool
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.program, err = shader.Compile(shaders.PatchVertexShader, shaders.PatchFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.log.Debug("shader program created", zap.Uint32("program", r.program.ID))

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.positions)
	gl.GenBuffers(1, &r.normals)
	gl.GenBuffers(1, &r.indices)

	gl.BindVertexArray(r.vao)

	// Position attribute (location = 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.positions)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.normals)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(1)

	// The element buffer binding is VAO state.
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.indices)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, buf := range []*uint32{&r.positions, &r.normals, &r.indices} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Upload replaces the GPU copy of the mesh.
func (r *Renderer) Upload(m *bezier.Mesh) {
	r.indexCount = int32(len(m.Indices))
	if r.indexCount == 0 {
		return
	}

	gl.BindVertexArray(r.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.positions)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*4, gl.Ptr(m.Positions), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.normals)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Normals)*4, gl.Ptr(m.Normals), gl.STATIC_DRAW)

	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.log.Debug("mesh uploaded",
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
	)
}

// Resize handles window resize. Width and height are in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns width/height of the viewport.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 0
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetWireframe toggles line rendering.
func (r *Renderer) SetWireframe(on bool) {
	r.wireframe = on
}

// Wireframe reports whether line rendering is on.
func (r *Renderer) Wireframe() bool {
	return r.wireframe
}

// Begin starts a new frame. Depth and clear state are set every frame
// because an ImGui pass may share the context.
func (r *Renderer) Begin() {
	bg := r.config.Background
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(bg.X, bg.Y, bg.Z, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw issues one indexed draw of the uploaded mesh.
func (r *Renderer) Draw(t camera.TransformSet) {
	if r.indexCount == 0 {
		return
	}

	r.program.Use()
	r.program.SetMat4("uProjection", t.Projection)
	r.program.SetMat4("uModelView", t.ModelView)
	r.program.SetMat4("uNormal", t.Normal)
	r.program.SetVec3("uColor", r.config.Color)
	r.program.SetVec3("uLightDir", r.config.LightDir)

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}
