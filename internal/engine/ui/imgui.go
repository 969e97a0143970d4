// Package ui wraps the cimgui-go SDL backend used by the inspector.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/bezier-teapot/internal/logger"
	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// Backend owns the ImGui window and its GL context.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	title   string
	log     *zap.Logger
}

// NewBackend creates the window. OpenGL function pointers are loaded once
// the context exists, so GL resources may be created right after.
func NewBackend(title string, width, height int, background math.Vec3) (*Backend, error) {
	b := &Backend{
		title: title,
		log:   logger.Named("ui"),
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(background.X, background.Y, background.Z, 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	b.log.Info("ui backend ready",
		zap.String("title", title),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return b, nil
}

// Run blocks, calling frame once per displayed frame until the window closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// SetTitle updates the window title when it changed.
func (b *Backend) SetTitle(title string) {
	if title == b.title {
		return
	}
	b.title = title
	b.backend.SetWindowTitle(title)
}

// Workspace returns the position and size of the main viewport's work area.
func Workspace() (pos, size imgui.Vec2) {
	viewport := imgui.MainViewport()
	return viewport.WorkPos(), viewport.WorkSize()
}

// KeyPressed reports whether key was pressed this frame.
func KeyPressed(keys ...imgui.Key) bool {
	for _, k := range keys {
		if imgui.IsKeyChordPressed(imgui.KeyChord(k)) {
			return true
		}
	}
	return false
}
