// Package viewer implements the interactive patch viewer main loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/bezier-teapot/internal/config"
	"github.com/Faultbox/bezier-teapot/internal/engine/input"
	"github.com/Faultbox/bezier-teapot/internal/engine/renderer"
	"github.com/Faultbox/bezier-teapot/internal/engine/window"
	"github.com/Faultbox/bezier-teapot/internal/logger"
	"github.com/Faultbox/bezier-teapot/internal/scene"
	"github.com/Faultbox/bezier-teapot/pkg/bezier"
)

// Viewer owns the window, renderer and scene.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	log      *zap.Logger
}

// New opens a window and prepares the scene for grids.
func New(cfg *config.Config, grids []*bezier.Grid) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		log:    logger.Named("viewer"),
	}

	// Build the scene before opening a window so bad input fails fast.
	var err error
	v.scene, err = scene.New(cfg, grids)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.DefaultConfig(w, h))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.updateTitle()

	v.log.Info("viewer initialized")
	return v, nil
}

// Run starts the main loop and returns when the window closes or Escape
// is pressed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			v.handle(event)
		}

		// 2. Render
		if err := v.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// 3. Present (swap buffers)
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handle(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		// Event sizes are in screen coordinates; the viewport needs pixels.
		v.renderer.Resize(v.window.DrawableSize())

	case input.EventMouseMove:
		if event.Dragging {
			v.scene.Drag(event.DeltaX, event.DeltaY)
		}

	case input.EventMouseWheel:
		v.scene.Zoom(event.WheelY)

	case input.EventKeyDown:
		switch event.Key {
		case sdl.K_ESCAPE, sdl.K_q:
			v.running = false
		case sdl.K_PLUS, sdl.K_EQUALS, sdl.K_KP_PLUS:
			n := v.scene.ChangeResolution(1)
			v.log.Info("resolution", zap.Int("n", n))
			v.updateTitle()
		case sdl.K_MINUS, sdl.K_KP_MINUS:
			n := v.scene.ChangeResolution(-1)
			v.log.Info("resolution", zap.Int("n", n))
			v.updateTitle()
		case sdl.K_n:
			if event.Repeat {
				return
			}
			name := v.scene.CycleNormals()
			v.log.Info("normal strategy", zap.String("normals", name))
			v.updateTitle()
		case sdl.K_w:
			if event.Repeat {
				return
			}
			v.renderer.SetWireframe(!v.renderer.Wireframe())
		case sdl.K_r:
			v.scene.Reset()
		}
	}
}

func (v *Viewer) updateTitle() {
	if v.window != nil {
		v.window.SetTitle(v.scene.Title(v.config.Window.Title))
	}
}

// render draws the current frame.
func (v *Viewer) render() error {
	frame, err := v.scene.Frame(v.renderer.Aspect())
	if err != nil {
		return err
	}
	if frame.MeshChanged {
		v.renderer.Upload(frame.Mesh)
	}

	v.renderer.Begin()
	v.renderer.Draw(frame.Transforms)
	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
