// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window       WindowConfig       `yaml:"window"`
	Camera       CameraConfig       `yaml:"camera"`
	Tessellation TessellationConfig `yaml:"tessellation"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds projection and orbit settings. Angles are degrees
// here and converted to radians by the viewer.
type CameraConfig struct {
	FovDegrees      float32 `yaml:"fov_degrees"`
	Near            float32 `yaml:"near"`
	Far             float32 `yaml:"far"`
	MinZoom         float32 `yaml:"min_zoom"`
	MaxZoom         float32 `yaml:"max_zoom"`
	Zoom            float32 `yaml:"zoom"`
	PitchDegrees    float32 `yaml:"pitch_degrees"`
	YawDegrees      float32 `yaml:"yaw_degrees"`
	UpAxis          string  `yaml:"up_axis"` // "y" or "z"
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
}

// TessellationConfig holds mesh generation settings.
type TessellationConfig struct {
	Resolution int    `yaml:"resolution"` // segments per patch edge
	Normals    string `yaml:"normals"`    // analytic, finite-difference or fixed-up
	PatchFile  string `yaml:"patch_file"` // empty means the embedded teapot
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Bezier Teapot",
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			FovDegrees:      45,
			Near:            0.1,
			Far:             100,
			MinZoom:         1,
			MaxZoom:         10,
			Zoom:            6,
			PitchDegrees:    20,
			YawDegrees:      0,
			UpAxis:          "y",
			DragSensitivity: 0.01,
			ZoomSensitivity: 0.1,
		},
		Tessellation: TessellationConfig{
			Resolution: 10,
			Normals:    "analytic",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size %dx%d", c.Window.Width, c.Window.Height)
	}

	cam := c.Camera
	if !(cam.FovDegrees > 0 && cam.FovDegrees < 180) {
		add("camera.fov_degrees %v outside (0, 180)", cam.FovDegrees)
	}
	if !(cam.Near > 0 && cam.Far > cam.Near) {
		add("camera clip planes need 0 < near < far, got near=%v far=%v", cam.Near, cam.Far)
	}
	if !(cam.MinZoom > 0 && cam.MaxZoom >= cam.MinZoom) {
		add("camera zoom range [%v, %v]", cam.MinZoom, cam.MaxZoom)
	}
	switch strings.ToLower(cam.UpAxis) {
	case "", "y", "z":
	default:
		add("camera.up_axis %q", cam.UpAxis)
	}

	if c.Tessellation.Resolution < 1 {
		add("tessellation.resolution %d < 1", c.Tessellation.Resolution)
	}

	return errors.Join(errs...)
}
