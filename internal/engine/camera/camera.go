// Package camera turns an orbit-style camera state into the projection,
// model-view and normal matrices a renderer uploads each frame.
package camera

import (
	gomath "math"

	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// Default zoom range, in view-space units between the eye and the model.
const (
	DefaultMinZoom = 1.0
	DefaultMaxZoom = 10.0
)

// State is the interactive camera state. Angles are radians.
type State struct {
	Pitch float32 // rotation about X, applied after yaw
	Yaw   float32 // rotation about Y
	Zoom  float32 // distance the model is pushed along -Z
}

// Clamp returns the state with pitch limited to [-π/2, π/2] and zoom to
// [minZoom, maxZoom].
func (s State) Clamp(minZoom, maxZoom float32) State {
	const halfPi = float32(gomath.Pi / 2)
	s.Pitch = clamp(s.Pitch, -halfPi, halfPi)
	s.Zoom = clamp(s.Zoom, minZoom, maxZoom)
	return s
}

// Orientation returns the combined pitch/yaw rotation, yaw applied first.
func (s State) Orientation() math.Quat {
	pitch := math.QuatFromAxisAngle(math.Vec3{X: 1}, s.Pitch)
	yaw := math.QuatFromAxisAngle(math.Vec3{Y: 1}, s.Yaw)
	return pitch.Mul(yaw)
}

// Orbit owns a State and applies pointer input to it.
type Orbit struct {
	State State

	MinZoom float32
	MaxZoom float32

	// Sensitivity
	DragSensitivity float32 // radians per pixel
	ZoomSensitivity float32 // fraction of the current zoom per wheel step
}

// NewOrbit creates an orbit controller with default settings.
func NewOrbit() *Orbit {
	return &Orbit{
		State:           State{Zoom: 5},
		MinZoom:         DefaultMinZoom,
		MaxZoom:         DefaultMaxZoom,
		DragSensitivity: 0.01,
		ZoomSensitivity: 0.1,
	}
}

// HandleDrag updates rotation based on mouse drag delta.
// Dragging right turns the model right; dragging down tips it towards the viewer.
func (o *Orbit) HandleDrag(deltaX, deltaY float32) {
	o.State.Yaw += deltaX * o.DragSensitivity
	o.State.Pitch += deltaY * o.DragSensitivity
	o.State = o.State.Clamp(o.MinZoom, o.MaxZoom)
}

// HandleZoom updates zoom based on scroll wheel delta. Positive delta moves closer.
func (o *Orbit) HandleZoom(delta float32) {
	o.State.Zoom -= delta * o.State.Zoom * o.ZoomSensitivity
	o.State = o.State.Clamp(o.MinZoom, o.MaxZoom)
}

// Reset restores the given state, clamped to the controller's limits.
func (o *Orbit) Reset(s State) {
	o.State = s.Clamp(o.MinZoom, o.MaxZoom)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
