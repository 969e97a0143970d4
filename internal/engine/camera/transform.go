package camera

import (
	"errors"
	"fmt"
	gomath "math"
	"strings"

	"github.com/Faultbox/bezier-teapot/pkg/math"
)

var (
	// ErrInvalidAspect is returned for a non-positive or NaN aspect ratio.
	ErrInvalidAspect = errors.New("invalid aspect ratio")
	// ErrInvalidProjection is returned for a field of view outside (0, π)
	// or clip planes that do not satisfy 0 < near < far.
	ErrInvalidProjection = errors.New("invalid projection")
	// ErrUnknownUpAxis is returned by BaseOrientationFor.
	ErrUnknownUpAxis = errors.New("unknown up axis")
)

// Projection holds the perspective parameters. FovY is in radians.
type Projection struct {
	FovY float32
	Near float32
	Far  float32
}

// DefaultProjection is a 45° perspective with clip planes at 0.1 and 100.
func DefaultProjection() Projection {
	return Projection{
		FovY: math.Radians(45),
		Near: 0.1,
		Far:  100,
	}
}

// Validate checks the projection parameters.
func (p Projection) Validate() error {
	if !(p.FovY > 0 && p.FovY < gomath.Pi) {
		return fmt.Errorf("%w: fov %v outside (0, π)", ErrInvalidProjection, p.FovY)
	}
	if !(p.Near > 0 && p.Far > p.Near) {
		return fmt.Errorf("%w: need 0 < near < far, got near=%v far=%v", ErrInvalidProjection, p.Near, p.Far)
	}
	return nil
}

// Matrix returns the right-handed perspective matrix for the given aspect.
func (p Projection) Matrix(aspect float32) math.Mat4 {
	return math.Perspective(p.FovY, aspect, p.Near, p.Far)
}

// TransformSet is the per-frame matrix triple.
type TransformSet struct {
	Projection math.Mat4
	ModelView  math.Mat4
	// Normal is the inverse-transpose of the model-view's upper 3x3,
	// embedded in a Mat4.
	Normal math.Mat4
}

// TransformBuilder derives a TransformSet from a camera State.
type TransformBuilder struct {
	Projection Projection
	MinZoom    float32
	MaxZoom    float32
	// BaseOrientation is applied to the model before the camera rotation,
	// e.g. to stand a Z-up asset upright or to recenter it. The zero value
	// means identity.
	BaseOrientation math.Mat4
}

// NewTransformBuilder returns a builder with the default projection, zoom
// range and an identity base orientation.
func NewTransformBuilder() *TransformBuilder {
	return &TransformBuilder{
		Projection:      DefaultProjection(),
		MinZoom:         DefaultMinZoom,
		MaxZoom:         DefaultMaxZoom,
		BaseOrientation: math.Identity(),
	}
}

// Build clamps the state and returns
//
//	Projection = Perspective(fovY, aspect, near, far)
//	ModelView  = Translate(0, 0, -zoom) · RotateX(pitch) · RotateY(yaw) · BaseOrientation
//	Normal     = transpose(inverse(ModelView₃ₓ₃))
func (b *TransformBuilder) Build(state State, aspect float32) (TransformSet, error) {
	if !(aspect > 0) || gomath.IsInf(float64(aspect), 0) {
		return TransformSet{}, fmt.Errorf("%w: %v", ErrInvalidAspect, aspect)
	}
	if err := b.Projection.Validate(); err != nil {
		return TransformSet{}, err
	}

	base := b.BaseOrientation
	if base == (math.Mat4{}) {
		base = math.Identity()
	}

	state = state.Clamp(b.MinZoom, b.MaxZoom)
	modelView := math.Translate(0, 0, -state.Zoom).
		Mul(state.Orientation().ToMat4()).
		Mul(base)

	normal, err := math.NormalMatrix(modelView)
	if err != nil {
		return TransformSet{}, fmt.Errorf("normal matrix: %w", err)
	}

	return TransformSet{
		Projection: b.Projection.Matrix(aspect),
		ModelView:  modelView,
		Normal:     normal.Mat4(),
	}, nil
}

// BaseOrientationFor returns the correction that stands an asset authored
// with the given up axis ("y" or "z") upright in Y-up view space.
func BaseOrientationFor(upAxis string) (math.Mat4, error) {
	switch strings.ToLower(upAxis) {
	case "", "y":
		return math.Identity(), nil
	case "z":
		return math.QuatFromAxisAngle(math.Vec3{X: 1}, -gomath.Pi/2).ToMat4(), nil
	default:
		return math.Mat4{}, fmt.Errorf("%w: %q", ErrUnknownUpAxis, upAxis)
	}
}
