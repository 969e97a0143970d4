// Package scene holds the viewer's interactive state: the orbit camera,
// the memoized patch mesh and the per-frame transforms. It has no window
// or GL dependencies so it can be driven from tests.
package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/bezier-teapot/internal/config"
	"github.com/Faultbox/bezier-teapot/internal/engine/camera"
	"github.com/Faultbox/bezier-teapot/internal/logger"
	"github.com/Faultbox/bezier-teapot/pkg/bezier"
	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// MaxResolution caps interactive resolution changes.
const MaxResolution = 128

// ErrEmptyScene is returned when no patch could be tessellated.
var ErrEmptyScene = errors.New("scene has no drawable patches")

// strategies is the order N cycles through.
var strategies = []string{
	bezier.StrategyAnalytic,
	bezier.StrategyFiniteDifference,
	bezier.StrategyFixedUp,
}

// Frame is what the renderer needs for one frame.
type Frame struct {
	Transforms camera.TransformSet
	Mesh       *bezier.Mesh
	// MeshChanged is set when Mesh was rebuilt since the previous frame.
	MeshChanged bool
}

// Scene is the viewer state. It is not safe for concurrent use.
type Scene struct {
	Orbit   *camera.Orbit
	Builder *camera.TransformBuilder

	cache    *bezier.MeshCache
	initial  camera.State
	normals  int
	uploaded int
	log      *zap.Logger
}

// New builds a scene for grids using the camera and tessellation settings
// of cfg. The model is recentered on the bounds of its first mesh.
func New(cfg *config.Config, grids []*bezier.Grid) (*Scene, error) {
	s := &Scene{log: logger.Named("scene")}

	s.normals = indexOf(cfg.Tessellation.Normals)
	if s.normals < 0 {
		return nil, fmt.Errorf("%w: %q", bezier.ErrUnknownNormalStrategy, cfg.Tessellation.Normals)
	}
	est, err := bezier.NormalStrategy(strategies[s.normals])
	if err != nil {
		return nil, err
	}

	base, err := camera.BaseOrientationFor(cfg.Camera.UpAxis)
	if err != nil {
		return nil, err
	}

	cam := cfg.Camera
	s.Builder = &camera.TransformBuilder{
		Projection: camera.Projection{
			FovY: math.Radians(cam.FovDegrees),
			Near: cam.Near,
			Far:  cam.Far,
		},
		MinZoom: cam.MinZoom,
		MaxZoom: cam.MaxZoom,
	}
	if err := s.Builder.Projection.Validate(); err != nil {
		return nil, err
	}

	s.Orbit = camera.NewOrbit()
	s.Orbit.MinZoom = cam.MinZoom
	s.Orbit.MaxZoom = cam.MaxZoom
	if cam.DragSensitivity > 0 {
		s.Orbit.DragSensitivity = cam.DragSensitivity
	}
	if cam.ZoomSensitivity > 0 {
		s.Orbit.ZoomSensitivity = cam.ZoomSensitivity
	}
	s.initial = camera.State{
		Pitch: math.Radians(cam.PitchDegrees),
		Yaw:   math.Radians(cam.YawDegrees),
		Zoom:  cam.Zoom,
	}
	s.Orbit.Reset(s.initial)

	s.cache = bezier.NewMeshCache(grids, cfg.Tessellation.Resolution, est)
	mesh, err := s.cache.Mesh()
	if mesh == nil {
		return nil, err
	}
	if err != nil {
		s.log.Warn("skipping invalid patches", zap.Error(err))
	}
	if mesh.VertexCount() == 0 {
		return nil, ErrEmptyScene
	}

	c := mesh.Bounds().Center()
	s.Builder.BaseOrientation = base.Mul(math.Translate(-c.X, -c.Y, -c.Z))

	s.log.Info("scene ready",
		zap.Int("patches", len(mesh.Patches)),
		zap.Int("resolution", s.cache.Resolution()),
		zap.String("normals", strategies[s.normals]),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return s, nil
}

func indexOf(name string) int {
	if name == "" {
		return 0
	}
	for i, s := range strategies {
		if s == name {
			return i
		}
	}
	return -1
}

// Drag rotates the model by a pointer movement in pixels.
func (s *Scene) Drag(dx, dy int) {
	s.Orbit.HandleDrag(float32(dx), float32(dy))
}

// Zoom moves the camera by wheel steps; positive moves closer.
func (s *Scene) Zoom(steps float32) {
	s.Orbit.HandleZoom(steps)
}

// Reset restores the configured camera state.
func (s *Scene) Reset() {
	s.Orbit.Reset(s.initial)
}

// ChangeResolution adds delta to the resolution, clamped to [1, MaxResolution].
func (s *Scene) ChangeResolution(delta int) int {
	return s.SetResolution(s.cache.Resolution() + delta)
}

// SetResolution sets the resolution, clamped to [1, MaxResolution].
func (s *Scene) SetResolution(n int) int {
	n = max(1, min(n, MaxResolution))
	s.cache.SetResolution(n)
	return n
}

// Resolution returns the current resolution.
func (s *Scene) Resolution() int {
	return s.cache.Resolution()
}

// CycleNormals switches to the next normal strategy and returns its name.
func (s *Scene) CycleNormals() string {
	s.normals = (s.normals + 1) % len(strategies)
	est, _ := bezier.NormalStrategy(strategies[s.normals])
	s.cache.SetNormals(est)
	return strategies[s.normals]
}

// Normals returns the name of the current normal strategy.
func (s *Scene) Normals() string {
	return strategies[s.normals]
}

// SetNormals selects a normal strategy by name.
func (s *Scene) SetNormals(name string) error {
	i := indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", bezier.ErrUnknownNormalStrategy, name)
	}
	est, err := bezier.NormalStrategy(strategies[i])
	if err != nil {
		return err
	}
	s.normals = i
	s.cache.SetNormals(est)
	return nil
}

// Strategies lists the normal strategy names in cycling order.
func Strategies() []string {
	return append([]string(nil), strategies...)
}

// SetCamera replaces the orbit state, clamped to the configured limits.
func (s *Scene) SetCamera(state camera.State) {
	s.Orbit.State = state.Clamp(s.Orbit.MinZoom, s.Orbit.MaxZoom)
}

// Frame returns the mesh and transforms for a viewport aspect ratio. The
// mesh is only rebuilt after a resolution or strategy change.
func (s *Scene) Frame(aspect float32) (Frame, error) {
	rebuild := s.cache.Changed()
	mesh, err := s.cache.Mesh()
	if mesh == nil {
		return Frame{}, err
	}
	if rebuild {
		if err != nil {
			s.log.Warn("skipping invalid patches", zap.Error(err))
		}
		s.log.Debug("mesh rebuilt",
			zap.Int("resolution", s.cache.Resolution()),
			zap.String("normals", s.Normals()),
			zap.Int("vertices", mesh.VertexCount()),
			zap.Int("triangles", mesh.TriangleCount()),
		)
	}

	transforms, err := s.Builder.Build(s.Orbit.State, aspect)
	if err != nil {
		return Frame{}, err
	}

	builds := s.cache.Builds()
	f := Frame{
		Transforms:  transforms,
		Mesh:        mesh,
		MeshChanged: builds != s.uploaded,
	}
	s.uploaded = builds
	return f, nil
}

// Title summarizes the scene for a window title.
func (s *Scene) Title(prefix string) string {
	tris := 0
	if mesh, _ := s.cache.Mesh(); mesh != nil {
		tris = mesh.TriangleCount()
	}
	return fmt.Sprintf("%s | N=%d | %s normals | %d triangles", prefix, s.cache.Resolution(), s.Normals(), tris)
}
