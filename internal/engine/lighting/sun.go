// Package lighting provides the directional light used to shade patches.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// Direction converts an azimuth (rotation about +Y, 0 facing +Z) and an
// elevation above the XZ plane, both in degrees, into a unit vector
// pointing towards the light.
func Direction(azimuth, elevation float32) math.Vec3 {
	az := float64(math.Radians(azimuth))
	el := float64(math.Radians(elevation))

	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}
