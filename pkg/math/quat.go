package math

import "math"

// Quat is a rotation quaternion with W as the scalar part. The camera
// composes pitch and yaw as quaternions and converts the product once per
// frame with ToMat4.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the rotation that leaves vectors unchanged.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle returns the rotation of angle radians about axis, which
// need not be unit length. Pitch uses +X and yaw uses +Y.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	axis = axis.Normalize()
	sin, cos := math.Sincos(float64(angle) / 2)
	s := float32(sin)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: float32(cos)}
}

// Normalize rescales q to unit length. Near-zero quaternions, which carry
// no rotation, become the identity.
func (q Quat) Normalize() Quat {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length < 1e-4 {
		return QuatIdentity()
	}
	inv := 1 / length
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// ToMat4 returns the column-major rotation matrix of q, which equals the
// RotateX/RotateY product for the same angles.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z

	xx, yy, zz := q.X*x2, q.Y*y2, q.Z*z2
	xy, xz, yz := q.X*y2, q.X*z2, q.Y*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	return Mat4{
		1 - yy - zz, xy + wz, xz - wy, 0,
		xy - wz, 1 - xx - zz, yz + wx, 0,
		xz + wy, yz - wx, 1 - xx - yy, 0,
		0, 0, 0, 1,
	}
}

// Mul returns the Hamilton product q·other, so other rotates first. The
// camera orientation is pitch.Mul(yaw).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}
