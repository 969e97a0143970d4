package math

import (
	"errors"
	"math"
)

// ErrSingularMatrix is returned when a matrix has no usable inverse.
var ErrSingularMatrix = errors.New("matrix is singular")

// SingularEpsilon is the determinant magnitude below which a matrix is
// treated as singular.
const SingularEpsilon = 1e-9

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at the given row and column.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Perspective returns a right-handed perspective projection matrix.
// fovY is in radians, aspect is width/height. View-space z in
// [-near, -far] maps to clip depth [-1, 1] after the divide by w = -z.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1.0 / math.Tan(float64(fovY)/2.0))
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Ortho returns an orthographic projection mapping the box
// [left,right]x[bottom,top]x[-near,-far] onto the clip cube.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far - near)

	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}

// LookAt returns a view matrix looking from eye to center with up direction.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Radians converts an angle in degrees to radians.
func Radians(degrees float32) float32 {
	return degrees * math.Pi / 180
}

// Degrees converts an angle in radians to degrees.
func Degrees(radians float32) float32 {
	return radians * 180 / math.Pi
}

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation matrix around the Y axis.
// angle is in radians.
func RotateY(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation matrix around the Z axis.
// angle is in radians.
func RotateZ(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotateAxis creates a rotation matrix around an arbitrary axis.
// The axis is normalized here; angle is in radians.
func RotateAxis(axis Vec3, angle float32) Mat4 {
	axis = axis.Normalize()
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	t := 1 - c

	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			t[row*4+col] = m[col*4+row]
		}
	}
	return t
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1) and
// applies the perspective divide when w is neither 0 nor 1.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// TransformDirection transforms a direction vector (ignores translation).
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// Mat3 returns the upper-left 3x3 (linear) part of the matrix.
func (m Mat4) Mat3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// Vec4 is a 4-component vector.
type Vec4 [4]float32

// MulVec4 multiplies the matrix by a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat4) ApproxEqual(other Mat4, eps float32) bool {
	for i := range m {
		if abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// rows widens the matrix to float64, indexed [row][col].
func (m Mat4) rows() [4][4]float64 {
	var a [4][4]float64
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			a[row][col] = float64(m[col*4+row])
		}
	}
	return a
}

// cofactors4 returns C[r][c] = (-1)^(r+c) * det(minor(r, c)).
func cofactors4(a [4][4]float64) [4][4]float64 {
	var cof [4][4]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var minor [3][3]float64
			mi := 0
			for rr := 0; rr < 4; rr++ {
				if rr == r {
					continue
				}
				mj := 0
				for cc := 0; cc < 4; cc++ {
					if cc == c {
						continue
					}
					minor[mi][mj] = a[rr][cc]
					mj++
				}
				mi++
			}
			d := det3(minor)
			if (r+c)%2 == 1 {
				d = -d
			}
			cof[r][c] = d
		}
	}
	return cof
}

// Determinant returns the determinant, expanded along the first row.
func (m Mat4) Determinant() float64 {
	a := m.rows()
	cof := cofactors4(a)
	return a[0][0]*cof[0][0] + a[0][1]*cof[0][1] + a[0][2]*cof[0][2] + a[0][3]*cof[0][3]
}

// Invert returns the inverse computed as adj(M)/det(M), where adj is the
// transposed cofactor matrix. It returns ErrSingularMatrix when
// |det| < SingularEpsilon.
func (m Mat4) Invert() (Mat4, error) {
	a := m.rows()
	cof := cofactors4(a)
	det := a[0][0]*cof[0][0] + a[0][1]*cof[0][1] + a[0][2]*cof[0][2] + a[0][3]*cof[0][3]
	if math.Abs(det) < SingularEpsilon || math.IsNaN(det) {
		return Mat4{}, ErrSingularMatrix
	}

	invDet := 1.0 / det
	var inv Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			// inv[r][c] = adj[r][c] / det = cof[c][r] / det
			inv[c*4+r] = float32(cof[c][r] * invDet)
		}
	}
	return inv, nil
}
