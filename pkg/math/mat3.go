package math

import "math"

// Mat3 is a 3x3 matrix in column-major order, used for the linear part of
// a Mat4 and for normal matrices.
type Mat3 [9]float32

// Mat3Identity returns a 3x3 identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// At returns the element at the given row and column.
func (m Mat3) At(row, col int) float32 {
	return m[col*3+row]
}

// Mat4 embeds the matrix in the upper-left of an otherwise identity Mat4.
func (m Mat3) Mat4() Mat4 {
	return Mat4{
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat3) Mul(other Mat3) Mat3 {
	var result Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			result[col*3+row] =
				m[0*3+row]*other[col*3+0] +
					m[1*3+row]*other[col*3+1] +
					m[2*3+row]*other[col*3+2]
		}
	}
	return result
}

// MulVec3 multiplies the matrix by a column vector.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat3) ApproxEqual(other Mat3, eps float32) bool {
	for i := range m {
		if abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

func (m Mat3) rows() [3][3]float64 {
	var a [3][3]float64
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			a[row][col] = float64(m[col*3+row])
		}
	}
	return a
}

// det3 is the rule of Sarrus.
func det3(a [3][3]float64) float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// Determinant returns the determinant.
func (m Mat3) Determinant() float64 {
	return det3(m.rows())
}

// Invert returns adj(M)/det(M), or ErrSingularMatrix when
// |det| < SingularEpsilon.
func (m Mat3) Invert() (Mat3, error) {
	a := m.rows()
	det := det3(a)
	if math.Abs(det) < SingularEpsilon || math.IsNaN(det) {
		return Mat3{}, ErrSingularMatrix
	}

	var cof [3][3]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			// 2x2 minor from the rows and columns other than r and c
			r0, r1 := others3(r)
			c0, c1 := others3(c)
			d := a[r0][c0]*a[r1][c1] - a[r0][c1]*a[r1][c0]
			if (r+c)%2 == 1 {
				d = -d
			}
			cof[r][c] = d
		}
	}

	invDet := 1.0 / det
	var inv Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			inv[c*3+r] = float32(cof[c][r] * invDet)
		}
	}
	return inv, nil
}

// others3 returns the two indices in [0,3) other than i, in order.
func others3(i int) (int, int) {
	switch i {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// NormalMatrix returns the inverse-transpose of the linear part of m, the
// matrix that carries surface normals into the space m maps points to.
func NormalMatrix(m Mat4) (Mat3, error) {
	inv, err := m.Mat3().Invert()
	if err != nil {
		return Mat3{}, err
	}
	return inv.Transpose(), nil
}
