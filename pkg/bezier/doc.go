/*
Package bezier evaluates and tessellates tensor-product Bezier patches.

A patch is a rectangular Grid of control points P[i][j] with n+1 rows and
m+1 columns. The row index i follows the u parameter and the column index j
follows v, so

	S(u, v) = sum_i sum_j B(n,i,u) * B(m,j,v) * P[i][j]

where B is the Bernstein basis.

# Orientation

Surface normals are Su x Sv (the partial along u crossed with the partial
along v). Tessellate samples vertex (i, j) at u = i/N, v = j/N and emits the
triangles

	(i,j) (i+1,j) (i,j+1)
	(i,j+1) (i+1,j) (i+1,j+1)

whose face normals are also Su x Sv. Triangles are therefore
counter-clockwise when seen from the side the vertex normals point to,
which is what OpenGL treats as front-facing by default. Changing either
convention alone inverts lighting and culling.

Where the tangents degenerate (|Su x Sv| below DegenerateNormalThreshold,
for example at the collapsed pole of the teapot lid) the zero vector is
returned instead of a normal.
*/
package bezier
