package geom

// Matrix4x4 is a row-major 4x4 matrix.
type Matrix4x4 struct {
	M [4][4]Real
}

func Identity4x4() Matrix4x4 {
	var m Matrix4x4
	for i := 0; i < 4; i++ {
		m.M[i][i] = 1
	}
	return m
}

func NewMatrix4x4(m [4][4]Real) Matrix4x4 { return Matrix4x4{M: m} }

func (a Matrix4x4) Mul(b Matrix4x4) Matrix4x4 {
	var r Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r.M[i][j] = a.M[i][0]*b.M[0][j] + a.M[i][1]*b.M[1][j] + a.M[i][2]*b.M[2][j] + a.M[i][3]*b.M[3][j]
		}
	}
	return r
}

func (a Matrix4x4) Transpose() Matrix4x4 {
	var r Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r.M[i][j] = a.M[j][i]
		}
	}
	return r
}

// Inverse computes the matrix inverse via Gauss-Jordan elimination with
// partial pivoting, matching the source's explicit static inversion
// (as opposed to a cofactor expansion, which is numerically worse for
// the general affine matrices transforms compose here).
func (a Matrix4x4) Inverse() Matrix4x4 {
	indxc := [4]int{}
	indxr := [4]int{}
	ipiv := [4]int{}
	minv := a.M

	for i := 0; i < 4; i++ {
		irow, icol := 0, 0
		big := Real(0)
		for j := 0; j < 4; j++ {
			if ipiv[j] != 1 {
				for k := 0; k < 4; k++ {
					if ipiv[k] == 0 {
						v := minv[j][k]
						if v < 0 {
							v = -v
						}
						if v >= big {
							big = v
							irow = j
							icol = k
						}
					}
				}
			}
		}
		ipiv[icol]++
		if irow != icol {
			for k := 0; k < 4; k++ {
				minv[irow][k], minv[icol][k] = minv[icol][k], minv[irow][k]
			}
		}
		indxr[i] = irow
		indxc[i] = icol
		if minv[icol][icol] == 0 {
			panic("geom: singular matrix passed to Matrix4x4.Inverse")
		}

		pivinv := 1 / minv[icol][icol]
		minv[icol][icol] = 1
		for j := 0; j < 4; j++ {
			minv[icol][j] *= pivinv
		}

		for j := 0; j < 4; j++ {
			if j != icol {
				save := minv[j][icol]
				minv[j][icol] = 0
				for k := 0; k < 4; k++ {
					minv[j][k] -= minv[icol][k] * save
				}
			}
		}
	}

	for j := 3; j >= 0; j-- {
		if indxr[j] != indxc[j] {
			for k := 0; k < 4; k++ {
				minv[k][indxr[j]], minv[k][indxc[j]] = minv[k][indxc[j]], minv[k][indxr[j]]
			}
		}
	}

	return Matrix4x4{M: minv}
}
