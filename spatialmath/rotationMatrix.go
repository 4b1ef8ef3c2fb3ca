package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// RotationMatrix is a 3x3 matrix in row major order.
// m[3*r + c] is the element in the r'th row and c'th column.
// A RotationMatrix is a value type: every operation returns a new matrix and never mutates its input.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates a rotation matrix from a row major slice of 9 elements.
func NewRotationMatrix(m []float64) (RotationMatrix, error) {
	if len(m) != 9 {
		return RotationMatrix{}, errors.Errorf("input slice representing 3x3 matrix must have 9 elements, got %d", len(m))
	}
	var rm RotationMatrix
	copy(rm.mat[:], m)
	return rm, nil
}

// NewRotationMatrixFromRows builds a matrix from its three rows.
func NewRotationMatrixFromRows(rows [3][3]float64) RotationMatrix {
	var rm RotationMatrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			rm.mat[3*r+c] = rows[r][c]
		}
	}
	return rm
}

// NewRotationMatrixFromColumns builds a matrix whose columns are the given vectors.
func NewRotationMatrixFromColumns(c0, c1, c2 r3.Vector) RotationMatrix {
	return RotationMatrix{mat: [9]float64{
		c0.X, c1.X, c2.X,
		c0.Y, c1.Y, c2.Y,
		c0.Z, c1.Z, c2.Z,
	}}
}

// IdentityRotationMatrix returns the matrix signifying no rotation.
func IdentityRotationMatrix() RotationMatrix {
	return RotationMatrix{mat: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// At returns the element at the given row and column.
func (rm RotationMatrix) At(row, col int) float64 {
	return rm.mat[3*row+col]
}

// Row returns the row of the matrix as an r3.Vector.
func (rm RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[3*row], Y: rm.mat[3*row+1], Z: rm.mat[3*row+2]}
}

// Col returns the column of the matrix as an r3.Vector.
func (rm RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[col+3], Z: rm.mat[col+6]}
}

// Rows returns the matrix as nested row arrays.
func (rm RotationMatrix) Rows() [3][3]float64 {
	var rows [3][3]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			rows[r][c] = rm.mat[3*r+c]
		}
	}
	return rows
}

// Mul returns the product of the matrix and a column vector.
func (rm RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.Row(0).Dot(v),
		Y: rm.Row(1).Dot(v),
		Z: rm.Row(2).Dot(v),
	}
}

// MulMatrix returns rm * other.
func (rm RotationMatrix) MulMatrix(other RotationMatrix) RotationMatrix {
	var out RotationMatrix
	for r := 0; r < 3; r++ {
		row := rm.Row(r)
		for c := 0; c < 3; c++ {
			out.mat[3*r+c] = row.Dot(other.Col(c))
		}
	}
	return out
}

// Transpose returns the transposed matrix. For a rotation this is also its inverse.
func (rm RotationMatrix) Transpose() RotationMatrix {
	return NewRotationMatrixFromColumns(rm.Row(0), rm.Row(1), rm.Row(2))
}

// Determinant of the matrix.
func (rm RotationMatrix) Determinant() float64 {
	return rm.Row(0).Dot(rm.Row(1).Cross(rm.Row(2)))
}

// IsOrthonormal reports whether rm * rm^T is the identity and the determinant is 1, both within tol.
func (rm RotationMatrix) IsOrthonormal(tol float64) bool {
	d := rm.dense()
	var prod mat.Dense
	prod.Mul(d, d.T())
	eye := mat.NewDiagDense(3, []float64{1, 1, 1})
	if !mat.EqualApprox(&prod, eye, tol) {
		return false
	}
	return math.Abs(rm.Determinant()-1) <= tol
}

// AlmostEqual compares each element of two matrices within tol.
func (rm RotationMatrix) AlmostEqual(other RotationMatrix, tol float64) bool {
	for i := range rm.mat {
		if math.Abs(rm.mat[i]-other.mat[i]) > tol {
			return false
		}
	}
	return true
}

// EulerAngles decomposes the matrix into Z-Y-X Tait-Bryan angles.
func (rm RotationMatrix) EulerAngles() *EulerAngles {
	// clamp guards asin against rounding just past +-1 at gimbal lock
	sinPitch := math.Max(-1, math.Min(1, -rm.At(2, 0)))
	return &EulerAngles{
		Roll:  math.Atan2(rm.At(2, 1), rm.At(2, 2)),
		Pitch: math.Asin(sinPitch),
		Yaw:   math.Atan2(rm.At(1, 0), rm.At(0, 0)),
	}
}

func (rm RotationMatrix) dense() *mat.Dense {
	data := make([]float64, 9)
	copy(data, rm.mat[:])
	return mat.NewDense(3, 3, data)
}

// InvertRotationMatrix returns the numeric inverse of rm. The input is taken by value and
// copied into a fresh work matrix, so the caller's matrix is never touched by the solver.
func InvertRotationMatrix(rm RotationMatrix) (RotationMatrix, error) {
	var inv mat.Dense
	if err := inv.Inverse(rm.dense()); err != nil {
		return RotationMatrix{}, errors.Wrap(err, "cannot invert rotation matrix")
	}
	var out RotationMatrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.mat[3*r+c] = inv.At(r, c)
		}
	}
	return out, nil
}
