package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

var testAngles = []*EulerAngles{
	{Roll: 0, Pitch: 0, Yaw: 0},
	{Roll: math.Pi / 4, Pitch: 0, Yaw: 0},
	{Roll: 0.1, Pitch: -0.4, Yaw: 2.5},
	{Roll: -1.2, Pitch: 0.7, Yaw: -3.0},
}

func TestInvertRotationMatrixIsTranspose(t *testing.T) {
	for _, ea := range testAngles {
		rm := ea.RotationMatrix()
		original := rm

		inv, err := InvertRotationMatrix(rm)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, inv.AlmostEqual(rm.Transpose(), 1e-9), test.ShouldBeTrue)
		test.That(t, rm, test.ShouldResemble, original)

		ident := rm.MulMatrix(inv)
		test.That(t, ident.AlmostEqual(IdentityRotationMatrix(), 1e-9), test.ShouldBeTrue)
	}
}

func TestInvertSingularMatrix(t *testing.T) {
	_, err := InvertRotationMatrix(RotationMatrix{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestNewRotationMatrix(t *testing.T) {
	_, err := NewRotationMatrix([]float64{1, 0, 0})
	test.That(t, err, test.ShouldNotBeNil)

	input := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	rm, err := NewRotationMatrix(input)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rm.At(1, 2), test.ShouldEqual, 6.)
	test.That(t, rm.Row(2), test.ShouldResemble, r3.Vector{X: 7, Y: 8, Z: 9})
	test.That(t, rm.Col(0), test.ShouldResemble, r3.Vector{X: 1, Y: 4, Z: 7})
	test.That(t, rm.Transpose().Row(0), test.ShouldResemble, r3.Vector{X: 1, Y: 4, Z: 7})

	input[0] = 100
	test.That(t, rm.At(0, 0), test.ShouldEqual, 1.)

	rows := rm.Rows()
	test.That(t, NewRotationMatrixFromRows(rows), test.ShouldResemble, rm)
}

func TestEulerAnglesRoundTrip(t *testing.T) {
	for _, ea := range testAngles {
		got := ea.RotationMatrix().EulerAngles()
		test.That(t, got.Roll, test.ShouldAlmostEqual, ea.Roll)
		test.That(t, got.Pitch, test.ShouldAlmostEqual, ea.Pitch)
		test.That(t, got.Yaw, test.ShouldAlmostEqual, ea.Yaw)
	}
}

func TestEulerAnglesYawOnly(t *testing.T) {
	ea := &EulerAngles{Yaw: math.Pi / 2}
	rm := ea.RotationMatrix()
	v := rm.Mul(r3.Vector{X: 1})
	test.That(t, R3VectorAlmostEqual(v, r3.Vector{Y: 1}, 1e-12), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(rm.Col(2), r3.Vector{Z: 1}, 1e-12), test.ShouldBeTrue)
}

func TestQuatToRotationMatrix(t *testing.T) {
	for _, ea := range testAngles {
		fromQuat := QuatToRotationMatrix(ea.Quaternion())
		test.That(t, fromQuat.AlmostEqual(ea.RotationMatrix(), 1e-9), test.ShouldBeTrue)
	}

	// scaling does not matter
	scaled := quat.Scale(3, testAngles[2].Quaternion())
	test.That(t, QuatToRotationMatrix(scaled).AlmostEqual(testAngles[2].RotationMatrix(), 1e-9), test.ShouldBeTrue)
	test.That(t, QuatToRotationMatrix(quat.Number{}), test.ShouldResemble, IdentityRotationMatrix())
}

func TestIsOrthonormal(t *testing.T) {
	for _, ea := range testAngles {
		test.That(t, ea.RotationMatrix().IsOrthonormal(1e-9), test.ShouldBeTrue)
	}
	skewed := NewRotationMatrixFromRows([3][3]float64{{1, 0.1, 0}, {0, 1, 0}, {0, 0, 1}})
	test.That(t, skewed.IsOrthonormal(1e-3), test.ShouldBeFalse)

	// a reflection is orthogonal but not a rotation
	mirror := NewRotationMatrixFromRows([3][3]float64{{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	test.That(t, mirror.IsOrthonormal(1e-6), test.ShouldBeFalse)
	test.That(t, mirror.Determinant(), test.ShouldAlmostEqual, -1.)
}
