package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles are three angles (in radians) used to represent the rotation of an object in 3D Euclidean space
// The Tait–Bryan angle formalism is used, with rotations around three distinct axes in the z-y′-x″ sequence.
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// RotationMatrix returns Rz(yaw) * Ry(pitch) * Rx(roll).
func (ea *EulerAngles) RotationMatrix() RotationMatrix {
	cr, sr := math.Cos(ea.Roll), math.Sin(ea.Roll)
	cp, sp := math.Cos(ea.Pitch), math.Sin(ea.Pitch)
	cy, sy := math.Cos(ea.Yaw), math.Sin(ea.Yaw)
	return RotationMatrix{mat: [9]float64{
		cy * cp, cy*sp*sr - sy*cr, cy*sp*cr + sy*sr,
		sy * cp, sy*sp*sr + cy*cr, sy*sp*cr - cy*sr,
		-sp, cp * sr, cp * cr,
	}}
}

// Quaternion returns orientation in quaternion representation.
func (ea *EulerAngles) Quaternion() quat.Number {
	cy, sy := math.Cos(ea.Yaw*0.5), math.Sin(ea.Yaw*0.5)
	cp, sp := math.Cos(ea.Pitch*0.5), math.Sin(ea.Pitch*0.5)
	cr, sr := math.Cos(ea.Roll*0.5), math.Sin(ea.Roll*0.5)

	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}

// QuatToRotationMatrix converts a quaternion to a rotation matrix. The quaternion is
// normalized first; the zero quaternion maps to the identity.
func QuatToRotationMatrix(q quat.Number) RotationMatrix {
	norm := quat.Abs(q)
	if norm == 0 {
		return IdentityRotationMatrix()
	}
	q = quat.Scale(1/norm, q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	return RotationMatrix{mat: [9]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	}}
}
