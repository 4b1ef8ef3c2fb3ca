package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

const (
	// parallelLinesTolerance bounds sin^2 of the angle between two lines below which they are
	// treated as parallel.
	parallelLinesTolerance = 1e-5
	defaultEpsilon         = 1e-9
)

// RayFromSweepAngles returns the direction, in the base station frame, of the ray swept by two
// rotors at the given horizontal (angleX) and vertical (angleY) angles. The base station looks
// down its own +X axis; the returned vector is the cross product of the two rotor plane normals
// and is proportional to (1, tan(angleX), tan(angleY)).
func RayFromSweepAngles(angleX, angleY float64) r3.Vector {
	sx, cx := math.Sincos(angleX)
	sy, cy := math.Sincos(angleY)
	return r3.Vector{X: cx * cy, Y: sx * cy, Z: sy * cx}
}

// SweepAnglesToPoint is the inverse of RayFromSweepAngles for a point expressed in the base
// station frame.
func SweepAnglesToPoint(p r3.Vector) (angleX, angleY float64) {
	return math.Atan2(p.Y, p.X), math.Atan2(p.Z, p.X)
}

// ClosestPointBetweenLines finds the closest points of approach of the lines o1 + t*d1 and
// o2 + s*d2 and returns their midpoint together with the distance between them.
// ok is false when the lines are (close to) parallel.
// See http://geomalgorithms.com/a07-_distance.html#Distance-between-Lines
func ClosestPointBetweenLines(o1, d1, o2, d2 r3.Vector) (mid r3.Vector, gap float64, ok bool) {
	w0 := o1.Sub(o2)
	a := d1.Dot(d1)
	b := d1.Dot(d2)
	c := d2.Dot(d2)
	d := d1.Dot(w0)
	e := d2.Dot(w0)

	denom := a*c - b*b
	if a == 0 || c == 0 || math.Abs(denom) <= parallelLinesTolerance*a*c {
		return r3.Vector{}, 0, false
	}

	pt1 := o1.Add(d1.Mul((b*e - c*d) / denom))
	pt2 := o2.Add(d2.Mul((a*e - b*d) / denom))

	return pt1.Add(pt2).Mul(0.5), pt1.Distance(pt2), true
}

// IntersectRayPlane intersects the ray origin + t*dir (t >= 0) with the plane through
// planePoint with the given normal. ok is false when the ray is parallel to the plane or the
// plane lies behind the ray origin.
func IntersectRayPlane(origin, dir, planePoint, normal r3.Vector) (r3.Vector, bool) {
	dirDotNormal := dir.Dot(normal)
	if math.Abs(dirDotNormal) <= defaultEpsilon*dir.Norm()*normal.Norm() {
		return r3.Vector{}, false
	}
	t := planePoint.Sub(origin).Dot(normal) / dirDotNormal
	if t < 0 {
		return r3.Vector{}, false
	}
	return origin.Add(dir.Mul(t)), true
}

// SignedAngleAbout returns the angle that rotates from onto to, measured about normal with the
// right hand rule. Only the components of the rotation about normal contribute. ok is false if
// either vector or the normal has zero length.
func SignedAngleAbout(from, to, normal r3.Vector) (float64, bool) {
	if from.Norm2() <= defaultEpsilon || to.Norm2() <= defaultEpsilon || normal.Norm2() <= defaultEpsilon {
		return 0, false
	}
	sin := normal.Normalize().Dot(from.Cross(to))
	cos := from.Dot(to)
	return math.Atan2(sin, cos), true
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

// R3VectorIsFinite reports whether no component of v is NaN or infinite.
func R3VectorIsFinite(v r3.Vector) bool {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
