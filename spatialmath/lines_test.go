package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestRayFromSweepAngles(t *testing.T) {
	p := r3.Vector{X: 2, Y: -0.5, Z: 0.8}
	ax, ay := SweepAnglesToPoint(p)
	ray := RayFromSweepAngles(ax, ay)

	// the ray must be parallel to the point it was built from
	test.That(t, ray.Cross(p).Norm(), test.ShouldAlmostEqual, 0.)
	test.That(t, ray.Dot(p), test.ShouldBeGreaterThan, 0.)

	straight := RayFromSweepAngles(0, 0)
	test.That(t, straight, test.ShouldResemble, r3.Vector{X: 1})
}

func TestClosestPointBetweenLines(t *testing.T) {
	target := r3.Vector{X: 0.3, Y: -0.2, Z: 1.1}
	o1 := r3.Vector{X: -2, Y: 0, Z: 3}
	o2 := r3.Vector{X: 2, Y: 1, Z: 3}

	mid, gap, ok := ClosestPointBetweenLines(o1, target.Sub(o1), o2, target.Sub(o2).Mul(4))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, gap, test.ShouldAlmostEqual, 0.)
	test.That(t, R3VectorAlmostEqual(mid, target, 1e-9), test.ShouldBeTrue)

	t.Run("skew lines", func(t *testing.T) {
		mid, gap, ok := ClosestPointBetweenLines(
			r3.Vector{Z: 1}, r3.Vector{X: 1},
			r3.Vector{Z: -1}, r3.Vector{Y: 1},
		)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, gap, test.ShouldAlmostEqual, 2.)
		test.That(t, R3VectorAlmostEqual(mid, r3.Vector{}, 1e-12), test.ShouldBeTrue)
	})

	t.Run("parallel lines", func(t *testing.T) {
		_, _, ok := ClosestPointBetweenLines(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{X: -3})
		test.That(t, ok, test.ShouldBeFalse)
	})

	t.Run("degenerate direction", func(t *testing.T) {
		_, _, ok := ClosestPointBetweenLines(r3.Vector{}, r3.Vector{}, r3.Vector{Y: 1}, r3.Vector{X: 1})
		test.That(t, ok, test.ShouldBeFalse)
	})
}

func TestIntersectRayPlane(t *testing.T) {
	origin := r3.Vector{X: 1, Y: 1, Z: 3}
	up := r3.Vector{Z: 1}

	pt, ok := IntersectRayPlane(origin, r3.Vector{X: 1, Z: -1}, r3.Vector{}, up)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(pt, r3.Vector{X: 4, Y: 1}, 1e-12), test.ShouldBeTrue)

	_, ok = IntersectRayPlane(origin, r3.Vector{X: 1}, r3.Vector{}, up)
	test.That(t, ok, test.ShouldBeFalse)

	// plane behind the ray
	_, ok = IntersectRayPlane(origin, r3.Vector{Z: 1}, r3.Vector{}, up)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestSignedAngleAbout(t *testing.T) {
	up := r3.Vector{Z: 1}
	from := r3.Vector{X: 2}

	angle, ok := SignedAngleAbout(from, r3.Vector{X: math.Cos(0.3), Y: math.Sin(0.3)}, up)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, angle, test.ShouldAlmostEqual, 0.3)

	angle, ok = SignedAngleAbout(from, r3.Vector{X: math.Cos(-0.3), Y: math.Sin(-0.3)}, up)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, angle, test.ShouldAlmostEqual, -0.3)

	angle, ok = SignedAngleAbout(from, from, up.Mul(5))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, angle, test.ShouldAlmostEqual, 0.)

	_, ok = SignedAngleAbout(r3.Vector{}, from, up)
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = SignedAngleAbout(from, from, r3.Vector{})
	test.That(t, ok, test.ShouldBeFalse)
}

func TestR3VectorIsFinite(t *testing.T) {
	test.That(t, R3VectorIsFinite(r3.Vector{X: 1, Y: 2, Z: 3}), test.ShouldBeTrue)
	test.That(t, R3VectorIsFinite(r3.Vector{X: math.NaN()}), test.ShouldBeFalse)
	test.That(t, R3VectorIsFinite(r3.Vector{Z: math.Inf(-1)}), test.ShouldBeFalse)
}
