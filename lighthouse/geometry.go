package lighthouse

import (
	"sync"

	"github.com/golang/geo/r3"

	"go.viam.com/lighthouse/logging"
	"go.viam.com/lighthouse/spatialmath"
)

// BaseStationGeometry is the pose of a base station in the world frame. Rotation maps base
// station frame vectors into the world frame and is expected to be orthonormal.
type BaseStationGeometry struct {
	Origin   r3.Vector
	Rotation spatialmath.RotationMatrix
}

// DefaultBaseStationGeometry returns the compiled-in calibration used until a configuration
// provides another one.
func DefaultBaseStationGeometry() [NumBaseStations]BaseStationGeometry {
	return [NumBaseStations]BaseStationGeometry{
		{
			Origin: r3.Vector{X: -1.958483, Y: 0.542299, Z: 3.152727},
			Rotation: spatialmath.NewRotationMatrixFromRows([3][3]float64{
				{0.79721498, -0.004274, 0.60368103},
				{0.0, 0.99997503, 0.00708},
				{-0.60369599, -0.005645, 0.79719502},
			}),
		},
		{
			Origin: r3.Vector{X: 1.062398, Y: -2.563488, Z: 3.112367},
			Rotation: spatialmath.NewRotationMatrixFromRows([3][3]float64{
				{0.018067, -0.999336, 0.031647},
				{0.76125097, 0.034269, 0.64755201},
				{-0.648206, 0.012392, 0.76136398},
			}),
		},
	}
}

// GeometrySnapshot is the geometry of all base stations together with the state derived
// from it. A snapshot is a value; every field belongs to the same calibration.
type GeometrySnapshot struct {
	Stations          [NumBaseStations]BaseStationGeometry
	Angles            [NumBaseStations]spatialmath.EulerAngles
	InvertedRotations [NumBaseStations]spatialmath.RotationMatrix
}

// Ray returns the world frame direction of the ray from base station bs through a sensor
// seen at the given sweep angles.
func (gs *GeometrySnapshot) Ray(bs BaseStation, angles [2]float64) r3.Vector {
	return gs.Stations[bs].Rotation.Mul(spatialmath.RayFromSweepAngles(angles[0], angles[1]))
}

// PositionFromRayIntersection crosses the rays of base station 0 and 1 and returns the
// point closest to both along with the distance between the rays at that point.
func (gs *GeometrySnapshot) PositionFromRayIntersection(angles0, angles1 [2]float64) (r3.Vector, float64, bool) {
	return spatialmath.ClosestPointBetweenLines(
		gs.Stations[0].Origin, gs.Ray(0, angles0),
		gs.Stations[1].Origin, gs.Ray(1, angles1),
	)
}

// GeometryStore holds the current base station geometry. Updates publish a whole new
// snapshot at once so readers never see derived state from two different calibrations.
type GeometryStore struct {
	mu      sync.RWMutex
	current GeometrySnapshot
	version uint64

	logger logging.Logger
}

// NewGeometryStore returns a store initialized with the given geometry. A nil logger uses the
// global logger.
func NewGeometryStore(stations [NumBaseStations]BaseStationGeometry, logger logging.Logger) *GeometryStore {
	if logger == nil {
		logger = logging.Global()
	}
	gs := &GeometryStore{logger: logger}
	gs.UpdateGeometry(stations)
	return gs
}

// UpdateGeometry replaces the geometry of both base stations and recomputes their Euler
// angles and inverted rotation matrices. Orthonormality is not checked here.
func (gs *GeometryStore) UpdateGeometry(stations [NumBaseStations]BaseStationGeometry) {
	next := GeometrySnapshot{Stations: stations}
	for bs := range stations {
		next.Angles[bs] = *stations[bs].Rotation.EulerAngles()

		inv, err := spatialmath.InvertRotationMatrix(stations[bs].Rotation)
		if err != nil {
			gs.logger.Warnw("falling back to transpose for base station rotation inverse", "base_station", bs, "error", err)
			inv = stations[bs].Rotation.Transpose()
		}
		next.InvertedRotations[bs] = inv
	}

	gs.mu.Lock()
	gs.current = next
	gs.version++
	version := gs.version
	gs.mu.Unlock()

	gs.logger.Debugw("base station geometry updated", "version", version)
}

// Snapshot returns a copy of the current geometry.
func (gs *GeometryStore) Snapshot() GeometrySnapshot {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.current
}

// Version is incremented by every UpdateGeometry call.
func (gs *GeometryStore) Version() uint64 {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.version
}
