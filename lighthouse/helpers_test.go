package lighthouse_test

import (
	"sync"

	"github.com/golang/geo/r3"

	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/spatialmath"
	"go.viam.com/lighthouse/testutils/inject"
)

// lookAt returns the rotation of a base station at origin whose +X axis points at target.
func lookAt(origin, target r3.Vector) spatialmath.RotationMatrix {
	x := target.Sub(origin).Normalize()
	y := r3.Vector{Z: 1}.Cross(x).Normalize()
	z := x.Cross(y)
	return spatialmath.NewRotationMatrixFromColumns(x, y, z)
}

// symmetricGeometry places two base stations mirrored about the YZ plane, both looking at a
// point below and between them.
func symmetricGeometry() [lighthouse.NumBaseStations]lighthouse.BaseStationGeometry {
	target := r3.Vector{Z: 0.5}
	bs0 := r3.Vector{X: -2, Y: 0, Z: 2.5}
	bs1 := r3.Vector{X: 2, Y: 0, Z: 2.5}
	return [lighthouse.NumBaseStations]lighthouse.BaseStationGeometry{
		{Origin: bs0, Rotation: lookAt(bs0, target)},
		{Origin: bs1, Rotation: lookAt(bs1, target)},
	}
}

// sweepAngles returns the angles base station g measures for a world point. Stored
// calibrations are only orthonormal to single precision, so the numeric inverse is used.
func sweepAngles(g lighthouse.BaseStationGeometry, world r3.Vector) [2]float64 {
	inv, err := spatialmath.InvertRotationMatrix(g.Rotation)
	if err != nil {
		inv = g.Rotation.Transpose()
	}
	local := inv.Mul(world.Sub(g.Origin))
	ax, ay := spatialmath.SweepAnglesToPoint(local)
	return [2]float64{ax, ay}
}

// measurementsFor builds a fully valid measurement set for a vehicle at position with the
// given body rotation.
func measurementsFor(
	stations [lighthouse.NumBaseStations]lighthouse.BaseStationGeometry,
	position r3.Vector,
	rotation spatialmath.RotationMatrix,
) *lighthouse.AngleMeasurementSet {
	var set lighthouse.AngleMeasurementSet
	for sensor, offset := range lighthouse.SensorDeckPositions {
		world := position.Add(rotation.Mul(offset))
		for bs := range stations {
			set.Sensors[sensor].BaseStations[bs] = lighthouse.BaseStationMeasurement{
				CorrectedAngles: sweepAngles(stations[bs], world),
				ValidCount:      lighthouse.FullSweepCount,
			}
		}
	}
	return &set
}

type recordingSink struct {
	mu        sync.Mutex
	positions []lighthouse.PositionMeasurement
	sweeps    []lighthouse.SweepAngleMeasurement
	yawErrors []lighthouse.YawErrorMeasurement
}

func (r *recordingSink) inject() *inject.MeasurementSink {
	return &inject.MeasurementSink{
		EnqueuePositionFunc: func(m lighthouse.PositionMeasurement) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.positions = append(r.positions, m)
		},
		EnqueueSweepAnglesFunc: func(m lighthouse.SweepAngleMeasurement) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.sweeps = append(r.sweeps, m)
		},
		EnqueueYawErrorFunc: func(m lighthouse.YawErrorMeasurement) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.yawErrors = append(r.yawErrors, m)
		},
	}
}

func (r *recordingSink) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions, r.sweeps, r.yawErrors = nil, nil, nil
}

func staticPose(position r3.Vector, rotation spatialmath.RotationMatrix) *inject.PoseSource {
	return &inject.PoseSource{
		EstimatedPositionFunc: func() r3.Vector { return position },
		EstimatedRotationFunc: func() spatialmath.RotationMatrix { return rotation },
	}
}
