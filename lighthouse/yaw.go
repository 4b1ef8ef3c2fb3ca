package lighthouse

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/lighthouse/spatialmath"
)

const yawStdDev = 0.01

// estimateYaw compares where the rays of one base station hit the deck plane of the estimated
// pose with where the sensors should be, and emits the heading difference. Nothing is emitted
// unless every sensor has a full sweep from bs.
func (pe *PositionEstimator) estimateYaw(geo *GeometrySnapshot, angles *AngleMeasurementSet, bs BaseStation) {
	position := pe.pose.EstimatedPosition()
	rotation := pe.pose.EstimatedRotation()

	yawDelta, ok := yawDeltaOneBaseStation(geo, angles, bs, position, rotation)
	if !ok {
		return
	}
	pe.sink.EnqueueYawError(YawErrorMeasurement{YawError: yawDelta, StdDev: yawStdDev})
}

// yawDeltaOneBaseStation returns estimated minus observed heading about the deck normal. It
// fails if any sensor lacks a full measurement from bs, if a ray misses the deck plane, or if
// a diagonal degenerates.
func yawDeltaOneBaseStation(
	geo *GeometrySnapshot,
	angles *AngleMeasurementSet,
	bs BaseStation,
	position r3.Vector,
	rotation spatialmath.RotationMatrix,
) (float64, bool) {
	// body z axis in the world frame
	normal := rotation.Col(2)
	baseStationPos := geo.Stations[bs].Origin

	var intersectionPoints [NumSensors]r3.Vector
	for sensor := range angles.Sensors {
		bsMeasurement := angles.Sensors[sensor].BaseStations[bs]
		if !bsMeasurement.IsValid() {
			return 0, false
		}
		ray := geo.Ray(bs, bsMeasurement.CorrectedAngles)
		pt, exists := spatialmath.IntersectRayPlane(baseStationPos, ray, position, normal)
		if !exists {
			return 0, false
		}
		intersectionPoints[sensor] = pt
	}

	var sensorPoints [NumSensors]r3.Vector
	for sensor, offset := range SensorDeckPositions {
		sensorPoints[sensor] = position.Add(rotation.Mul(offset))
	}

	// diagonals 0-3 and 1-2
	ipv1 := intersectionPoints[3].Sub(intersectionPoints[0])
	ipv2 := intersectionPoints[2].Sub(intersectionPoints[1])
	spv1 := sensorPoints[3].Sub(sensorPoints[0])
	spv2 := sensorPoints[2].Sub(sensorPoints[1])

	yawDelta1, ok1 := spatialmath.SignedAngleAbout(ipv1, spv1, normal)
	yawDelta2, ok2 := spatialmath.SignedAngleAbout(ipv2, spv2, normal)
	if !ok1 || !ok2 {
		return 0, false
	}

	yawDelta := (yawDelta1 + yawDelta2) / 2
	if math.IsNaN(yawDelta) || math.IsInf(yawDelta, 0) {
		return 0, false
	}
	return yawDelta, true
}
