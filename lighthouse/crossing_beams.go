package lighthouse

import (
	"github.com/golang/geo/r3"

	"go.viam.com/lighthouse/spatialmath"
)

const positionStdDev = 0.01

// estimatePositionCrossingBeams averages the ray intersections of every sensor seen by both
// base stations and emits the result as one absolute position fix.
func (pe *PositionEstimator) estimatePositionCrossingBeams(geo *GeometrySnapshot, angles *AngleMeasurementSet) {
	var sum r3.Vector
	sensorsUsed := 0

	for sensor := range angles.Sensors {
		bs0Measurement := angles.Sensors[sensor].BaseStations[0]
		bs1Measurement := angles.Sensors[sensor].BaseStations[1]
		if !bs0Measurement.IsValid() || !bs1Measurement.IsValid() {
			continue
		}

		position, delta, ok := geo.PositionFromRayIntersection(bs0Measurement.CorrectedAngles, bs1Measurement.CorrectedAngles)
		if !ok {
			continue
		}
		pe.telemetry.setDelta(delta)

		sum = sum.Add(position)
		sensorsUsed++
	}

	if sensorsUsed == 0 {
		return
	}

	position := sum.Mul(1 / float64(sensorsUsed))
	if !spatialmath.R3VectorIsFinite(position) {
		pe.logger.Debugw("dropping non-finite crossing beams position", "position", position)
		return
	}

	pe.sink.EnqueuePosition(PositionMeasurement{Position: position, StdDev: positionStdDev})
	pe.positionRate.Event()
	pe.telemetry.setPosition(position)
}
