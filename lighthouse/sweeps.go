package lighthouse

// estimateSweeps forwards the angle pair of every sensor that saw base station bs, one
// measurement per sensor.
func (pe *PositionEstimator) estimateSweeps(geo *GeometrySnapshot, angles *AngleMeasurementSet, bs BaseStation) {
	stdDev := pe.sweepStdDev.Load()
	station := geo.Stations[bs]

	for sensor := range angles.Sensors {
		bsMeasurement := angles.Sensors[sensor].BaseStations[bs]
		if !bsMeasurement.IsValid() {
			continue
		}

		angleX, angleY := bsMeasurement.CorrectedAngles[0], bsMeasurement.CorrectedAngles[1]
		// a zero angle means the sensor was not actually lit
		if angleX == 0 || angleY == 0 {
			continue
		}

		pe.sink.EnqueueSweepAngles(SweepAngleMeasurement{
			AngleX:            angleX,
			AngleY:            angleY,
			StdDevX:           stdDev,
			StdDevY:           stdDev,
			SensorPos:         SensorDeckPositions[sensor],
			BaseStationPos:    station.Origin,
			BaseStationRot:    station.Rotation,
			BaseStationRotInv: geo.InvertedRotations[bs],
		})
		pe.baseStationRates[bs].Event()
	}
}
