package inject

import (
	"go.viam.com/lighthouse/lighthouse"
)

// MeasurementSink is an injected measurement sink.
type MeasurementSink struct {
	lighthouse.MeasurementSink
	EnqueuePositionFunc    func(m lighthouse.PositionMeasurement)
	EnqueueSweepAnglesFunc func(m lighthouse.SweepAngleMeasurement)
	EnqueueYawErrorFunc    func(m lighthouse.YawErrorMeasurement)
}

// EnqueuePosition calls the injected EnqueuePosition or the real version.
func (s *MeasurementSink) EnqueuePosition(m lighthouse.PositionMeasurement) {
	if s.EnqueuePositionFunc == nil {
		s.MeasurementSink.EnqueuePosition(m)
		return
	}
	s.EnqueuePositionFunc(m)
}

// EnqueueSweepAngles calls the injected EnqueueSweepAngles or the real version.
func (s *MeasurementSink) EnqueueSweepAngles(m lighthouse.SweepAngleMeasurement) {
	if s.EnqueueSweepAnglesFunc == nil {
		s.MeasurementSink.EnqueueSweepAngles(m)
		return
	}
	s.EnqueueSweepAnglesFunc(m)
}

// EnqueueYawError calls the injected EnqueueYawError or the real version.
func (s *MeasurementSink) EnqueueYawError(m lighthouse.YawErrorMeasurement) {
	if s.EnqueueYawErrorFunc == nil {
		s.MeasurementSink.EnqueueYawError(m)
		return
	}
	s.EnqueueYawErrorFunc(m)
}
