package lighthouse

import (
	"time"

	clk "github.com/benbjohnson/clock"
	"go.uber.org/atomic"

	"go.viam.com/lighthouse/logging"
	"go.viam.com/lighthouse/stats"
)

const (
	positionRateInterval    = time.Second
	baseStationRateInterval = 500 * time.Millisecond
)

// PositionEstimator routes base station updates to the position estimators and the yaw
// corrector. It keeps no pose of its own: geometry comes from a GeometryStore and the current
// pose from a PoseSource.
type PositionEstimator struct {
	geometry *GeometryStore
	sink     MeasurementSink
	pose     PoseSource
	logger   logging.Logger

	sweepStdDev *atomic.Float64

	positionRate     *stats.RateCounter
	baseStationRates [NumBaseStations]*stats.RateCounter

	telemetry telemetry
}

type options struct {
	clock       clk.Clock
	sweepStdDev float64
}

// Option configures a PositionEstimator.
type Option func(*options)

// WithClock sets the clock driving the rate counters.
func WithClock(clock clk.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithSweepStdDev sets the initial standard deviation attached to sweep angle measurements.
func WithSweepStdDev(stdDev float64) Option {
	return func(o *options) {
		o.sweepStdDev = stdDev
	}
}

// NewPositionEstimator returns an estimator reading geometry from store, pulling pose from
// pose and writing measurements to sink.
func NewPositionEstimator(
	store *GeometryStore,
	sink MeasurementSink,
	pose PoseSource,
	logger logging.Logger,
	opts ...Option,
) *PositionEstimator {
	o := options{clock: clk.New(), sweepStdDev: DefaultSweepStdDev}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = logging.Global()
	}

	pe := &PositionEstimator{
		geometry:     store,
		sink:         sink,
		pose:         pose,
		logger:       logger,
		sweepStdDev:  atomic.NewFloat64(o.sweepStdDev),
		positionRate: stats.NewRateCounter(positionRateInterval, o.clock),
	}
	for bs := range pe.baseStationRates {
		pe.baseStationRates[bs] = stats.NewRateCounter(baseStationRateInterval, o.clock)
	}
	return pe
}

// OnBaseStationUpdateCrossingBeams computes an absolute position from the rays of both base
// stations, then a yaw correction from base station bs.
func (pe *PositionEstimator) OnBaseStationUpdateCrossingBeams(angles *AngleMeasurementSet, bs BaseStation) {
	if !pe.accept(angles, bs) {
		return
	}
	geo := pe.geometry.Snapshot()
	pe.estimatePositionCrossingBeams(&geo, angles)
	pe.estimateYaw(&geo, angles, bs)
}

// OnBaseStationUpdateSweeps forwards the sweep angles seen from base station bs, then a yaw
// correction from the same base station.
func (pe *PositionEstimator) OnBaseStationUpdateSweeps(angles *AngleMeasurementSet, bs BaseStation) {
	if !pe.accept(angles, bs) {
		return
	}
	geo := pe.geometry.Snapshot()
	pe.estimateSweeps(&geo, angles, bs)
	pe.estimateYaw(&geo, angles, bs)
}

func (pe *PositionEstimator) accept(angles *AngleMeasurementSet, bs BaseStation) bool {
	if angles == nil {
		return false
	}
	if !bs.Valid() {
		pe.logger.Debugw("ignoring update for unknown base station", "base_station", int(bs))
		return false
	}
	return true
}
