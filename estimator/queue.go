// Package estimator provides a queue backed stand-in for the vehicle's state estimator. It
// accepts lighthouse measurements without blocking and serves a pose snapshot back to the yaw
// corrector.
package estimator

import (
	"sync"

	"github.com/golang/geo/r3"
	"go.uber.org/atomic"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/logging"
	"go.viam.com/lighthouse/spatialmath"
)

// DefaultQueueLength is the capacity of each measurement queue.
const DefaultQueueLength = 10

var (
	_ lighthouse.MeasurementSink = (*Queue)(nil)
	_ lighthouse.PoseSource      = (*Queue)(nil)
)

// Queue buffers measurements in bounded channels. When a channel is full the new measurement
// is dropped and counted.
type Queue struct {
	positions chan lighthouse.PositionMeasurement
	sweeps    chan lighthouse.SweepAngleMeasurement
	yawErrors chan lighthouse.YawErrorMeasurement

	droppedPositions *atomic.Uint64
	droppedSweeps    *atomic.Uint64
	droppedYawErrors *atomic.Uint64

	poseMu   sync.RWMutex
	position r3.Vector
	rotation spatialmath.RotationMatrix

	logger logging.Logger
}

// NewQueue returns a Queue with the given capacity per measurement kind and an identity pose
// at the origin. A non-positive length uses DefaultQueueLength and a nil logger the global one.
func NewQueue(length int, logger logging.Logger) *Queue {
	if length <= 0 {
		length = DefaultQueueLength
	}
	if logger == nil {
		logger = logging.Global()
	}
	return &Queue{
		positions:        make(chan lighthouse.PositionMeasurement, length),
		sweeps:           make(chan lighthouse.SweepAngleMeasurement, length),
		yawErrors:        make(chan lighthouse.YawErrorMeasurement, length),
		droppedPositions: atomic.NewUint64(0),
		droppedSweeps:    atomic.NewUint64(0),
		droppedYawErrors: atomic.NewUint64(0),
		rotation:         spatialmath.IdentityRotationMatrix(),
		logger:           logger,
	}
}

// EnqueuePosition queues a position measurement.
func (q *Queue) EnqueuePosition(m lighthouse.PositionMeasurement) {
	select {
	case q.positions <- m:
	default:
		q.droppedPositions.Inc()
	}
}

// EnqueueSweepAngles queues a sweep angle measurement.
func (q *Queue) EnqueueSweepAngles(m lighthouse.SweepAngleMeasurement) {
	select {
	case q.sweeps <- m:
	default:
		q.droppedSweeps.Inc()
	}
}

// EnqueueYawError queues a yaw error measurement.
func (q *Queue) EnqueueYawError(m lighthouse.YawErrorMeasurement) {
	select {
	case q.yawErrors <- m:
	default:
		q.droppedYawErrors.Inc()
	}
}

// Positions returns the position measurement queue.
func (q *Queue) Positions() <-chan lighthouse.PositionMeasurement {
	return q.positions
}

// Sweeps returns the sweep angle measurement queue.
func (q *Queue) Sweeps() <-chan lighthouse.SweepAngleMeasurement {
	return q.sweeps
}

// YawErrors returns the yaw error measurement queue.
func (q *Queue) YawErrors() <-chan lighthouse.YawErrorMeasurement {
	return q.yawErrors
}

// Measurements is everything drained from a Queue at one point in time.
type Measurements struct {
	Positions []lighthouse.PositionMeasurement
	Sweeps    []lighthouse.SweepAngleMeasurement
	YawErrors []lighthouse.YawErrorMeasurement
}

// Drain removes and returns all currently queued measurements without blocking.
func (q *Queue) Drain() Measurements {
	var out Measurements
	for {
		select {
		case m := <-q.positions:
			out.Positions = append(out.Positions, m)
		case m := <-q.sweeps:
			out.Sweeps = append(out.Sweeps, m)
		case m := <-q.yawErrors:
			out.YawErrors = append(out.YawErrors, m)
		default:
			return out
		}
	}
}

// DropCounts is how many measurements of each kind were discarded because their queue was full.
type DropCounts struct {
	Positions uint64
	Sweeps    uint64
	YawErrors uint64
}

// Dropped returns the drop counters.
func (q *Queue) Dropped() DropCounts {
	return DropCounts{
		Positions: q.droppedPositions.Load(),
		Sweeps:    q.droppedSweeps.Load(),
		YawErrors: q.droppedYawErrors.Load(),
	}
}

// SetPose replaces the pose served to the yaw corrector. The orientation is normalized.
func (q *Queue) SetPose(position r3.Vector, orientation quat.Number) {
	rotation := spatialmath.QuatToRotationMatrix(orientation)
	q.poseMu.Lock()
	q.position = position
	q.rotation = rotation
	q.poseMu.Unlock()
	q.logger.Debugw("estimated pose set", "position", position)
}

// EstimatedPosition returns the current position snapshot.
func (q *Queue) EstimatedPosition() r3.Vector {
	q.poseMu.RLock()
	defer q.poseMu.RUnlock()
	return q.position
}

// EstimatedRotation returns the current rotation snapshot.
func (q *Queue) EstimatedRotation() spatialmath.RotationMatrix {
	q.poseMu.RLock()
	defer q.poseMu.RUnlock()
	return q.rotation
}
