// Package lighthouse turns sweep angles measured from two lighthouse base stations into
// position, sweep-angle and yaw-error measurements for the vehicle's state estimator.
//
// A base station update is routed through one of the two dispatcher entry points on
// PositionEstimator. Every call is synchronous and bounded: it reads one consistent geometry
// snapshot, computes its measurements and hands them to a MeasurementSink. Nothing is
// returned to the caller; a cycle that cannot produce a measurement simply produces none.
package lighthouse

import (
	"github.com/golang/geo/r3"

	"go.viam.com/lighthouse/spatialmath"
)

const (
	// NumBaseStations is the number of base stations tracked.
	NumBaseStations = 2
	// NumSensors is the number of photodiodes on the deck.
	NumSensors = 4
	// FullSweepCount is the number of valid sweeps a sensor reports in one decode cycle
	// when it saw both rotors of a base station.
	FullSweepCount = 2
)

// BaseStation indexes one of the base stations.
type BaseStation int

// Valid reports whether bs indexes a tracked base station.
func (bs BaseStation) Valid() bool {
	return bs >= 0 && int(bs) < NumBaseStations
}

// BaseStationMeasurement is what one sensor saw from one base station in one decode cycle.
type BaseStationMeasurement struct {
	// CorrectedAngles holds the horizontal and vertical sweep angles in radians.
	CorrectedAngles [2]float64 `json:"corrected_angles"`
	ValidCount      int        `json:"valid_count"`
}

// IsValid reports whether both sweeps of the decode cycle were seen.
func (m BaseStationMeasurement) IsValid() bool {
	return m.ValidCount == FullSweepCount
}

// SensorMeasurement holds one sensor's measurements for every base station.
type SensorMeasurement struct {
	BaseStations [NumBaseStations]BaseStationMeasurement `json:"base_stations"`
}

// AngleMeasurementSet is the output of one pulse decoder cycle.
type AngleMeasurementSet struct {
	Sensors [NumSensors]SensorMeasurement `json:"sensors"`
}

// PositionMeasurement is an absolute position fix.
type PositionMeasurement struct {
	Position r3.Vector
	StdDev   float64
}

// SweepAngleMeasurement is one sensor's raw angle pair along with the geometry needed to
// project it. The geometry fields are copied from a single geometry snapshot.
type SweepAngleMeasurement struct {
	AngleX  float64
	AngleY  float64
	StdDevX float64
	StdDevY float64

	SensorPos         r3.Vector
	BaseStationPos    r3.Vector
	BaseStationRot    spatialmath.RotationMatrix
	BaseStationRotInv spatialmath.RotationMatrix
}

// YawErrorMeasurement is the estimated heading minus the observed heading, in radians.
type YawErrorMeasurement struct {
	YawError float64
	StdDev   float64
}

// MeasurementSink receives measurements. Enqueueing must not block; what happens when a queue
// is full is up to the implementation.
type MeasurementSink interface {
	EnqueuePosition(m PositionMeasurement)
	EnqueueSweepAngles(m SweepAngleMeasurement)
	EnqueueYawError(m YawErrorMeasurement)
}

// PoseSource returns snapshots of the vehicle's currently estimated pose.
type PoseSource interface {
	EstimatedPosition() r3.Vector
	// EstimatedRotation maps body frame vectors into the world frame.
	EstimatedRotation() spatialmath.RotationMatrix
}
