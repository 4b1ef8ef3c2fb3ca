package lighthouse

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// DefaultSweepStdDev is the standard deviation, in radians, attached to sweep angles.
const DefaultSweepStdDev = 0.0004

// telemetry holds the last computed values for diagnostics.
type telemetry struct {
	mu       sync.Mutex
	position r3.Vector
	delta    float64
}

func (t *telemetry) setPosition(p r3.Vector) {
	t.mu.Lock()
	t.position = p
	t.mu.Unlock()
}

func (t *telemetry) setDelta(delta float64) {
	t.mu.Lock()
	t.delta = delta
	t.mu.Unlock()
}

func (t *telemetry) get() (r3.Vector, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.position, t.delta
}

// Readings returns the diagnostic values of the estimator: measurement rates in Hz
// (posRt, estBs<n>Rt), the last emitted crossing beams position (x, y, z) and the distance
// between the last pair of crossed rays (delta).
func (pe *PositionEstimator) Readings(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
	position, delta := pe.telemetry.get()
	readings := map[string]interface{}{
		"posRt": pe.positionRate.Rate(),
		"x":     position.X,
		"y":     position.Y,
		"z":     position.Z,
		"delta": delta,
	}
	for bs, rate := range pe.baseStationRates {
		readings[fmt.Sprintf("estBs%dRt", bs)] = rate.Rate()
	}
	return readings, nil
}

// Params are the tunable parameters of the estimator.
type Params struct {
	SweepStdDev float64 `mapstructure:"sweepStd" json:"sweepStd"`
}

// Validate ensures the parameters are usable.
func (p Params) Validate() error {
	if math.IsNaN(p.SweepStdDev) || math.IsInf(p.SweepStdDev, 0) || p.SweepStdDev <= 0 {
		return errors.Errorf("sweepStd must be a positive finite number, got %v", p.SweepStdDev)
	}
	return nil
}

// Params returns the current parameters.
func (pe *PositionEstimator) Params() Params {
	return Params{SweepStdDev: pe.sweepStdDev.Load()}
}

// SetParams updates the parameters named in attrs, leaving the others unchanged. Unknown
// names are rejected.
func (pe *PositionEstimator) SetParams(attrs map[string]interface{}) error {
	params := pe.Params()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &params,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(attrs); err != nil {
		return errors.Wrap(err, "cannot decode lighthouse params")
	}
	if err := params.Validate(); err != nil {
		return err
	}

	pe.sweepStdDev.Store(params.SweepStdDev)
	pe.logger.Debugw("lighthouse params updated", "sweepStd", params.SweepStdDev)
	return nil
}
