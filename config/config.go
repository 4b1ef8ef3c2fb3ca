// Package config defines the on-disk configuration of the lighthouse positioning system:
// base station calibration, estimator tunables and log level.
package config

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/logging"
	"go.viam.com/lighthouse/spatialmath"
)

// orthonormalTolerance allows for calibration data stored with single precision.
const orthonormalTolerance = 1e-3

// BaseStation is the calibrated pose of one base station. Rotation is given row by row and maps
// base station frame vectors into the world frame.
type BaseStation struct {
	Origin   [3]float64    `json:"origin"`
	Rotation [3][3]float64 `json:"rotation"`
}

// Validate ensures the base station rotation is present and orthonormal.
func (bs *BaseStation) Validate(path string) error {
	if bs.Rotation == ([3][3]float64{}) {
		return utils.NewConfigValidationFieldRequiredError(path, "rotation")
	}
	if !bs.geometry().Rotation.IsOrthonormal(orthonormalTolerance) {
		return utils.NewConfigValidationError(path, errors.New("rotation is not orthonormal"))
	}
	return nil
}

func (bs *BaseStation) geometry() lighthouse.BaseStationGeometry {
	return lighthouse.BaseStationGeometry{
		Origin:   r3.Vector{X: bs.Origin[0], Y: bs.Origin[1], Z: bs.Origin[2]},
		Rotation: spatialmath.NewRotationMatrixFromRows(bs.Rotation),
	}
}

// Config is the full configuration of a lighthouse deck.
type Config struct {
	ConfigFilePath string `json:"-"`

	// BaseStations is either empty, in which case the compiled-in calibration is used, or
	// holds one entry per base station.
	BaseStations []BaseStation `json:"base_stations,omitempty"`

	// SweepStdDev overrides lighthouse.DefaultSweepStdDev when set.
	SweepStdDev *float64 `json:"sweep_std,omitempty"`

	// QueueLength is the capacity of each estimator measurement queue. Zero means the default.
	QueueLength int `json:"queue_length,omitempty"`

	LogLevel logging.Level `json:"log_level"`
}

// Validate returns every problem found in the config.
func (c *Config) Validate(path string) error {
	var err error
	if n := len(c.BaseStations); n != 0 && n != lighthouse.NumBaseStations {
		err = multierr.Append(err, utils.NewConfigValidationError(
			path, errors.Errorf("expected %d base stations, got %d", lighthouse.NumBaseStations, n)))
	}
	for i := range c.BaseStations {
		err = multierr.Append(err, c.BaseStations[i].Validate(fmt.Sprintf("%s.base_stations.%d", path, i)))
	}
	if c.SweepStdDev != nil {
		if paramErr := c.Params().Validate(); paramErr != nil {
			err = multierr.Append(err, utils.NewConfigValidationError(path, paramErr))
		}
	}
	if c.QueueLength < 0 {
		err = multierr.Append(err, utils.NewConfigValidationError(
			path, errors.Errorf("queue_length must not be negative, got %d", c.QueueLength)))
	}
	return err
}

// Geometry returns the configured base station geometry, or the compiled-in calibration if
// none is configured.
func (c *Config) Geometry() [lighthouse.NumBaseStations]lighthouse.BaseStationGeometry {
	if len(c.BaseStations) != lighthouse.NumBaseStations {
		return lighthouse.DefaultBaseStationGeometry()
	}
	var out [lighthouse.NumBaseStations]lighthouse.BaseStationGeometry
	for i := range out {
		out[i] = c.BaseStations[i].geometry()
	}
	return out
}

// Params returns the estimator parameters with defaults filled in.
func (c *Config) Params() lighthouse.Params {
	params := lighthouse.Params{SweepStdDev: lighthouse.DefaultSweepStdDev}
	if c.SweepStdDev != nil {
		params.SweepStdDev = *c.SweepStdDev
	}
	return params
}
