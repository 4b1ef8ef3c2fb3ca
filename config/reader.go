package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/lighthouse/logging"
)

// Read reads a config from the given file. Environment variables in the file are expanded
// before parsing.
func Read(
	ctx context.Context,
	filePath string,
	logger logging.Logger,
) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(ctx, filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(
	ctx context.Context,
	originalPath string,
	r io.Reader,
	logger logging.Logger,
) (*Config, error) {
	cfg := &Config{
		ConfigFilePath: originalPath,
	}
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	if err := cfg.Validate("lighthouse"); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	if len(cfg.BaseStations) == 0 {
		logger.Infow("no base stations configured, using the default calibration", "path", originalPath)
	}
	logger.Debugw("config read", "path", originalPath, "sweep_std", cfg.Params().SweepStdDev, "log_level", cfg.LogLevel)
	return cfg, nil
}
