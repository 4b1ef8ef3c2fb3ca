package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.viam.com/utils"

	"go.viam.com/lighthouse/config"
	"go.viam.com/lighthouse/estimator"
	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/logging"
	"go.viam.com/lighthouse/spatialmath"
)

// maxFrameSize bounds the length of one input line.
const maxFrameSize = 1 << 20

// frame is one recorded base station update.
type frame struct {
	BaseStation lighthouse.BaseStation `json:"base_station"`
	lighthouse.AngleMeasurementSet
}

// ReplayOptions selects how frames are dispatched.
type ReplayOptions struct {
	Mode string
	// Yaw feeds emitted yaw errors back into the replayed heading.
	Yaw bool
}

// Axis summarizes one coordinate of the emitted positions.
type Axis struct {
	Mean   float64
	StdDev float64
}

// Summary is the result of a replay.
type Summary struct {
	Frames    int
	Positions int
	Sweeps    int
	YawErrors int
	Dropped   estimator.DropCounts

	// X, Y and Z are only set when at least one position was emitted.
	X, Y, Z Axis
	// Heading is the final replayed yaw, in radians.
	Heading float64

	Readings map[string]interface{}
}

// Replay reads JSON lines of frames from r and dispatches each through a position estimator
// built from cfg. Measurements are drained after every frame. The last emitted position,
// and the heading corrected by yaw errors when opts.Yaw is set, become the pose for the next
// frame.
func Replay(
	ctx context.Context,
	r io.Reader,
	cfg *config.Config,
	opts ReplayOptions,
	logger logging.Logger,
) (Summary, error) {
	var summary Summary

	store := lighthouse.NewGeometryStore(cfg.Geometry(), logger.Sublogger("geometry"))
	queue := estimator.NewQueue(cfg.QueueLength, logger.Sublogger("queue"))
	pe := lighthouse.NewPositionEstimator(store, queue, queue, logger.Sublogger("estimator"),
		lighthouse.WithSweepStdDev(cfg.Params().SweepStdDev))

	var dispatch func(*lighthouse.AngleMeasurementSet, lighthouse.BaseStation)
	switch opts.Mode {
	case "", modeCrossing:
		dispatch = pe.OnBaseStationUpdateCrossingBeams
	case modeSweeps:
		dispatch = pe.OnBaseStationUpdateSweeps
	default:
		return summary, errors.Errorf("unknown mode %q, expected %s or %s", opts.Mode, modeCrossing, modeSweeps)
	}

	var xs, ys, zs stats.Float64Data
	var position r3.Vector
	var heading float64

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var f frame
		if err := json.Unmarshal(scanner.Bytes(), &f); err != nil {
			return summary, errors.Wrapf(err, "cannot parse frame on line %d", line)
		}
		summary.Frames++
		dispatch(&f.AngleMeasurementSet, f.BaseStation)

		drained := queue.Drain()
		summary.Positions += len(drained.Positions)
		summary.Sweeps += len(drained.Sweeps)
		summary.YawErrors += len(drained.YawErrors)
		for _, m := range drained.Positions {
			xs = append(xs, m.Position.X)
			ys = append(ys, m.Position.Y)
			zs = append(zs, m.Position.Z)
			position = m.Position
		}
		if opts.Yaw {
			for _, m := range drained.YawErrors {
				heading -= m.YawError
			}
		}
		queue.SetPose(position, (&spatialmath.EulerAngles{Yaw: heading}).Quaternion())
	}
	if err := scanner.Err(); err != nil {
		return summary, errors.Wrap(err, "cannot read frames")
	}

	if len(xs) > 0 {
		var err error
		if summary.X, err = summarize(xs); err != nil {
			return summary, err
		}
		if summary.Y, err = summarize(ys); err != nil {
			return summary, err
		}
		if summary.Z, err = summarize(zs); err != nil {
			return summary, err
		}
	}
	summary.Heading = heading
	summary.Dropped = queue.Dropped()

	readings, err := pe.Readings(ctx, nil)
	if err != nil {
		return summary, err
	}
	summary.Readings = readings
	return summary, nil
}

func summarize(data stats.Float64Data) (Axis, error) {
	mean, err := data.Mean()
	if err != nil {
		return Axis{}, errors.Wrap(err, "cannot compute mean")
	}
	stdDev, err := data.StandardDeviation()
	if err != nil {
		return Axis{}, errors.Wrap(err, "cannot compute standard deviation")
	}
	return Axis{Mean: mean, StdDev: stdDev}, nil
}

// ReplayAction is the corresponding Action for lighthouse-replay.
func ReplayAction(c *cli.Context) error {
	logger := logging.NewLogger("lighthouse-replay")
	if c.Bool(flagDebug) {
		logger = logging.NewDebugLogger("lighthouse-replay")
	}
	logging.ReplaceGlobal(logger)
	//nolint:errcheck
	defer logger.Sync()

	cfg := &config.Config{}
	if path := c.String(flagConfig); path != "" {
		var err error
		cfg, err = config.Read(c.Context, path, logger)
		if err != nil {
			return err
		}
		if !c.Bool(flagDebug) {
			logger.SetLevel(cfg.LogLevel)
		}
	}

	input, err := os.Open(c.String(flagInput))
	if err != nil {
		return errors.Wrap(err, "cannot open input")
	}
	defer utils.UncheckedErrorFunc(input.Close)

	summary, err := Replay(c.Context, input, cfg, ReplayOptions{
		Mode: c.String(flagMode),
		Yaw:  c.Bool(flagYaw),
	}, logger)
	if err != nil {
		return err
	}
	printSummary(c.App.Writer, summary)
	return nil
}

func printSummary(w io.Writer, s Summary) {
	printf(w, "frames: %d", s.Frames)
	printf(w, "positions: %d sweeps: %d yaw errors: %d", s.Positions, s.Sweeps, s.YawErrors)
	if s.Dropped != (estimator.DropCounts{}) {
		warningf(w, "dropped positions: %d sweeps: %d yaw errors: %d",
			s.Dropped.Positions, s.Dropped.Sweeps, s.Dropped.YawErrors)
	}
	if s.Positions > 0 {
		printf(w, "x: %.4f ± %.4f", s.X.Mean, s.X.StdDev)
		printf(w, "y: %.4f ± %.4f", s.Y.Mean, s.Y.StdDev)
		printf(w, "z: %.4f ± %.4f", s.Z.Mean, s.Z.StdDev)
	}
	printf(w, "heading: %.4f", s.Heading)

	keys := make([]string, 0, len(s.Readings))
	for k := range s.Readings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		printf(w, "%s: %v", k, s.Readings[k])
	}
}
