// Package cli implements the lighthouse-replay command, which runs recorded sweep angle
// measurements through the position estimator offline.
package cli

import (
	"github.com/urfave/cli/v2"
)

const (
	flagConfig = "config"
	flagInput  = "input"
	flagMode   = "mode"
	flagDebug  = "debug"
	flagYaw    = "yaw"

	modeCrossing = "crossing"
	modeSweeps   = "sweeps"
)

// NewApp returns the lighthouse-replay application.
func NewApp() *cli.App {
	return &cli.App{
		Name:            "lighthouse-replay",
		Usage:           "replay recorded lighthouse angle measurements through the position estimator",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`; the compiled-in calibration is used if unset",
			},
			&cli.StringFlag{
				Name:     flagInput,
				Aliases:  []string{"i"},
				Required: true,
				Usage:    "read JSON lines of measurement frames from `FILE`",
			},
			&cli.StringFlag{
				Name:  flagMode,
				Value: modeCrossing,
				Usage: "estimation mode, one of crossing or sweeps",
			},
			&cli.BoolFlag{
				Name:  flagYaw,
				Usage: "apply emitted yaw errors to the replayed heading",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Action: ReplayAction,
	}
}
