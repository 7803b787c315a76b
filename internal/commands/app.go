package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/vgrid/internal/core/config"
	"github.com/colonyops/vgrid/internal/core/logging"
	"github.com/colonyops/vgrid/internal/core/styles"
	"github.com/colonyops/vgrid/pkg/logutils"
)

// NewApp builds the root command with every sub-command registered. The
// Before hook loads the config into flags and installs the logger.
func NewApp(flags *Flags, version string) *cli.Command {
	var logCloser func()

	app := &cli.Command{
		Name:      "vgrid",
		Usage:     "Browse tabular data in a virtualized terminal grid",
		UsageText: "vgrid [global options] [command] [command options] [file]",
		Description: `vgrid opens CSV, JSON and YAML datasets in a scrollable grid that only renders
what is on screen. Columns can be pinned, reordered, duplicated and resized;
rows can be filtered, sorted and grouped through config presets or
interactively.

Run 'vgrid data.csv' to open the grid.
Run 'vgrid query data.csv' to print a preset's result as a table.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("VGRID_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/vgrid.log)",
				Sources:     cli.EnvVars("VGRID_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("VGRID_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("VGRID_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// The grid owns the terminal, so logs always go to a file.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			// Validation ensures the theme name is known.
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			log.Debug().
				Str("config", flags.ConfigPath).
				Str("theme", cfg.Theme).
				Int("presets", len(cfg.Presets)).
				Msg("config loaded")

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	viewCmd := NewViewCmd(flags)

	app = viewCmd.Register(app)
	app = NewQueryCmd(flags).Register(app)
	app = NewSchemaCmd(flags).Register(app)
	app = NewConfigValidateCmd(flags).Register(app)

	// Opening the grid is the default action.
	app.Flags = append(app.Flags, viewCmd.Flags()...)
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 1 {
			return fmt.Errorf("expected at most one file, got %d. Run 'vgrid --help' for usage", c.Args().Len())
		}
		return viewCmd.Run(ctx, c)
	}

	return app
}
