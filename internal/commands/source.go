package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/vgrid/internal/core/config"
	"github.com/colonyops/vgrid/internal/core/dataset"
	"github.com/colonyops/vgrid/internal/core/logging"
)

// sourceFlags select the dataset and preset a command works on.
type sourceFlags struct {
	format   string
	schema   string
	generate int
	seed     uint64
	preset   string
}

func (s *sourceFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Usage:       "input format (csv, json, yaml); required when reading stdin",
			Destination: &s.format,
		},
		&cli.StringFlag{
			Name:        "schema",
			Usage:       "YAML file declaring column kinds and display settings",
			Destination: &s.schema,
		},
		&cli.IntFlag{
			Name:        "generate",
			Usage:       "ignore input and generate N rows of arbitrary data",
			Destination: &s.generate,
		},
		&cli.Uint64Flag{
			Name:        "seed",
			Usage:       "seed for --generate",
			Value:       1,
			Destination: &s.seed,
		},
		&cli.StringFlag{
			Name:        "preset",
			Aliases:     []string{"p"},
			Usage:       "config preset to apply",
			Sources:     cli.EnvVars("VGRID_PRESET"),
			Value:       config.DefaultPreset,
			Destination: &s.preset,
		},
	}
}

// load reads the dataset named by the first argument, or generates one.
func (s *sourceFlags) load(c *cli.Command) (*dataset.Dataset, error) {
	if s.generate > 0 {
		return dataset.Generate(dataset.GenerateOptions{Rows: s.generate, PerKind: 3, Seed: s.seed}), nil
	}

	opts := dataset.Options{}
	if s.format != "" {
		f, err := dataset.ParseFormat(s.format)
		if err != nil {
			return nil, err
		}
		opts.Format = f
	}
	if s.schema != "" {
		cols, err := dataset.LoadColumns(s.schema)
		if err != nil {
			return nil, fmt.Errorf("load schema: %w", err)
		}
		opts.Columns = cols
	}

	ds, err := dataset.Load(c.Args().First(), opts)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}

// resolve loads the dataset and checks the selected preset against it. The
// returned context carries both names for logging.
func (s *sourceFlags) resolve(ctx context.Context, c *cli.Command, cfg *config.Config) (context.Context, *dataset.Dataset, config.Preset, error) {
	ds, err := s.load(c)
	if err != nil {
		return ctx, nil, config.Preset{}, err
	}

	preset, err := cfg.Preset(s.preset)
	if err != nil {
		return ctx, nil, config.Preset{}, err
	}
	if err := cfg.ValidatePreset(s.preset, ds.Schema); err != nil {
		return ctx, nil, config.Preset{}, fmt.Errorf("preset %q: %w", s.preset, err)
	}

	ctx = logging.WithDataset(ctx, ds.Source)
	ctx = logging.WithPreset(ctx, s.preset)
	return ctx, ds, preset, nil
}
