package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/vgrid/internal/tui"
	"github.com/colonyops/vgrid/pkg/profiler"
)

type ViewCmd struct {
	flags  *Flags
	source sourceFlags
}

// NewViewCmd creates a new view command
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags}
}

// Flags returns the view flags for registration on the root command, which
// runs view by default.
func (cmd *ViewCmd) Flags() []cli.Flag {
	return append(cmd.source.flags(),
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("VGRID_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	)
}

// Register adds the view command to the application
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Browse a dataset in the interactive grid",
		UsageText: "vgrid view [options] [file]",
		Description: `Opens the grid on a CSV, JSON or YAML dataset. Use "-" or pipe input with
--format to read stdin, or --generate N to browse generated data.

The selected preset decides the displayed and pinned columns, the sort order,
grouping and filters. Everything can be changed interactively; press ? for keys.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})

	return app
}

// Run executes the view command. Exported for use as default command.
func (cmd *ViewCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *ViewCmd) run(ctx context.Context, c *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("view needs a terminal; use 'vgrid query' for piped output")
	}

	ctx, ds, preset, err := cmd.source.resolve(ctx, c, cmd.flags.Config)
	if err != nil {
		return err
	}

	m, err := tui.New(ctx, cmd.flags.Config, tui.Options{Dataset: ds, Preset: preset})
	if err != nil {
		return fmt.Errorf("build grid: %w", err)
	}

	if cmd.flags.ProfilerPort > 0 {
		prof := profiler.New(cmd.flags.ProfilerPort)
		if err := prof.Start(ctx); err != nil {
			return fmt.Errorf("start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := prof.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().Str("url", prof.URL()).Msg("profiler endpoint available")
	}

	log.Info().Ctx(ctx).Int("rows", len(ds.Rows)).Msg("opening grid")

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	// Piped data leaves stdin at EOF, so keys are read from the terminal.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		in, out, err := tea.OpenTTY()
		if err != nil {
			return fmt.Errorf("open terminal for input: %w", err)
		}
		defer func() {
			_ = in.Close()
			_ = out.Close()
		}()
		opts = append(opts, tea.WithInput(in))
	}

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
