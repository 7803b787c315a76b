package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/vgrid/internal/core/columns"
	"github.com/colonyops/vgrid/internal/core/styles"
	"github.com/colonyops/vgrid/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	source sourceFlags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate configuration file",
				UsageText: "vgrid config validate [options] [file]",
				Description: `Validates the configuration file. Given a dataset (or --generate), every
preset is also checked against its columns.`,
				Flags: append(cmd.source.flags(),
					&cli.StringFlag{
						Name:        "output",
						Aliases:     []string{"o"},
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				),
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationIssue is one failed check.
type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	var schema *columns.Schema
	if c.Args().Present() || cmd.source.generate > 0 {
		ds, err := cmd.source.load(c)
		if err != nil {
			return err
		}
		schema = ds.Schema
	}

	issues := issuesOf(cmd.flags.Config.ValidateDeep(schema))

	out := c.Root().Writer
	if cmd.format == "json" {
		result := struct {
			Valid  bool              `json:"valid"`
			Issues []validationIssue `json:"issues,omitempty"`
		}{Valid: len(issues) == 0, Issues: issues}
		if err := iojson.WriteWith(out, os.Stderr, result); err != nil {
			return err
		}
	} else {
		printIssues(out, cmd.flags.ConfigPath, issues)
	}

	if len(issues) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func issuesOf(err error) []validationIssue {
	if err == nil {
		return nil
	}
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}
	issues := make([]validationIssue, len(fieldErrs))
	for i, fe := range fieldErrs {
		issues[i] = validationIssue{Field: fe.Field, Message: fe.Err.Error()}
	}
	return issues
}

func printIssues(w io.Writer, path string, issues []validationIssue) {
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render("✓ "+path+" is valid"))
		return
	}

	_, _ = fmt.Fprintln(w, styles.StatusErrorStyle.Render(fmt.Sprintf("✗ %d error(s) in %s", len(issues), path)))
	for _, is := range issues {
		if is.Field == "" {
			_, _ = fmt.Fprintf(w, "  %s\n", is.Message)
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s: %s\n", styles.TableHeaderStyle.Render(is.Field), is.Message)
	}
}
