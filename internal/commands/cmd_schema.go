package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

type SchemaCmd struct {
	flags  *Flags
	source sourceFlags
}

// NewSchemaCmd creates a new schema command
func NewSchemaCmd(flags *Flags) *SchemaCmd {
	return &SchemaCmd{flags: flags}
}

// Register adds the schema command to the application
func (cmd *SchemaCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "schema",
		Usage:     "Print the column schema of a dataset",
		UsageText: "vgrid schema [options] [file] > schema.yaml",
		Description: `Prints every column with its declared or inferred kind as YAML. The output
can be edited and passed back with --schema to pin kinds, labels, widths and
formatting.`,
		Flags:  cmd.source.flags(),
		Action: cmd.run,
	})

	return app
}

func (cmd *SchemaCmd) run(_ context.Context, c *cli.Command) error {
	ds, err := cmd.source.load(c)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(c.Root().Writer)
	enc.SetIndent(2)
	if err := enc.Encode(ds.Schema.Columns()); err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	return enc.Close()
}
