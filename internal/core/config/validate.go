package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/vgrid/internal/core/columns"
	"github.com/colonyops/vgrid/internal/core/styles"
)

// Validate checks that the configuration is structurally valid. Presets are
// checked against a dataset separately with ValidatePreset.
func (c *Config) Validate() error {
	return reachable(criterio.ValidateStruct(
		criterio.Run("theme", c.Theme, knownTheme),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		c.validateLayout(),
		c.validateKeys(),
		c.validatePresetShapes(),
	))
}

// ValidateDeep runs Validate and, when a schema is given, checks every preset
// against it.
func (c *Config) ValidateDeep(schema *columns.Schema) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if schema == nil {
		return nil
	}

	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make([]error, 0, len(names))
	for _, name := range names {
		errs = append(errs, c.ValidatePreset(name, schema))
	}
	return reachable(criterio.ValidateStruct(errs...))
}

// fieldErrors is criterio.FieldErrors with every field's cause exposed to
// errors.Is, so sentinels like ErrUnknownTheme survive validation.
type fieldErrors struct {
	criterio.FieldErrors
}

func (e fieldErrors) Unwrap() []error {
	errs := make([]error, 0, len(e.FieldErrors)+1)
	errs = append(errs, e.FieldErrors)
	for _, fe := range e.FieldErrors {
		errs = append(errs, fe)
	}
	return errs
}

func reachable(err error) error {
	var fe criterio.FieldErrors
	if errors.As(err, &fe) {
		return fieldErrors{FieldErrors: fe}
	}
	return err
}

// ValidatePreset checks that every column the named preset refers to exists
// in schema and that its query builds.
func (c *Config) ValidatePreset(name string, schema *columns.Schema) error {
	p, ok := c.Presets[name]
	if !ok && name != DefaultPreset {
		return criterio.NewFieldErrors("presets", fmt.Errorf("preset %q not found", name))
	}

	prefix := fmt.Sprintf("presets.%s", name)
	var errs criterio.FieldErrorsBuilder

	for i, id := range p.Columns {
		if !hasColumn(schema, id) {
			errs = errs.Append(fmt.Sprintf("%s.columns[%d]", prefix, i), fmt.Errorf("unknown column %q", id))
		}
	}

	for i, id := range p.Pins {
		switch {
		case !hasColumn(schema, id):
			errs = errs.Append(fmt.Sprintf("%s.pins[%d]", prefix, i), fmt.Errorf("unknown column %q", id))
		case len(p.Columns) > 0 && !slices.Contains(p.Columns, id):
			errs = errs.Append(fmt.Sprintf("%s.pins[%d]", prefix, i), fmt.Errorf("column %q is not displayed", id))
		}
	}

	for id := range p.Widths {
		if !hasColumn(schema, id) {
			errs = errs.Append(fmt.Sprintf("%s.widths.%s", prefix, id), fmt.Errorf("unknown column %q", id))
		}
	}

	if _, err := p.Query(schema); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = errs.Append(prefix+"."+fe.Field, fe.Err)
			}
		} else {
			errs = errs.Append(prefix, err)
		}
	}

	return errs.ToError()
}

func (c *Config) validateLayout() error {
	var errs criterio.FieldErrorsBuilder
	if c.Layout.CellWidth < 1 {
		errs = errs.Append("layout.cell_width", fmt.Errorf("must be at least 1"))
	}
	if c.Layout.CellHeight < 1 {
		errs = errs.Append("layout.cell_height", fmt.Errorf("must be at least 1"))
	}
	if c.Layout.HeaderHeight < 1 {
		errs = errs.Append("layout.header_height", fmt.Errorf("must be at least 1"))
	}
	if c.Layout.Overscan < 0 {
		errs = errs.Append("layout.overscan", fmt.Errorf("cannot be negative"))
	}
	if c.Layout.MaxScrollSize < 0 {
		errs = errs.Append("layout.max_scroll_size", fmt.Errorf("cannot be negative"))
	}
	if c.Selection.Throttle < 0 {
		errs = errs.Append("selection.throttle", fmt.Errorf("cannot be negative"))
	}
	return errs.ToError()
}

func (c *Config) validateKeys() error {
	actions := make([]string, 0, len(c.Keys))
	for action := range c.Keys {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	var errs criterio.FieldErrorsBuilder
	owner := make(map[string]string)
	for _, action := range actions {
		field := "keys." + action
		if !isValidAction(action) {
			errs = errs.Append(field, fmt.Errorf("invalid action %q", action))
			continue
		}
		if len(c.Keys[action]) == 0 {
			errs = errs.Append(field, fmt.Errorf("at least one key is required"))
			continue
		}
		for _, k := range c.Keys[action] {
			if prev, ok := owner[k]; ok {
				errs = errs.Append(field, fmt.Errorf("key %q is already bound to %s", k, prev))
				continue
			}
			owner[k] = action
		}
	}
	return errs.ToError()
}

// validatePresetShapes checks what can be checked without a schema.
func (c *Config) validatePresetShapes() error {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs criterio.FieldErrorsBuilder
	for _, name := range names {
		p := c.Presets[name]
		for id, w := range p.Widths {
			if w < 1 {
				errs = errs.Append(fmt.Sprintf("presets.%s.widths.%s", name, id), fmt.Errorf("must be at least 1"))
			}
		}
	}
	return errs.ToError()
}

func knownTheme(name string) error {
	if slices.Contains(styles.ThemeNames(), name) {
		return nil
	}
	return fmt.Errorf("%w: %q (available: %v)", ErrUnknownTheme, name, styles.ThemeNames())
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func hasColumn(schema *columns.Schema, id string) bool {
	_, ok := schema.Column(id)
	return ok
}
