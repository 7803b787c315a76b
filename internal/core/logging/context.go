package logging

import "context"

type contextKey string

const (
	datasetKey contextKey = "dataset"
	presetKey  contextKey = "preset"
)

// WithDataset records the dataset being viewed in the context.
func WithDataset(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, datasetKey, source)
}

// WithPreset records the active preset in the context.
func WithPreset(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, presetKey, name)
}

// Dataset returns the dataset source, or "" when unset.
func Dataset(ctx context.Context) string {
	s, _ := ctx.Value(datasetKey).(string)
	return s
}

// Preset returns the preset name, or "" when unset.
func Preset(ctx context.Context) string {
	s, _ := ctx.Value(presetKey).(string)
	return s
}
