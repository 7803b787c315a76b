package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies the dataset and preset recorded in an event's context
// onto the event.
type ContextHook struct{}

// Run implements zerolog.Hook.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}
	if s := Dataset(ctx); s != "" {
		e.Str("dataset", s)
	}
	if s := Preset(ctx); s != "" {
		e.Str("preset", s)
	}
}
