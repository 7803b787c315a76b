package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns a sub-logger of the global logger tagged cmp=name. It is a
// pointer so level methods can be chained on the call directly.
func Component(name string) *zerolog.Logger {
	l := log.With().Str("cmp", name).Logger()
	return &l
}
