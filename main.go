package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/colonyops/vgrid/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() falls back to
	// runtime/debug.BuildInfo.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, rev, when := version, commit, date
	if info, ok := debug.ReadBuildInfo(); ok && v == "dev" {
		v, rev, when = fromBuildInfo(info, v, rev, when)
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	return fmt.Sprintf("%s (%s) %s", v, rev, when)
}

func fromBuildInfo(info *debug.BuildInfo, v, rev, when string) (string, string, string) {
	if mv := info.Main.Version; mv != "" && mv != "(devel)" {
		v = mv
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			when = s.Value
		}
	}
	return v, rev, when
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.NewApp(&commands.Flags{}, build()).Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
