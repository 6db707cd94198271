// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"todocli/internal/config"
	"todocli/internal/routeguard"
	"todocli/internal/service"
	"todocli/internal/session"
)

// Env carries the shared collaborators a command runs against. Svc is nil
// for commands whose screen does not require authentication, unless the
// dispatcher built one anyway (login and register need the backend too).
type Env struct {
	Cfg     *config.Config
	Session *session.Manager
	Guard   *routeguard.Guard
	Svc     service.Service
	Log     zerolog.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Screen returns the screen this command belongs to. The route guard
	// gates commands on authenticated-only screens.
	Screen() routeguard.Screen

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command and returns an exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
