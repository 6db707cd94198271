// Package cli parses arguments and dispatches commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"todocli/internal/backend/todoapi"
	"todocli/internal/commands"
	"todocli/internal/config"
	"todocli/internal/credstore"
	"todocli/internal/exitcode"
	"todocli/internal/routeguard"
	"todocli/internal/service"
	"todocli/internal/session"
)

// ServiceFactory creates a Service for a restored session.
// Used to inject the backend during dispatch (tests pass a FakeService).
type ServiceFactory func(ctx context.Context, cfg *config.Config, sess *session.Manager, log zerolog.Logger) (service.Service, error)

// DefaultFactory builds the HTTP backend against the configured API URL.
func DefaultFactory(ctx context.Context, cfg *config.Config, sess *session.Manager, log zerolog.Logger) (service.Service, error) {
	return todoapi.New(cfg.APIURL, cfg.HTTPTimeout, sess, log), nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and
// service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" with no args
	if len(args) == 0 {
		cmd, _ := d.registry.Find("list")
		return d.dispatchCommand(ctx, cmd, nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command first
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // errors are reported below

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return reportFlagError(errOut, err)
	}

	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	log := newLogger(errOut, cfg.Debug)

	// Session restore happens before anything else so the route guard's
	// first decision sees the persisted state.
	store := credstore.NewFileStore(cfg.Dir, log)
	sess := session.NewManager(store, log)
	guard := routeguard.New(routeguard.NavigatorFunc(func(to routeguard.Screen) {
		log.Debug().Str("screen", string(to)).Msg("forced navigation")
	}), cmd.Screen(), log)
	sess.Subscribe(guard.OnSessionChanged)

	if err := sess.Restore(); err != nil {
		// Fail closed: a broken credential store means logged out.
		log.Warn().Err(err).Msg("session restore failed")
	}

	// The guard has redirected off any authenticated-only screen by now.
	if cmd.Screen().RequiresAuth() && guard.Current() == routeguard.ScreenLogin {
		fmt.Fprintln(errOut, "error: not logged in (run: todocli login)")
		return exitcode.AuthError
	}

	svc, err := d.factory(ctx, cfg, sess, log)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	env := &commands.Env{
		Cfg:     cfg,
		Session: sess,
		Guard:   guard,
		Svc:     svc,
		Log:     log,
	}
	return cmd.Run(ctx, env, positionalArgs, out, errOut)
}

// reportFlagError translates flag package errors into the CLI's error
// wording.
func reportFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		flagName := strings.TrimSpace(parts[len(parts)-1])
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
		return exitcode.UserError
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}

// newLogger builds the per-invocation logger. Debug mode writes console
// lines to stderr; otherwise logging is disabled to keep output clean for
// scripting.
func newLogger(errOut io.Writer, debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	writer := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = errOut
	})
	return zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
