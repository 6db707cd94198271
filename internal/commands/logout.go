package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/exitcode"
	"todocli/internal/routeguard"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string              { return "logout" }
func (c *LogoutCmd) Aliases() []string         { return nil }
func (c *LogoutCmd) Synopsis() string          { return "Remove the stored session token" }
func (c *LogoutCmd) Usage() string             { return "todocli logout [common flags]" }
func (c *LogoutCmd) Screen() routeguard.Screen { return routeguard.ScreenLogin }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if !env.Session.Authenticated() {
		if !env.Cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	if err := env.Session.Logout(); err != nil {
		fmt.Fprintf(errOut, "error: failed to remove token: %v\n", err)
		return exitcode.AuthError
	}

	if !env.Cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
