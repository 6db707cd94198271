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
	Register(&StatusCmd{})
}

// StatusCmd implements the status command. It reports session state
// without making a network call.
type StatusCmd struct{}

func (c *StatusCmd) Name() string              { return "status" }
func (c *StatusCmd) Aliases() []string         { return []string{"whoami"} }
func (c *StatusCmd) Synopsis() string          { return "Show session state" }
func (c *StatusCmd) Usage() string             { return "todocli status" }
func (c *StatusCmd) Screen() routeguard.Screen { return routeguard.ScreenLogin }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if env.Session.Authenticated() {
		fmt.Fprintln(out, "logged in")
	} else {
		fmt.Fprintln(out, "not logged in")
	}
	fmt.Fprintf(out, "service: %s\n", env.Cfg.APIURL)
	return exitcode.Success
}
