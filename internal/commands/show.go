package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todocli/internal/exitcode"
	"todocli/internal/output"
	"todocli/internal/routeguard"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command (the task detail screen).
type ShowCmd struct{}

func (c *ShowCmd) Name() string              { return "show" }
func (c *ShowCmd) Aliases() []string         { return []string{"get"} }
func (c *ShowCmd) Synopsis() string          { return "Show one task" }
func (c *ShowCmd) Usage() string             { return "todocli show <ref>" }
func (c *ShowCmd) Screen() routeguard.Screen { return routeguard.ScreenTask }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}

	task, err := ResolveTask(ctx, env.Svc, ref)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return fail(errOut, err)
	}

	output.FormatTaskDetail(out, task)
	return exitcode.Success
}
