package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todocli/internal/exitcode"
	"todocli/internal/routeguard"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string              { return "rm" }
func (c *RmCmd) Aliases() []string         { return []string{"delete"} }
func (c *RmCmd) Synopsis() string          { return "Delete a task" }
func (c *RmCmd) Usage() string             { return "todocli rm <ref>" }
func (c *RmCmd) Screen() routeguard.Screen { return routeguard.ScreenTasks }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
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

	if err := env.Svc.DeleteTask(ctx, task.ID); err != nil {
		return fail(errOut, err)
	}

	if !env.Cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
