package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todocli/internal/exitcode"
	"todocli/internal/routeguard"
	"todocli/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string              { return "done" }
func (c *DoneCmd) Aliases() []string         { return nil }
func (c *DoneCmd) Synopsis() string          { return "Mark a task completed" }
func (c *DoneCmd) Usage() string             { return "todocli done <ref>" }
func (c *DoneCmd) Screen() routeguard.Screen { return routeguard.ScreenTasks }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, env, args, out, errOut, true)
}

// UndoneCmd implements the undone command.
type UndoneCmd struct{}

func (c *UndoneCmd) Name() string              { return "undone" }
func (c *UndoneCmd) Aliases() []string         { return []string{"undo"} }
func (c *UndoneCmd) Synopsis() string          { return "Mark a task open again" }
func (c *UndoneCmd) Usage() string             { return "todocli undone <ref>" }
func (c *UndoneCmd) Screen() routeguard.Screen { return routeguard.ScreenTasks }

func (c *UndoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, env, args, out, errOut, false)
}

// runToggle flips only the completion flag; title, content and due date
// stay untouched server-side.
func runToggle(ctx context.Context, env *Env, args []string, out, errOut io.Writer, completed bool) int {
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

	patch := service.TaskPatch{Completed: &completed}
	if err := env.Svc.UpdateTask(ctx, task.ID, patch); err != nil {
		return fail(errOut, err)
	}

	if !env.Cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
