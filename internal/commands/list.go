package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/exitcode"
	"todocli/internal/output"
	"todocli/internal/routeguard"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command, the default when todocli runs with
// no arguments. Tasks are always fetched fresh from the service; there is
// no local cache.
type ListCmd struct {
	openOnly bool
}

func (c *ListCmd) Name() string              { return "list" }
func (c *ListCmd) Aliases() []string         { return []string{"ls"} }
func (c *ListCmd) Synopsis() string          { return "List tasks" }
func (c *ListCmd) Usage() string             { return "todocli list [--open]" }
func (c *ListCmd) Screen() routeguard.Screen { return routeguard.ScreenTasks }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.openOnly, "open", false, "")
	fs.BoolVar(&c.openOnly, "o", false, "")
}

// SetOpenOnly hides completed tasks (for testing).
func (c *ListCmd) SetOpenOnly(open bool) { c.openOnly = open }

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	tasks, err := env.Svc.ListTasks(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	shown := 0
	for _, task := range tasks {
		if c.openOnly && task.Completed {
			continue
		}
		shown++
		output.FormatTask(out, shown, task)
	}

	if shown == 0 && !env.Cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
