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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string              { return "help" }
func (c *HelpCmd) Aliases() []string         { return nil }
func (c *HelpCmd) Synopsis() string          { return "Print usage" }
func (c *HelpCmd) Usage() string             { return "todocli help" }
func (c *HelpCmd) Screen() routeguard.Screen { return routeguard.ScreenLogin }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todocli                                          List all tasks
  todocli list [common flags] [--open]             List tasks (--open hides completed)
  todocli show [common flags] <ref>                Show one task
  todocli add [common flags] --content <text> [--due <date>] <title...>
  todocli done [common flags] <ref>                Mark a task completed
  todocli undone [common flags] <ref>              Mark a task open again
  todocli edit [common flags] [--title <text>] [--content <text>] [--due <date>] <ref>
  todocli rm [common flags] <ref>                  Delete a task
  todocli login [common flags] <email> <password>
  todocli register [common flags] <email> <password>
  todocli logout [common flags]
  todocli status
  todocli help
  todocli version

A <ref> is a task number from the most recent list, or a task id.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
