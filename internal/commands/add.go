package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"todocli/internal/exitcode"
	"todocli/internal/routeguard"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	content string
	due     string
}

// SetContent sets the task content (for testing).
func (c *AddCmd) SetContent(content string) { c.content = content }

// SetDue sets the due date string (for testing).
func (c *AddCmd) SetDue(due string) { c.due = due }

func (c *AddCmd) Name() string              { return "add" }
func (c *AddCmd) Aliases() []string         { return []string{"create"} }
func (c *AddCmd) Synopsis() string          { return "Create a task" }
func (c *AddCmd) Usage() string             { return "todocli add --content <text> [--due <date>] <title...>" }
func (c *AddCmd) Screen() routeguard.Screen { return routeguard.ScreenTasks }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.content, "content", "", "")
	fs.StringVar(&c.content, "c", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")

	var due time.Time
	if c.due != "" {
		parsed, err := parseDue(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid due date: %s\n", c.due)
			return exitcode.UserError
		}
		due = parsed
	}

	// Title/content validation happens in the client, before any network
	// call; an unset due date defaults to now at create time.
	task, err := env.Svc.CreateTask(ctx, title, c.content, due)
	if err != nil {
		return fail(errOut, err)
	}

	env.Log.Debug().Str("id", task.ID).Msg("task created")
	if !env.Cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// parseDue accepts a date or full timestamp.
func parseDue(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
