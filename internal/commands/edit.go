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
	Register(&EditCmd{})
}

// EditCmd implements the edit command (the task edit screen). Only the
// flags the user supplies are sent; everything else is left unchanged
// server-side, including the due date.
type EditCmd struct {
	title   string
	content string
	due     string

	titleSet   bool
	contentSet bool
}

func (c *EditCmd) Name() string              { return "edit" }
func (c *EditCmd) Aliases() []string         { return nil }
func (c *EditCmd) Synopsis() string          { return "Edit a task" }
func (c *EditCmd) Usage() string             { return "todocli edit [--title <text>] [--content <text>] [--due <date>] <ref>" }
func (c *EditCmd) Screen() routeguard.Screen { return routeguard.ScreenTask }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("title", "", func(s string) error {
		c.title, c.titleSet = s, true
		return nil
	})
	fs.Func("content", "", func(s string) error {
		c.content, c.contentSet = s, true
		return nil
	})
	fs.StringVar(&c.due, "due", "", "")
}

// SetFields configures the patch fields (for testing).
func (c *EditCmd) SetFields(title, content, due string) {
	if title != "" {
		c.title, c.titleSet = title, true
	}
	if content != "" {
		c.content, c.contentSet = content, true
	}
	c.due = due
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}

	var patch service.TaskPatch
	if c.titleSet {
		title := c.title
		patch.Title = &title
	}
	if c.contentSet {
		content := c.content
		patch.Content = &content
	}
	if c.due != "" {
		due, err := parseDue(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid due date: %s\n", c.due)
			return exitcode.UserError
		}
		patch.EndDate = &due
	}
	if patch.IsEmpty() {
		fmt.Fprintln(errOut, "error: nothing to update")
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

	if err := env.Svc.UpdateTask(ctx, task.ID, patch); err != nil {
		return fail(errOut, err)
	}

	if !env.Cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
