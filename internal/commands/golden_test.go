package commands_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"todocli/internal/commands"
	"todocli/internal/exitcode"
	"todocli/internal/service"
	"todocli/internal/testutil"
)

func TestListCommand_Golden(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", "two liters", false)
	shipID := svc.AddTask("Ship release", "tag and push", true)
	svc.AddTask("", "", false)

	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := svc.UpdateTask(context.Background(), shipID, service.TaskPatch{EndDate: &due}); err != nil {
		t.Fatalf("seed due date: %v", err)
	}

	env := newEnv(t, svc, false)
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, env, nil)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	testutil.GoldenString(t, "list_tasks", stdout)
}

func TestShowCommand_Golden(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", "two liters\nbefore friday", false)
	env := newEnv(t, svc, false)

	var out, errOut bytes.Buffer
	code := (&commands.ShowCmd{}).Run(context.Background(), env, []string{"1"}, &out, &errOut)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errOut.String())
	}
	testutil.GoldenString(t, "show_task", out.String())
}
