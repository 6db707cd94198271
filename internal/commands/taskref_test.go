package commands_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"todocli/internal/commands"
	"todocli/internal/testutil"
)

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{"number", []string{"3"}, "3", nil},
		{"id", []string{"6759f0a1c2"}, "6759f0a1c2", nil},
		{"joined words", []string{"id", "with", "spaces"}, "id with spaces", nil},
		{"trimmed", []string{"  3  "}, "3", nil},
		{"no args", nil, "", commands.ErrTaskRefRequired},
		{"blank", []string{"   "}, "", commands.ErrTaskRefRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := commands.ParseTaskRef(tt.args)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected ref %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolveTask_ByNumber(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("first", "a", false)
	second := svc.AddTask("second", "b", false)
	ctx := context.Background()

	task, err := commands.ResolveTask(ctx, svc, "2")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if task.ID != second {
		t.Errorf("expected task %s, got %s", second, task.ID)
	}
}

func TestResolveTask_ByID(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.AddTask("first", "a", false)
	ctx := context.Background()

	task, err := commands.ResolveTask(ctx, svc, id)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if task.Title != "first" {
		t.Errorf("expected title 'first', got %q", task.Title)
	}
}

func TestResolveTask_OutOfRange(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("only", "a", false)
	ctx := context.Background()

	for _, ref := range []string{"0", "-1", "2"} {
		_, err := commands.ResolveTask(ctx, svc, ref)
		if err == nil || !strings.Contains(err.Error(), "out of range") {
			t.Errorf("ref %q: expected out of range error, got %v", ref, err)
		}
	}
}

func TestResolveTask_NumberResolvesAgainstFreshList(t *testing.T) {
	svc := testutil.NewFakeService()
	first := svc.AddTask("first", "a", false)
	second := svc.AddTask("second", "b", false)
	ctx := context.Background()

	if err := svc.DeleteTask(ctx, first); err != nil {
		t.Fatalf("delete: %v", err)
	}

	task, err := commands.ResolveTask(ctx, svc, "1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if task.ID != second {
		t.Errorf("position 1 should now be %s, got %s", second, task.ID)
	}
}
