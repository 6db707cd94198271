package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todocli/internal/service"
)

// ErrTaskRefRequired is returned when no task reference was supplied.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef extracts a task reference from positional args. A ref is
// either a 1-based position from a fresh list fetch ("3") or a raw
// server-assigned identifier.
func ParseTaskRef(args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrTaskRefRequired
	}
	ref := strings.TrimSpace(strings.Join(args, " "))
	if ref == "" {
		return "", ErrTaskRefRequired
	}
	return ref, nil
}

// ResolveTask turns a reference into a task. Numeric refs index into a
// fresh ListTasks fetch; mutations never return the collection, so the
// position is always resolved against current server state. Anything
// else is treated as an opaque identifier.
func ResolveTask(ctx context.Context, svc service.Service, ref string) (service.Task, error) {
	if num, err := strconv.Atoi(ref); err == nil {
		if num < 1 {
			return service.Task{}, fmt.Errorf("task number out of range: %d", num)
		}
		tasks, err := svc.ListTasks(ctx)
		if err != nil {
			return service.Task{}, err
		}
		if num > len(tasks) {
			return service.Task{}, fmt.Errorf("task number out of range: %d", num)
		}
		return tasks[num-1], nil
	}
	return svc.GetTask(ctx, ref)
}
