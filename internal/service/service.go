// Package service defines the backend-agnostic interface for the remote
// to-do service.
package service

import (
	"context"
	"time"
)

// Service defines the operations commands may perform against the to-do
// backend. All network access goes through this interface; commands never
// build HTTP requests directly.
type Service interface {
	// Login exchanges credentials for a session token.
	Login(ctx context.Context, email, password string) (string, error)

	// Register creates an account and returns a session token.
	Register(ctx context.Context, email, password string) (string, error)

	// ListTasks returns all tasks belonging to the session's identity.
	// An empty result is an empty slice, not an error.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask fetches one task by its server-assigned identifier.
	GetTask(ctx context.Context, id string) (Task, error)

	// CreateTask creates a task and returns it with the server-assigned
	// identifier. A zero due date defaults to the current time.
	CreateTask(ctx context.Context, title, content string, due time.Time) (Task, error)

	// UpdateTask applies a partial update. Nil patch fields are left
	// unchanged server-side.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error
}
