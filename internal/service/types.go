// Package service defines the backend-agnostic interface for the remote
// to-do service.
package service

import "time"

// Task represents a single to-do item as the remote service stores it.
// The identifier is server-assigned and opaque.
type Task struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	EndDate   time.Time `json:"endDate"`
}

// TaskPatch describes a partial update. Nil fields are left unchanged
// server-side.
type TaskPatch struct {
	Title     *string    `json:"title,omitempty"`
	Content   *string    `json:"content,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Completed == nil && p.EndDate == nil
}
