// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"todocli/internal/service"
)

// DueDateFormat is the display format for due dates.
const DueDateFormat = "2006-01-02"

// FormatTask formats a task line for the list view.
// Format: "{N:>4}  [x] {TITLE}  (due {DATE})\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	title := normalizeText(task.Title)
	if task.EndDate.IsZero() {
		fmt.Fprintf(w, "%4d  %s %s\n", num, box, title)
		return
	}
	fmt.Fprintf(w, "%4d  %s %s  (due %s)\n", num, box, title, task.EndDate.Format(DueDateFormat))
}

// FormatTaskDetail formats the full task view for the show command.
func FormatTaskDetail(w io.Writer, task service.Task) {
	status := "open"
	if task.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "id:      %s\n", task.ID)
	fmt.Fprintf(w, "title:   %s\n", normalizeText(task.Title))
	fmt.Fprintf(w, "content: %s\n", normalizeText(task.Content))
	fmt.Fprintf(w, "status:  %s\n", status)
	if !task.EndDate.IsZero() {
		fmt.Fprintf(w, "due:     %s\n", task.EndDate.Format(time.RFC3339))
	}
}

// normalizeText normalizes task text for single-line display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
