package commands

import (
	"errors"
	"fmt"
	"io"

	"todocli/internal/exitcode"
	"todocli/internal/service"
)

// fail prints a single error line for err and returns the matching exit
// code. Every failure is surfaced exactly once; nothing is swallowed.
func fail(errOut io.Writer, err error) int {
	var validation *service.ValidationError
	var transport *service.TransportError
	var server *service.ServerError

	switch {
	case errors.As(err, &validation):
		fmt.Fprintf(errOut, "error: %s\n", validation)
		return exitcode.UserError
	case errors.Is(err, service.ErrNotAuthenticated):
		fmt.Fprintln(errOut, "error: not authenticated (run: todocli login)")
		return exitcode.AuthError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintln(errOut, "error: task not found")
		return exitcode.UserError
	case errors.As(err, &transport):
		fmt.Fprintf(errOut, "error: %s\n", transport)
		return exitcode.BackendError
	case errors.As(err, &server):
		fmt.Fprintf(errOut, "error: %s\n", server)
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
}
