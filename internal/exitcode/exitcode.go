// Package exitcode defines exit codes for the planner CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates bad arguments, a validation error or a missing session.
	UserError = 1

	// TransportError indicates the API answered with an error or could not be reached.
	TransportError = 2
)
