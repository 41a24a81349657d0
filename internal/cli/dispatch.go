// Package cli parses planner command lines and runs them against a Planner.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskplanner/internal/adapter/client"
	"taskplanner/internal/app/planner"
	"taskplanner/internal/config"
	"taskplanner/internal/exitcode"
)

// ErrUsage marks bad command lines.
var ErrUsage = errors.New("usage")

type usageError struct {
	msg string
}

func (e usageError) Error() string        { return e.msg }
func (e usageError) Is(target error) bool { return target == ErrUsage }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// Env is what commands run against.
type Env struct {
	Planner *planner.Planner
	Config  *config.ClientConfig
	In      io.Reader
	Out     io.Writer
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *Registry
	env      Env
}

func NewDispatcher(registry *Registry, env Env) *Dispatcher {
	return &Dispatcher{registry: registry, env: env}
}

// Run parses arguments, dispatches to the command and returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		args = []string{"day"}
	}

	cmdName := args[0]
	if cmdName == "-h" || cmdName == "--help" {
		cmdName = "help"
	}
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintf(errOut, "error: %s\nusage: %s\n", err, cmd.Usage())
		return exitcode.UserError
	}

	env := d.env
	env.Out = out

	if cmd.NeedsAuth() {
		if err := env.Planner.Restore(ctx); err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.UserError
		}
		if !env.Planner.SignedIn() {
			fmt.Fprintln(errOut, "error: not logged in (run: planner login EMAIL)")
			return exitcode.UserError
		}
	}

	if err := cmd.Run(ctx, &env, fs.Args()); err != nil {
		code := ExitCode(err)
		fmt.Fprintf(errOut, "error: %s\n", message(err))
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(errOut, "usage: %s\n", cmd.Usage())
		}
		return code
	}
	return exitcode.Success
}

// ExitCode classifies err. A 4xx answer rejected the user's input; a 5xx answer or an
// unreachable API is a transport error.
func ExitCode(err error) int {
	if err == nil {
		return exitcode.Success
	}
	var transportErr *client.TransportError
	if errors.As(err, &transportErr) {
		if transportErr.ClientError() {
			return exitcode.UserError
		}
		return exitcode.TransportError
	}
	if errors.Is(err, client.ErrUnavailable) {
		return exitcode.TransportError
	}
	return exitcode.UserError
}

func message(err error) string {
	var transportErr *client.TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Message
	}
	return err.Error()
}
