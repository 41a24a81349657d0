package cli

import (
	"context"
	"flag"
	"fmt"
)

type helpCmd struct {
	registry *Registry
}

func (c *helpCmd) Name() string                 { return "help" }
func (c *helpCmd) Synopsis() string             { return "Show this help" }
func (c *helpCmd) Usage() string                { return "planner help" }
func (c *helpCmd) NeedsAuth() bool              { return false }
func (c *helpCmd) RegisterFlags(*flag.FlagSet) {}

func (c *helpCmd) Run(ctx context.Context, env *Env, args []string) error {
	fmt.Fprintln(env.Out, "Usage: planner COMMAND [flags] [args]")
	fmt.Fprintln(env.Out)
	for _, cmd := range c.registry.All() {
		fmt.Fprintf(env.Out, "  %-10s %s\n", cmd.Name(), cmd.Synopsis())
	}
	fmt.Fprintln(env.Out)
	fmt.Fprintln(env.Out, "Dates are YYYY-MM-DD, date-times YYYY-MM-DDTHH:MM. Flags go before arguments.")
	return nil
}
