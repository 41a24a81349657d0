package cli

import (
	"context"
	"flag"
	"fmt"
	"sort"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the command name.
	Name() string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a signed-in user.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with the positional arguments left after flag parsing.
	Run(ctx context.Context, env *Env, args []string) error
}

// Registry holds registered commands.
type Registry struct {
	cmds map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]Command)}
}

// DefaultRegistry returns a registry holding every planner command.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, c := range []Command{
		&registerCmd{}, &loginCmd{}, &logoutCmd{},
		&dayCmd{}, &monthCmd{},
		&addCmd{}, &statusCmd{}, &editCmd{}, &rmCmd{},
		&remindersCmd{}, &dismissCmd{}, &watchCmd{},
	} {
		r.MustRegister(c)
	}
	r.MustRegister(&helpCmd{registry: r})
	return r
}

// Register adds a command. Returns an error if the name is already registered.
func (r *Registry) Register(c Command) error {
	if _, exists := r.cmds[c.Name()]; exists {
		return fmt.Errorf("command already registered: %s", c.Name())
	}
	r.cmds[c.Name()] = c
	return nil
}

func (r *Registry) MustRegister(c Command) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

func (r *Registry) Find(name string) (Command, bool) {
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns all commands sorted by name.
func (r *Registry) All() []Command {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]Command, len(names))
	for i, name := range names {
		result[i] = r.cmds[name]
	}
	return result
}
