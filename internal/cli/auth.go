package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"

	"taskplanner/internal/core/domain"
)

type registerCmd struct {
	password string
}

func (c *registerCmd) Name() string     { return "register" }
func (c *registerCmd) Synopsis() string { return "Create an account" }
func (c *registerCmd) Usage() string    { return "planner register [-password PASSWORD] USERNAME EMAIL" }
func (c *registerCmd) NeedsAuth() bool  { return false }

func (c *registerCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *registerCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) != 2 {
		return usagef("username and email required")
	}
	password, err := readPassword(env, c.password)
	if err != nil {
		return err
	}

	user, err := env.Planner.Register(ctx, domain.RegisterInput{
		Username: args[0],
		Email:    args[1],
		Password: password,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "registered %s <%s>, now run: planner login %s\n", user.Username, user.Email, user.Email)
	return nil
}

type loginCmd struct {
	password string
}

func (c *loginCmd) Name() string     { return "login" }
func (c *loginCmd) Synopsis() string { return "Sign in" }
func (c *loginCmd) Usage() string    { return "planner login [-password PASSWORD] EMAIL" }
func (c *loginCmd) NeedsAuth() bool  { return false }

func (c *loginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *loginCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) != 1 {
		return usagef("email required")
	}
	password, err := readPassword(env, c.password)
	if err != nil {
		return err
	}

	user, err := env.Planner.Login(ctx, args[0], password)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "signed in as %s\n", user.Email)
	return nil
}

type logoutCmd struct{}

func (c *logoutCmd) Name() string                 { return "logout" }
func (c *logoutCmd) Synopsis() string             { return "Sign out" }
func (c *logoutCmd) Usage() string                { return "planner logout" }
func (c *logoutCmd) NeedsAuth() bool              { return false }
func (c *logoutCmd) RegisterFlags(*flag.FlagSet) {}

func (c *logoutCmd) Run(ctx context.Context, env *Env, args []string) error {
	if err := env.Planner.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(env.Out, "signed out")
	return nil
}

// readPassword falls back to the first line of stdin.
func readPassword(env *Env, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env.In == nil {
		return "", usagef("password required")
	}
	line, _ := bufio.NewReader(env.In).ReadString('\n')
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", usagef("password required")
	}
	return password, nil
}
