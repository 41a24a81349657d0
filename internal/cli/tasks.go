package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"taskplanner/internal/app/planner"
	"taskplanner/internal/core/domain"
)

type addCmd struct {
	description string
	date        string
	repeat      string
	due         string
	remind      string
	priority    string
	status      string
}

func (c *addCmd) Name() string     { return "add" }
func (c *addCmd) Synopsis() string { return "Create a task" }
func (c *addCmd) Usage() string {
	return "planner add [-date DATE] [-repeat MON,SAT] [-due DATETIME] [-remind DATETIME] [-priority P] [-status S] [-desc TEXT] TITLE..."
}
func (c *addCmd) NeedsAuth() bool { return true }

func (c *addCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.repeat, "repeat", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.remind, "remind", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.status, "status", "", "")
}

func (c *addCmd) Run(ctx context.Context, env *Env, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return usagef("title required")
	}

	input := domain.CreateTaskInput{Title: title}
	var err error
	if c.description != "" {
		input.Description = &c.description
	}
	if input.WorkDate, err = parseOptionalDate(c.date); err != nil {
		return err
	}
	if input.RepeatDays, err = parseRepeat(c.repeat); err != nil {
		return err
	}
	if input.DueDate, err = parseOptionalDateTime(c.due); err != nil {
		return err
	}
	if input.ReminderTime, err = parseOptionalDateTime(c.remind); err != nil {
		return err
	}
	if c.priority != "" {
		if input.Priority, err = parsePriority(c.priority); err != nil {
			return err
		}
	}
	if c.status != "" {
		if input.Status, err = parseStatus(c.status); err != nil {
			return err
		}
	}

	task, err := env.Planner.CreateTask(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "created %s\n", formatTask(task))
	return nil
}

type statusCmd struct{}

func (c *statusCmd) Name() string                 { return "status" }
func (c *statusCmd) Synopsis() string             { return "Move a task to another column" }
func (c *statusCmd) Usage() string                { return "planner status ID todo|progress|done" }
func (c *statusCmd) NeedsAuth() bool              { return true }
func (c *statusCmd) RegisterFlags(*flag.FlagSet) {}

func (c *statusCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) != 2 {
		return usagef("task id and status required")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	status, err := parseStatus(args[1])
	if err != nil {
		return err
	}

	if _, err := env.Planner.Refresh(ctx); err != nil {
		return err
	}
	task, err := env.Planner.ChangeStatus(ctx, id, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "updated %s\n", formatTask(task))
	return nil
}

// editCmd clears a field when its flag is given an empty value.
type editCmd struct {
	title       optString
	description optString
	date        optString
	repeat      optString
	due         optString
	remind      optString
	priority    optString
}

func (c *editCmd) Name() string     { return "edit" }
func (c *editCmd) Synopsis() string { return "Edit task fields" }
func (c *editCmd) Usage() string {
	return `planner edit [-title T] [-desc TEXT] [-date DATE] [-repeat DAYS] [-due DATETIME] [-remind DATETIME] [-priority P] ID (pass "" to clear)`
}
func (c *editCmd) NeedsAuth() bool { return true }

func (c *editCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = editCmd{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.description, "desc", "")
	fs.Var(&c.date, "date", "")
	fs.Var(&c.repeat, "repeat", "")
	fs.Var(&c.due, "due", "")
	fs.Var(&c.remind, "remind", "")
	fs.Var(&c.priority, "priority", "")
}

func (c *editCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) != 1 {
		return usagef("task id required")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	input, err := c.input()
	if err != nil {
		return err
	}
	if input.Empty() {
		return usagef("nothing to change")
	}

	if _, err := env.Planner.Refresh(ctx); err != nil {
		return err
	}
	task, err := env.Planner.UpdateTask(ctx, id, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "updated %s\n", formatTask(task))
	return nil
}

func (c *editCmd) input() (domain.UpdateTaskInput, error) {
	var input domain.UpdateTaskInput
	var err error

	if c.title.set {
		title := c.title.value
		input.Title = &title
	}
	if c.description.set {
		input.DescriptionSet = true
		if c.description.value != "" {
			description := c.description.value
			input.Description = &description
		}
	}
	if c.date.set {
		input.WorkDateSet = true
		if input.WorkDate, err = parseOptionalDate(c.date.value); err != nil {
			return input, err
		}
	}
	if c.repeat.set {
		days, err := parseRepeat(c.repeat.value)
		if err != nil {
			return input, err
		}
		input.RepeatDays = &days
	}
	if c.due.set {
		input.DueDateSet = true
		if input.DueDate, err = parseOptionalDateTime(c.due.value); err != nil {
			return input, err
		}
	}
	if c.remind.set {
		input.ReminderTimeSet = true
		if input.ReminderTime, err = parseOptionalDateTime(c.remind.value); err != nil {
			return input, err
		}
	}
	if c.priority.set {
		priority, err := parsePriority(c.priority.value)
		if err != nil {
			return input, err
		}
		input.Priority = &priority
	}
	return input, nil
}

type rmCmd struct {
	yes bool
}

func (c *rmCmd) Name() string     { return "rm" }
func (c *rmCmd) Synopsis() string { return "Delete a task" }
func (c *rmCmd) Usage() string    { return "planner rm -yes ID" }
func (c *rmCmd) NeedsAuth() bool  { return true }

func (c *rmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
}

func (c *rmCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) != 1 {
		return usagef("task id required")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := env.Planner.DeleteTask(ctx, id, c.yes); err != nil {
		if errors.Is(err, planner.ErrDeleteNotConfirmed) {
			return usagef("refusing to delete #%d without -yes", id)
		}
		return err
	}
	fmt.Fprintf(env.Out, "deleted #%d\n", id)
	return nil
}
