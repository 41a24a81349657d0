package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskplanner/internal/core/domain"
)

type remindersCmd struct{}

func (c *remindersCmd) Name() string                 { return "reminders" }
func (c *remindersCmd) Synopsis() string             { return "List due reminders" }
func (c *remindersCmd) Usage() string                { return "planner reminders" }
func (c *remindersCmd) NeedsAuth() bool              { return true }
func (c *remindersCmd) RegisterFlags(*flag.FlagSet) {}

func (c *remindersCmd) Run(ctx context.Context, env *Env, args []string) error {
	if _, err := env.Planner.Refresh(ctx); err != nil {
		return err
	}
	due := env.Planner.DueReminders()
	if len(due) == 0 {
		fmt.Fprintln(env.Out, "no reminders due")
		return nil
	}
	printReminders(env, due)
	return nil
}

type dismissCmd struct{}

func (c *dismissCmd) Name() string                 { return "dismiss" }
func (c *dismissCmd) Synopsis() string             { return "Acknowledge a due reminder" }
func (c *dismissCmd) Usage() string                { return "planner dismiss ID" }
func (c *dismissCmd) NeedsAuth() bool              { return true }
func (c *dismissCmd) RegisterFlags(*flag.FlagSet) {}

func (c *dismissCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) != 1 {
		return usagef("task id required")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := env.Planner.Dismiss(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "dismissed #%d\n", id)
	return nil
}

type watchCmd struct {
	interval time.Duration
}

func (c *watchCmd) Name() string     { return "watch" }
func (c *watchCmd) Synopsis() string { return "Print reminders as they come due" }
func (c *watchCmd) Usage() string    { return "planner watch [-interval 1m]" }
func (c *watchCmd) NeedsAuth() bool  { return true }

func (c *watchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&c.interval, "interval", 0, "")
}

// Run blocks until ctx is cancelled. A reminder is printed once per run even if it stays
// due across ticks.
func (c *watchCmd) Run(ctx context.Context, env *Env, args []string) error {
	interval := c.interval
	if interval <= 0 && env.Config != nil {
		interval = env.Config.ReminderInterval
	}

	printed := map[uint64]struct{}{}
	err := env.Planner.WatchReminders(ctx, interval, func(now time.Time, due []domain.Task) {
		var fresh []domain.Task
		for _, task := range due {
			if _, ok := printed[task.ID]; !ok {
				printed[task.ID] = struct{}{}
				fresh = append(fresh, task)
			}
		}
		if len(fresh) > 0 {
			printReminders(env, fresh)
		}
	})
	if ctx.Err() != nil {
		zap.L().Debug("watch stopped")
		return nil
	}
	return err
}

func printReminders(env *Env, due []domain.Task) {
	for _, task := range due {
		fmt.Fprintf(env.Out, "reminder: %s (dismiss with: planner dismiss %d)\n", formatTask(task), task.ID)
	}
}
