package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskplanner/internal/core/calendar"
	"taskplanner/internal/core/domain"
	"taskplanner/internal/core/views"
)

type dayCmd struct{}

func (c *dayCmd) Name() string                 { return "day" }
func (c *dayCmd) Synopsis() string             { return "Show the board of one day" }
func (c *dayCmd) Usage() string                { return "planner day [DATE]" }
func (c *dayCmd) NeedsAuth() bool              { return true }
func (c *dayCmd) RegisterFlags(*flag.FlagSet) {}

func (c *dayCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) > 1 {
		return usagef("at most one date")
	}
	if len(args) == 1 {
		if err := env.Planner.SelectDay(args[0]); err != nil {
			return usagef("invalid date %q (YYYY-MM-DD)", args[0])
		}
	}

	if _, err := env.Planner.Refresh(ctx); err != nil {
		return err
	}

	day := env.Planner.SelectedDay()
	columns := env.Planner.DayColumns()
	fmt.Fprintf(env.Out, "%s (%d tasks)\n", day, columns.Len())
	for _, status := range domain.TaskStatuses {
		printColumn(env.Out, string(status), columns.Column(status))
	}
	return nil
}

type monthCmd struct {
	day string
}

func (c *monthCmd) Name() string     { return "month" }
func (c *monthCmd) Synopsis() string { return "Show the tasks of a month" }
func (c *monthCmd) Usage() string    { return "planner month [-day DATE] [YYYY-MM]" }
func (c *monthCmd) NeedsAuth() bool  { return true }

func (c *monthCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.day, "day", "", "")
}

func (c *monthCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) > 1 {
		return usagef("at most one month")
	}
	value := ""
	if len(args) == 1 {
		value = args[0]
	}
	year, month, err := parseMonth(value, env.Planner.Today())
	if err != nil {
		return err
	}

	if c.day != "" {
		day, err := parseOptionalDate(c.day)
		if err != nil {
			return err
		}
		if day == nil {
			return usagef("-day needs a date")
		}
		year, month = monthOf(*day)
		env.Planner.ToggleMonthFilter(*day)
	}

	if _, err := env.Planner.Refresh(ctx); err != nil {
		return err
	}

	filter := env.Planner.MonthFilter()
	fmt.Fprintf(env.Out, "%04d-%02d (%s)\n", year, int(month), filter)
	if !filter.Active() {
		printAgenda(env.Out, env.Planner.MonthAgenda(year, month), views.MonthDays(year, month))
	}
	for _, task := range env.Planner.MonthTasks(year, month) {
		fmt.Fprintf(env.Out, "  %s\n", formatTask(task))
	}
	return nil
}

func monthOf(isoDate string) (int, time.Month) {
	t, _ := calendar.ParseDate(isoDate)
	return t.Year(), t.Month()
}

func printColumn(out io.Writer, title string, tasks []domain.Task) {
	fmt.Fprintf(out, "\n%s (%d)\n", title, len(tasks))
	for _, task := range tasks {
		fmt.Fprintf(out, "  %s\n", formatTask(task))
	}
}
