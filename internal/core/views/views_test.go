package views_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskplanner/internal/core/domain"
	"taskplanner/internal/core/views"
)

func strPtr(v string) *string { return &v }

func repeat(t *testing.T, codes ...string) domain.WeekdaySet {
	t.Helper()
	set, err := domain.WeekdaySetOf(codes...)
	require.NoError(t, err)
	return set
}

func ids(tasks []domain.Task) []uint64 {
	out := make([]uint64, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func fixture(t *testing.T) []domain.Task {
	return []domain.Task{
		{ID: 1, Title: "Dentist", Status: domain.TaskStatusTodo, WorkDate: strPtr("2025-06-10")},
		{ID: 2, Title: "Gym", Status: domain.TaskStatusInProgress, RepeatDays: repeat(t, "TUE", "THU")},
		{ID: 3, Title: "Report", Status: domain.TaskStatusDone, WorkDate: strPtr("2025-06-10")},
		{ID: 4, Title: "Groceries", Status: domain.TaskStatusTodo, WorkDate: strPtr("2025-06-11")},
		{ID: 5, Title: "Orphan", Status: domain.TaskStatusTodo},
		{ID: 6, Title: "Standup", Status: domain.TaskStatusTodo, RepeatDays: repeat(t, "TUE")},
	}
}

func TestColumnsForDay(t *testing.T) {
	cols := views.ColumnsForDay(fixture(t), "2025-06-10")

	assert.Equal(t, []uint64{1, 6}, ids(cols.Todo))
	assert.Equal(t, []uint64{2}, ids(cols.InProgress))
	assert.Equal(t, []uint64{3}, ids(cols.Done))
	assert.Equal(t, 4, cols.Len())
	assert.Equal(t, cols.Todo, cols.Column(domain.TaskStatusTodo))
}

func TestColumnsForDay_RepeatOnlyTaskAcrossWeek(t *testing.T) {
	tasks := []domain.Task{{ID: 9, Status: domain.TaskStatusTodo, RepeatDays: repeat(t, "MON", "SAT")}}

	// 2025-06-09 is a Monday.
	expected := map[string]bool{
		"2025-06-09": true, "2025-06-10": false, "2025-06-11": false, "2025-06-12": false,
		"2025-06-13": false, "2025-06-14": true, "2025-06-15": false,
	}
	for date, want := range expected {
		cols := views.ColumnsForDay(tasks, date)
		assert.Equal(t, want, len(cols.Todo) == 1, date)
	}
}

func TestColumnsForDay_OrphanNeverListed(t *testing.T) {
	for _, day := range views.MonthDays(2025, time.June) {
		cols := views.ColumnsForDay(fixture(t), day)
		for _, status := range domain.TaskStatuses {
			assert.NotContains(t, ids(cols.Column(status)), uint64(5), day)
		}
	}
}

func TestTasksForMonth_Unfiltered(t *testing.T) {
	tasks := append(fixture(t),
		domain.Task{ID: 7, Title: "July trip", Status: domain.TaskStatusTodo, WorkDate: strPtr("2025-07-02")},
		domain.Task{ID: 8, Title: "Late starter", Status: domain.TaskStatusTodo, WorkDate: strPtr("2025-07-07"), RepeatDays: repeat(t, "MON")},
	)

	got := views.TasksForMonth(tasks, 2025, time.June, views.DayFilter{}, "2025-06-01")

	// First-seen order: task 2 recurs from the 3rd, 6 from the 3rd, 1 and 3 on the 10th, 4 on the 11th.
	assert.Equal(t, []uint64{2, 6, 1, 3, 4}, ids(got))
}

func TestTasksForMonth_RecurrenceIsForwardOnly(t *testing.T) {
	tasks := []domain.Task{{ID: 2, Status: domain.TaskStatusTodo, RepeatDays: repeat(t, "TUE")}}

	assert.Empty(t, views.TasksForMonth(tasks, 2025, time.May, views.DayFilter{}, "2025-06-10"))
	assert.Len(t, views.TasksForMonth(tasks, 2025, time.June, views.DayFilter{}, "2025-06-10"), 1)
}

func TestTasksForMonth_DayFilter(t *testing.T) {
	tasks := fixture(t)

	got := views.TasksForMonth(tasks, 2025, time.June, views.FilteredOn("2025-06-10"), "2025-06-01")
	assert.Equal(t, []uint64{1, 2, 3, 6}, ids(got))

	got = views.TasksForMonth(tasks, 2025, time.June, views.FilteredOn("2025-06-11"), "2025-06-01")
	assert.Equal(t, []uint64{4}, ids(got))

	// Recurrence before today is not projected, exact matches still are.
	got = views.TasksForMonth(tasks, 2025, time.June, views.FilteredOn("2025-06-10"), "2025-06-20")
	assert.Equal(t, []uint64{1, 3}, ids(got))

	// A filter outside the month yields nothing.
	got = views.TasksForMonth(tasks, 2025, time.June, views.FilteredOn("2025-07-01"), "2025-06-01")
	assert.Empty(t, got)
}

func TestMonthAgenda_OneEntryPerTaskAndDay(t *testing.T) {
	tasks := []domain.Task{{ID: 1, Status: domain.TaskStatusTodo, WorkDate: strPtr("2025-06-10"), RepeatDays: repeat(t, "TUE")}}

	agenda := views.MonthAgenda(tasks, 2025, time.June, "2025-06-01")

	require.Len(t, agenda["2025-06-10"], 1)
	assert.Equal(t, "exact", agenda["2025-06-10"][0].Kind.String())
	assert.Len(t, agenda["2025-06-17"], 1)
	assert.Empty(t, agenda["2025-06-03"])
}

func TestMonthDays(t *testing.T) {
	days := views.MonthDays(2025, time.February)
	require.Len(t, days, 28)
	assert.Equal(t, "2025-02-01", days[0])
	assert.Equal(t, "2025-02-28", days[27])
}

func TestDayFilter_Toggle(t *testing.T) {
	var filter views.DayFilter
	require.False(t, filter.Active())

	on := filter.Toggle("2025-06-10")
	day, ok := on.Day()
	require.True(t, ok)
	require.Equal(t, "2025-06-10", day)

	moved := on.Toggle("2025-06-11")
	day, _ = moved.Day()
	require.Equal(t, "2025-06-11", day)

	off := on.Toggle("2025-06-10")
	require.Equal(t, filter, off)
	require.Equal(t, "unfiltered", off.String())
}

func TestDayFilter_ToggleTwiceRestoresMonth(t *testing.T) {
	tasks := fixture(t)
	before := views.TasksForMonth(tasks, 2025, time.June, views.DayFilter{}, "2025-06-01")

	filter := views.DayFilter{}.Toggle("2025-06-11").Toggle("2025-06-11")
	after := views.TasksForMonth(tasks, 2025, time.June, filter, "2025-06-01")

	require.Equal(t, before, after)
}
