package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskplanner/internal/core/calendar"
	"taskplanner/internal/core/domain"
)

func strPtr(v string) *string { return &v }

func weekdays(t *testing.T, codes ...string) domain.WeekdaySet {
	t.Helper()
	set, err := domain.WeekdaySetOf(codes...)
	require.NoError(t, err)
	return set
}

func TestIsActiveOn_WorkDateOnly(t *testing.T) {
	task := domain.Task{ID: 1, WorkDate: strPtr("2025-06-10")}

	assert.True(t, calendar.IsActiveOn(task, "2025-06-10"))
	assert.False(t, calendar.IsActiveOn(task, "2025-06-11"))
}

func TestIsActiveOn_RepeatDaysOnly(t *testing.T) {
	task := domain.Task{ID: 1, RepeatDays: weekdays(t, "FRI")}

	assert.True(t, calendar.IsActiveOn(task, "2025-06-13"))
	assert.False(t, calendar.IsActiveOn(task, "2025-06-12"))
}

func TestIsActiveOn_MondayAndSaturdayAcrossAWeek(t *testing.T) {
	task := domain.Task{ID: 1, RepeatDays: weekdays(t, "MON", "SAT")}

	for date := "2025-06-09"; date <= "2025-06-15"; {
		code, ok := calendar.WeekdayCode(date)
		require.True(t, ok)
		want := code == domain.Monday || code == domain.Saturday
		assert.Equal(t, want, calendar.IsActiveOn(task, date), date)

		date, ok = calendar.AddDays(date, 1)
		require.True(t, ok)
	}
}

func TestIsActiveOn_EitherRuleMatches(t *testing.T) {
	// Work date on a Tuesday, recurring on Fridays.
	task := domain.Task{ID: 1, WorkDate: strPtr("2025-06-10"), RepeatDays: weekdays(t, "FRI")}

	assert.True(t, calendar.IsActiveOn(task, "2025-06-10"))
	assert.True(t, calendar.IsActiveOn(task, "2025-06-13"))
	// Day view has no start floor.
	assert.True(t, calendar.IsActiveOn(task, "2025-06-06"))
	assert.False(t, calendar.IsActiveOn(task, "2025-06-11"))
}

func TestIsActiveOn_UnscheduledAndMalformed(t *testing.T) {
	assert.False(t, calendar.IsActiveOn(domain.Task{ID: 1}, "2025-06-10"))

	every := weekdays(t, "MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN")
	assert.False(t, calendar.IsActiveOn(domain.Task{ID: 2, RepeatDays: every}, "junk"))
	assert.False(t, calendar.IsActiveOn(domain.Task{ID: 3, WorkDate: strPtr("junk")}, "junk"))
}

func TestOccurrences_ForwardOnly(t *testing.T) {
	task := domain.Task{ID: 1, RepeatDays: weekdays(t, "MON")}

	got := calendar.Occurrences([]domain.Task{task}, "2025-06-01", "2025-06-30", "2025-06-10")

	dates := occurrenceDates(got)
	assert.Equal(t, []string{"2025-06-16", "2025-06-23", "2025-06-30"}, dates)
	for _, occ := range got {
		assert.Equal(t, calendar.MatchRecurring, occ.Kind)
	}
}

func TestOccurrences_WorkDateFloor(t *testing.T) {
	// Recurs on Mondays starting on Friday the 20th.
	task := domain.Task{ID: 1, WorkDate: strPtr("2025-06-20"), RepeatDays: weekdays(t, "MON")}

	got := calendar.Occurrences([]domain.Task{task}, "2025-06-01", "2025-06-30", "2025-06-01")

	assert.Equal(t, []string{"2025-06-20", "2025-06-23", "2025-06-30"}, occurrenceDates(got))
	assert.Equal(t, calendar.MatchExact, got[0].Kind)
}

func TestOccurrences_WorkDateAfterWindow(t *testing.T) {
	task := domain.Task{ID: 1, WorkDate: strPtr("2025-07-04"), RepeatDays: weekdays(t, "MON", "FRI")}

	got := calendar.Occurrences([]domain.Task{task}, "2025-06-01", "2025-06-30", "2025-06-01")
	assert.Empty(t, got)
}

func TestOccurrences_ExactWinsOverRecurrence(t *testing.T) {
	// 2025-06-16 is a Monday and also the work date.
	task := domain.Task{ID: 1, WorkDate: strPtr("2025-06-16"), RepeatDays: weekdays(t, "MON")}

	got := calendar.Occurrences([]domain.Task{task}, "2025-06-16", "2025-06-16", "2025-06-01")

	require.Len(t, got, 1)
	assert.Equal(t, calendar.MatchExact, got[0].Kind)
}

func TestOccurrences_PastWorkDateStillListed(t *testing.T) {
	task := domain.Task{ID: 1, WorkDate: strPtr("2025-06-02")}

	got := calendar.Occurrences([]domain.Task{task}, "2025-06-01", "2025-06-30", "2025-06-20")

	assert.Equal(t, []string{"2025-06-02"}, occurrenceDates(got))
}

func TestOccurrences_OrderedByDateThenInput(t *testing.T) {
	a := domain.Task{ID: 10, RepeatDays: weekdays(t, "TUE")}
	b := domain.Task{ID: 5, WorkDate: strPtr("2025-06-10")}
	c := domain.Task{ID: 7, WorkDate: strPtr("2025-06-09")}

	got := calendar.Occurrences([]domain.Task{a, b, c}, "2025-06-09", "2025-06-10", "2025-06-01")

	require.Len(t, got, 3)
	assert.Equal(t, uint64(7), got[0].Task.ID)
	assert.Equal(t, uint64(10), got[1].Task.ID)
	assert.Equal(t, uint64(5), got[2].Task.ID)
}

func TestOccurrences_MalformedInputs(t *testing.T) {
	task := domain.Task{ID: 1, WorkDate: strPtr("garbage"), RepeatDays: weekdays(t, "MON")}

	assert.Empty(t, calendar.Occurrences([]domain.Task{task}, "2025-06-01", "2025-06-30", "2025-06-01"))
	assert.Nil(t, calendar.Occurrences(nil, "x", "2025-06-30", "2025-06-01"))
	assert.Nil(t, calendar.Occurrences(nil, "2025-06-30", "2025-06-01", "2025-06-01"))
}

func occurrenceDates(occurrences []calendar.Occurrence) []string {
	dates := make([]string, 0, len(occurrences))
	for _, occ := range occurrences {
		dates = append(dates, occ.Date)
	}
	return dates
}
