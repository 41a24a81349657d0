package views

// DayFilter narrows the month view to one day. The zero value is unfiltered.
type DayFilter struct {
	day string
}

// FilteredOn returns a filter on day.
func FilteredOn(day string) DayFilter {
	return DayFilter{day: day}
}

// Day returns the filtered day, if any.
func (f DayFilter) Day() (string, bool) {
	return f.day, f.day != ""
}

func (f DayFilter) Active() bool {
	return f.day != ""
}

// Toggle is the transition on a day click: clicking the filtered day clears the filter,
// clicking any other day moves it there.
func (f DayFilter) Toggle(day string) DayFilter {
	if day == "" || f.day == day {
		return DayFilter{}
	}
	return DayFilter{day: day}
}

func (f DayFilter) String() string {
	if f.day == "" {
		return "unfiltered"
	}
	return "filtered on " + f.day
}
