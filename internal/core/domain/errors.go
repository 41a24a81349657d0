package domain

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidWeekday     = errors.New("invalid weekday code")
	ErrInvalidDate        = errors.New("invalid date")
)

// Validation errors. They are raised before anything is stored or sent.
var (
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrReminderAfterDue = errors.New("reminder must not be later than the deadline")
	ErrReminderInPast   = errors.New("reminder must not be in the past")
)

// IsValidationError reports whether err is one of the schedule validation errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrReminderAfterDue) ||
		errors.Is(err, ErrReminderInPast) ||
		errors.Is(err, ErrInvalidWeekday) ||
		errors.Is(err, ErrInvalidDate)
}
