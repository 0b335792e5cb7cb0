package usecase

import "errors"

// Capture errors
var (
	ErrEmptyCapture = errors.New("nothing to capture")
)

// Composer errors
var (
	ErrTitleRequired     = errors.New("task title is required")
	ErrInvalidLink       = errors.New("task link is not a valid URL")
	ErrDayOfWeekRequired = errors.New("recurring tasks need a day of the week")
	ErrInvalidDraft      = errors.New("task draft has invalid fields")
)

// Status errors
var (
	ErrInvalidStatus = errors.New("invalid task status")
)

// Calendar errors
var (
	ErrDueDateRequired = errors.New("task has no due date")
)

// IsValidationError reports whether err is a refusal caused by caller input.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrEmptyCapture, ErrTitleRequired, ErrInvalidLink,
		ErrDayOfWeekRequired, ErrInvalidDraft, ErrInvalidStatus,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
