package model

import "time"

type Task struct {
	ID            string     `bson:"_id" json:"id"`
	Title         string     `bson:"title" json:"title"`
	Details       string     `bson:"details" json:"details"`
	Link          string     `bson:"link,omitempty" json:"link,omitempty"`
	DueDate       *time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	ScheduledDate *time.Time `bson:"scheduled_date,omitempty" json:"scheduled_date,omitempty"`
	DayOfWeek     *int       `bson:"day_of_week,omitempty" json:"day_of_week,omitempty"` // 1=Sunday ... 7=Saturday
	Tags          []string   `bson:"tags" json:"tags"`
	IsOnBoard     bool       `bson:"is_on_board" json:"is_on_board"`
	Status        Status     `bson:"status" json:"status"`
	Recurrence    Recurrence `bson:"recurrence" json:"recurrence"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
}

// IsRecurring reports whether completing the task rolls the series forward.
func (t *Task) IsRecurring() bool {
	return t.Recurrence != RecurrenceNone && t.Recurrence != ""
}

// Clone returns a deep copy so callers can mutate without touching stored state.
func (t *Task) Clone() *Task {
	out := *t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	if t.ScheduledDate != nil {
		scheduled := *t.ScheduledDate
		out.ScheduledDate = &scheduled
	}
	if t.DayOfWeek != nil {
		day := *t.DayOfWeek
		out.DayOfWeek = &day
	}
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	return &out
}

// Weekday short names indexed by DayOfWeek-1.
var weekdayShortNames = [...]string{"Sun", "Mon", "Tues", "Wed", "Thur", "Fri", "Sat"}

// WeekdayShortName returns the grid label for a 1-based day of week, or "" when out of range.
func WeekdayShortName(day int) string {
	if day < 1 || day > 7 {
		return ""
	}
	return weekdayShortNames[day-1]
}

// DayOfWeekOf converts a time.Weekday into the 1=Sunday numbering used by tasks.
func DayOfWeekOf(w time.Weekday) int {
	return int(w) + 1
}
