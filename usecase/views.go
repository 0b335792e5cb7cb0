package usecase

import (
	"sort"
	"strings"
	"time"

	"productivity/model"
)

// TaskFilter narrows a task list. Zero values match everything.
type TaskFilter struct {
	Status   model.Status
	Query    string
	Tags     []string
	HideDone bool
	DueBy    *time.Time
	OnBoard  *bool
}

// FilterTasks keeps the tasks matching every set predicate of f, in order.
func FilterTasks(tasks []*model.Task, f TaskFilter) []*model.Task {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	wanted := make(map[string]struct{}, len(f.Tags))
	for _, tag := range f.Tags {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			wanted[tag] = struct{}{}
		}
	}

	out := make([]*model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.HideDone && t.Status == model.StatusDone {
			continue
		}
		if f.OnBoard != nil && t.IsOnBoard != *f.OnBoard {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Details), query) {
			continue
		}
		if len(wanted) > 0 && !hasAnyTag(t, wanted) {
			continue
		}
		if f.DueBy != nil && !dueOnOrBefore(t, *f.DueBy) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func hasAnyTag(t *model.Task, wanted map[string]struct{}) bool {
	for _, tag := range t.Tags {
		if _, ok := wanted[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return false
}

func dueOnOrBefore(t *model.Task, day time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return !dayOf(*t.DueDate, day.Location()).After(dayOf(day, day.Location()))
}

// SortTasks orders by status, then due date with undated tasks last, then
// title ignoring case, then creation time.
func SortTasks(tasks []*model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Status.Rank() != b.Status.Rank() {
			return a.Status.Rank() < b.Status.Rank()
		}
		switch {
		case a.DueDate != nil && b.DueDate != nil:
			if !a.DueDate.Equal(*b.DueDate) {
				return a.DueDate.Before(*b.DueDate)
			}
		case a.DueDate != nil:
			return true
		case b.DueDate != nil:
			return false
		}
		at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
		if at != bt {
			return at < bt
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

type TodaySections struct {
	Overdue []*model.Task `json:"overdue"`
	Today   []*model.Task `json:"today"`
}

// TodayView splits the unfinished dated tasks into overdue and due today.
func TodayView(tasks []*model.Task, now time.Time) TodaySections {
	today := dayOf(now, now.Location())
	out := TodaySections{Overdue: []*model.Task{}, Today: []*model.Task{}}

	for _, t := range tasks {
		if t.Status == model.StatusDone || t.DueDate == nil {
			continue
		}
		due := dayOf(*t.DueDate, now.Location())
		switch {
		case due.Before(today):
			out.Overdue = append(out.Overdue, t)
		case due.Equal(today):
			out.Today = append(out.Today, t)
		}
	}
	SortTasks(out.Overdue)
	SortTasks(out.Today)
	return out
}

type BoardColumn struct {
	Status model.Status     `json:"status"`
	Info   model.StatusInfo `json:"info"`
	Tasks  []*model.Task    `json:"tasks"`
}

type Board struct {
	WeekLabel string        `json:"week_label"`
	Columns   []BoardColumn `json:"columns"`
}

// BoardView groups on-board tasks into one column per status. Recurring
// tasks lead each column.
func BoardView(tasks []*model.Task, now time.Time) Board {
	board := Board{WeekLabel: WeekLabel(now)}
	for _, status := range model.Statuses {
		column := BoardColumn{Status: status, Info: status.Info(), Tasks: []*model.Task{}}
		for _, t := range tasks {
			if t.IsOnBoard && t.Status == status {
				column.Tasks = append(column.Tasks, t)
			}
		}
		sort.SliceStable(column.Tasks, func(i, j int) bool {
			a, b := column.Tasks[i], column.Tasks[j]
			if a.IsRecurring() != b.IsRecurring() {
				return a.IsRecurring()
			}
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		})
		board.Columns = append(board.Columns, column)
	}
	return board
}

// WeekLabel names the Sunday-first week containing now, e.g. "Week of Jan 2".
func WeekLabel(now time.Time) string {
	start := dayOf(now, now.Location())
	start = start.AddDate(0, 0, -int(start.Weekday()))
	return "Week of " + start.Format("Jan 2")
}

type WeekdayColumn struct {
	DayOfWeek int           `json:"day_of_week"`
	Name      string        `json:"name"`
	Tasks     []*model.Task `json:"tasks"`
}

// RecurringWeekView lays recurring tasks out by their day of week, Sunday first.
func RecurringWeekView(tasks []*model.Task) []WeekdayColumn {
	columns := make([]WeekdayColumn, 7)
	for i := range columns {
		columns[i] = WeekdayColumn{
			DayOfWeek: i + 1,
			Name:      model.WeekdayShortName(i + 1),
			Tasks:     []*model.Task{},
		}
	}
	for _, t := range tasks {
		if !t.IsRecurring() || t.DayOfWeek == nil {
			continue
		}
		day := *t.DayOfWeek
		if day < 1 || day > 7 {
			continue
		}
		columns[day-1].Tasks = append(columns[day-1].Tasks, t)
	}
	for _, c := range columns {
		sort.SliceStable(c.Tasks, func(i, j int) bool {
			return strings.ToLower(c.Tasks[i].Title) < strings.ToLower(c.Tasks[j].Title)
		})
	}
	return columns
}

type Summary struct {
	Total      int      `json:"total"`
	Todo       int      `json:"todo"`
	InProgress int      `json:"in_progress"`
	Done       int      `json:"done"`
	Progress   float64  `json:"progress"`
	Percent    int      `json:"percent"`
	Tags       []string `json:"tags"`
}

// Summarize counts tasks per status and collects the distinct tags in use.
func Summarize(tasks []*model.Task) Summary {
	s := Summary{Total: len(tasks)}
	seen := make(map[string]struct{})
	s.Tags = []string{}

	for _, t := range tasks {
		switch t.Status {
		case model.StatusTodo:
			s.Todo++
		case model.StatusInProgress:
			s.InProgress++
		case model.StatusDone:
			s.Done++
		}
		for _, tag := range t.Tags {
			key := strings.ToLower(strings.TrimSpace(tag))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			s.Tags = append(s.Tags, strings.TrimSpace(tag))
		}
	}

	if s.Total > 0 {
		s.Progress = float64(s.Done) / float64(s.Total)
		s.Percent = s.Done * 100 / s.Total
	}
	sort.SliceStable(s.Tags, func(i, j int) bool {
		return strings.ToLower(s.Tags[i]) < strings.ToLower(s.Tags[j])
	})
	return s
}

type DueBadge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

// DueBadgeFor describes how close due is relative to now, by calendar day.
func DueBadgeFor(due, now time.Time) DueBadge {
	days := daysBetween(dayOf(now, now.Location()), dayOf(due, now.Location()))
	switch {
	case days < 0:
		return DueBadge{Label: "Overdue", Tone: "red"}
	case days == 0:
		return DueBadge{Label: "Due today", Tone: "orange"}
	case days <= 2:
		return DueBadge{Label: "Due soon", Tone: "yellow"}
	default:
		return DueBadge{Label: "Due", Tone: "secondary"}
	}
}

// dayOf returns local midnight of t's calendar day in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days from a to b, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
