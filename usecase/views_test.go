package usecase_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productivity/model"
	"productivity/usecase"
)

func at(month time.Month, day, hour int) *time.Time {
	t := time.Date(2026, month, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func ids(tasks []*model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func sampleTasks() []*model.Task {
	day := 2
	return []*model.Task{
		{ID: "a", Title: "Write report", Details: "Quarterly numbers", Status: model.StatusTodo, IsOnBoard: true, Tags: []string{"Work"}, DueDate: at(time.October, 15, 9), Recurrence: model.RecurrenceNone},
		{ID: "b", Title: "buy milk", Status: model.StatusInProgress, IsOnBoard: true, Tags: []string{"errand"}, DueDate: at(time.October, 14, 0), Recurrence: model.RecurrenceNone},
		{ID: "c", Title: "Gym", Status: model.StatusTodo, IsOnBoard: true, Recurrence: model.RecurrenceWeekly, DayOfWeek: &day},
		{ID: "d", Title: "Archive mail", Status: model.StatusDone, IsOnBoard: true, Tags: []string{"work"}, DueDate: at(time.October, 10, 0), Recurrence: model.RecurrenceNone},
		{ID: "e", Title: "Someday", Status: model.StatusTodo, IsOnBoard: false, Recurrence: model.RecurrenceNone},
	}
}

func TestFilterTasks(t *testing.T) {
	tasks := sampleTasks()
	onBoard := true
	offBoard := false

	tests := []struct {
		name   string
		filter usecase.TaskFilter
		want   []string
	}{
		{"no filter", usecase.TaskFilter{}, []string{"a", "b", "c", "d", "e"}},
		{"status", usecase.TaskFilter{Status: model.StatusTodo}, []string{"a", "c", "e"}},
		{"query matches title ignoring case", usecase.TaskFilter{Query: "MILK"}, []string{"b"}},
		{"query matches details", usecase.TaskFilter{Query: "quarterly"}, []string{"a"}},
		{"tags intersect ignoring case", usecase.TaskFilter{Tags: []string{"WORK", "nothing"}}, []string{"a", "d"}},
		{"hide done", usecase.TaskFilter{HideDone: true}, []string{"a", "b", "c", "e"}},
		{"due by today", usecase.TaskFilter{DueBy: at(time.October, 15, 0)}, []string{"a", "b", "d"}},
		{"on board", usecase.TaskFilter{OnBoard: &onBoard}, []string{"a", "b", "c", "d"}},
		{"off board", usecase.TaskFilter{OnBoard: &offBoard}, []string{"e"}},
		{"combined", usecase.TaskFilter{Tags: []string{"work"}, HideDone: true}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(usecase.FilterTasks(tasks, tt.filter)))
		})
	}
}

func TestSortTasks(t *testing.T) {
	created := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	tasks := []*model.Task{
		{ID: "done", Title: "A", Status: model.StatusDone},
		{ID: "undated-b", Title: "b", Status: model.StatusTodo},
		{ID: "undated-a-late", Title: "A", Status: model.StatusTodo, CreatedAt: created.Add(time.Hour)},
		{ID: "undated-a-early", Title: "a", Status: model.StatusTodo, CreatedAt: created},
		{ID: "later", Title: "Z", Status: model.StatusTodo, DueDate: at(time.October, 20, 0)},
		{ID: "sooner", Title: "Z", Status: model.StatusTodo, DueDate: at(time.October, 16, 0)},
		{ID: "progress", Title: "M", Status: model.StatusInProgress},
	}

	usecase.SortTasks(tasks)
	assert.Equal(t, []string{"sooner", "later", "undated-a-early", "undated-a-late", "undated-b", "progress", "done"}, ids(tasks))
}

func TestTodayView(t *testing.T) {
	sections := usecase.TodayView(sampleTasks(), now)

	assert.Equal(t, []string{"b"}, ids(sections.Overdue))
	assert.Equal(t, []string{"a"}, ids(sections.Today))
}

func TestTodayView_Empty(t *testing.T) {
	sections := usecase.TodayView(nil, now)
	assert.NotNil(t, sections.Overdue)
	assert.NotNil(t, sections.Today)
}

func TestBoardView(t *testing.T) {
	day := 3
	tasks := append(sampleTasks(), &model.Task{
		ID: "f", Title: "Alpha", Status: model.StatusTodo, IsOnBoard: true, Recurrence: model.RecurrenceNone,
	}, &model.Task{
		ID: "g", Title: "Yoga", Status: model.StatusTodo, IsOnBoard: true, Recurrence: model.RecurrenceDaily, DayOfWeek: &day,
	})

	board := usecase.BoardView(tasks, now)
	assert.Equal(t, "Week of Oct 11", board.WeekLabel)
	require.Len(t, board.Columns, 3)

	assert.Equal(t, model.StatusTodo, board.Columns[0].Status)
	assert.Equal(t, "To Do", board.Columns[0].Info.Title)
	assert.Equal(t, []string{"c", "g", "f", "a"}, ids(board.Columns[0].Tasks))
	assert.Equal(t, []string{"b"}, ids(board.Columns[1].Tasks))
	assert.Equal(t, []string{"d"}, ids(board.Columns[2].Tasks))
}

func TestWeekLabel(t *testing.T) {
	assert.Equal(t, "Week of Jan 2", usecase.WeekLabel(time.Date(2022, time.January, 2, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Week of Jan 2", usecase.WeekLabel(time.Date(2022, time.January, 8, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Week of Dec 28", usecase.WeekLabel(time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)))
}

func TestRecurringWeekView(t *testing.T) {
	sun, mon := 1, 2
	tasks := append(sampleTasks(),
		&model.Task{ID: "h", Title: "Brunch", Recurrence: model.RecurrenceWeekly, DayOfWeek: &sun},
		&model.Task{ID: "i", Title: "Allotment", Recurrence: model.RecurrenceWeekly, DayOfWeek: &mon},
		&model.Task{ID: "j", Title: "Not recurring", Recurrence: model.RecurrenceNone, DayOfWeek: &mon},
		&model.Task{ID: "k", Title: "No day", Recurrence: model.RecurrenceDaily},
	)

	columns := usecase.RecurringWeekView(tasks)
	require.Len(t, columns, 7)

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
		assert.Equal(t, i+1, c.DayOfWeek)
	}
	assert.Equal(t, []string{"Sun", "Mon", "Tues", "Wed", "Thur", "Fri", "Sat"}, names)
	assert.Equal(t, []string{"h"}, ids(columns[0].Tasks))
	assert.Equal(t, []string{"i", "c"}, ids(columns[1].Tasks))
	assert.Empty(t, columns[2].Tasks)
}

func TestSummarize(t *testing.T) {
	s := usecase.Summarize(sampleTasks())

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Todo)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 1, s.Done)
	assert.InDelta(t, 0.2, s.Progress, 1e-9)
	assert.Equal(t, 20, s.Percent)
	assert.Equal(t, []string{"errand", "Work"}, s.Tags)

	empty := usecase.Summarize(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Zero(t, empty.Progress)
	assert.NotNil(t, empty.Tags)
}

func TestDueBadgeFor(t *testing.T) {
	tests := []struct {
		due  time.Time
		want string
	}{
		{time.Date(2026, time.October, 14, 23, 59, 0, 0, time.UTC), "Overdue"},
		{time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), "Due today"},
		{time.Date(2026, time.October, 15, 23, 0, 0, 0, time.UTC), "Due today"},
		{time.Date(2026, time.October, 16, 8, 0, 0, 0, time.UTC), "Due soon"},
		{time.Date(2026, time.October, 17, 8, 0, 0, 0, time.UTC), "Due soon"},
		{time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC), "Due"},
	}

	for _, tt := range tests {
		t.Run(tt.due.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.DueBadgeFor(tt.due, now).Label)
		})
	}
}

func TestParseManualTags(t *testing.T) {
	assert.Equal(t, []string{"work", "home", "work"}, usecase.ParseManualTags(" work ;home,, ;work"))
	assert.Empty(t, usecase.ParseManualTags(" ; , "))
	assert.NotNil(t, usecase.ParseManualTags(""))
}

func TestTagSuggestions(t *testing.T) {
	got := usecase.TagSuggestions([]string{"work", "Home", "errand", "art"}, []string{"WORK"})
	assert.Equal(t, []string{"art", "errand", "Home"}, got)
}

func TestBuildTaskICS(t *testing.T) {
	stamp := time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

	_, err := usecase.BuildTaskICS(&model.Task{ID: "x", Title: "No date"}, stamp)
	assert.ErrorIs(t, err, usecase.ErrDueDateRequired)

	allDay := &model.Task{
		ID: "abc", Title: "Pay rent; really", Details: "line one\nline two",
		Link: "https://bank.example", Tags: []string{"home", "money"},
		DueDate: at(time.October, 31, 0), Recurrence: model.RecurrenceMonthly,
	}
	ics, err := usecase.BuildTaskICS(allDay, stamp)
	require.NoError(t, err)

	lines := strings.Split(ics, "\r\n")
	assert.Equal(t, "BEGIN:VCALENDAR", lines[0])
	assert.Contains(t, lines, "UID:task-abc@productivity")
	assert.Contains(t, lines, "DTSTAMP:20261015T100000Z")
	assert.Contains(t, lines, `SUMMARY:Pay rent\; really`)
	assert.Contains(t, lines, "DTSTART;VALUE=DATE:20261031")
	assert.Contains(t, lines, "DTEND;VALUE=DATE:20261101")
	assert.Contains(t, lines, `DESCRIPTION:line one\nline two`)
	assert.Contains(t, lines, "URL:https://bank.example")
	assert.Contains(t, lines, "CATEGORIES:home,money")
	assert.Contains(t, lines, "RRULE:FREQ=MONTHLY;INTERVAL=1")
	assert.True(t, strings.HasSuffix(ics, "END:VEVENT\r\nEND:VCALENDAR\r\n"))

	timed := &model.Task{ID: "t", Title: "Call", DueDate: at(time.October, 16, 17), Recurrence: model.RecurrenceNone}
	ics, err = usecase.BuildTaskICS(timed, stamp)
	require.NoError(t, err)
	assert.Contains(t, ics, "DTSTART:20261016T170000Z\r\n")
	assert.Contains(t, ics, "DTEND:20261016T180000Z\r\n")
	assert.NotContains(t, ics, "RRULE")
}
