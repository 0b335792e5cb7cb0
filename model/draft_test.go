package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"Work", "Home"}, NormalizeTags([]string{"Work", "work", " Home "}))
	assert.Equal(t, []string{}, NormalizeTags([]string{"", "   "}))
	assert.Equal(t, []string{"b", "A"}, NormalizeTags([]string{"b", "A", "a", "B"}))
}

func TestResolveLink(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"https://zoom.us/x", "https://zoom.us/x", true},
		{"example.com/path", "https://example.com/path", true},
		{"mailto:me@example.com", "mailto:me@example.com", true},
		{"not a url", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ResolveLink(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDraftLinkIsValid(t *testing.T) {
	d := NewDraft()
	assert.True(t, d.LinkIsValid())

	d.Link = "  example.org "
	assert.True(t, d.LinkIsValid())

	d.Link = "not a url"
	assert.False(t, d.LinkIsValid())
}

func TestDraftMakeTask(t *testing.T) {
	due := time.Date(2026, time.October, 20, 17, 0, 0, 0, time.UTC)
	day := 3

	d := NewDraft()
	d.Title = "  Write report  "
	d.Details = " quarterly "
	d.Link = "example.com"
	d.HasDueDate = true
	d.DueDate = due
	d.DayOfWeek = &day
	d.Tags = []string{"Work", "work", " Home "}
	d.Status = StatusInProgress
	d.Recurrence = RecurrenceWeekly

	task := d.MakeTask("abc")

	assert.Equal(t, "abc", task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "quarterly", task.Details)
	assert.Equal(t, "https://example.com", task.Link)
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Equal(*task.DueDate))
	assert.Nil(t, task.ScheduledDate)
	require.NotNil(t, task.DayOfWeek)
	assert.Equal(t, 3, *task.DayOfWeek)
	assert.Equal(t, []string{"Work", "Home"}, task.Tags)
	assert.Equal(t, StatusInProgress, task.Status)
	assert.Equal(t, RecurrenceWeekly, task.Recurrence)
}

func TestDraftMakeTask_OffBoardForcesTodo(t *testing.T) {
	d := NewDraft()
	d.Title = "Errand"
	d.IsOnBoard = false
	d.Status = StatusDone

	task := d.MakeTask("id")
	assert.False(t, task.IsOnBoard)
	assert.Equal(t, StatusTodo, task.Status)
}

func TestDraftRoundTripFromTask(t *testing.T) {
	due := time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)
	day := 2
	task := &Task{
		ID:         "id-1",
		Title:      "Standup",
		Link:       "https://zoom.us/x",
		DueDate:    &due,
		DayOfWeek:  &day,
		Tags:       []string{"work"},
		IsOnBoard:  true,
		Status:     StatusInProgress,
		Recurrence: RecurrenceDaily,
	}

	d := DraftFromTask(task)
	assert.True(t, d.HasDueDate)
	assert.False(t, d.HasScheduledDate)

	back := d.MakeTask(task.ID)
	assert.Equal(t, task.Title, back.Title)
	assert.Equal(t, task.Link, back.Link)
	assert.Equal(t, task.Tags, back.Tags)
	assert.Equal(t, task.Status, back.Status)
	assert.Equal(t, *task.DayOfWeek, *back.DayOfWeek)

	// The draft owns its copy of the day.
	*d.DayOfWeek = 5
	assert.Equal(t, 2, *task.DayOfWeek)
}

func TestDraftApplyParsed(t *testing.T) {
	due := time.Date(2026, time.October, 16, 17, 0, 0, 0, time.UTC)

	d := NewDraft()
	d.ApplyParsed(ParsedTaskData{
		CleanTitle: "Buy milk",
		DueDate:    &due,
		Tags:       []string{"errand"},
		Recurrence: RecurrenceNone,
	}, "Buy milk tomorrow at 5pm #errand")

	assert.Equal(t, "Buy milk", d.Title)
	assert.True(t, d.HasDueDate)
	assert.Equal(t, []string{"errand"}, d.Tags)
	assert.Equal(t, "", d.Link)

	d = NewDraft()
	d.ApplyParsed(ParsedTaskData{Recurrence: RecurrenceDaily, DetectedRecurrenceText: "daily"}, "  daily ")
	assert.Equal(t, "daily", d.Title)
	assert.Equal(t, RecurrenceDaily, d.Recurrence)
}
