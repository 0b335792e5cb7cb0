package model

import (
	"net/url"
	"strings"
	"time"
)

// TaskEditorDraft is the editable form of a task. Presence of the dates is
// tracked separately so "unset" can be told apart from a chosen date.
type TaskEditorDraft struct {
	Title            string     `json:"title"`
	Details          string     `json:"details"`
	Link             string     `json:"link"`
	HasDueDate       bool       `json:"has_due_date"`
	DueDate          time.Time  `json:"due_date"`
	HasScheduledDate bool       `json:"has_scheduled_date"`
	ScheduledDate    time.Time  `json:"scheduled_date"`
	DayOfWeek        *int       `json:"day_of_week" validate:"omitempty,weekday"`
	Tags             []string   `json:"tags"`
	IsOnBoard        bool       `json:"is_on_board"`
	Status           Status     `json:"status" validate:"status"`
	Recurrence       Recurrence `json:"recurrence" validate:"recurrence"`
}

// NewDraft returns the blank composer state.
func NewDraft() TaskEditorDraft {
	return TaskEditorDraft{
		IsOnBoard:  true,
		Status:     StatusTodo,
		Recurrence: RecurrenceNone,
	}
}

// DraftFromTask loads an existing task into the editor.
func DraftFromTask(t *Task) TaskEditorDraft {
	d := TaskEditorDraft{
		Title:      t.Title,
		Details:    t.Details,
		Link:       t.Link,
		Tags:       append([]string(nil), t.Tags...),
		IsOnBoard:  t.IsOnBoard,
		Status:     t.Status,
		Recurrence: t.Recurrence,
	}
	if t.DueDate != nil {
		d.HasDueDate = true
		d.DueDate = *t.DueDate
	}
	if t.ScheduledDate != nil {
		d.HasScheduledDate = true
		d.ScheduledDate = *t.ScheduledDate
	}
	if t.DayOfWeek != nil {
		day := *t.DayOfWeek
		d.DayOfWeek = &day
	}
	return d
}

// ApplyParsed fills the draft from a parse of raw composer input. An empty
// clean title falls back to the raw input.
func (d *TaskEditorDraft) ApplyParsed(parsed ParsedTaskData, raw string) {
	d.Title = parsed.CleanTitle
	if d.Title == "" {
		d.Title = strings.TrimSpace(raw)
	}
	d.Tags = append([]string(nil), parsed.Tags...)
	d.Recurrence = parsed.Recurrence
	if d.Recurrence == "" {
		d.Recurrence = RecurrenceNone
	}
	if parsed.DueDate != nil {
		d.HasDueDate = true
		d.DueDate = *parsed.DueDate
	}
	if parsed.Link != "" {
		d.Link = parsed.Link
	}
}

func (d TaskEditorDraft) TrimmedTitle() string {
	return strings.TrimSpace(d.Title)
}

// LinkIsValid is true for an empty link or one that resolves to a URL.
func (d TaskEditorDraft) LinkIsValid() bool {
	trimmed := strings.TrimSpace(d.Link)
	if trimmed == "" {
		return true
	}
	_, ok := ResolveLink(trimmed)
	return ok
}

// NormalizedTags trims, drops empties and removes case-insensitive
// duplicates, keeping the first casing seen.
func (d TaskEditorDraft) NormalizedTags() []string {
	return NormalizeTags(d.Tags)
}

// MakeTask converts the draft into a task carrying the given id.
func (d TaskEditorDraft) MakeTask(id string) *Task {
	t := &Task{
		ID:         id,
		Title:      d.TrimmedTitle(),
		Details:    strings.TrimSpace(d.Details),
		Tags:       d.NormalizedTags(),
		IsOnBoard:  d.IsOnBoard,
		Status:     d.Status,
		Recurrence: d.Recurrence,
	}
	if link, ok := ResolveLink(strings.TrimSpace(d.Link)); ok {
		t.Link = link
	}
	if d.HasDueDate {
		due := d.DueDate
		t.DueDate = &due
	}
	if d.HasScheduledDate {
		scheduled := d.ScheduledDate
		t.ScheduledDate = &scheduled
	}
	if d.DayOfWeek != nil {
		day := *d.DayOfWeek
		t.DayOfWeek = &day
	}
	if t.Recurrence == "" {
		t.Recurrence = RecurrenceNone
	}
	if t.Status == "" || !t.IsOnBoard {
		t.Status = StatusTodo
	}
	return t
}

// ResolveLink accepts an absolute URL as typed or, failing that, the same
// text with an https:// prefix.
func ResolveLink(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "") {
		return u.String(), true
	}
	if u, err := url.Parse("https://" + raw); err == nil && u.Host != "" {
		return u.String(), true
	}
	return "", false
}

// NormalizeTags trims, drops empties and dedups case-insensitively.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
