package dto

import (
	"net/url"
	"strings"
	"time"

	"productivity/model"
	"productivity/usecase"
)

type ParseRequest struct {
	Text string `json:"text" binding:"required"`
}

// CaptureRequest feeds both quick add and bulk dump. Tags is the raw manual
// tag field, separated by commas or semicolons.
type CaptureRequest struct {
	Text   string       `json:"text" binding:"required"`
	Tags   string       `json:"tags"`
	Status model.Status `json:"status" binding:"omitempty,status"`
}

func (r CaptureRequest) Input() usecase.CaptureInput {
	return usecase.CaptureInput{Text: r.Text, Tags: r.Tags, Status: r.Status}
}

type StatusRequest struct {
	Status model.Status `json:"status" binding:"required,status"`
}

// DraftRequest is the composer form. Absent dates mean "unset"; an absent
// is_on_board defaults to true like a fresh composer.
type DraftRequest struct {
	Title         string           `json:"title"`
	Details       string           `json:"details"`
	Link          string           `json:"link"`
	DueDate       *time.Time       `json:"due_date"`
	ScheduledDate *time.Time       `json:"scheduled_date"`
	DayOfWeek     *int             `json:"day_of_week" binding:"omitempty,weekday"`
	Tags          []string         `json:"tags"`
	IsOnBoard     *bool            `json:"is_on_board"`
	Status        model.Status     `json:"status" binding:"omitempty,status"`
	Recurrence    model.Recurrence `json:"recurrence" binding:"omitempty,recurrence"`
}

func (r DraftRequest) Draft() model.TaskEditorDraft {
	d := model.NewDraft()
	d.Title = r.Title
	d.Details = r.Details
	d.Link = r.Link
	d.Tags = r.Tags
	d.DayOfWeek = r.DayOfWeek
	if r.DueDate != nil {
		d.HasDueDate = true
		d.DueDate = *r.DueDate
	}
	if r.ScheduledDate != nil {
		d.HasScheduledDate = true
		d.ScheduledDate = *r.ScheduledDate
	}
	if r.IsOnBoard != nil {
		d.IsOnBoard = *r.IsOnBoard
	}
	if r.Status != "" {
		d.Status = r.Status
	}
	if r.Recurrence != "" {
		d.Recurrence = r.Recurrence
	}
	return d
}

// TaskQuery holds the list filters from the query string. Tags is a comma
// separated list; Due accepts "today", "overdue" or a YYYY-MM-DD date.
type TaskQuery struct {
	Status   model.Status `form:"status" binding:"omitempty,status"`
	Query    string       `form:"q"`
	Tags     string       `form:"tags"`
	HideDone bool         `form:"hide_done"`
	Due      string       `form:"due"`
	OnBoard  *bool        `form:"on_board"`
}

func (q TaskQuery) Filter(now time.Time) (usecase.TaskFilter, error) {
	f := usecase.TaskFilter{
		Status:   q.Status,
		Query:    q.Query,
		HideDone: q.HideDone,
		OnBoard:  q.OnBoard,
	}
	if q.Tags != "" {
		f.Tags = usecase.ParseManualTags(q.Tags)
	}

	switch strings.ToLower(strings.TrimSpace(q.Due)) {
	case "":
	case "today":
		f.DueBy = &now
	case "overdue":
		y, m, d := now.Date()
		yesterday := time.Date(y, m, d-1, 0, 0, 0, 0, now.Location())
		f.DueBy = &yesterday
	default:
		day, err := time.ParseInLocation(time.DateOnly, q.Due, now.Location())
		if err != nil {
			return f, err
		}
		f.DueBy = &day
	}
	return f, nil
}

type TaskResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Details       string            `json:"details,omitempty"`
	Link          string            `json:"link,omitempty"`
	LinkHost      string            `json:"link_host,omitempty"`
	DueDate       *time.Time        `json:"due_date,omitempty"`
	DueBadge      *usecase.DueBadge `json:"due_badge,omitempty"`
	ScheduledDate *time.Time        `json:"scheduled_date,omitempty"`
	DayOfWeek     *int              `json:"day_of_week,omitempty"`
	DayName       string            `json:"day_name,omitempty"`
	Tags          []string          `json:"tags"`
	IsOnBoard     bool              `json:"is_on_board"`
	Status        model.Status      `json:"status"`
	StatusInfo    model.StatusInfo  `json:"status_info"`
	Recurrence    model.Recurrence  `json:"recurrence"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ToTaskResponse adds the display fields a client would otherwise compute:
// due badge, link host and status styling.
func ToTaskResponse(t *model.Task, now time.Time) TaskResponse {
	resp := TaskResponse{
		ID:            t.ID,
		Title:         t.Title,
		Details:       t.Details,
		Link:          t.Link,
		LinkHost:      LinkHost(t.Link),
		DueDate:       t.DueDate,
		ScheduledDate: t.ScheduledDate,
		DayOfWeek:     t.DayOfWeek,
		Tags:          t.Tags,
		IsOnBoard:     t.IsOnBoard,
		Status:        t.Status,
		StatusInfo:    t.Status.Info(),
		Recurrence:    t.Recurrence,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if t.DueDate != nil && t.Status != model.StatusDone {
		badge := usecase.DueBadgeFor(*t.DueDate, now)
		resp.DueBadge = &badge
	}
	if t.DayOfWeek != nil {
		resp.DayName = model.WeekdayShortName(*t.DayOfWeek)
	}
	return resp
}

func ToTaskResponses(tasks []*model.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskResponse(t, now)
	}
	return out
}

// LinkHost is the link's host without a leading "www.", or "" when there is none.
func LinkHost(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

type StatusChangeResponse struct {
	Task       TaskResponse  `json:"task"`
	Completed  bool          `json:"completed"`
	RolledOver bool          `json:"rolled_over"`
	Next       *TaskResponse `json:"next,omitempty"`
}

func ToStatusChangeResponse(change usecase.StatusChange, now time.Time) StatusChangeResponse {
	resp := StatusChangeResponse{
		Task:       ToTaskResponse(change.Task, now),
		Completed:  change.Completed,
		RolledOver: change.RolledOver,
	}
	if change.Next != nil {
		next := ToTaskResponse(change.Next, now)
		resp.Next = &next
	}
	return resp
}
