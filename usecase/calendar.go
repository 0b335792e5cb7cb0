package usecase

import (
	"fmt"
	"strings"
	"time"

	"productivity/model"
)

const (
	icsDateLayout     = "20060102"
	icsDateTimeLayout = "20060102T150405Z"
)

// BuildTaskICS builds an iCalendar event for a task. A due date at local
// midnight becomes an all-day event; any other due time becomes a one hour
// event starting then.
func BuildTaskICS(t *model.Task, now time.Time) (string, error) {
	if t.DueDate == nil {
		return "", ErrDueDateRequired
	}
	due := *t.DueDate

	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "Task"
	}

	uid := fmt.Sprintf("task-%s@productivity", strings.TrimSpace(t.ID))
	if strings.TrimSpace(t.ID) == "" {
		uid = fmt.Sprintf("task-export-%d@productivity", now.UnixNano())
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Productivity//Task Export//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + escapeICSText(uid),
		"DTSTAMP:" + now.UTC().Format(icsDateTimeLayout),
		"SUMMARY:" + escapeICSText(title),
	}

	if isMidnight(due) {
		lines = append(lines,
			"DTSTART;VALUE=DATE:"+due.Format(icsDateLayout),
			"DTEND;VALUE=DATE:"+due.AddDate(0, 0, 1).Format(icsDateLayout),
		)
	} else {
		lines = append(lines,
			"DTSTART:"+due.UTC().Format(icsDateTimeLayout),
			"DTEND:"+due.Add(time.Hour).UTC().Format(icsDateTimeLayout),
		)
	}

	if desc := strings.TrimSpace(t.Details); desc != "" {
		lines = append(lines, "DESCRIPTION:"+escapeICSText(desc))
	}
	if t.Link != "" {
		lines = append(lines, "URL:"+t.Link)
	}
	if len(t.Tags) > 0 {
		escaped := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			escaped[i] = escapeICSText(tag)
		}
		lines = append(lines, "CATEGORIES:"+strings.Join(escaped, ","))
	}
	if rrule := recurrenceToRRULE(t.Recurrence); rrule != "" {
		lines = append(lines, "RRULE:"+rrule)
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR", "")

	return strings.Join(lines, "\r\n"), nil
}

func recurrenceToRRULE(r model.Recurrence) string {
	switch r {
	case model.RecurrenceDaily:
		return "FREQ=DAILY;INTERVAL=1"
	case model.RecurrenceWeekly:
		return "FREQ=WEEKLY;INTERVAL=1"
	case model.RecurrenceMonthly:
		return "FREQ=MONTHLY;INTERVAL=1"
	default:
		return ""
	}
}

func isMidnight(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}
