package model

import "time"

// ParsedTaskData is what the capture parser pulled out of a line of free text.
type ParsedTaskData struct {
	CleanTitle             string     `json:"clean_title"`
	DueDate                *time.Time `json:"due_date,omitempty"`
	Tags                   []string   `json:"tags"`
	Link                   string     `json:"link,omitempty"`
	Recurrence             Recurrence `json:"recurrence"`
	DetectedDateText       string     `json:"detected_date_text,omitempty"`
	DetectedRecurrenceText string     `json:"detected_recurrence_text,omitempty"`
}

// HasDetections reports whether any preview chip would be shown for the parse.
func (p ParsedTaskData) HasDetections() bool {
	return p.DetectedDateText != "" ||
		(p.Recurrence != RecurrenceNone && p.Recurrence != "") ||
		len(p.Tags) > 0 ||
		p.Link != ""
}
