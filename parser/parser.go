// Package parser turns a line of free text into a structured task capture.
//
// Extraction is best effort and runs in a fixed order: recurrence phrase,
// link, hashtags, time of day, relative date, "next <weekday>". Every step
// removes what it matched before the next one runs, and whatever is left
// becomes the title.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"productivity/model"
)

type recurrenceRule struct {
	pattern    *regexp.Regexp
	recurrence model.Recurrence
}

var recurrenceRules = []recurrenceRule{
	{regexp.MustCompile(`(?i)\b(?:every\s+day|daily)\b`), model.RecurrenceDaily},
	{regexp.MustCompile(`(?i)\b(?:every\s+week|weekly)\b`), model.RecurrenceWeekly},
	{regexp.MustCompile(`(?i)\b(?:every\s+month|monthly)\b`), model.RecurrenceMonthly},
}

var (
	linkPattern = regexp.MustCompile(`(?i)\b(?:[a-z][a-z0-9+.\-]*://[^\s]+|www\.[^\s]+|(?:[a-z0-9](?:[a-z0-9\-]*[a-z0-9])?\.)+[a-z]{2,24}\b(?:/[^\s]*)?)`)

	hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

	timePattern = regexp.MustCompile(`(?i)\b(at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
)

type dateRule struct {
	pattern *regexp.Regexp
	offset  func(match []string) (int, bool)
}

func fixedOffset(days int) func([]string) (int, bool) {
	return func([]string) (int, bool) { return days, true }
}

var dateRules = []dateRule{
	{regexp.MustCompile(`(?i)\btoday\b`), fixedOffset(0)},
	{regexp.MustCompile(`(?i)\btomorrow\b`), fixedOffset(1)},
	{regexp.MustCompile(`(?i)\bnext\s+week\b`), fixedOffset(7)},
	{regexp.MustCompile(`(?i)\bin\s+(\d+)\s+days?\b`), func(m []string) (int, bool) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return n, true
	}},
}

type weekdayRule struct {
	pattern   *regexp.Regexp
	dayOfWeek int
}

// Checked Monday first; dayOfWeek uses 1=Sunday.
var weekdayRules = []weekdayRule{
	{regexp.MustCompile(`(?i)\bnext\s+monday\b`), 2},
	{regexp.MustCompile(`(?i)\bnext\s+tuesday\b`), 3},
	{regexp.MustCompile(`(?i)\bnext\s+wednesday\b`), 4},
	{regexp.MustCompile(`(?i)\bnext\s+thursday\b`), 5},
	{regexp.MustCompile(`(?i)\bnext\s+friday\b`), 6},
	{regexp.MustCompile(`(?i)\bnext\s+saturday\b`), 7},
	{regexp.MustCompile(`(?i)\bnext\s+sunday\b`), 1},
}

// Characters trimmed off the end of a detected link.
const linkTrailingPunct = ".,;:!?)]}'\""

type clock struct {
	hour, minute int
	text         string
}

// Parse extracts recurrence, link, hashtags, due date and a clean title from
// input. now anchors relative dates and supplies the location. Parse never
// fails; anything it cannot recognise stays in the title.
func Parse(input string, now time.Time) model.ParsedTaskData {
	out := model.ParsedTaskData{
		Tags:       []string{},
		Recurrence: model.RecurrenceNone,
	}
	text := input

	for _, rule := range recurrenceRules {
		loc := rule.pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		out.Recurrence = rule.recurrence
		out.DetectedRecurrenceText = text[loc[0]:loc[1]]
		text = cut(text, loc[0], loc[1])
		break
	}

	for _, loc := range linkPattern.FindAllStringIndex(text, -1) {
		candidate := strings.TrimRight(text[loc[0]:loc[1]], linkTrailingPunct)
		if candidate == "" || inEmailAddress(text, loc[0], loc[0]+len(candidate)) {
			continue
		}
		link, ok := resolveLink(candidate)
		if !ok {
			continue
		}
		out.Link = link
		text = cut(text, loc[0], loc[0]+len(candidate))
		break
	}

	if matches := hashtagPattern.FindAllStringSubmatchIndex(text, -1); len(matches) > 0 {
		for _, m := range matches {
			out.Tags = append(out.Tags, text[m[2]:m[3]])
		}
		for i := len(matches) - 1; i >= 0; i-- {
			text = cut(text, matches[i][0], matches[i][1])
		}
	}

	// A time only counts when a date phrase is found to merge it into.
	beforeTime := text
	var tod *clock
	for _, m := range timePattern.FindAllStringSubmatchIndex(text, -1) {
		c, ok := clockFromMatch(text, m)
		if !ok {
			continue
		}
		tod = &c
		text = cut(text, m[0], m[1])
		break
	}

	today := startOfDay(now)
	dateFound := false

	for _, rule := range dateRules {
		m := rule.pattern.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		groups := submatches(text, m)
		offset, ok := rule.offset(groups)
		if !ok {
			continue
		}
		due := withClock(today.AddDate(0, 0, offset), tod)
		out.DueDate = &due
		out.DetectedDateText = detectedText(groups[0], tod)
		text = cut(text, m[0], m[1])
		dateFound = true
		break
	}

	if !dateFound {
		for _, rule := range weekdayRules {
			loc := rule.pattern.FindStringIndex(text)
			if loc == nil {
				continue
			}
			due := withClock(weekdayOfNextWeek(today, rule.dayOfWeek), tod)
			out.DueDate = &due
			out.DetectedDateText = detectedText(text[loc[0]:loc[1]], tod)
			text = cut(text, loc[0], loc[1])
			dateFound = true
			break
		}
	}

	if !dateFound && tod != nil {
		text = beforeTime
	}

	out.CleanTitle = collapseSpaces(text)
	return out
}

func clockFromMatch(text string, m []int) (clock, bool) {
	hasAt := m[2] >= 0
	hour, err := strconv.Atoi(text[m[4]:m[5]])
	if err != nil {
		return clock{}, false
	}
	minute := 0
	hasMinutes := m[6] >= 0
	if hasMinutes {
		if minute, err = strconv.Atoi(text[m[6]:m[7]]); err != nil {
			return clock{}, false
		}
	}
	meridiem := ""
	if m[8] >= 0 {
		meridiem = strings.ToLower(text[m[8]:m[9]])
	}

	// A bare number is only a time when something marks it as one.
	if !hasAt && !hasMinutes && meridiem == "" {
		return clock{}, false
	}
	if minute > 59 {
		return clock{}, false
	}

	switch meridiem {
	case "am":
		if hour < 1 || hour > 12 {
			return clock{}, false
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return clock{}, false
		}
		if hour < 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return clock{}, false
		}
	}

	return clock{hour: hour, minute: minute, text: strings.TrimSpace(text[m[0]:m[1]])}, true
}

// weekdayOfNextWeek returns dayOfWeek (1=Sunday) inside the Sunday-first
// calendar week following the one containing today.
func weekdayOfNextWeek(today time.Time, dayOfWeek int) time.Time {
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	return weekStart.AddDate(0, 0, 7+dayOfWeek-1)
}

func withClock(day time.Time, c *clock) time.Time {
	if c == nil {
		return day
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, c.hour, c.minute, 0, 0, day.Location())
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func detectedText(phrase string, c *clock) string {
	if c == nil {
		return phrase
	}
	return phrase + " " + c.text
}

func submatches(text string, m []int) []string {
	out := make([]string, len(m)/2)
	for i := range out {
		if m[2*i] >= 0 {
			out[i] = text[m[2*i]:m[2*i+1]]
		}
	}
	return out
}

// cut removes text[start:end], leaving a space so neighbours do not fuse.
func cut(text string, start, end int) string {
	return text[:start] + " " + text[end:]
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// inEmailAddress reports whether text[start:end] is part of a bare email
// address, i.e. its whitespace-delimited word has an '@' and no scheme.
func inEmailAddress(text string, start, end int) bool {
	wordStart := strings.LastIndexAny(text[:start], " \t\n") + 1
	wordEnd := len(text)
	if i := strings.IndexAny(text[end:], " \t\n"); i >= 0 {
		wordEnd = end + i
	}
	word := text[wordStart:wordEnd]
	return strings.Contains(word, "@") && !strings.Contains(word, "://")
}

func resolveLink(candidate string) (string, bool) {
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	return model.ResolveLink(candidate)
}
