package services

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"productivity/model"
	"productivity/usecase"

	"gopkg.in/yaml.v3"
)

//go:embed seed/sample.yaml
var sampleSeed []byte

// SeedTask is one entry of a seed file. An entry with Capture goes through
// quick add; anything else is saved through the composer.
type SeedTask struct {
	Capture    string   `yaml:"capture"`
	Title      string   `yaml:"title"`
	Details    string   `yaml:"details"`
	Link       string   `yaml:"link"`
	DueInDays  *int     `yaml:"due_in_days"`
	DueTime    string   `yaml:"due_time"`
	DayOfWeek  *int     `yaml:"day_of_week"`
	Tags       []string `yaml:"tags"`
	OnBoard    *bool    `yaml:"on_board"`
	Status     string   `yaml:"status"`
	Recurrence string   `yaml:"recurrence"`
}

type SeedFile struct {
	Tasks []SeedTask `yaml:"tasks"`
}

func ParseSeed(r io.Reader) (SeedFile, error) {
	var seed SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return SeedFile{}, nil
		}
		return SeedFile{}, fmt.Errorf("parse seed: %w", err)
	}
	return seed, nil
}

// LoadSeed reads path, or the bundled sample when path is empty.
func LoadSeed(path string) (SeedFile, error) {
	if path == "" {
		return ParseSeed(strings.NewReader(string(sampleSeed)))
	}
	f, err := os.Open(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return ParseSeed(f)
}

// Draft converts a composer entry into an editor draft. Relative due dates
// are counted from the start of now's day.
func (s SeedTask) Draft(now time.Time) (model.TaskEditorDraft, error) {
	d := model.NewDraft()
	d.Title = s.Title
	d.Details = s.Details
	d.Link = s.Link
	d.Tags = s.Tags
	d.DayOfWeek = s.DayOfWeek
	if s.OnBoard != nil {
		d.IsOnBoard = *s.OnBoard
	}
	if s.Status != "" {
		d.Status = model.Status(s.Status)
	}
	if s.Recurrence != "" {
		d.Recurrence = model.Recurrence(s.Recurrence)
	}

	if s.DueInDays != nil {
		hour, minute := 0, 0
		if s.DueTime != "" {
			clock, err := time.Parse("15:04", s.DueTime)
			if err != nil {
				return d, fmt.Errorf("seed task %q: due_time must be HH:MM", s.Title)
			}
			hour, minute = clock.Hour(), clock.Minute()
		}
		y, m, day := now.Date()
		d.HasDueDate = true
		d.DueDate = time.Date(y, m, day+*s.DueInDays, hour, minute, 0, 0, now.Location())
	}
	return d, nil
}

// ApplySeed stores every seed entry and returns how many tasks were created.
// It stops at the first entry that fails.
func ApplySeed(ctx context.Context, svc *usecase.TasksService, seed SeedFile) (int, error) {
	created := 0
	for i, entry := range seed.Tasks {
		if entry.Capture != "" {
			if _, err := svc.QuickAdd(ctx, usecase.QuickAddInput{
				Text: entry.Capture,
				Tags: strings.Join(entry.Tags, ","),
			}); err != nil {
				return created, fmt.Errorf("seed entry %d: %w", i+1, err)
			}
			created++
			continue
		}

		draft, err := entry.Draft(svc.Now())
		if err != nil {
			return created, err
		}
		if _, err := svc.SaveDraft(ctx, draft, ""); err != nil {
			return created, fmt.Errorf("seed entry %d: %w", i+1, err)
		}
		created++
	}
	return created, nil
}
