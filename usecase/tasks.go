package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"productivity/model"
	"productivity/parser"
	"productivity/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type TasksService struct {
	store    TaskStore
	notifier Notifier
	clock    func() time.Time
	log      *slog.Logger
	validate *validator.Validate
}

// NewTasksService wires the orchestrator. A nil notifier drops notices, a
// nil clock uses time.Now and a nil logger uses slog.Default.
func NewTasksService(store TaskStore, notifier Notifier, clock func() time.Time, log *slog.Logger) *TasksService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &TasksService{
		store:    store,
		notifier: notifier,
		clock:    clock,
		log:      log,
		validate: utils.NewValidator(),
	}
}

// CaptureInput is what the quick and bulk capture fields submit. Tags is the
// raw manual tag field, separated by commas or semicolons.
type CaptureInput struct {
	Text   string
	Tags   string
	Status model.Status
}

type (
	QuickAddInput = CaptureInput
	BulkAddInput  = CaptureInput
)

// StatusChange describes the outcome of a status update. On rollover Task is
// the completed instance, which is no longer stored, and Next is its successor.
type StatusChange struct {
	Task       *model.Task `json:"task"`
	Completed  bool        `json:"completed"`
	RolledOver bool        `json:"rolled_over"`
	Next       *model.Task `json:"next,omitempty"`
}

func (svc *TasksService) Now() time.Time {
	return svc.clock()
}

// Preview runs the extractor without saving anything.
func (svc *TasksService) Preview(text string) model.ParsedTaskData {
	return parser.Parse(text, svc.clock())
}

// QuickAdd parses a single line and stores the resulting task on the board.
func (svc *TasksService) QuickAdd(ctx context.Context, in QuickAddInput) (*model.Task, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrEmptyCapture
	}
	status, err := defaultStatus(in.Status)
	if err != nil {
		return nil, err
	}

	now := svc.clock()
	parsed := parser.Parse(text, now)

	title := parsed.CleanTitle
	if title == "" {
		title = text
	}

	// Detected hashtags first, then the manual field. Duplicates stay.
	tags := append(append([]string{}, parsed.Tags...), ParseManualTags(in.Tags)...)

	task := &model.Task{
		ID:         uuid.New().String(),
		Title:      title,
		Link:       parsed.Link,
		DueDate:    parsed.DueDate,
		Tags:       tags,
		IsOnBoard:  true,
		Status:     status,
		Recurrence: parsed.Recurrence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := svc.store.Insert(ctx, task); err != nil {
		return nil, fmt.Errorf("quick add: %w", err)
	}

	utils.TrackCapture("quick", 1)
	svc.log.Info("task captured", "mode", "quick", "id", task.ID, "recurrence", task.Recurrence)
	svc.notify(ctx, model.NoticeAcknowledgment, fmt.Sprintf("Added %q", task.Title))
	return task, nil
}

// BulkAdd turns every non-blank line of in.Text into a task with that line as
// its literal title. All tasks share the manual tags and status.
func (svc *TasksService) BulkAdd(ctx context.Context, in BulkAddInput) ([]*model.Task, error) {
	status, err := defaultStatus(in.Status)
	if err != nil {
		return nil, err
	}
	tags := ParseManualTags(in.Tags)
	now := svc.clock()

	var tasks []*model.Task
	for _, line := range strings.Split(in.Text, "\n") {
		title := strings.TrimSpace(line)
		if title == "" {
			continue
		}
		tasks = append(tasks, &model.Task{
			ID:         uuid.New().String(),
			Title:      title,
			Tags:       append([]string{}, tags...),
			IsOnBoard:  true,
			Status:     status,
			Recurrence: model.RecurrenceNone,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	if len(tasks) == 0 {
		return nil, ErrEmptyCapture
	}

	if err := svc.store.InsertMany(ctx, tasks); err != nil {
		return nil, fmt.Errorf("bulk add: %w", err)
	}

	utils.TrackCapture("bulk", len(tasks))
	svc.log.Info("tasks captured", "mode", "bulk", "count", len(tasks))
	svc.notify(ctx, model.NoticeAcknowledgment, fmt.Sprintf("Added %d tasks", len(tasks)))
	return tasks, nil
}

// ValidateDraft returns the first reason draft cannot be saved, or nil.
func (svc *TasksService) ValidateDraft(draft model.TaskEditorDraft) error {
	if !draft.LinkIsValid() {
		return ErrInvalidLink
	}
	if draft.TrimmedTitle() == "" {
		return ErrTitleRequired
	}
	if draft.Recurrence != model.RecurrenceNone && draft.Recurrence != "" && draft.DayOfWeek == nil {
		return ErrDayOfWeekRequired
	}

	normalized := draft
	if normalized.Status == "" {
		normalized.Status = model.StatusTodo
	}
	if normalized.Recurrence == "" {
		normalized.Recurrence = model.RecurrenceNone
	}
	if err := svc.validate.Struct(normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	return nil
}

// SaveDraft commits the composer. With an existingID the stored task is
// overwritten keeping its id and creation time; otherwise a new task is
// inserted. Nothing is written when validation fails.
func (svc *TasksService) SaveDraft(ctx context.Context, draft model.TaskEditorDraft, existingID string) (*model.Task, error) {
	if err := svc.ValidateDraft(draft); err != nil {
		utils.TrackError("validation", "draft")
		return nil, err
	}
	now := svc.clock()

	if existingID != "" {
		existing, err := svc.store.Get(ctx, existingID)
		if err != nil {
			return nil, err
		}
		task := draft.MakeTask(existing.ID)
		task.CreatedAt = existing.CreatedAt
		task.UpdatedAt = now
		if err := svc.store.Update(ctx, task); err != nil {
			return nil, fmt.Errorf("save draft: %w", err)
		}
		svc.log.Info("task updated", "id", task.ID)
		return task, nil
	}

	task := draft.MakeTask(uuid.New().String())
	task.CreatedAt = now
	task.UpdatedAt = now
	if err := svc.store.Insert(ctx, task); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	utils.TrackCapture("composer", 1)
	svc.log.Info("task captured", "mode", "composer", "id", task.ID)
	return task, nil
}

// UpdateStatus moves a task to status. Completing a recurring task that has
// a due date retires it and stores its next occurrence under a new id.
func (svc *TasksService) UpdateStatus(ctx context.Context, id string, status model.Status) (StatusChange, error) {
	if !status.Valid() {
		return StatusChange{}, ErrInvalidStatus
	}
	task, err := svc.store.Get(ctx, id)
	if err != nil {
		return StatusChange{}, err
	}
	from := task.Status
	now := svc.clock()

	if status == model.StatusDone && task.IsRecurring() && task.DueDate != nil {
		// Stores may hand back UTC; step the calendar in the clock's zone.
		if nextDue, ok := task.Recurrence.NextDueDate(task.DueDate.In(now.Location())); ok {
			return svc.rollover(ctx, task, nextDue, now)
		}
	}

	task.Status = status
	if status != model.StatusTodo && !task.IsOnBoard {
		task.IsOnBoard = true
	}
	task.UpdatedAt = now
	if err := svc.store.Update(ctx, task); err != nil {
		return StatusChange{}, fmt.Errorf("update status: %w", err)
	}

	utils.TrackStatusTransition(string(from), string(status))
	svc.log.Debug("task status changed", "id", task.ID, "from", from, "to", status)

	change := StatusChange{Task: task, Completed: status == model.StatusDone && from != model.StatusDone}
	if change.Completed {
		svc.notify(ctx, model.NoticeCelebration, fmt.Sprintf("Completed %q", task.Title))
	}
	return change, nil
}

func (svc *TasksService) rollover(ctx context.Context, task *model.Task, nextDue, now time.Time) (StatusChange, error) {
	next := &model.Task{
		ID:         uuid.New().String(),
		Title:      task.Title,
		Details:    task.Details,
		Link:       task.Link,
		DueDate:    &nextDue,
		Tags:       append([]string{}, task.Tags...),
		IsOnBoard:  task.IsOnBoard,
		Status:     model.StatusTodo,
		Recurrence: task.Recurrence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if task.DayOfWeek != nil {
		day := *task.DayOfWeek
		next.DayOfWeek = &day
	}

	if err := svc.store.Delete(ctx, task.ID); err != nil {
		return StatusChange{}, fmt.Errorf("rollover: %w", err)
	}
	if err := svc.store.Insert(ctx, next); err != nil {
		// Put the original back so the series is not lost.
		if restoreErr := svc.store.Insert(ctx, task); restoreErr != nil {
			svc.log.Error("failed to restore task after rollover", "id", task.ID, "error", restoreErr)
		}
		return StatusChange{}, fmt.Errorf("rollover: %w", err)
	}

	from := task.Status
	task.Status = model.StatusDone
	task.UpdatedAt = now

	utils.TrackStatusTransition(string(from), string(model.StatusDone))
	utils.TrackRollover(string(task.Recurrence))
	svc.log.Info("recurring task rolled over", "id", task.ID, "next_id", next.ID, "next_due", nextDue)
	svc.notify(ctx, model.NoticeCelebration,
		fmt.Sprintf("Completed %q, next due %s", task.Title, nextDue.Format("Mon, Jan 2")))

	return StatusChange{Task: task, Completed: true, RolledOver: true, Next: next}, nil
}

// Advance steps a task along todo, in progress, done. It is a no-op at done.
func (svc *TasksService) Advance(ctx context.Context, id string) (StatusChange, error) {
	task, err := svc.store.Get(ctx, id)
	if err != nil {
		return StatusChange{}, err
	}
	next, ok := task.Status.Next()
	if !ok {
		return StatusChange{Task: task}, nil
	}
	return svc.UpdateStatus(ctx, id, next)
}

// ToggleBoard flips board membership. Tasks leaving the board go back to todo.
func (svc *TasksService) ToggleBoard(ctx context.Context, id string) (*model.Task, error) {
	task, err := svc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	task.IsOnBoard = !task.IsOnBoard
	if !task.IsOnBoard {
		task.Status = model.StatusTodo
	}
	task.UpdatedAt = svc.clock()
	if err := svc.store.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("toggle board: %w", err)
	}
	return task, nil
}

func (svc *TasksService) Get(ctx context.Context, id string) (*model.Task, error) {
	return svc.store.Get(ctx, id)
}

func (svc *TasksService) Delete(ctx context.Context, id string) error {
	if err := svc.store.Delete(ctx, id); err != nil {
		return err
	}
	svc.log.Info("task deleted", "id", id)
	return nil
}

// List returns the filtered tasks in display order.
func (svc *TasksService) List(ctx context.Context, filter TaskFilter) ([]*model.Task, error) {
	tasks, err := svc.store.All(ctx)
	if err != nil {
		return nil, err
	}
	tasks = FilterTasks(tasks, filter)
	SortTasks(tasks)
	return tasks, nil
}

func (svc *TasksService) Today(ctx context.Context) (TodaySections, error) {
	tasks, err := svc.store.All(ctx)
	if err != nil {
		return TodaySections{}, err
	}
	return TodayView(tasks, svc.clock()), nil
}

func (svc *TasksService) Board(ctx context.Context) (Board, error) {
	tasks, err := svc.store.All(ctx)
	if err != nil {
		return Board{}, err
	}
	return BoardView(tasks, svc.clock()), nil
}

func (svc *TasksService) RecurringWeek(ctx context.Context) ([]WeekdayColumn, error) {
	tasks, err := svc.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return RecurringWeekView(tasks), nil
}

func (svc *TasksService) Summary(ctx context.Context) (Summary, error) {
	tasks, err := svc.store.All(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(tasks), nil
}

// CalendarICS exports one task as an iCalendar document.
func (svc *TasksService) CalendarICS(ctx context.Context, id string) (string, error) {
	task, err := svc.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return BuildTaskICS(task, svc.clock())
}

// Notice returns the banner currently showing, if any.
func (svc *TasksService) Notice(ctx context.Context) (*model.Notice, error) {
	return svc.notifier.Current(ctx)
}

// notify logs Post failures instead of returning them.
func (svc *TasksService) notify(ctx context.Context, kind model.NoticeKind, message string) {
	if err := svc.notifier.Post(ctx, kind, message); err != nil {
		svc.log.Warn("failed to post notice", "kind", kind, "error", err)
	}
}

func defaultStatus(status model.Status) (model.Status, error) {
	if status == "" {
		return model.StatusTodo, nil
	}
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
