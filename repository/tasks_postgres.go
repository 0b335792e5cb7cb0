package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"productivity/model"
	"productivity/utils"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const postgresCollection = "tasks_postgres"

//go:embed migrations/01_create_tasks.up.sql
var createTasksUp string

type PostgresTasksRepo struct {
	log  *slog.Logger
	conn *sqlx.DB
}

// NewPostgresTasksRepo connects through the pgx stdlib driver.
func NewPostgresTasksRepo(log *slog.Logger, dsn string) (*PostgresTasksRepo, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Error("connection problem", "error", err)
		return nil, err
	}
	return &PostgresTasksRepo{log: log, conn: db}, nil
}

func (r *PostgresTasksRepo) Close() error {
	return r.conn.Close()
}

func (r *PostgresTasksRepo) Ping(ctx context.Context) error {
	return r.conn.PingContext(ctx)
}

// Migrate creates the tasks table when missing.
func (r *PostgresTasksRepo) Migrate(ctx context.Context) error {
	r.log.Debug("running tasks migrations")
	if _, err := r.conn.ExecContext(ctx, createTasksUp); err != nil {
		return fmt.Errorf("apply tasks migration: %w", err)
	}
	r.log.Debug("tasks migrations finished")
	return nil
}

type taskRow struct {
	ID            string     `db:"id"`
	Title         string     `db:"title"`
	Details       string     `db:"details"`
	Link          string     `db:"link"`
	DueDate       *time.Time `db:"due_date"`
	ScheduledDate *time.Time `db:"scheduled_date"`
	DayOfWeek     *int       `db:"day_of_week"`
	Tags          []byte     `db:"tags"`
	IsOnBoard     bool       `db:"is_on_board"`
	Status        string     `db:"status"`
	Recurrence    string     `db:"recurrence"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (row taskRow) task() (*model.Task, error) {
	tags := []string{}
	if len(row.Tags) > 0 {
		if err := json.Unmarshal(row.Tags, &tags); err != nil {
			return nil, fmt.Errorf("decode tags of task %s: %w", row.ID, err)
		}
	}
	return &model.Task{
		ID:            row.ID,
		Title:         row.Title,
		Details:       row.Details,
		Link:          row.Link,
		DueDate:       row.DueDate,
		ScheduledDate: row.ScheduledDate,
		DayOfWeek:     row.DayOfWeek,
		Tags:          tags,
		IsOnBoard:     row.IsOnBoard,
		Status:        model.Status(row.Status),
		Recurrence:    model.Recurrence(row.Recurrence),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

func tagsJSON(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

const selectTaskColumns = `
	SELECT id, title, details, link, due_date, scheduled_date, day_of_week,
	       tags, is_on_board, status, recurrence, created_at, updated_at
	FROM tasks`

const insertTaskQuery = `
	INSERT INTO tasks(id, title, details, link, due_date, scheduled_date, day_of_week,
	                  tags, is_on_board, status, recurrence, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11, $12, $13)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTask(ctx context.Context, ex execer, t *model.Task) error {
	tags, err := tagsJSON(t.Tags)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, insertTaskQuery,
		t.ID, t.Title, t.Details, t.Link, t.DueDate, t.ScheduledDate, t.DayOfWeek,
		tags, t.IsOnBoard, string(t.Status), string(t.Recurrence), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return mapWriteError("insert task", err)
	}
	return nil
}

func (r *PostgresTasksRepo) Insert(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("insert", postgresCollection)
	defer timer.ObserveDuration()

	return insertTask(ctx, r.conn, task)
}

// InsertMany writes the batch in one transaction.
func (r *PostgresTasksRepo) InsertMany(ctx context.Context, tasks []*model.Task) error {
	timer := utils.TrackDBOperation("insert_many", postgresCollection)
	defer timer.ObserveDuration()

	tx, err := r.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert tasks: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.log.Error("rollback failed", "error", err)
		}
	}()

	for _, t := range tasks {
		if err := insertTask(ctx, tx, t); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert tasks: %w", err)
	}
	return nil
}

func (r *PostgresTasksRepo) Get(ctx context.Context, id string) (*model.Task, error) {
	timer := utils.TrackDBOperation("find", postgresCollection)
	defer timer.ObserveDuration()

	var row taskRow
	if err := r.conn.GetContext(ctx, &row, selectTaskColumns+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTaskNotFound
		}
		utils.TrackError("database", "task_fetch_failed")
		return nil, fmt.Errorf("get task: %w", err)
	}
	return row.task()
}

func (r *PostgresTasksRepo) Update(ctx context.Context, t *model.Task) error {
	timer := utils.TrackDBOperation("update", postgresCollection)
	defer timer.ObserveDuration()

	tags, err := tagsJSON(t.Tags)
	if err != nil {
		return err
	}

	const q = `
		UPDATE tasks
		SET title = $2, details = $3, link = $4, due_date = $5, scheduled_date = $6,
		    day_of_week = $7, tags = $8::jsonb, is_on_board = $9, status = $10,
		    recurrence = $11, updated_at = $12
		WHERE id = $1`

	res, err := r.conn.ExecContext(ctx, q,
		t.ID, t.Title, t.Details, t.Link, t.DueDate, t.ScheduledDate, t.DayOfWeek,
		tags, t.IsOnBoard, string(t.Status), string(t.Recurrence), t.UpdatedAt)
	if err != nil {
		return mapWriteError("update task", err)
	}
	return affectedOne(res, "update task")
}

func (r *PostgresTasksRepo) Delete(ctx context.Context, id string) error {
	timer := utils.TrackDBOperation("delete", postgresCollection)
	defer timer.ObserveDuration()

	res, err := r.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		utils.TrackError("database", "task_deletion_failed")
		return fmt.Errorf("delete task: %w", err)
	}
	return affectedOne(res, "delete task")
}

// affectedOne turns a write result into ErrTaskNotFound when no row matched.
func affectedOne(res sql.Result, op string) error {
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if aff == 0 {
		return model.ErrTaskNotFound
	}
	return nil
}

func (r *PostgresTasksRepo) All(ctx context.Context) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", postgresCollection)
	defer timer.ObserveDuration()

	var rows []taskRow
	if err := r.conn.SelectContext(ctx, &rows, selectTaskColumns+` ORDER BY created_at ASC, id ASC`); err != nil {
		utils.TrackError("database", "task_fetch_failed")
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]*model.Task, 0, len(rows))
	for _, row := range rows {
		t, err := row.task()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return model.ErrTaskAlreadyExists
	case isCheckViolation(err):
		return fmt.Errorf("%w: %v", model.ErrTaskInvalid, err)
	default:
		utils.TrackError("database", "task_write_failed")
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}
