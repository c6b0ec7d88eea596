package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the persistence port for filing tasks.
type Repository interface {
	Insert(ctx context.Context, t Task) (Task, error)
	Get(ctx context.Context, id uuid.UUID) (Task, error)
	List(ctx context.Context, f ListFilter) ([]Task, int, error)
	Update(ctx context.Context, t Task) (Task, error)
	ListOpenDueBefore(ctx context.Context, asOf time.Time) ([]Task, error)
	ListOpenQueries(ctx context.Context) ([]Task, error)
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const taskColumns = `id, client_id, title, category, service_type, fy_code, quarter, due_date, stage, status, query_raised_at, reminders_sent, created_at, updated_at`

func scanTask(row pgx.Row) (Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.ClientID, &t.Title, &t.Category, &t.ServiceType,
		&t.FYCode, &t.Quarter, &t.DueDate, &t.Stage, &t.Status,
		&t.QueryRaisedAt, &t.RemindersSent, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *pgRepository) Insert(ctx context.Context, t Task) (Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, client_id, title, category, service_type, fy_code, quarter, due_date, stage, status, reminders_sent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+taskColumns,
		t.ID, t.ClientID, t.Title, t.Category, t.ServiceType, t.FYCode, t.Quarter, t.DueDate, t.Stage, t.Status, t.RemindersSent)
	out, err := scanTask(row)
	if err != nil {
		return Task{}, fmt.Errorf("tasks: insert: %w", err)
	}
	return out, nil
}

func (r *pgRepository) Get(ctx context.Context, id uuid.UUID) (Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("tasks: get: %w", err)
	}
	return t, nil
}

func (r *pgRepository) List(ctx context.Context, f ListFilter) ([]Task, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.ClientID != nil {
		where += ` AND client_id = ` + arg(*f.ClientID)
	}
	if f.Category != nil {
		where += ` AND category = ` + arg(*f.Category)
	}
	if f.Status != nil {
		where += ` AND status = ` + arg(*f.Status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM tasks`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("tasks: count: %w", err)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks` + where +
		` ORDER BY due_date ASC LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("tasks: list: %w", err)
	}
	defer rows.Close()

	out := make([]Task, 0, f.Limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("tasks: scan: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("tasks: rows: %w", err)
	}
	return out, total, nil
}

func (r *pgRepository) Update(ctx context.Context, t Task) (Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $2, stage = $3, status = $4, query_raised_at = $5, reminders_sent = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+taskColumns,
		t.ID, t.Title, t.Stage, t.Status, t.QueryRaisedAt, t.RemindersSent)
	out, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("tasks: update: %w", err)
	}
	return out, nil
}

func (r *pgRepository) ListOpenDueBefore(ctx context.Context, asOf time.Time) ([]Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE status = $1 AND due_date < $2
		ORDER BY due_date ASC`, StatusOpen, asOf)
	if err != nil {
		return nil, fmt.Errorf("tasks: list overdue: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *pgRepository) ListOpenQueries(ctx context.Context) ([]Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE status = $1 AND query_raised_at IS NOT NULL
		ORDER BY query_raised_at ASC`, StatusOpen)
	if err != nil {
		return nil, fmt.Errorf("tasks: list queries: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func collectTasks(rows pgx.Rows) ([]Task, error) {
	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("tasks: scan: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tasks: rows: %w", err)
	}
	return out, nil
}
