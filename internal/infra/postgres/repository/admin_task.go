package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
	"github.com/aliskhannn/cp31-tracker/internal/infra/postgres"
)

const adminTaskColumns = `id, problem_link, problem_name, topic, difficulty, platform, date_added, notes`

// AdminTaskRepository provides access to the admin daily tasks.
type AdminTaskRepository struct {
	db postgres.DBTX
}

func NewAdminTaskRepository(db postgres.DBTX) *AdminTaskRepository {
	return &AdminTaskRepository{db: db}
}

// List returns all tasks, newest first.
func (r *AdminTaskRepository) List(ctx context.Context) ([]entities.AdminTask, error) {
	query := `SELECT ` + adminTaskColumns + ` FROM admin_tasks ORDER BY date_added DESC, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list admin tasks: %w", err)
	}
	defer rows.Close()

	var tasks []entities.AdminTask
	for rows.Next() {
		task, err := scanAdminTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin task: %w", err)
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

// Get retrieves a task by ID.
func (r *AdminTaskRepository) Get(ctx context.Context, id string) (*entities.AdminTask, error) {
	query := `SELECT ` + adminTaskColumns + ` FROM admin_tasks WHERE id = $1`

	task, err := scanAdminTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get admin task: %w", err)
	}

	return task, nil
}

// Create stores a new task.
func (r *AdminTaskRepository) Create(ctx context.Context, task *entities.AdminTask) error {
	query := `
		INSERT INTO admin_tasks (` + adminTaskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(
		ctx, query,
		task.ID,
		task.ProblemLink,
		task.ProblemName,
		task.Topic,
		string(task.Difficulty),
		string(task.Platform),
		task.DateAdded,
		task.Notes,
	)
	if err != nil {
		return fmt.Errorf("create admin task: %w", err)
	}

	return nil
}

// Update replaces the mutable fields of an existing task.
func (r *AdminTaskRepository) Update(ctx context.Context, task *entities.AdminTask) error {
	query := `
		UPDATE admin_tasks SET
			problem_link = $2,
			problem_name = $3,
			topic = $4,
			difficulty = $5,
			platform = $6,
			notes = $7
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx, query,
		task.ID,
		task.ProblemLink,
		task.ProblemName,
		task.Topic,
		string(task.Difficulty),
		string(task.Platform),
		task.Notes,
	)
	if err != nil {
		return fmt.Errorf("update admin task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

// Delete removes a task by ID.
func (r *AdminTaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM admin_tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admin task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}

func scanAdminTask(row pgx.Row) (*entities.AdminTask, error) {
	var (
		task       entities.AdminTask
		difficulty string
		platform   string
	)

	err := row.Scan(
		&task.ID,
		&task.ProblemLink,
		&task.ProblemName,
		&task.Topic,
		&difficulty,
		&platform,
		&task.DateAdded,
		&task.Notes,
	)
	if err != nil {
		return nil, err
	}

	task.Difficulty = entities.Difficulty(difficulty)
	task.Platform = entities.Platform(platform)
	return &task, nil
}
