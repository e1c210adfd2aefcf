package database

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

const taskColumns = `id, title, description, due_date, priority, status, lead_id, interaction_id,
	assigned_to, created_by, created_at, updated_at`

type TaskRepository struct {
	DB DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{DB: db}
}

func scanTask(s scanner) (*entity.Task, error) {
	var (
		t                     entity.Task
		due                   sql.NullTime
		leadID, interactionID sql.NullString
	)
	err := s.Scan(&t.ID, &t.Title, &t.Description, &due, &t.Priority, &t.Status, &leadID, &interactionID,
		&t.AssignedTo, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.DueDate = ptrTime(due)
	t.LeadID = ptrString(leadID)
	t.InteractionID = ptrString(interactionID)
	return &t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.DueDate, t.Priority, t.Status, t.LeadID, t.InteractionID,
		t.AssignedTo, t.CreatedBy, t.CreatedAt, t.UpdatedAt)
	return mapWriteError(err)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFoundOr(err, entity.ErrTaskNotFound)
	}
	return t, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	query := `
		UPDATE tasks SET
			title = $2, description = $3, due_date = $4, priority = $5, status = $6,
			lead_id = $7, assigned_to = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.DueDate, t.Priority, t.Status, t.LeadID, t.AssignedTo, t.UpdatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	return checkAffected(res, entity.ErrTaskNotFound)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, entity.ErrTaskNotFound)
	}
	return checkAffected(res, entity.ErrTaskNotFound)
}

func (r *TaskRepository) List(ctx context.Context, f entity.TaskFilter, p entity.Page) ([]*entity.Task, int, error) {
	var q filter
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		q.add("status = ANY(?)", pq.Array(statuses))
	}
	if f.AssignedTo != "" {
		q.add("assigned_to = ?", f.AssignedTo)
	}
	if f.LeadID != "" {
		q.add("lead_id = ?", f.LeadID)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`+q.where(), q.args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	limit, args := q.paginate(p.Limit, p.Offset())
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks`+q.where()+` ORDER BY due_date ASC NULLS LAST, created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}
