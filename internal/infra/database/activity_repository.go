package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const activityColumns = `id, type, subject, description, due_date, completed, lead_id, client_id, user_id, created_at, updated_at`

type ActivityRepository struct {
	DB DBTX
}

func NewActivityRepository(db DBTX) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func scanActivity(s scanner) (*entity.Activity, error) {
	var (
		a                entity.Activity
		due              sql.NullTime
		leadID, clientID sql.NullString
	)
	err := s.Scan(&a.ID, &a.Type, &a.Subject, &a.Description, &due, &a.Completed,
		&leadID, &clientID, &a.UserID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.DueDate = ptrTime(due)
	a.LeadID = ptrString(leadID)
	a.ClientID = ptrString(clientID)
	return &a, nil
}

func (r *ActivityRepository) Create(ctx context.Context, a *entity.Activity) error {
	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID, a.Type, a.Subject, a.Description, a.DueDate, a.Completed,
		a.LeadID, a.ClientID, a.UserID, a.CreatedAt, a.UpdatedAt)
	return mapWriteError(err)
}

func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*entity.Activity, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id)
	a, err := scanActivity(row)
	if err != nil {
		return nil, notFoundOr(err, entity.ErrActivityNotFound)
	}
	return a, nil
}

func (r *ActivityRepository) Update(ctx context.Context, a *entity.Activity) error {
	query := `
		UPDATE activities SET
			type = $2, subject = $3, description = $4, due_date = $5, completed = $6,
			lead_id = $7, client_id = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		a.ID, a.Type, a.Subject, a.Description, a.DueDate, a.Completed, a.LeadID, a.ClientID, a.UpdatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	return checkAffected(res, entity.ErrActivityNotFound)
}

func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, entity.ErrActivityNotFound)
	}
	return checkAffected(res, entity.ErrActivityNotFound)
}

func (r *ActivityRepository) List(ctx context.Context, f entity.ActivityFilter, p entity.Page) ([]*entity.Activity, int, error) {
	var q filter
	if f.LeadID != "" {
		q.add("lead_id = ?", f.LeadID)
	}
	if f.ClientID != "" {
		q.add("client_id = ?", f.ClientID)
	}
	if f.Completed != nil {
		q.add("completed = ?", *f.Completed)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`+q.where(), q.args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	limit, args := q.paginate(p.Limit, p.Offset())
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities`+q.where()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var activities []*entity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, 0, err
		}
		activities = append(activities, a)
	}
	return activities, total, rows.Err()
}
