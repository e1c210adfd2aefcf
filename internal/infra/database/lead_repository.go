package database

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

const leadColumns = `id, first_name, last_name, email, phone, company, job_title, source, status,
	company_size, industry, budget, notes, score, owner_id, updated_by, created_at, updated_at`

type LeadRepository struct {
	DB DBTX
}

func NewLeadRepository(db DBTX) *LeadRepository {
	return &LeadRepository{DB: db}
}

func scanLead(s scanner) (*entity.Lead, error) {
	var (
		l         entity.Lead
		budget    sql.NullFloat64
		updatedBy sql.NullString
	)
	err := s.Scan(
		&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.Phone, &l.Company, &l.JobTitle, &l.Source, &l.Status,
		&l.CompanySize, &l.Industry, &budget, &l.Notes, &l.Score, &l.OwnerID, &updatedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if budget.Valid {
		b := budget.Float64
		l.Budget = &b
	}
	l.UpdatedBy = ptrString(updatedBy)
	return &l, nil
}

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.DB.ExecContext(ctx, query,
		l.ID, l.FirstName, l.LastName, l.Email, l.Phone, l.Company, l.JobTitle, l.Source, l.Status,
		l.CompanySize, l.Industry, l.Budget, l.Notes, l.Score, l.OwnerID, l.UpdatedBy, l.CreatedAt, l.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	l, err := scanLead(row)
	if err != nil {
		return nil, notFoundOr(err, entity.ErrLeadNotFound)
	}
	return l, nil
}

// Update writes the editable fields; score is left alone.
func (r *LeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	query := `
		UPDATE leads SET
			first_name = $2, last_name = $3, email = $4, phone = $5, company = $6, job_title = $7,
			source = $8, status = $9, company_size = $10, industry = $11, budget = $12, notes = $13,
			owner_id = $14, updated_by = $15, updated_at = $16
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		l.ID, l.FirstName, l.LastName, l.Email, l.Phone, l.Company, l.JobTitle,
		l.Source, l.Status, l.CompanySize, l.Industry, l.Budget, l.Notes,
		l.OwnerID, l.UpdatedBy, l.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err)
	}
	return checkAffected(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, entity.ErrLeadNotFound)
	}
	return checkAffected(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) List(ctx context.Context, f entity.LeadFilter, p entity.Page) ([]*entity.Lead, int, error) {
	var q filter
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		q.add("status = ANY(?)", pq.Array(statuses))
	}
	if f.Search != "" {
		q.add("(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR company ILIKE ?)", "%"+f.Search+"%")
	}
	if f.OwnerID != "" {
		q.add("owner_id = ?", f.OwnerID)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`+q.where(), q.args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	limit, args := q.paginate(p.Limit, p.Offset())
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads`+q.where()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, l)
	}
	return leads, total, rows.Err()
}

func (r *LeadRepository) UpdateScore(ctx context.Context, id string, score int, updatedBy *string) error {
	query := `
		UPDATE leads SET score = $2, updated_by = COALESCE($3, updated_by), updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, id, score, updatedBy)
	if err != nil {
		return notFoundOr(err, entity.ErrLeadNotFound)
	}
	return checkAffected(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return notFoundOr(err, entity.ErrLeadNotFound)
	}
	return checkAffected(res, entity.ErrLeadNotFound)
}
