package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const clientColumns = `id, name, email, phone, company, industry, address, website, status, lead_id, owner_id, created_at, updated_at`

type ClientRepository struct {
	DB DBTX
}

func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{DB: db}
}

func scanClient(s scanner) (*entity.Client, error) {
	var (
		c      entity.Client
		leadID sql.NullString
	)
	err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Industry, &c.Address, &c.Website,
		&c.Status, &leadID, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.LeadID = ptrString(leadID)
	return &c, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Industry, c.Address, c.Website,
		c.Status, c.LeadID, c.OwnerID, c.CreatedAt, c.UpdatedAt)
	return mapWriteError(err)
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		return nil, notFoundOr(err, entity.ErrClientNotFound)
	}
	return c, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET
			name = $2, email = $3, phone = $4, company = $5, industry = $6, address = $7,
			website = $8, status = $9, owner_id = $10, updated_at = $11
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Industry, c.Address, c.Website, c.Status, c.OwnerID, c.UpdatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	return checkAffected(res, entity.ErrClientNotFound)
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, entity.ErrClientNotFound)
	}
	return checkAffected(res, entity.ErrClientNotFound)
}

func (r *ClientRepository) List(ctx context.Context, f entity.ClientFilter, p entity.Page) ([]*entity.Client, int, error) {
	var q filter
	if f.Status != "" {
		q.add("status = ?", f.Status)
	}
	if f.Search != "" {
		q.add("(name ILIKE ? OR email ILIKE ? OR company ILIKE ?)", "%"+f.Search+"%")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`+q.where(), q.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := q.paginate(p.Limit, p.Offset())
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients`+q.where()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var clients []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, total, rows.Err()
}
