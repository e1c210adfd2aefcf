package database

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const contactColumns = `id, client_id, first_name, last_name, email, phone, position, is_primary, created_at, updated_at`

type ContactRepository struct {
	DB DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{DB: db}
}

func scanContact(s scanner) (*entity.Contact, error) {
	var c entity.Contact
	err := s.Scan(&c.ID, &c.ClientID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Position,
		&c.IsPrimary, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.ClientID, c.FirstName, c.LastName, c.Email, c.Phone, c.Position, c.IsPrimary, c.CreatedAt, c.UpdatedAt)
	return mapWriteError(err)
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	c, err := scanContact(row)
	if err != nil {
		return nil, notFoundOr(err, entity.ErrContactNotFound)
	}
	return c, nil
}

func (r *ContactRepository) Update(ctx context.Context, c *entity.Contact) error {
	query := `
		UPDATE contacts SET
			client_id = $2, first_name = $3, last_name = $4, email = $5, phone = $6,
			position = $7, is_primary = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		c.ID, c.ClientID, c.FirstName, c.LastName, c.Email, c.Phone, c.Position, c.IsPrimary, c.UpdatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	return checkAffected(res, entity.ErrContactNotFound)
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, entity.ErrContactNotFound)
	}
	return checkAffected(res, entity.ErrContactNotFound)
}

func (r *ContactRepository) List(ctx context.Context, clientID string, p entity.Page) ([]*entity.Contact, int, error) {
	var q filter
	if clientID != "" {
		q.add("client_id = ?", clientID)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`+q.where(), q.args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	limit, args := q.paginate(p.Limit, p.Offset())
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts`+q.where()+` ORDER BY is_primary DESC, created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contacts []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}
