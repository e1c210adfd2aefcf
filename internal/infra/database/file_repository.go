package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const fileColumns = `id, name, mime_type, size_bytes, storage_path, lead_id, client_id, uploaded_by, created_at`

type FileRepository struct {
	DB DBTX
}

func NewFileRepository(db DBTX) *FileRepository {
	return &FileRepository{DB: db}
}

func scanFile(s scanner) (*entity.File, error) {
	var (
		f                entity.File
		leadID, clientID sql.NullString
	)
	err := s.Scan(&f.ID, &f.Name, &f.MimeType, &f.SizeBytes, &f.StoragePath, &leadID, &clientID, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	f.LeadID = ptrString(leadID)
	f.ClientID = ptrString(clientID)
	return &f, nil
}

func (r *FileRepository) Create(ctx context.Context, f *entity.File) error {
	query := `
		INSERT INTO files (` + fileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		f.ID, f.Name, f.MimeType, f.SizeBytes, f.StoragePath, f.LeadID, f.ClientID, f.UploadedBy, f.CreatedAt)
	return mapWriteError(err)
}

func (r *FileRepository) FindByID(ctx context.Context, id string) (*entity.File, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM files WHERE id = $1`, id)
	f, err := scanFile(row)
	if err != nil {
		return nil, notFoundOr(err, entity.ErrFileNotFound)
	}
	return f, nil
}

func (r *FileRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, entity.ErrFileNotFound)
	}
	return checkAffected(res, entity.ErrFileNotFound)
}

func (r *FileRepository) List(ctx context.Context, f entity.FileFilter, p entity.Page) ([]*entity.File, int, error) {
	var q filter
	if f.LeadID != "" {
		q.add("lead_id = ?", f.LeadID)
	}
	if f.ClientID != "" {
		q.add("client_id = ?", f.ClientID)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`+q.where(), q.args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	limit, args := q.paginate(p.Limit, p.Offset())
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+fileColumns+` FROM files`+q.where()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var files []*entity.File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, 0, err
		}
		files = append(files, file)
	}
	return files, total, rows.Err()
}
