package entity

import (
	"context"
	"time"
)

// File is the metadata row for an uploaded document; the bytes live in storage.
type File struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MimeType    string    `json:"mimeType"`
	SizeBytes   int64     `json:"sizeBytes"`
	StoragePath string    `json:"-"`
	LeadID      *string   `json:"leadId,omitempty"`
	ClientID    *string   `json:"clientId,omitempty"`
	UploadedBy  string    `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type FileFilter struct {
	LeadID   string
	ClientID string
}

type FileRepositoryInterface interface {
	Create(ctx context.Context, f *File) error
	FindByID(ctx context.Context, id string) (*File, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f FileFilter, p Page) ([]*File, int, error)
}
