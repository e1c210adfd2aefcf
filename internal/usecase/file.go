package usecase

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

type FileUseCase struct {
	Files   entity.FileRepositoryInterface
	Storage FileStorage
	Log     logger.Logger
}

func NewFileUseCase(files entity.FileRepositoryInterface, storage FileStorage, log logger.Logger) *FileUseCase {
	return &FileUseCase{Files: files, Storage: storage, Log: log}
}

// Upload writes the bytes and then the metadata row; a failed insert removes the stored file.
func (uc *FileUseCase) Upload(ctx context.Context, input UploadFileInput, r io.Reader, actor entity.Identity) (*entity.File, error) {
	name := filepath.Base(strings.TrimSpace(input.Name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, invalid(ValidationError{"file", "is required"})
	}
	mime := input.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}

	f := &entity.File{
		ID:         uuid.New().String(),
		Name:       name,
		MimeType:   mime,
		LeadID:     optionalID(input.LeadID),
		ClientID:   optionalID(input.ClientID),
		UploadedBy: actor.UserID,
		CreatedAt:  time.Now(),
	}

	tx := NewTransaction(uc.Log)
	tx.AddStep("store_file", func(ctx context.Context) error {
		path, size, err := uc.Storage.Save(ctx, f.ID+"_"+name, r)
		if err != nil {
			return err
		}
		f.StoragePath, f.SizeBytes = path, size
		return nil
	}, func(ctx context.Context) error {
		return uc.Storage.Remove(f.StoragePath)
	})
	tx.AddStep("insert_metadata", func(ctx context.Context) error {
		return uc.Files.Create(ctx, f)
	}, nil)

	if err := tx.Execute(ctx); err != nil {
		if f.StoragePath == "" {
			return nil, &TechnicalError{Code: CodeStorage, Message: "failed to store file", Err: err}
		}
		return nil, repoError(err, entity.ErrFileNotFound, CodeFileNotFound, "failed to save file metadata")
	}
	return f, nil
}

func (uc *FileUseCase) Get(ctx context.Context, id string) (*entity.File, error) {
	f, err := uc.Files.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entity.ErrFileNotFound, CodeFileNotFound, "failed to load file")
	}
	return f, nil
}

// Open returns the metadata and a reader the caller must close.
func (uc *FileUseCase) Open(ctx context.Context, id string) (*entity.File, io.ReadCloser, error) {
	f, err := uc.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := uc.Storage.Open(f.StoragePath)
	if err != nil {
		return nil, nil, &TechnicalError{Code: CodeStorage, Message: "failed to open file", Err: err}
	}
	return f, rc, nil
}

func (uc *FileUseCase) Delete(ctx context.Context, id string) error {
	f, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.Files.Delete(ctx, id); err != nil {
		return repoError(err, entity.ErrFileNotFound, CodeFileNotFound, "failed to delete file")
	}
	if err := uc.Storage.Remove(f.StoragePath); err != nil {
		uc.Log.Warn("stored file not removed", map[string]interface{}{"file_id": id, "error": err})
	}
	return nil
}

func (uc *FileUseCase) List(ctx context.Context, f entity.FileFilter, p entity.Page) (entity.PageResult[*entity.File], error) {
	items, total, err := uc.Files.List(ctx, f, p)
	if err != nil {
		return entity.PageResult[*entity.File]{}, dbError("failed to list files", err)
	}
	return entity.NewPageResult(items, total, p), nil
}
