package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/response"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type FileHandler struct {
	FileUC         *usecase.FileUseCase
	MaxUploadBytes int64
	Log            logger.Logger
}

func NewFileHandler(uc *usecase.FileUseCase, maxUploadBytes int64, log logger.Logger) *FileHandler {
	return &FileHandler{FileUC: uc, MaxUploadBytes: maxUploadBytes, Log: log}
}

// Upload expects multipart/form-data with "file" and optional "leadId"/"clientId".
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(w, http.StatusRequestEntityTooLarge, usecase.CodeValidation, "file too large",
				fmt.Sprintf("maximum upload size is %d bytes", h.MaxUploadBytes))
			return
		}
		response.Fail(w, http.StatusBadRequest, usecase.CodeValidation, "invalid multipart form", err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	src, header, err := r.FormFile("file")
	if err != nil {
		response.Fail(w, http.StatusBadRequest, usecase.CodeValidation, "validation failed", "file: is required")
		return
	}
	defer src.Close()

	input := usecase.UploadFileInput{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		LeadID:   r.FormValue("leadId"),
		ClientID: r.FormValue("clientId"),
	}
	f, err := h.FileUC.Upload(r.Context(), input, src, id)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusCreated, "file uploaded", f)
}

func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	f, err := h.FileUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "file found", f)
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	f, rc, err := h.FileUC.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", f.MimeType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	if f.SizeBytes > 0 {
		w.Header().Set("Content-Length", fmt.Sprint(f.SizeBytes))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.Log.Warn("download interrupted", map[string]interface{}{"file_id": f.ID, "error": err})
	}
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.FileUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "file deleted", nil)
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := entity.FileFilter{LeadID: q.Get("leadId"), ClientID: q.Get("clientId")}
	res, err := h.FileUC.List(r.Context(), f, pageFrom(r))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "files", res)
}
