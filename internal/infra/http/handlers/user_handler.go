package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/infra/http/response"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type UserHandler struct {
	UserUC *usecase.UserUseCase
	Log    logger.Logger
}

func NewUserHandler(uc *usecase.UserUseCase, log logger.Logger) *UserHandler {
	return &UserHandler{UserUC: uc, Log: log}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateUserInput
	if !decodeJSON(w, r, &input) {
		return
	}
	u, err := h.UserUC.Create(r.Context(), input)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusCreated, "user created", u)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	u, err := h.UserUC.Get(r.Context(), chi.URLParam(r, "id"), id)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "user found", u)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var input usecase.UpdateUserInput
	if !decodeJSON(w, r, &input) {
		return
	}
	u, err := h.UserUC.Update(r.Context(), chi.URLParam(r, "id"), input, id)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "user updated", u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.UserUC.Delete(r.Context(), chi.URLParam(r, "id"), id); err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "user deleted", nil)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.UserUC.List(r.Context(), pageFrom(r))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "users", res)
}
