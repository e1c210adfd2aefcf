package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/response"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ClientHandler struct {
	ClientUC  *usecase.ClientUseCase
	ContactUC *usecase.ContactUseCase
	Log       logger.Logger
}

func NewClientHandler(clients *usecase.ClientUseCase, contacts *usecase.ContactUseCase, log logger.Logger) *ClientHandler {
	return &ClientHandler{ClientUC: clients, ContactUC: contacts, Log: log}
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var input usecase.ClientInput
	if !decodeJSON(w, r, &input) {
		return
	}
	c, err := h.ClientUC.Create(r.Context(), input, id)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusCreated, "client created", c)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.ClientUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "client found", c)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.ClientInput
	if !decodeJSON(w, r, &input) {
		return
	}
	c, err := h.ClientUC.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "client updated", c)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ClientUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "client deleted", nil)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := entity.ClientFilter{Status: strings.ToUpper(q.Get("status")), Search: q.Get("search")}
	res, err := h.ClientUC.List(r.Context(), f, pageFrom(r))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "clients", res)
}

func (h *ClientHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContactInput
	if !decodeJSON(w, r, &input) {
		return
	}
	c, err := h.ContactUC.Create(r.Context(), input)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusCreated, "contact created", c)
}

func (h *ClientHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	c, err := h.ContactUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "contact found", c)
}

func (h *ClientHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContactInput
	if !decodeJSON(w, r, &input) {
		return
	}
	c, err := h.ContactUC.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "contact updated", c)
}

func (h *ClientHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.ContactUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "contact deleted", nil)
}

func (h *ClientHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	res, err := h.ContactUC.List(r.Context(), r.URL.Query().Get("clientId"), pageFrom(r))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "contacts", res)
}
