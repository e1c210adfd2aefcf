package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/response"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ActivityHandler struct {
	ActivityUC *usecase.ActivityUseCase
	TaskUC     *usecase.TaskUseCase
	Log        logger.Logger
}

func NewActivityHandler(activities *usecase.ActivityUseCase, tasks *usecase.TaskUseCase, log logger.Logger) *ActivityHandler {
	return &ActivityHandler{ActivityUC: activities, TaskUC: tasks, Log: log}
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var input usecase.ActivityInput
	if !decodeJSON(w, r, &input) {
		return
	}
	a, err := h.ActivityUC.Create(r.Context(), input, id)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusCreated, "activity created", a)
}

func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.ActivityUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "activity found", a)
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.ActivityInput
	if !decodeJSON(w, r, &input) {
		return
	}
	a, err := h.ActivityUC.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "activity updated", a)
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ActivityUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "activity deleted", nil)
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	completed, err := boolParam(q.Get("completed"))
	if err != nil {
		response.Fail(w, http.StatusBadRequest, usecase.CodeValidation, "invalid query", "completed must be true or false")
		return
	}
	f := entity.ActivityFilter{LeadID: q.Get("leadId"), ClientID: q.Get("clientId"), Completed: completed}

	res, err := h.ActivityUC.List(r.Context(), f, pageFrom(r))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "activities", res)
}

func (h *ActivityHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var input usecase.TaskInput
	if !decodeJSON(w, r, &input) {
		return
	}
	t, err := h.TaskUC.Create(r.Context(), input, id)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusCreated, "task created", t)
}

func (h *ActivityHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.TaskUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "task found", t)
}

func (h *ActivityHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var input usecase.TaskInput
	if !decodeJSON(w, r, &input) {
		return
	}
	t, err := h.TaskUC.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "task updated", t)
}

func (h *ActivityHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "task deleted", nil)
}

func (h *ActivityHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := entity.TaskFilter{AssignedTo: q.Get("assignedTo"), LeadID: q.Get("leadId")}
	for _, s := range splitList(q.Get("status")) {
		f.Statuses = append(f.Statuses, entity.TaskStatus(s))
	}

	res, err := h.TaskUC.List(r.Context(), f, pageFrom(r))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "tasks", res)
}
