package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/http/response"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type LeadHandler struct {
	LeadUC    *usecase.LeadUseCase
	ScoringUC *usecase.LeadScoringUseCase
	Log       logger.Logger
}

func NewLeadHandler(uc *usecase.LeadUseCase, scoring *usecase.LeadScoringUseCase, log logger.Logger) *LeadHandler {
	return &LeadHandler{LeadUC: uc, ScoringUC: scoring, Log: log}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var input usecase.CreateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.LeadUC.Create(r.Context(), input, id)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusCreated, "lead created", lead)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.LeadUC.Get(r.Context(), chi.URLParam(r, "leadId"))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "lead found", lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var input usecase.UpdateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.LeadUC.Update(r.Context(), chi.URLParam(r, "leadId"), input, id)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "lead updated", lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.LeadUC.Delete(r.Context(), chi.URLParam(r, "leadId")); err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "lead deleted", nil)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := entity.LeadFilter{Search: q.Get("search"), OwnerID: q.Get("ownerId")}
	for _, s := range splitList(q.Get("status")) {
		f.Statuses = append(f.Statuses, entity.LeadStatus(s))
	}

	res, err := h.LeadUC.List(r.Context(), f, pageFrom(r))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "leads", res)
}

func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	out, err := h.LeadUC.Convert(r.Context(), chi.URLParam(r, "leadId"), id)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "lead converted", out)
}

// GetScore recomputes the score on demand and persists it.
func (h *LeadHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	out, err := h.ScoringUC.Recalculate(r.Context(), chi.URLParam(r, "leadId"))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	middleware.RecordScoreRecalculation("on_demand")
	response.JSON(w, http.StatusOK, "lead score", out)
}

func (h *LeadHandler) OverrideScore(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var body struct {
		Score interface{} `json:"score"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	score, isNumber := body.Score.(float64)
	if !isNumber {
		response.Fail(w, http.StatusBadRequest, usecase.CodeInvalidScore, "score must be a number between 0 and 100", "")
		return
	}

	out, err := h.ScoringUC.Override(r.Context(), chi.URLParam(r, "leadId"), score, id)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	middleware.RecordScoreOverride()
	response.JSON(w, http.StatusOK, "lead score updated", out)
}
